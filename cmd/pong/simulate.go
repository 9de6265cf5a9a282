package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/sim"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagRuns      int
	flagParallel  int
	flagScript    string
	flagRecordDir string
	flagSave      bool
	flagSimP1     string
	flagSimP2     string
	flagMaxTicks  int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless matches",
	Long: `Run matches without a terminal, either between two bots or from a
scripted list of inputs.

Every run is deterministic: the same seed, settings and controllers always
produce the same match. Run i uses seed --seed + i.

Scripts are YAML files:

  seed: 7
  dt: 0.0166
  steps:
    - {ticks: 30, p1: up, p2: down}
    - {ticks: 10}

Examples:
  pong simulate --runs 100 --parallel 8
  pong simulate --p1 random --p2 tracker --seed 42
  pong simulate --script ./rally.yaml --record ./recordings
  pong simulate --runs 20 --save`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of matches to play")
	simulateCmd.Flags().IntVar(&flagParallel, "parallel", runtime.NumCPU(), "Matches to run at once")
	simulateCmd.Flags().StringVar(&flagScript, "script", "", "Play a YAML input script instead of bots")
	simulateCmd.Flags().StringVar(&flagRecordDir, "record", "", "Write a msgpack recording per match into this directory")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Save results to the match database")
	simulateCmd.Flags().StringVar(&flagSimP1, "p1", "tracker", "Controller for player one: tracker, random, idle")
	simulateCmd.Flags().StringVar(&flagSimP2, "p2", "tracker", "Controller for player two: tracker, random, idle")
	simulateCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", sim.DefaultMaxTicks, "Stop a match after this many ticks")
}

// simJob pairs a job with the names stored alongside its result.
type simJob struct {
	job              sim.Job
	player1, player2 string
	file             *os.File
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr, "pong-sim")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	settings, err := loadSettings(logger)
	if err != nil {
		fail("%v", err)
	}

	jobs, err := buildJobs(settings)
	if err != nil {
		fail("%v", err)
	}

	if flagRecordDir != "" {
		if err := attachRecorders(jobs, flagRecordDir); err != nil {
			closeRecordings(jobs)
			fail("%v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	batch := make([]sim.Job, len(jobs))
	for i := range jobs {
		batch[i] = jobs[i].job
	}

	start := time.Now()
	results, err := sim.NewRunner(logger).RunBatch(ctx, batch, flagParallel)
	closeRecordings(jobs)
	if err != nil {
		fail("simulation: %v", err)
	}
	elapsed := time.Since(start)

	printResults(results)
	fmt.Printf("\n%d matches in %s\n", len(results), elapsed.Round(time.Millisecond))

	if flagSave {
		if err := saveResults(jobs, results); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Saved %d matches to %s\n", len(results), flagDBPath)
	}
}

// buildJobs creates either one scripted job or --runs bot matches.
func buildJobs(settings pong.Settings) ([]simJob, error) {
	dt := sim.DefaultDT
	if flagFPS > 0 {
		dt = 1 / float64(flagFPS)
	}

	if flagScript != "" {
		script, err := sim.LoadScript(flagScript)
		if err != nil {
			return nil, err
		}
		if flagSeed != 0 {
			script.Seed = flagSeed
		}
		job := script.Job(storage.NewMatchID(), settings)
		return []simJob{{job: job, player1: "script-p1", player2: "script-p2"}}, nil
	}

	if flagRuns < 1 {
		return nil, fmt.Errorf("--runs must be at least 1")
	}
	if _, ok := sim.ParseController(flagSimP1, 0); !ok {
		return nil, fmt.Errorf("unknown controller %q for --p1", flagSimP1)
	}
	if _, ok := sim.ParseController(flagSimP2, 0); !ok {
		return nil, fmt.Errorf("unknown controller %q for --p2", flagSimP2)
	}

	base := core.RuntimeConfig{Seed: flagSeed}.ResolveSeed()
	jobs := make([]simJob, flagRuns)
	for i := range jobs {
		seed := base + int64(i)
		// Controllers keep per-match state, so each job gets its own.
		one, _ := sim.ParseController(flagSimP1, seed*2+1)
		two, _ := sim.ParseController(flagSimP2, seed*2+2)
		jobs[i] = simJob{
			job: sim.Job{
				ID:       storage.NewMatchID(),
				Settings: settings,
				Seed:     seed,
				DT:       dt,
				MaxTicks: flagMaxTicks,
				Driver:   sim.Versus(one, two),
			},
			player1: flagSimP1 + "-1",
			player2: flagSimP2 + "-2",
		}
	}
	return jobs, nil
}

// attachRecorders opens <dir>/<match id>.msgpack for every job.
func attachRecorders(jobs []simJob, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create recording directory: %w", err)
	}
	for i := range jobs {
		j := &jobs[i]
		f, err := os.Create(filepath.Join(dir, j.job.ID+".msgpack"))
		if err != nil {
			return fmt.Errorf("cannot create recording: %w", err)
		}
		j.file = f

		rec, err := sim.NewRecorder(f, sim.Header{
			MatchID:  j.job.ID,
			Seed:     j.job.Seed,
			DT:       j.job.DT,
			Settings: j.job.Settings,
		})
		if err != nil {
			return err
		}
		j.job.Recorder = rec
	}
	return nil
}

func closeRecordings(jobs []simJob) {
	for _, j := range jobs {
		if j.file != nil {
			j.file.Close()
		}
	}
}

func printResults(results []sim.Result) {
	fmt.Printf("  %-8s  %-20s  %-7s  %-6s  %-9s  %-6s  %5s  %5s\n",
		"Match", "Seed", "Ticks", "Score", "State", "Winner", "Hits", "Walls")
	fmt.Printf("  %-8s  %-20s  %-7s  %-6s  %-9s  %-6s  %5s  %5s\n",
		"-----", "----", "-----", "-----", "-----", "------", "----", "-----")

	var wins [3]int
	for _, r := range results {
		fmt.Printf("  %-8s  %-20d  %-7d  %-6s  %-9s  %-6s  %5d  %5d\n",
			r.JobID[:min(8, len(r.JobID))], r.Seed, r.Ticks, r.Score, r.State,
			winnerLabel(r.Winner), r.PaddleHits, r.WallBounces)
		wins[r.Winner]++
	}

	fmt.Println()
	fmt.Printf("P1 wins: %d  P2 wins: %d  Unfinished: %d\n",
		wins[core.PlayerOne], wins[core.PlayerTwo], wins[core.PlayerNone])
}

func winnerLabel(p core.PlayerID) string {
	if p == core.PlayerNone {
		return "-"
	}
	return p.String()
}

func saveResults(jobs []simJob, results []sim.Result) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening match database: %w", err)
	}
	defer store.Close()

	for i, r := range results {
		rec := storage.MatchRecord{
			MatchID:   r.JobID,
			Mode:      storage.ModeSim,
			Player1:   jobs[i].player1,
			Player2:   jobs[i].player2,
			Score1:    r.Score.PlayerOne,
			Score2:    r.Score.PlayerTwo,
			EndReason: storage.EndTickLimit,
			Ticks:     int64(r.Ticks),
			Seed:      r.Seed,
			Duration:  time.Duration(r.SimTime * float64(time.Second)),
		}
		if r.State == pong.StateFinished {
			rec.EndReason = storage.EndCompleted
		}
		switch r.Winner {
		case core.PlayerOne:
			rec.Winner = rec.Player1
		case core.PlayerTwo:
			rec.Winner = rec.Player2
		}
		if _, err := store.SaveMatch(rec); err != nil {
			return fmt.Errorf("saving match %s: %w", r.JobID, err)
		}
	}
	return nil
}
