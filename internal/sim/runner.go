package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
)

// Simulation defaults.
const (
	DefaultDT       = 1.0 / 60.0
	DefaultMaxTicks = 60 * 60 * 5 // five minutes at 60Hz

	// Context is polled this often rather than on every tick.
	cancelCheckInterval = 256
)

// ErrNoDriver is returned for jobs without an intent source.
var ErrNoDriver = errors.New("sim: job has no driver")

// Job describes one headless match.
type Job struct {
	ID       string
	Settings pong.Settings
	Seed     int64
	DT       float64
	MaxTicks int
	Driver   Driver

	// Recorder, when set, receives every tick. Recorders are not shared
	// between jobs.
	Recorder *Recorder
}

// Result summarizes a finished job.
type Result struct {
	JobID   string
	Seed    int64
	Ticks   uint64
	SimTime float64 // simulated seconds
	Score   pong.Score
	State   pong.State
	Winner  core.PlayerID

	PaddleHits  int
	WallBounces int
	Goals       int

	Final pong.Snapshot
}

// Runner executes jobs and logs match events at debug level.
type Runner struct {
	logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{logger: logger}
}

// Run plays one job until the match finishes, the driver runs dry, or
// MaxTicks is reached. On cancellation the partial result is returned
// along with the context error.
func (r *Runner) Run(ctx context.Context, job Job) (Result, error) {
	if job.Driver == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrNoDriver, job.ID)
	}
	if job.DT == 0 {
		job.DT = DefaultDT
	}
	if !(job.DT > 0) || math.IsInf(job.DT, 0) {
		return Result{}, fmt.Errorf("sim: job %s: dt must be positive and finite (got %v)", job.ID, job.DT)
	}
	if job.MaxTicks <= 0 {
		job.MaxTicks = DefaultMaxTicks
	}

	match, err := pong.NewMatch(job.Settings, pong.NewRand(job.Seed))
	if err != nil {
		return Result{}, fmt.Errorf("sim: job %s: %w", job.ID, err)
	}

	logger := r.logger.With("job", job.ID)
	res := Result{JobID: job.ID, Seed: job.Seed}

	for i := 0; i < job.MaxTicks && !match.Over(); i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				r.finish(&res, match)
				return res, fmt.Errorf("sim: job %s: %w", job.ID, err)
			}
		}

		in, ok := job.Driver.Intents(match)
		if !ok {
			break
		}
		tick := match.Advance(in, job.DT)
		res.SimTime += job.DT

		for _, e := range tick.Events {
			switch e.Kind {
			case pong.EventPaddleHit:
				res.PaddleHits++
			case pong.EventWallBounce:
				res.WallBounces++
			case pong.EventGoal:
				res.Goals++
				logger.Debug(e.String(), "tick", tick.Tick, "score", tick.Score)
			case pong.EventMatchOver:
				logger.Debug(e.String(), "tick", tick.Tick, "score", tick.Score)
			}
		}

		if job.Recorder != nil {
			if err := job.Recorder.Write(Frame{Intents: in, Snapshot: match.Snapshot()}); err != nil {
				r.finish(&res, match)
				return res, fmt.Errorf("sim: job %s: %w", job.ID, err)
			}
		}
	}

	r.finish(&res, match)
	logger.Info("job finished", "ticks", res.Ticks, "score", res.Score, "state", res.State)
	return res, nil
}

func (r *Runner) finish(res *Result, m *pong.Match) {
	res.Ticks = m.Tick()
	res.Score = m.Score()
	res.State = m.State()
	res.Winner = m.Winner()
	res.Final = m.Snapshot()
}

// RunBatch runs independent jobs with at most parallelism in flight.
// Results keep the job order. The first error cancels the remaining jobs.
func (r *Runner) RunBatch(ctx context.Context, jobs []Job, parallelism int) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, parallelism))

	for i, job := range jobs {
		g.Go(func() error {
			res, err := r.Run(ctx, job)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
