package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/sim"
)

var flagVerify bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <recording>",
	Short: "Show a match recording",
	Long: `Print the header and final state of a recording written by
'pong simulate --record'. With --verify the match is replayed from its
inputs and every tick is compared against the recording.

Examples:
  pong inspect ./recordings/0b7c....msgpack
  pong inspect --verify ./recordings/0b7c....msgpack`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagVerify, "verify", false, "Replay the recording and check it tick by tick")
}

func runInspect(_ *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	if err != nil {
		fail("%v", err)
	}
	rec, err := sim.ReadRecording(f)
	f.Close()
	if err != nil {
		fail("%v", err)
	}

	h := rec.Header
	s := h.Settings
	fmt.Printf("Recording %s\n", args[0])
	fmt.Println()
	fmt.Printf("  %-10s  %s\n", "Match", h.MatchID)
	fmt.Printf("  %-10s  %d\n", "Version", h.Version)
	fmt.Printf("  %-10s  %s\n", "Created", h.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("  %-10s  %d\n", "Seed", h.Seed)
	fmt.Printf("  %-10s  %.4fs\n", "Tick", h.DT)
	fmt.Printf("  %-10s  %d\n", "Frames", len(rec.Frames))
	fmt.Printf("  %-10s  %gx%g, paddles at +-%g, ball speed %g\n", "Arena",
		s.Arena.Width(), s.Arena.Height(), s.PaddleX, s.BallServeSpeed)
	if s.WinScore > 0 {
		fmt.Printf("  %-10s  first to %d\n", "Target", s.WinScore)
	}

	final, ok := rec.Final()
	if !ok {
		fmt.Println()
		fmt.Println("No frames recorded.")
		return
	}
	fmt.Println()
	fmt.Printf("  %-10s  %d-%d (%s)\n", "Final", final.Score1, final.Score2, final.State)
	fmt.Printf("  %-10s  (%.2f, %.2f) heading (%.3f, %.3f)\n", "Ball",
		final.BallX, final.BallY, final.DirX, final.DirY)
	fmt.Printf("  %-10s  %.2f / %.2f\n", "Paddles", final.Paddle1Y, final.Paddle2Y)

	if flagVerify {
		fmt.Println()
		if err := sim.Replay(rec); err != nil {
			fail("%v", err)
		}
		fmt.Println("Replay matches the recording.")
	}
}
