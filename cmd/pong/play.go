package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagPlayer1 string
	flagPlayer2 string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local match",
	Long: `Start a two-player hot-seat match in this terminal.

Controls:
  Z/W, S     - Player one up, down
  E/Up, D/Down - Player two up, down
  P/Esc      - Pause
  R          - Restart (when paused or after the match)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Terminals only report key presses, so each press moves a paddle for a
short moment; hold the key to keep it moving.

Examples:
  pong play
  pong play --p1 alice --p2 bob
  pong play --seed 42 --config ./fast.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer1, "p1", "p1", "Name of player one")
	playCmd.Flags().StringVar(&flagPlayer2, "p2", "p2", "Name of player two")
}

func runPlay(_ *cobra.Command, _ []string) {
	// The TUI owns the terminal, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard, "pong")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	settings, err := loadSettings(logger)
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - the match still works
		logger.Warn("could not open match database", "error", err)
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Settings: settings,
		Runtime:  cfg,
		Store:    store,
		Logger:   logger,
		Mode:     storage.ModeLocal,
		Player1:  flagPlayer1,
		Player2:  flagPlayer2,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running match: %v", runErr)
	}
}
