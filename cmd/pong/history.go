package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagPlain        bool
	flagPlayer       string
	flagStats        bool
	flagClear        bool
	flagHistoryLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved matches",
	Long: `Show matches saved by play, serve and simulate --save.

Without flags an interactive table opens; tab switches between all
matches and the --player filter.

Examples:
  pong history
  pong history --player alice
  pong history --plain --limit 50
  pong history --stats --player alice
  pong history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain listing instead of the table")
	historyCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show matches with this player")
	historyCmd.Flags().BoolVar(&flagStats, "stats", false, "Print win/loss totals for --player")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all saved matches")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Matches to list with --plain")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening match database: %v", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearMatches(); err != nil {
			fail("%v", err)
		}
		fmt.Println("Match history cleared.")

	case flagStats:
		if flagPlayer == "" {
			fail("--stats needs --player")
		}
		printStats(store, flagPlayer)

	case flagPlain:
		printHistory(store)

	default:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunHistory(store, flagPlayer, width, height); err != nil {
			fail("%v", err)
		}
	}
}

func printHistory(store *storage.Store) {
	var (
		matches []storage.MatchRecord
		err     error
	)
	if flagPlayer != "" {
		matches, err = store.PlayerMatches(flagPlayer, flagHistoryLimit)
	} else {
		matches, err = store.RecentMatches(flagHistoryLimit)
	}
	if err != nil {
		fail("%v", err)
	}

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pong play' to record the first one!")
		return
	}

	fmt.Printf("  %-16s  %-12s  %-5s  %-12s  %-12s  %-5s  %s\n", "Date", "P1", "Score", "P2", "Winner", "Mode", "End")
	fmt.Printf("  %-16s  %-12s  %-5s  %-12s  %-12s  %-5s  %s\n", "----", "--", "-----", "--", "------", "----", "---")
	for _, m := range matches {
		winner := m.Winner
		if winner == "" {
			winner = "-"
		}
		fmt.Printf("  %-16s  %-12s  %-5s  %-12s  %-12s  %-5s  %s\n",
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
			m.Player1, fmt.Sprintf("%d-%d", m.Score1, m.Score2), m.Player2,
			winner, m.Mode, m.EndReason)
	}
}

func printStats(store *storage.Store, player string) {
	stats, err := store.GetPlayerStats(player)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Stats - %s\n", player)
	fmt.Println()
	if stats.Played == 0 {
		fmt.Println("No matches recorded yet.")
		return
	}
	fmt.Printf("  %-8s  %d\n", "Played", stats.Played)
	fmt.Printf("  %-8s  %d\n", "Won", stats.Wins)
	fmt.Printf("  %-8s  %d\n", "Lost", stats.Losses)
	fmt.Printf("  %-8s  %d-%d\n", "Points", stats.PointsFor, stats.PointsAgainst)
	fmt.Printf("  %-8s  %s\n", "Last", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
}
