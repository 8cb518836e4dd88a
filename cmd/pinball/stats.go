package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
	"github.com/vovakirdan/pinball-madness/internal/platform/tui"
	"github.com/vovakirdan/pinball-madness/internal/progress"
)

var (
	flagStatsLimit int
	flagStatsTUI   bool
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show best runs and achievements",
	Long: `Display the longest runs and every achievement.

Examples:
  pinball stats
  pinball stats --limit 20
  pinball stats --tui
  pinball stats --clear-runs`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of runs to show")
	statsCmd.Flags().BoolVar(&flagStatsTUI, "tui", false, "Browse stats interactively")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear-runs", false, "Delete every recorded run (achievements are kept)")
}

func runStats(_ *cobra.Command, _ []string) {
	logger := newLogger("pinball")
	store := openStore(logger)
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if flagStatsClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Runs cleared.")
		return
	}

	tracker := openTracker(store, logger, logger)

	if flagStatsTUI {
		cfg := runtimeConfig()
		if _, err := tui.RunStats(store, tracker, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(flagStatsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pinball play' to set the first record!")
	} else {
		// Print header
		fmt.Printf("  %-4s  %-8s  %-6s  %-10s  %-8s  %s\n", "Rank", "Survived", "Bosses", "Outcome", "Ball", "Date")
		fmt.Printf("  %-4s  %-8s  %-6s  %-10s  %-8s  %s\n", "----", "--------", "------", "-------", "----", "----")

		for i, r := range runs {
			fmt.Printf("  %-4d  %-8s  %-6d  %-10s  %-8s  %s\n",
				i+1,
				pinball.FormatTimer(r.Survived, 60),
				r.BossWins,
				r.Outcome,
				pinball.SkinByID(r.Skin).Name,
				r.CreatedAt.Format("2006-01-02 15:04"),
			)
		}

		if stats, err := store.GetStats(); err == nil {
			fmt.Println()
			fmt.Printf("Runs: %d  Total play: %s  Boss wins: %d\n",
				stats.Runs, pinball.FormatTimer(stats.TotalPlay, 60), stats.BossWins)
		}
	}

	fmt.Println()
	fmt.Printf("Achievements %d/%d\n", tracker.Count(), len(progress.All))
	fmt.Println()
	for _, a := range progress.All {
		mark := " "
		if tracker.Unlocked(a.ID) {
			mark = "x"
		}
		fmt.Printf("  [%s] %-16s %s\n", mark, a.Title, a.Description)
	}
}
