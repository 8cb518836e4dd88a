package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
	"github.com/vovakirdan/pinball-madness/internal/progress"
)

var skinsCmd = &cobra.Command{
	Use:   "skins",
	Short: "List ball skins",
	Long: `Show every ball skin and whether it is unlocked. Skins unlock as you
collect achievements.

Examples:
  pinball skins
  pinball skins set nuclear`,
	Args: cobra.NoArgs,
	Run:  runSkins,
}

var skinsSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Select the ball skin for future rounds",
	Args:  cobra.ExactArgs(1),
	Run:   runSkinsSet,
}

func init() {
	skinsCmd.AddCommand(skinsSetCmd)
}

func runSkins(_ *cobra.Command, _ []string) {
	logger := newLogger("pinball")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	tracker := openTracker(store, logger, logger)
	prefs := openSettings(logger)
	selected := prefs.Get().BallSkin

	fmt.Printf("Ball skins (%d/%d achievements)\n", tracker.Count(), len(progress.All))
	fmt.Println()
	for _, s := range pinball.Skins {
		mark := " "
		if s.ID == selected {
			mark = "*"
		}
		status := "unlocked"
		if !tracker.SkinAvailable(s.ID) {
			status = fmt.Sprintf("locked, needs %d achievements", s.Unlock)
		}
		fmt.Printf("  %s %c  %-8s %-8s  %s\n", mark, s.Glyph, s.ID, s.Name, status)
	}
	fmt.Println()
	fmt.Println("Run 'pinball skins set <id>' to change your ball.")
}

func runSkinsSet(_ *cobra.Command, args []string) {
	id := args[0]
	logger := newLogger("pinball")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	tracker := openTracker(store, logger, logger)

	if pinball.SkinByID(id).ID != id {
		fmt.Fprintf(os.Stderr, "Error: unknown skin %q\n", id)
		os.Exit(1)
	}
	if !tracker.SkinAvailable(id) {
		fmt.Fprintf(os.Stderr, "Error: skin %q is still locked\n", id)
		os.Exit(1)
	}

	// Loaded without the --difficulty override so it is not saved by accident.
	prefs, err := settingsForWrite()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	prefs.SetBallSkin(id)
	if err := prefs.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ball skin set to %s.\n", pinball.SkinByID(id).Name)
}
