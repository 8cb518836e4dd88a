package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pinball-madness/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start Pinball Madness in menu mode.

Pick a ball skin and difficulty, play rounds and browse your stats.
After a round ends, press B or Esc to return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right      - Change skin or difficulty
  Enter           - Select
  Tab             - Stats and achievements
  Q               - Quit

Examples:
  pinball menu
  pinball menu --fps 30
  pinball menu --db ./pinball.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger("pinball")
	store := openStore(logger)
	roundLog, closeLog := roundLogger()
	defer closeLog()
	tracker := openTracker(store, logger, roundLog)
	prefs := openSettings(logger)

	err := tui.RunSession(store, tracker, prefs, runtimeConfig(), roundLog)

	if store != nil {
		store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
