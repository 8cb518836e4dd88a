package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
	"github.com/vovakirdan/pinball-madness/internal/platform/tui"
)

var flagSkin string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a round",
	Long: `Start a pinball round right away, skipping the menu.

Controls:
  A/Left/Z     - Left flipper
  D/Right//    - Right flipper
  , and .      - Pistons (during fist combat)
  Space/Up/W   - Jump boost
  U            - Rewind the ball (when the undo reward is held)
  P            - Pause
  R            - Restart (after the round ends)
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot

Difficulty options:
  easy   - Longer timer, slower ball
  normal - Default tuning
  hard   - Shorter timer, faster ball
  fixed  - Config values exactly as written

Examples:
  pinball play
  pinball play --difficulty hard
  pinball play --skin shark
  pinball play --seed 42 --config ./my-table.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSkin, "skin", "", "Ball skin for this round (must be unlocked)")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger := newLogger("pinball")
	store := openStore(logger)
	roundLog, closeLog := roundLogger()
	defer closeLog()
	tracker := openTracker(store, logger, roundLog)
	prefs := openSettings(logger)

	skin := prefs.Get().BallSkin
	if flagSkin != "" {
		if !tracker.SkinAvailable(flagSkin) {
			fmt.Fprintf(os.Stderr, "Error: skin %q is locked or unknown\n", flagSkin)
			fmt.Fprintln(os.Stderr, "Run 'pinball skins' to see available skins.")
			os.Exit(1)
		}
		skin = flagSkin
	}

	game := pinball.NewWithLogger(roundLog)
	game.SetSkin(skin)
	game.SetPreset(prefs.Get().Difficulty)

	runErr := tui.Run(game, store, tracker, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if err := game.ConfigError(); err != nil {
		logger.Warn("played with default config", "error", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
