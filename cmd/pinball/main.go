// pinball is a terminal pinball game with a boss arena, achievements and
// remote play over SSH.
//
// Usage:
//
//	pinball                  - Start the menu
//	pinball play             - Start a round right away
//	pinball sim              - Run a round headless
//	pinball stats            - Show best runs and achievements
//	pinball skins [set <id>] - List or select ball skins
//	pinball serve            - Start SSH server for remote play
//	pinball list             - List difficulty presets
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible rounds
//	--db <path>           - Set database path (default: ~/.pinball/pinball.db)
//	--config <path>       - Load a custom pinball YAML config
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
	"github.com/vovakirdan/pinball-madness/internal/progress"
	"github.com/vovakirdan/pinball-madness/internal/settings"
	"github.com/vovakirdan/pinball-madness/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pinball",
	Short: "Pinball Madness - survive the timer in your terminal",
	Long: `Pinball Madness is a terminal pinball game. Keep the ball alive until the
survival timer runs out, collect items for special modes and beat the boss
to win back time.

Available commands:
  menu     - Interactive menu (default)
  play     - Start a round directly
  sim      - Run a round without a terminal
  stats    - View best runs and achievements
  skins    - List or select ball skins
  serve    - Start SSH server for remote play
  list     - Show difficulty presets

Examples:
  pinball
  pinball play --difficulty hard
  pinball sim --ticks 3600 --trace run.msgpack
  pinball serve --ssh :2222`,
	SilenceErrors: true, // main prints them
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		pinball.SetConfigPath(flagConfig)
		return nil
	},
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pinball/pinball.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pinball config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(skinsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
}

// newLogger writes to stderr; the TUI owns stdout.
func newLogger(prefix string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// roundLogger is the logger handed to the TUI. Writing to the terminal would
// tear the alternate screen, so rounds log to ~/.pinball/pinball.log with
// --verbose and nowhere otherwise.
func roundLogger() (*log.Logger, func()) {
	discard := log.New(io.Discard)
	if !flagVerbose {
		return discard, func() {}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return discard, func() {}
	}
	path := filepath.Join(home, ".pinball", "pinball.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return discard, func() {}
	}
	l := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "pinball"})
	l.SetLevel(log.DebugLevel)
	//nolint:errcheck // Best-effort close on exit
	return l, func() { f.Close() }
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the runs database. The game still works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// openTracker loads achievements and totals from store, falling back to
// in-memory progress. Load failures go to logger, unlocks to unlockLog.
func openTracker(store *storage.Store, logger, unlockLog *log.Logger) *progress.Tracker {
	var src progress.Store
	if store != nil {
		src = store
	}
	tracker, err := progress.NewTracker(src, unlockLog)
	if err != nil {
		logger.Warn("could not load progress", "error", err)
		tracker, _ = progress.NewTracker(nil, unlockLog)
	}
	return tracker
}

// openSettings loads saved preferences. --difficulty overrides the saved
// preset for this run only.
func openSettings(logger *log.Logger) *settings.Manager {
	prefs, err := settings.Open()
	if err != nil {
		logger.Warn("could not load settings", "error", err)
		if prefs == nil {
			prefs, _ = settings.NewManager(nil)
		}
	}
	if flagDifficulty != "" {
		prefs.SetDifficulty(flagDifficulty)
	}
	return prefs
}

// settingsForWrite loads saved preferences without flag overrides. A corrupt
// settings file is replaced on the next save.
func settingsForWrite() (*settings.Manager, error) {
	prefs, err := settings.Open()
	if prefs == nil {
		return nil, fmt.Errorf("cannot load settings: %w", err)
	}
	return prefs, nil
}
