package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List difficulty presets",
	Long:  `Shows the round timer and boss strength of each difficulty preset.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

var presets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

func runList(_ *cobra.Command, _ []string) {
	base, err := config.LoadPinball(flagConfig)
	if err != nil {
		fmt.Printf("Warning: %v (showing defaults)\n\n", err)
		base = config.DefaultPinballConfig()
	}

	fmt.Println("Difficulty presets:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-8s  %-6s  %-10s  %s\n", "Preset", "Timer", "Max speed", "Boss HP")
	fmt.Printf("  %-8s  %-6s  %-10s  %s\n", "------", "-----", "---------", "-------")

	for _, p := range presets {
		cfg := base
		config.ApplyPinballPreset(&cfg, p)
		fmt.Printf("  %-8s  %-6s  %-10.0f  %d\n",
			p,
			pinball.FormatTimer(cfg.Round.InitialTimer, 60),
			cfg.Ball.MaxSpeed,
			cfg.Boss.BossHealth,
		)
	}

	fmt.Println()
	fmt.Println("Run 'pinball play --difficulty <preset>' to play one.")
}
