package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "snakeladders",
		Short: "Snakes & Ladders - team board game for live events",
		Long: `Snakes & Ladders runs the team board game played at live events.
Game state persists locally between sessions, so an interrupted game
resumes where it left off.

Examples:
  snakeladders new --players Ana,Bruno,Carla
  snakeladders new --players Ana,Bruno --teams Red,Blue --map random
  snakeladders roll --target Bruno
  snakeladders dice --max 6 --next-round
  snakeladders status
  snakeladders export --out game.json`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewNewCommand())
	rootCmd.AddCommand(NewRollCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewDiceCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewResetCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
