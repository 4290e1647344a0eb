package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "zonehunt",
		Short: "Operator CLI for the zonehunt game server",
		Long: `zonehunt drives a running zonehunt server from the terminal.

It covers the director console (starting and resetting rounds, moving the zone,
pairing teams, kicking players, forcing hints), account management, and a live
view of director events over SSE.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			client = NewClient(cfg.ServerURL, cfg.DirectorKey)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: ZONEHUNT_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.DirectorKey, "key", cfg.DirectorKey, "Director key (env: ZONEHUNT_DIRECTOR_KEY)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newStateCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newZoneCmd())
	rootCmd.AddCommand(newSayCmd())
	rootCmd.AddCommand(newKickCmd())
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newSeekerCmd())
	rootCmd.AddCommand(newPairCmd())
	rootCmd.AddCommand(newHintCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
