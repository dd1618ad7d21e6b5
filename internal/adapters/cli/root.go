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
		Use:   "eveblueprint",
		Short: "EVE blueprint profitability scanner",
		Long: `eveblueprint compares the manufacturing cost of a blueprint against
market sell prices, either in one region or ranked across all regions.

Material prices come from live regional sell orders; the blueprint
catalog is read from offline resource files.

Examples:
  eveblueprint cost --item "Rifter Blueprint" --region "The Forge"
  eveblueprint cost --item "Rifter Blueprint" --me 10 --te 20
  eveblueprint scan --item "Rifter Blueprint"
  eveblueprint regions`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewCostCommand())
	rootCmd.AddCommand(NewScanCommand())
	rootCmd.AddCommand(NewRegionsCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
