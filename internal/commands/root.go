package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xjtian/monarch-sankeymatic/internal/buildinfo"
)

// configEnvVar overrides the default config path; handy with a .env file.
const configEnvVar = "MONARCH_SANKEYMATIC_CONFIG"

// NewRootCommand creates the CLI root command.
func NewRootCommand() *cobra.Command {
	var opts runOptions

	rootCmd := &cobra.Command{
		Use:     "monarch-sankeymatic",
		Short:   "Make a SankeyMatic diagram out of exported Monarch Money transaction data",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.configPath, "config", defaultConfigPath(), "path to config file")
	rootCmd.Flags().StringVar(&opts.mode, "mode", modeSankey,
		"sankey to print SankeyMatic-formatted output, raw for a flat list of net spend by category (useful for building the category hierarchy config)")
	rootCmd.Flags().BoolVar(&opts.onlySpend, "only-spend", false,
		"only categorize spending (leave income, savings, and taxes out of the final diagram)")

	return rootCmd
}

func defaultConfigPath() string {
	if p := os.Getenv(configEnvVar); p != "" {
		return p
	}
	return "config.yaml"
}
