package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config resolves defaults, the config file, environment variables, and flags
the same way run does, and prints the merged result. The output is a valid
seedwatch.yaml, so it doubles as a starting template. The GitHub token is
redacted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig(cmd)
		if cfg.GitHubToken != "" {
			cfg.GitHubToken = "(set)"
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		cmd.OutOrStdout().Write(data)
		return nil
	},
}

func init() {
	configCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	configCmd.Flags().Int("max-results", 0, "maximum hits kept per source call (default 10)")
	configCmd.Flags().String("results-dir", "", "directory for snapshot files (default search_results)")

	rootCmd.AddCommand(configCmd)
}
