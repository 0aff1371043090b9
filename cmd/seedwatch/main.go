// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the seedwatch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HarleyCoops/SeeDream/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the seedwatch CLI.
var rootCmd = &cobra.Command{
	Use:   "seedwatch",
	Short: "Watch public search APIs for SeedDream 3.0 mentions",
	Long: `seedwatch queries GitHub repository search, GitHub code search, arXiv, and
the Hugging Face model hub for mentions of SeedDream 3.0, writes a timestamped
snapshot (JSON plus a readable Markdown report) per run, and reports whether
the run produced findings so a CI workflow can raise a notification.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is the normal case outside CI.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./seedwatch.yaml or ~/.config/seedwatch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("seedwatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "seedwatch"))
		}
	}

	viper.SetEnvPrefix("SEEDWATCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// githubToken resolves the optional bearer credential: environment first,
// then the secrets directory. Empty means unauthenticated.
func githubToken() string {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		return v
	}
	return loadedSecrets["github-token"]
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
