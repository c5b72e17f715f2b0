// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the assay CLI, a client for the
// assay document intelligence API. Commands authenticate with an API key
// split between the local config file and the OS vault, then issue
// read-only queries against the remote service.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/assaylabs/assay/internal/api"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the assay CLI.
var rootCmd = &cobra.Command{
	Use:   "assay",
	Short: "Client for the assay document intelligence API",
	Long: `assay queries the assay document intelligence service: list and inspect
documents, fetch server-generated summaries, run searches, and browse
cross-document themes.

Authenticate once with 'assay auth login'. The key identifier is stored in
the config file and the secret portion in the OS keyring; ASSAY_API_KEY
overrides both when set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("format", "", "output format: json, table, or yaml (default from config)")

	// Environment variables flow through viper: ASSAY_API_KEY,
	// ASSAY_BASE_URL, ASSAY_CONFIG_DIR.
	viper.SetEnvPrefix("ASSAY")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), api.UserMessage(err))
		os.Exit(1)
	}
}
