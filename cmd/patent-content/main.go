// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the patent-content CLI. It serves the
// search and fetch-content operations as MCP tools and exposes both as
// one-shot subcommands.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/patent-content/internal/secrets"
	"github.com/pdiddy/patent-content/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Populated by the root command before any subcommand runs.
var (
	loadedSecrets map[string]string
	cfg           types.Config
	logger        *slog.Logger
)

// rootCmd is the base command for the patent-content CLI.
var rootCmd = &cobra.Command{
	Use:   "patent-content",
	Short: "Patent search and bounded content retrieval",
	Long: `patent-content retrieves patent records from a remote patent database.

search runs a free-text query with optional filters and returns the upstream
result list. fetch resolves one patent URL or number and returns a record
holding exactly the requested fields, each cut to an optional character
budget at paragraph, line, or word boundaries. serve exposes both operations
as MCP tools over stdio or streamable HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", nil)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", secrets.Names(s))
		}

		cfg, err = loadConfig(loadedSecrets)
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg.Log, os.Stderr)
		return err
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./patent-content.yaml or ~/.config/patent-content/config.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error (default info)")
	flags.String("log-format", "", "log format: text or json (default text)")
	flags.Duration("timeout", 0, "upstream request timeout (default 30s)")

	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("upstream.timeout", flags.Lookup("timeout"))
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("patent-content")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "patent-content"))
		}
	}

	viper.SetEnvPrefix("PATENT_CONTENT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("upstream.api_key", "PATENT_CONTENT_UPSTREAM_API_KEY", "PATENT_CONTENT_API_KEY", "SERPAPI_API_KEY")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
