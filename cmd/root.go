package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrettEastman/sway-leader-dashboard/core"
	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/internal/relstore"
	"github.com/BrettEastman/sway-leader-dashboard/internal/swayapi"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// dispatcher routes metric calls to the configured backend provider.
var dispatcher *core.Dispatcher

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "swaydash",
	Short:              "Compute influence metrics for viewpoint groups.",
	Long:               `Swaydash computes sway score, electoral influence, growth, and network reach for viewpoint groups from a relational snapshot or the Sway graph API.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".swaydash") // Name of config file (without extension)
		viper.SetConfigType("yaml")      // We'll use YAML format
		viper.AddConfigPath(".")         // Look in the current directory
		viper.AddConfigPath("$HOME")     // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("SWAYDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("backend", schema.SQLiteBackend)
	viper.SetDefault("db-connect", "")
	viper.SetDefault("api-url", "")
	viper.SetDefault("api-token", "")
	viper.SetDefault("batch-size", contract.DefaultBatchSize)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("emoji", "yes")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config, runs validation, and wires the providers.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.GroupIDStr = args[0]
	}

	// 4. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 5. Wire metric providers for the validated backend selection.
	providers, err := buildProviders(cfg)
	if err != nil {
		return err
	}
	dispatcher, err = core.NewDispatcher(cfg.Backend, providers...)
	if err != nil {
		return err
	}

	return nil
}

// buildProviders constructs the providers reachable under the current config.
// The graph provider rides along whenever an API URL is configured, so the
// --backend flag can switch per invocation without re-validation.
func buildProviders(cfg *contract.Config) ([]contract.MetricsProvider, error) {
	var providers []contract.MetricsProvider

	if cfg.Backend.IsRelational() {
		store, err := relstore.Open(cfg.Backend, cfg.DBConnect, contract.MaxBatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot store: %w", err)
		}
		providers = append(providers, core.NewEngine(store, cfg.Backend, cfg))
	}

	if cfg.Backend == schema.SwayAPIBackend || cfg.APIURL != "" {
		client := swayapi.NewClient(cfg)
		providers = append(providers, swayapi.NewProvider(client, cfg))
	}

	return providers, nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".swaydash")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
