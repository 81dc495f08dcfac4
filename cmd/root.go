// Package cmd implements the command-line interface for ordersift.
// It provides the root command and subcommands for extracting order records
// from seller-orders pages.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joho/godotenv"
	"github.com/ordersift/ordersift/cmd/scrape"
	cmdsources "github.com/ordersift/ordersift/cmd/sources"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the ordersift CLI.
	rootCmd = &cobra.Command{
		Use:   "ordersift",
		Short: "Extract order records from seller-orders pages",
		Long: `ordersift extracts structured order/item records from marketplace
seller-orders pages and renders them as a table and a CSV file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	// Initialize configuration
	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ordersift version %s\n", "1.0.0")
		},
	})

	// Add subcommands
	rootCmd.AddCommand(scrape.Command())
	rootCmd.AddCommand(cmdsources.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	// Set config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Enable automatic environment variable reading before setting defaults
	// so environment variables take precedence over them.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional: defaults plus environment variables are a
	// complete configuration for single-source runs.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Config file not found: %v (using defaults and environment variables)\n", err)
	}

	// Bind command-line flags to Viper
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}

	// Map environment variables to config keys
	if err := bindAppEnvVars(); err != nil {
		return err
	}

	setupDevelopmentLogging()

	return nil
}

// bindAppEnvVars binds application and logger environment variables to config keys.
func bindAppEnvVars() error {
	if err := viper.BindEnv("app.environment", "APP_ENV"); err != nil {
		return fmt.Errorf("failed to bind APP_ENV: %w", err)
	}
	if err := viper.BindEnv("app.debug", "APP_DEBUG"); err != nil {
		return fmt.Errorf("failed to bind APP_DEBUG: %w", err)
	}
	if err := viper.BindEnv("logger.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("logger.encoding", "LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}
	if err := viper.BindEnv("scrape.status", "SCRAPE_STATUS"); err != nil {
		return fmt.Errorf("failed to bind SCRAPE_STATUS: %w", err)
	}
	if err := viper.BindEnv("output.csv_path", "OUTPUT_CSV_PATH"); err != nil {
		return fmt.Errorf("failed to bind OUTPUT_CSV_PATH: %w", err)
	}
	return nil
}

// setupDevelopmentLogging configures development logging settings based on
// environment and debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}
	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}

	Debug = debugFlag
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "ordersift",
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":        "info",
		"development":  false,
		"encoding":     "console",
		"output_paths": []string{"stderr"},
	})

	viper.SetDefault("scrape", map[string]any{
		"status":      "ALL_ORDERS",
		"max_records": 500,
		"timeout":     "30s",
		"parallel":    false,
		"scroll": map[string]any{
			"steps": 6,
			"pause": "500ms",
		},
		"filter": map[string]any{
			"enabled":  false,
			"keywords": []string{},
		},
	})

	viper.SetDefault("output", map[string]any{
		"csv_path":    "awaiting_shipment_items.csv",
		"sort":        true,
		"title_width": 80,
	})
}
