// =============================================================================
// X3 Flat Bridge - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (x3bridge)
//   ├── exportCmd (x3bridge export login|orders|materials)
//   ├── submitCmd (x3bridge submit)
//   ├── processCmd (x3bridge process)
//   └── versionCmd (x3bridge version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file for subcommands
//   3. Building the shared logger
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/X3-flat-bridge/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "x3bridge",

	Short: "X3 Flat Bridge - Exchange flat tagged-record files with a Sage X3 backend",

	Long: `X3 Flat Bridge is a CLI tool for exchanging business data with a Sage X3
ERP backend through its generic SOAP web service. Exports arrive as flat
tagged-record files ("|" between records, ";" between fields) which the
bridge decodes into structured documents; outbound orders are rendered
back into the same format and submitted.

Key Features:
  - Login profile, order and material catalog exports decoded to JSON
  - Optional XLSX reports for decoded catalogs and orders
  - Order submission from a YAML request file, with validation
  - Offline batch decoding of saved export files with automatic archival

Example Usage:
  x3bridge export materials            # Export and decode the material catalog
  x3bridge submit --file order.yaml    # Validate and submit an order
  x3bridge process                     # Decode all saved exports in the input directory`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig loads the main configuration from the --config path.
func loadConfig() (*config.MainConfig, error) {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// buildLogger builds the shared logger from the configuration. --verbose
// overrides the configured level with debug.
func buildLogger(cfg *config.MainConfig) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	if cfg.LogFile != "" {
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, cfg.LogFile)
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
