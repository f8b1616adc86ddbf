package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/config"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/logging"
)

const Version = "0.1.0"

var (
	configPath   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ingres",
	Short: "Ingres - groundwater question answering service",
	Long: `Ingres routes natural-language questions about groundwater statistics
through a set of specialized LLM-backed responders and stitches their
outputs into a single answer tailored to the requester's role.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to YAML config file (optional; defaults apply without it)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error, fatal (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
}

// HandleError prints the error and exits.
func HandleError(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}
}

// loadConfigAndLogging loads configuration, applies the log-level flag
// and initializes the global logger.
func loadConfigAndLogging() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if logLevelFlag != "" {
		if err := logging.ParseLevelString(logLevelFlag); err != nil {
			return nil, err
		}
		level = logLevelFlag
	}
	logging.Initialize(level)

	return cfg, nil
}
