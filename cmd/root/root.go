// Package root contains the root command for the application.
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"statement-chat/internal/config"
	"statement-chat/internal/export"
	"statement-chat/internal/logging"
)

// CommonFlags are the flags shared by the subcommands.
type CommonFlags struct {
	Input    string
	URL      string
	Password string
}

var (
	// Log is the shared logrus instance for commands.
	Log = logrus.New()

	// Cfg is the loaded configuration, available after PersistentPreRun.
	Cfg *config.Config

	// SharedFlags holds the persistent flag values.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "statement-chat",
		Short: "Explore a bank-statement PDF from the command line.",
		Long: `statement-chat extracts the transaction tables from a bank-statement
PDF (local file or direct link), normalizes them, and answers analytical
questions about the result: totals, top references, summaries, or free-text
"how much did I spend on X" queries.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to statement-chat!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Warnf("Failed to load configuration, using defaults: %v", err)
				cfg = &config.Config{}
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)

			if cfg.CSV.Delimiter != "" {
				export.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
		},
	}
)

// GetLogger returns the shared logger wrapped in the logging interface.
func GetLogger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// Init registers the root command's persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input PDF file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.URL, "url", "u", "", "Direct link to a PDF")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Password, "password", "p", "", "PDF password")
}

// Execute runs the root command.
func Execute() {
	if err := Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
