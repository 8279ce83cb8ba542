// Package cli provides the command-line interface for the invoice
// processor.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aws-samples/genai-invoice-processor/internal/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config, loaded in PersistentPreRunE
	cfg config.Config

	// Logger cleanup, invoked in PersistentPostRun
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "invoice-processor",
	Short: "Batch-extract invoice data from S3 with generative AI",
	Long: `Invoice-processor downloads PDF invoices from an S3 bucket, runs each
one through a generative-AI document-understanding model under three
prompts (full extraction, structured JSON, summary), and stores the
results in a single JSON catalog.

Use the companion invoice-review command to page through the downloaded
invoices alongside their extracted data.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}

		logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		slog.SetDefault(logger)
		logCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(reportCmd)
}
