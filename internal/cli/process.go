package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aws-samples/genai-invoice-processor/internal/analyzer"
	"github.com/aws-samples/genai-invoice-processor/internal/batch"
	"github.com/aws-samples/genai-invoice-processor/internal/catalog"
	"github.com/aws-samples/genai-invoice-processor/internal/metrics"
	"github.com/aws-samples/genai-invoice-processor/internal/storage"
)

var (
	processConcurrency int
	processShowTimings bool
)

// timePrecision rounds elapsed times for display.
const timePrecision = 10 * time.Millisecond

var processCmd = &cobra.Command{
	Use:   "process <bucket> [prefix]",
	Short: "Process all PDF invoices under an S3 bucket/prefix",
	Long: `Process downloads every PDF invoice under the given bucket (and
optional key prefix), analyzes each one with three prompts, and writes
the results to the output catalog.

Invoices that fail to process are logged and skipped; they do not stop
the batch or change the exit status.

Examples:
  invoice-processor process my-invoices
  invoice-processor process my-invoices 2024/march/
  invoice-processor process my-invoices --concurrency 8 --timings`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().IntVarP(&processConcurrency, "concurrency", "c", 0, "worker pool size (default from INVOICE_CONCURRENCY)")
	processCmd.Flags().BoolVar(&processShowTimings, "timings", false, "print per-operation timing statistics")
}

func runProcess(cmd *cobra.Command, args []string) error {
	bucket := args[0]
	var prefix string
	if len(args) == 2 {
		prefix = args[1]
	}

	if processConcurrency > 0 {
		cfg.Concurrency = processConcurrency
	}

	ctx := context.Background()

	store, err := storage.NewS3Store(ctx)
	if err != nil {
		return fmt.Errorf("init object store: %w", err)
	}

	an, err := analyzer.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init analyzer: %w", err)
	}

	collector := metrics.NewCollector()
	cat := catalog.New(cfg.OutputFile)
	processor := batch.New(store, an, cat, cfg, collector)

	result, err := processor.Run(ctx, bucket, prefix)
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d invoices in %s\n", result.Processed, result.Elapsed.Round(timePrecision))
	if result.Failed > 0 {
		fmt.Printf("%d invoices failed; see %s for details\n", result.Failed, cfg.LogFile)
	}

	if processShowTimings {
		printTimings(collector)
	}

	fmt.Println("To review the downloaded invoices with their extracted data, run: invoice-review")
	return nil
}

func printTimings(collector *metrics.Collector) {
	snaps := collector.Snapshot()
	if len(snaps) == 0 {
		return
	}

	fmt.Printf("\n%-20s %-8s %-10s %-10s %-10s\n", "OPERATION", "COUNT", "AVG(ms)", "MIN(ms)", "MAX(ms)")
	for _, s := range snaps {
		fmt.Printf("%-20s %-8d %-10.1f %-10d %-10d\n", s.Name, s.Count, s.AvgTimeMs, s.MinTimeMs, s.MaxTimeMs)
	}
}
