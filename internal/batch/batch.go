// Package batch orchestrates one end-to-end processing run: discover
// invoices in the object store, fan the per-invoice pipeline out over a
// worker pool, and merge each result into the catalog as it completes.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aws-samples/genai-invoice-processor/internal/analyzer"
	"github.com/aws-samples/genai-invoice-processor/internal/catalog"
	"github.com/aws-samples/genai-invoice-processor/internal/config"
	"github.com/aws-samples/genai-invoice-processor/internal/metrics"
	"github.com/aws-samples/genai-invoice-processor/internal/storage"
)

// Failure records one invoice that could not be processed.
type Failure struct {
	Key string
	Err error
}

// Result summarizes a finished batch run. Failed invoices are absent
// from the catalog and listed here; they never abort the run.
type Result struct {
	Processed int
	Failed    int
	Failures  []Failure
	Elapsed   time.Duration
}

// Processor runs invoice batches.
type Processor struct {
	store    storage.ObjectStore
	analyzer analyzer.Analyzer
	catalog  *catalog.Catalog
	metrics  *metrics.Collector

	stagingDir  string
	concurrency int
	prompts     config.Prompts
}

// New creates a batch processor. A nil collector disables timing
// collection.
func New(store storage.ObjectStore, an analyzer.Analyzer, cat *catalog.Catalog, cfg config.Config, collector *metrics.Collector) *Processor {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Processor{
		store:       store,
		analyzer:    an,
		catalog:     cat,
		metrics:     collector,
		stagingDir:  cfg.StagingDir,
		concurrency: concurrency,
		prompts:     cfg.Prompts,
	}
}

// Run processes every eligible invoice under bucket/prefix. A listing
// failure is fatal and returns before any invoice is touched; all other
// failures are per-invoice and recorded in the result.
func (p *Processor) Run(ctx context.Context, bucket, prefix string) (*Result, error) {
	runID := uuid.New().String()[:8]
	start := time.Now()

	slog.Info("batch starting", "run_id", runID, "bucket", bucket, "prefix", prefix, "concurrency", p.concurrency)

	keys, err := p.store.ListInvoices(ctx, bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if len(keys) == 0 {
		slog.Info("no invoices found", "run_id", runID, "bucket", bucket, "prefix", prefix)
		return &Result{Elapsed: time.Since(start)}, nil
	}

	// A run never mixes artifacts with a previous one: the staging
	// directory and any existing catalog file are removed up front.
	if err := p.resetStaging(); err != nil {
		return nil, err
	}

	slog.Info("discovered invoices", "run_id", runID, "count", len(keys))

	var (
		processed  atomic.Int32
		failed     atomic.Int32
		failuresMu sync.Mutex
		failures   []Failure
	)

	fail := func(key string, err error) {
		failed.Add(1)
		failuresMu.Lock()
		failures = append(failures, Failure{Key: key, Err: err})
		failuresMu.Unlock()
	}

	keyChan := make(chan string, len(keys))
	var wg sync.WaitGroup

	for i := 0; i < p.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for key := range keyChan {
				if ctx.Err() != nil {
					return
				}

				rec, err := p.processOne(ctx, bucket, key)
				if err != nil {
					slog.Error("failed to process invoice", "run_id", runID, "worker", workerID, "key", key, "error", err)
					fail(key, err)
					continue
				}

				if err := p.catalog.Merge(key, rec); err != nil {
					// The invoice itself was processed; only the flush
					// failed. Logged apart from processing failures so
					// the remediation (retry the write) is clear.
					if errors.Is(err, catalog.ErrPersist) {
						slog.Error("failed to persist catalog", "run_id", runID, "worker", workerID, "key", key, "error", err)
					} else {
						slog.Error("failed to merge result", "run_id", runID, "worker", workerID, "key", key, "error", err)
					}
					fail(key, err)
					continue
				}

				n := processed.Add(1)
				slog.Info("processed invoice", "run_id", runID, "worker", workerID, "key", key, "progress", fmt.Sprintf("%d/%d", n, len(keys)))
			}
		}(i)
	}

	for _, key := range keys {
		keyChan <- key
	}
	close(keyChan)

	wg.Wait()

	result := &Result{
		Processed: int(processed.Load()),
		Failed:    int(failed.Load()),
		Failures:  failures,
		Elapsed:   time.Since(start),
	}

	slog.Info("batch finished", "run_id", runID, "processed", result.Processed, "failed", result.Failed, "elapsed", result.Elapsed)
	return result, nil
}

// resetStaging destroys and recreates the staging directory and removes
// a leftover catalog file from a previous run.
func (p *Processor) resetStaging() error {
	if err := os.RemoveAll(p.stagingDir); err != nil {
		return fmt.Errorf("clear staging directory: %w", err)
	}
	if err := os.MkdirAll(p.stagingDir, 0755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	if err := os.Remove(p.catalog.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove previous catalog: %w", err)
	}
	return nil
}

// processOne downloads the invoice and runs the three prompts against
// it. All three must succeed; otherwise the invoice fails whole and no
// record is returned.
func (p *Processor) processOne(ctx context.Context, bucket, key string) (catalog.Record, error) {
	doc := analyzer.Document{
		Bucket:    bucket,
		Key:       key,
		LocalPath: filepath.Join(p.stagingDir, filepath.FromSlash(key)),
	}

	if err := p.timed("download", func() error {
		return p.store.Download(ctx, bucket, key, doc.LocalPath)
	}); err != nil {
		return catalog.Record{}, fmt.Errorf("download: %w", err)
	}

	var rec catalog.Record

	steps := []struct {
		name   string
		prompt string
		dest   *string
	}{
		{"analyze_full", p.prompts.Full, &rec.Full},
		{"analyze_structured", p.prompts.Structured, &rec.Structured},
		{"analyze_summary", p.prompts.Summary, &rec.Summary},
	}

	for _, step := range steps {
		if err := p.timed(step.name, func() error {
			text, err := p.analyzer.Analyze(ctx, step.prompt, doc)
			if err != nil {
				return err
			}
			*step.dest = text
			return nil
		}); err != nil {
			return catalog.Record{}, fmt.Errorf("%s: %w", step.name, err)
		}
	}

	return rec, nil
}

func (p *Processor) timed(name string, fn func() error) error {
	if p.metrics == nil {
		return fn()
	}
	return p.metrics.Time(name, fn)
}
