// Package catalog persists per-invoice extraction results as a single
// JSON file mapping object key to result record.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrPersist marks a failure to write the catalog file. The in-memory
// record is intact; the caller can retry the flush without re-processing
// the invoice.
var ErrPersist = errors.New("catalog persist failed")

// Record holds the three analysis results for one invoice. A record is
// only ever written whole; there is no partially-populated state.
type Record struct {
	// Full is the raw key/value extraction text.
	Full string `json:"full"`
	// Structured is a JSON-encoded string returned by the structured
	// prompt. It is stored opaque and never parsed here.
	Structured string `json:"structured"`
	// Summary is the short free-text summary.
	Summary string `json:"summary"`
}

// Catalog is the mutex-guarded in-memory mirror of the catalog file.
// Merge serializes all read-modify-write cycles, so concurrent workers
// can never interleave partial updates, and the file on disk is swapped
// in atomically by rename.
type Catalog struct {
	mu      sync.Mutex
	path    string
	records map[string]Record
}

// New creates an empty catalog that will persist to path. Nothing is
// written until the first Merge.
func New(path string) *Catalog {
	return &Catalog{
		path:    path,
		records: make(map[string]Record),
	}
}

// Load reads an existing catalog file. A missing file yields an empty
// catalog, matching a run that processed zero invoices.
func Load(path string) (*Catalog, error) {
	c := New(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	if err := json.Unmarshal(data, &c.records); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}

// Path returns the catalog file path.
func (c *Catalog) Path() string {
	return c.path
}

// Merge adds or replaces the record for key and flushes the whole
// catalog to disk. Previously merged records are preserved unchanged.
// On a flush error the new record stays in memory and the previous file
// contents remain valid; the error wraps ErrPersist.
func (c *Catalog) Merge(key string, rec Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records[key] = rec
	return c.flushLocked()
}

// Flush rewrites the catalog file from the in-memory state.
func (c *Catalog) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushLocked()
}

// flushLocked marshals the records and swaps the file in atomically:
// write to a temp file in the same directory, then rename over the
// target. A reader never observes a truncated or half-written file.
func (c *Catalog) flushLocked() error {
	data, err := json.MarshalIndent(c.records, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPersist, err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrPersist, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write temp file: %v", ErrPersist, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close temp file: %v", ErrPersist, err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: rename: %v", ErrPersist, err)
	}
	return nil
}

// Get returns the record for key.
func (c *Catalog) Get(key string) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[key]
	return rec, ok
}

// Keys returns all invoice keys in sorted order.
func (c *Catalog) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.records))
	for k := range c.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}
