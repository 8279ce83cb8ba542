// Package storage provides access to the object store holding the
// source invoices.
package storage

import (
	"context"
	"path"
	"strings"
)

// ObjectStore lists eligible invoice keys and downloads single objects.
// Implementations include the S3 store and test fakes.
type ObjectStore interface {
	// ListInvoices returns the complete, deduplicated set of eligible
	// keys under bucket/prefix, following pagination to exhaustion.
	// Any page fetch error is returned as-is; a partial listing is
	// never silently treated as complete.
	ListInvoices(ctx context.Context, bucket, prefix string) ([]string, error)

	// Download fetches one object into destPath, creating parent
	// directories as needed.
	Download(ctx context.Context, bucket, key, destPath string) error
}

// invoiceExt is the only extension treated as a processable invoice.
const invoiceExt = ".pdf"

// Eligible reports whether a listed key is a processable invoice.
// Folder markers and non-PDF keys are skipped.
func Eligible(key string) bool {
	if strings.HasSuffix(key, "/") {
		return false
	}
	return strings.EqualFold(path.Ext(key), invoiceExt)
}
