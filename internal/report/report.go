// Package report aggregates a finished catalog into spend totals using
// the structured extraction field of each record.
package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/aws-samples/genai-invoice-processor/internal/catalog"
)

// structuredFields is the JSON shape the structured prompt asks the
// model for. All fields are optional; models occasionally drop some.
type structuredFields struct {
	Vendor         string `json:"Vendor"`
	InvoiceDate    string `json:"InvoiceDate"`
	CurrencyCode   string `json:"CurrencyCode"`
	TotalAmountDue string `json:"TotalAmountDue"`
	Description    string `json:"Description"`
}

// Entry is the parsed structured data for one invoice.
type Entry struct {
	Key          string
	Vendor       string
	InvoiceDate  string
	CurrencyCode string
	AmountDue    float64
	Description  string
}

// Report summarizes every parseable record in a catalog.
type Report struct {
	TotalInvoices int
	ParsedEntries int
	TotalAmount   float64
	Vendors       []string
	Entries       []Entry

	// Skipped lists keys whose structured field could not be parsed.
	Skipped []string
}

// Build aggregates the catalog. Records whose structured field cannot
// be parsed are skipped, not fatal; models sometimes wrap the JSON in
// prose or return malformed output.
func Build(c *catalog.Catalog) *Report {
	r := &Report{TotalInvoices: c.Len()}
	vendors := make(map[string]struct{})

	for _, key := range c.Keys() {
		rec, _ := c.Get(key)

		raw, err := extractObject(rec.Structured)
		if err != nil {
			slog.Warn("skipping unparseable structured field", "key", key, "error", err)
			r.Skipped = append(r.Skipped, key)
			continue
		}

		var fields structuredFields
		if err := json.Unmarshal(raw, &fields); err != nil {
			slog.Warn("skipping malformed structured JSON", "key", key, "error", err)
			r.Skipped = append(r.Skipped, key)
			continue
		}

		entry := Entry{
			Key:          key,
			Vendor:       fields.Vendor,
			InvoiceDate:  fields.InvoiceDate,
			CurrencyCode: fields.CurrencyCode,
			Description:  fields.Description,
		}
		if amount, err := parseAmount(fields.TotalAmountDue); err == nil {
			entry.AmountDue = amount
			r.TotalAmount += amount
		}

		if fields.Vendor != "" {
			vendors[fields.Vendor] = struct{}{}
		}

		r.Entries = append(r.Entries, entry)
		r.ParsedEntries++
	}

	for v := range vendors {
		r.Vendors = append(r.Vendors, v)
	}
	sort.Strings(r.Vendors)
	return r
}

// extractObject returns the first top-level JSON object embedded in s.
// Model output often surrounds the object with prose, so the scan
// balances braces instead of trusting the whole string.
func extractObject(s string) ([]byte, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return nil, fmt.Errorf("no JSON object found")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return []byte(s[start : i+1]), nil
			}
		}
	}
	return nil, fmt.Errorf("unterminated JSON object")
}

// parseAmount strips currency symbols and grouping separators.
func parseAmount(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	if cleaned == "" {
		return 0, fmt.Errorf("no numeric amount in %q", s)
	}
	return strconv.ParseFloat(cleaned, 64)
}
