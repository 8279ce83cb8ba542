package report

import (
	"path/filepath"
	"testing"

	"github.com/aws-samples/genai-invoice-processor/internal/catalog"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "bare object",
			in:   `{"Vendor": "Amazon"}`,
			want: `{"Vendor": "Amazon"}`,
		},
		{
			name: "leading prose",
			in:   "Here is the analysis:\n{\"Vendor\": \"Amazon\"}\nLet me know.",
			want: `{"Vendor": "Amazon"}`,
		},
		{
			name: "nested object",
			in:   `{"a": {"b": 1}, "c": 2}`,
			want: `{"a": {"b": 1}, "c": 2}`,
		},
		{
			name: "braces inside strings",
			in:   `{"Description": "widgets {large}", "Vendor": "Acme"}`,
			want: `{"Description": "widgets {large}", "Vendor": "Acme"}`,
		},
		{
			name:    "no object",
			in:      "the invoice could not be read",
			wantErr: true,
		},
		{
			name:    "unterminated",
			in:      `prose {"Vendor": "Acme"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractObject(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("extractObject(%q) error = nil, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractObject(%q) error = %v", tt.in, err)
			}
			if string(got) != tt.want {
				t.Errorf("extractObject(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"100.90", 100.90, false},
		{"$100.90", 100.90, false},
		{"1,234.56", 1234.56, false},
		{"EUR 42", 42, false},
		{"", 0, true},
		{"n/a", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseAmount(%q) error = nil, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAmount(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	c := catalog.New(filepath.Join(t.TempDir(), "catalog.json"))

	mustMerge := func(key string, rec catalog.Record) {
		t.Helper()
		if err := c.Merge(key, rec); err != nil {
			t.Fatal(err)
		}
	}

	mustMerge("a.pdf", catalog.Record{
		Full:       "...",
		Structured: `{"Vendor": "Amazon", "TotalAmountDue": "$100.50", "CurrencyCode": "USD"}`,
		Summary:    "...",
	})
	mustMerge("b.pdf", catalog.Record{
		Full:       "...",
		Structured: "Sure, here you go: {\"Vendor\": \"Acme\", \"TotalAmountDue\": \"49.50\"}",
		Summary:    "...",
	})
	mustMerge("c.pdf", catalog.Record{
		Full:       "...",
		Structured: `{"Vendor": "Amazon", "TotalAmountDue": "10.00"}`,
		Summary:    "...",
	})
	mustMerge("d.pdf", catalog.Record{
		Full:       "...",
		Structured: "the model refused",
		Summary:    "...",
	})

	r := Build(c)

	if r.TotalInvoices != 4 {
		t.Errorf("TotalInvoices = %d, want 4", r.TotalInvoices)
	}
	if r.ParsedEntries != 3 {
		t.Errorf("ParsedEntries = %d, want 3", r.ParsedEntries)
	}
	if want := 160.00; r.TotalAmount != want {
		t.Errorf("TotalAmount = %v, want %v", r.TotalAmount, want)
	}
	if len(r.Vendors) != 2 || r.Vendors[0] != "Acme" || r.Vendors[1] != "Amazon" {
		t.Errorf("Vendors = %v, want [Acme Amazon]", r.Vendors)
	}
	if len(r.Skipped) != 1 || r.Skipped[0] != "d.pdf" {
		t.Errorf("Skipped = %v, want [d.pdf]", r.Skipped)
	}
}
