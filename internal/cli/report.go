package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aws-samples/genai-invoice-processor/internal/catalog"
	"github.com/aws-samples/genai-invoice-processor/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate totals and vendors from the processed catalog",
	Long: `Report parses the structured field of every catalog entry and prints
aggregate figures: invoice count, total amount due, and unique vendors.

Entries whose structured output cannot be parsed are listed as skipped.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if cat.Len() == 0 {
		fmt.Println("Catalog is empty. Run 'invoice-processor process' first.")
		return nil
	}

	r := report.Build(cat)

	fmt.Println("Invoice Summary:")
	fmt.Printf("  Total invoices: %d\n", r.TotalInvoices)
	fmt.Printf("  Parsed entries: %d\n", r.ParsedEntries)
	fmt.Printf("  Total amount:   %.2f\n", r.TotalAmount)
	fmt.Printf("  Unique vendors: %s\n", strings.Join(r.Vendors, ", "))

	if len(r.Entries) > 0 {
		fmt.Printf("\n%-30s %-20s %-12s %10s\n", "KEY", "VENDOR", "DATE", "AMOUNT")
		for _, e := range r.Entries {
			fmt.Printf("%-30s %-20s %-12s %10.2f\n", e.Key, e.Vendor, e.InvoiceDate, e.AmountDue)
		}
	}

	if len(r.Skipped) > 0 {
		fmt.Printf("\nSkipped (unparseable structured output): %s\n", strings.Join(r.Skipped, ", "))
	}
	return nil
}
