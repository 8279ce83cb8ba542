package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aws-samples/genai-invoice-processor/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [key]",
	Short: "List catalog entries or show one record",
	Long: `List all invoice keys in the output catalog, or show the three
extracted fields for a single key.

Examples:
  invoice-processor catalog                    # list all keys
  invoice-processor catalog invoices/a.pdf     # show one record`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if len(args) == 1 {
		return showRecord(cat, args[0])
	}

	keys := cat.Keys()
	if len(keys) == 0 {
		fmt.Println("Catalog is empty. Run 'invoice-processor process' first.")
		return nil
	}

	for _, key := range keys {
		fmt.Println(key)
	}
	fmt.Printf("\n%d invoices in %s\n", len(keys), cfg.OutputFile)
	return nil
}

func showRecord(cat *catalog.Catalog, key string) error {
	rec, ok := cat.Get(key)
	if !ok {
		return fmt.Errorf("no catalog entry for %s", key)
	}

	fmt.Printf("== %s ==\n\n", key)
	fmt.Printf("--- Full extraction ---\n%s\n\n", rec.Full)
	fmt.Printf("--- Structured ---\n%s\n\n", rec.Structured)
	fmt.Printf("--- Summary ---\n%s\n", rec.Summary)
	return nil
}
