// Package main provides the entry point for the invoice review TUI.
package main

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/aws-samples/genai-invoice-processor/internal/catalog"
	"github.com/aws-samples/genai-invoice-processor/internal/config"
	"github.com/aws-samples/genai-invoice-processor/internal/review"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		os.Exit(1)
	}

	cat, err := catalog.Load(cfg.OutputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load catalog: %v\n", err)
		os.Exit(1)
	}
	if cat.Len() == 0 {
		fmt.Println("Catalog is empty. Run 'invoice-processor process' first.")
		return
	}

	entries := review.Entries(cat, cfg.StagingDir)
	p := tea.NewProgram(review.NewModel(entries))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
