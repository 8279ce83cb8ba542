// Package main provides the entry point for the invoice-processor CLI.
package main

import (
	"fmt"
	"os"

	"github.com/aws-samples/genai-invoice-processor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
