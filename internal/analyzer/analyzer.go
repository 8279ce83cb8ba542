// Package analyzer sends invoice documents to a generative-AI
// document-understanding backend and returns its free-text answer.
package analyzer

import (
	"context"
	"fmt"

	"github.com/aws-samples/genai-invoice-processor/internal/config"
)

// Document identifies one invoice to analyze: its remote S3 location
// and the local copy staged by the batch download step. Backends use
// whichever reference they need.
type Document struct {
	Bucket    string
	Key       string
	LocalPath string
}

// S3URI returns the s3:// reference for the document.
func (d Document) S3URI() string {
	return fmt.Sprintf("s3://%s/%s", d.Bucket, d.Key)
}

// Analyzer runs one prompt against one document.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string, doc Document) (string, error)
}

// New creates an analyzer based on configuration.
func New(ctx context.Context, cfg config.Config) (Analyzer, error) {
	switch cfg.Provider {
	case config.ProviderBedrock:
		a, err := NewBedrockAnalyzer(ctx, cfg.BedrockModelID)
		if err != nil {
			return nil, fmt.Errorf("create bedrock analyzer: %w", err)
		}
		return a, nil

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		a, err := NewAnthropicAnalyzer(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if err != nil {
			return nil, fmt.Errorf("create anthropic analyzer: %w", err)
		}
		return a, nil

	default:
		return nil, fmt.Errorf("unsupported analysis provider: %s", cfg.Provider)
	}
}
