package analyzer

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

// AnthropicAnalyzer implements Analyzer by sending the downloaded PDF
// bytes to the Anthropic API together with the prompt. Useful when no
// Bedrock access is available; results land in the same catalog shape.
type AnthropicAnalyzer struct {
	llm llms.Model
}

// NewAnthropicAnalyzer creates an Anthropic-backed analyzer.
func NewAnthropicAnalyzer(apiKey, model string) (*AnthropicAnalyzer, error) {
	llm, err := anthropic.New(
		anthropic.WithToken(apiKey),
		anthropic.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create anthropic model: %w", err)
	}
	return &AnthropicAnalyzer{llm: llm}, nil
}

// Analyze attaches the staged PDF and runs the prompt. The document
// must have been downloaded before this is called.
func (a *AnthropicAnalyzer) Analyze(ctx context.Context, prompt string, doc Document) (string, error) {
	data, err := os.ReadFile(doc.LocalPath)
	if err != nil {
		return "", fmt.Errorf("read staged invoice %s: %w", doc.LocalPath, err)
	}

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart("application/pdf", data),
				llms.TextPart(prompt),
			},
		},
	}

	resp, err := a.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("analyze %s: %w", doc.Key, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices for %s", doc.Key)
	}
	return resp.Choices[0].Content, nil
}
