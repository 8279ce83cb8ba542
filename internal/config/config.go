// Package config loads process configuration from the environment and
// an optional prompts file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider identifies the document analysis backend.
type Provider string

const (
	// ProviderBedrock uses Amazon Bedrock retrieve-and-generate against
	// the document's S3 location.
	ProviderBedrock Provider = "bedrock"

	// ProviderAnthropic uses the Anthropic API with the downloaded PDF
	// bytes attached to the prompt.
	ProviderAnthropic Provider = "anthropic"
)

// DefaultBedrockModelID matches the model the original AWS sample used.
const DefaultBedrockModelID = "anthropic.claude-3-sonnet-20240229-v1:0"

// Prompts holds the three fixed analysis prompts sent per invoice.
type Prompts struct {
	// Full asks for a raw key/value extraction of everything on the invoice.
	Full string `yaml:"full"`
	// Structured asks for a fixed-shape JSON object. The response is kept
	// as an opaque string in the catalog; only the report command parses it.
	Structured string `yaml:"structured"`
	// Summary asks for a short free-text summary.
	Summary string `yaml:"summary"`
}

// Config holds all configuration values.
type Config struct {
	// Analysis backend
	Provider        Provider
	BedrockModelID  string
	AnthropicAPIKey string
	AnthropicModel  string

	// Batch processing
	StagingDir  string
	OutputFile  string
	Concurrency int

	// Prompts (defaults, optionally overridden by PromptsFile)
	PromptsFile string
	Prompts     Prompts

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables and, if set,
// merges prompt overrides from the prompts file.
func Load() (Config, error) {
	cfg := Config{
		Provider:        Provider(getEnv("INVOICE_PROVIDER", string(ProviderBedrock))),
		BedrockModelID:  getEnv("INVOICE_BEDROCK_MODEL_ID", DefaultBedrockModelID),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("INVOICE_ANTHROPIC_MODEL", "claude-3-sonnet-20240229"),

		StagingDir:  getEnv("INVOICE_STAGING_DIR", "invoice"),
		OutputFile:  getEnv("INVOICE_OUTPUT_FILE", "processed_invoice_output.json"),
		Concurrency: getEnvInt("INVOICE_CONCURRENCY", 4),

		PromptsFile: getEnv("INVOICE_PROMPTS_FILE", ""),
		Prompts:     DefaultPrompts(),

		LogFile:  getEnv("INVOICE_LOG_FILE", "invoice-processor.log"),
		LogLevel: parseLogLevel(getEnv("INVOICE_LOG_LEVEL", "INFO")),
	}

	if cfg.PromptsFile != "" {
		if err := cfg.loadPromptsFile(); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// loadPromptsFile merges non-empty prompt fields from the YAML file over
// the defaults.
func (c *Config) loadPromptsFile() error {
	data, err := os.ReadFile(c.PromptsFile)
	if err != nil {
		return fmt.Errorf("read prompts file: %w", err)
	}

	var overrides Prompts
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parse prompts file %s: %w", c.PromptsFile, err)
	}

	if overrides.Full != "" {
		c.Prompts.Full = overrides.Full
	}
	if overrides.Structured != "" {
		c.Prompts.Structured = overrides.Structured
	}
	if overrides.Summary != "" {
		c.Prompts.Summary = overrides.Summary
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
