package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provider != ProviderBedrock {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderBedrock)
	}
	if cfg.BedrockModelID != DefaultBedrockModelID {
		t.Errorf("BedrockModelID = %q, want %q", cfg.BedrockModelID, DefaultBedrockModelID)
	}
	if cfg.StagingDir != "invoice" {
		t.Errorf("StagingDir = %q, want %q", cfg.StagingDir, "invoice")
	}
	if cfg.OutputFile != "processed_invoice_output.json" {
		t.Errorf("OutputFile = %q", cfg.OutputFile)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", cfg.Concurrency)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}

	p := cfg.Prompts
	if p.Full == "" || p.Structured == "" || p.Summary == "" {
		t.Error("default prompts must all be non-empty")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("INVOICE_PROVIDER", "anthropic")
	t.Setenv("INVOICE_CONCURRENCY", "12")
	t.Setenv("INVOICE_STAGING_DIR", "/tmp/inv")
	t.Setenv("INVOICE_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Provider != ProviderAnthropic {
		t.Errorf("Provider = %q, want anthropic", cfg.Provider)
	}
	if cfg.Concurrency != 12 {
		t.Errorf("Concurrency = %d, want 12", cfg.Concurrency)
	}
	if cfg.StagingDir != "/tmp/inv" {
		t.Errorf("StagingDir = %q", cfg.StagingDir)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoadInvalidConcurrencyFallsBack(t *testing.T) {
	tests := []string{"abc", "0", "-3"}
	for _, val := range tests {
		t.Run(val, func(t *testing.T) {
			t.Setenv("INVOICE_CONCURRENCY", val)
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Concurrency != 4 {
				t.Errorf("Concurrency = %d, want default 4", cfg.Concurrency)
			}
		})
	}
}

func TestLoadPromptsFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	data := "structured: |\n  custom structured prompt\nsummary: short summary please\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INVOICE_PROMPTS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Prompts.Structured != "custom structured prompt\n" {
		t.Errorf("Structured = %q, want file override", cfg.Prompts.Structured)
	}
	if cfg.Prompts.Summary != "short summary please" {
		t.Errorf("Summary = %q, want file override", cfg.Prompts.Summary)
	}
	// Unset fields keep their defaults.
	if cfg.Prompts.Full != DefaultPrompts().Full {
		t.Errorf("Full = %q, want default", cfg.Prompts.Full)
	}
}

func TestLoadPromptsFileMissing(t *testing.T) {
	t.Setenv("INVOICE_PROMPTS_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Error("Load() with missing prompts file: want error, got nil")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
