package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// 1. Write a config file with every section populated.
	yamlData := `pipeline:
  num_workers: 8
  line_channel_size: 256
report:
  default_path: report.txt
protocols:
  extra:
    47: gre
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlData), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// 2. Load and verify.
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Pipeline.NumWorkers != 8 {
		t.Errorf("NumWorkers = %d, want 8", cfg.Pipeline.NumWorkers)
	}
	if cfg.Pipeline.LineChannelSize != 256 {
		t.Errorf("LineChannelSize = %d, want 256", cfg.Pipeline.LineChannelSize)
	}
	if cfg.Report.DefaultPath != "report.txt" {
		t.Errorf("DefaultPath = %q, want report.txt", cfg.Report.DefaultPath)
	}
	if got := cfg.Protocols.Extra[47]; got != "gre" {
		t.Errorf("Extra[47] = %q, want gre", got)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	yamlData := "pipeline:\n  num_workers: 2\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlData), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Pipeline.NumWorkers != 2 {
		t.Errorf("NumWorkers = %d, want 2", cfg.Pipeline.NumWorkers)
	}
	if cfg.Report.DefaultPath != "output.txt" {
		t.Errorf("DefaultPath = %q, want the output.txt default", cfg.Report.DefaultPath)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Pipeline.NumWorkers != 1 {
		t.Errorf("Default NumWorkers = %d, want 1", cfg.Pipeline.NumWorkers)
	}
	if cfg.Report.DefaultPath != "output.txt" {
		t.Errorf("Default DefaultPath = %q, want output.txt", cfg.Report.DefaultPath)
	}
}
