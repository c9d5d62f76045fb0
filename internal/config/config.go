package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PipelineConfig controls how the run pipeline schedules classification work.
// A worker count of 1 (the default) processes the log serially; higher counts
// classify line-chunks in parallel and merge per-worker partial counts.
type PipelineConfig struct {
	NumWorkers      int `yaml:"num_workers"`
	LineChannelSize int `yaml:"line_channel_size"`
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	DefaultPath string `yaml:"default_path"`
}

// ProtocolConfig extends the protocol registry with additional
// number-to-name entries, merged over the built-in well-known set.
type ProtocolConfig struct {
	Extra map[int]string `yaml:"extra"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Pipeline  PipelineConfig `yaml:"pipeline"`
	Report    ReportConfig   `yaml:"report"`
	Protocols ProtocolConfig `yaml:"protocols"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{NumWorkers: 1, LineChannelSize: 1024},
		Report:   ReportConfig{DefaultPath: "output.txt"},
	}
}

// LoadConfig reads the configuration from a YAML file and returns a Config
// struct. Sections absent from the file keep their default values.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	return cfg, nil
}
