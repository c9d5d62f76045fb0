package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"FlowTagger/internal/classifier"
	"FlowTagger/internal/config"
	"FlowTagger/internal/engine"
	"FlowTagger/internal/lookup"
	"FlowTagger/internal/protocol"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", "", "Path to the YAML config file (optional)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		fmt.Println("Usage: flow-tagger [-config path] <flow_log_file> <lookup_csv_file> [<output_file>]")
		os.Exit(1)
	}
	flowLogPath := args[0]
	lookupPath := args[1]

	// 1. Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	outputPath := cfg.Report.DefaultPath
	if len(args) > 2 {
		outputPath = args[2]
	}

	// 2. Load the lookup table
	lookupFile, err := os.Open(lookupPath)
	if err != nil {
		log.Fatalf("Failed to open lookup file: %v", err)
	}
	table, err := lookup.Load(lookupFile, nil)
	lookupFile.Close()
	if err != nil {
		log.Fatalf("Failed to load lookup table: %v", err)
	}
	log.Printf("Loaded %d lookup rules from '%s'.", table.Len(), lookupPath)

	// 3. Build the classification pipeline
	registry := protocol.NewRegistry(cfg.Protocols.Extra)
	pipeline := engine.New(classifier.New(table, registry), cfg.Pipeline, nil)

	// 4. Run it over the flow log
	flowLogFile, err := os.Open(flowLogPath)
	if err != nil {
		log.Fatalf("Failed to open flow log: %v", err)
	}
	result, err := pipeline.Run(flowLogFile)
	flowLogFile.Close()
	if err != nil {
		log.Fatalf("Failed to process flow log: %v", err)
	}
	log.Printf("Classified %d records (%d malformed lines skipped).",
		result.Aggregator.Total(), result.SkippedLines)

	// 5. Write the report
	outFile, err := os.Create(outputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	if err := result.Aggregator.WriteReport(outFile); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	if err := outFile.Close(); err != nil {
		log.Fatalf("Failed to close output file: %v", err)
	}

	fmt.Printf("Output written to %s\n", outputPath)
}

// loadConfig resolves the runtime configuration. An explicit -config path
// must load; the default path falls back to built-in defaults when absent.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfig(path)
	}
	cfg, err := config.LoadConfig(defaultConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}
