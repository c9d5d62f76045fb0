package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"FlowTagger/internal/aggregator"
	"FlowTagger/internal/classifier"
	"FlowTagger/internal/config"
)

const (
	defaultChannelSize = 1024
	maxLineSize        = 1024 * 1024
)

// Pipeline streams flow-log lines through the classifier and folds the
// results into count tables. With more than one worker, each worker records
// into its own aggregator and the partials are merged after the input drains,
// so counts match the serial run exactly.
type Pipeline struct {
	classifier *classifier.Classifier
	numWorkers int
	chanSize   int
	diag       *log.Logger
}

// Result summarizes one pipeline run. Blank lines are skipped silently and
// counted nowhere; SkippedLines counts only malformed lines.
type Result struct {
	Aggregator   *aggregator.Aggregator
	SkippedLines uint64
}

// New creates a pipeline over the given classifier. A nil diag logger falls
// back to the default logger (stderr).
func New(c *classifier.Classifier, cfg config.PipelineConfig, diag *log.Logger) *Pipeline {
	workers := cfg.NumWorkers
	if workers < 1 {
		workers = 1
	}
	size := cfg.LineChannelSize
	if size <= 0 {
		size = defaultChannelSize
	}
	if diag == nil {
		diag = log.Default()
	}
	return &Pipeline{
		classifier: c,
		numWorkers: workers,
		chanSize:   size,
		diag:       diag,
	}
}

// Run reads r line by line until EOF. Per-line failures become diagnostics
// and the run continues; only a read error on r is returned.
func (p *Pipeline) Run(r io.Reader) (*Result, error) {
	if p.numWorkers == 1 {
		return p.runSerial(r)
	}
	return p.runParallel(r)
}

func (p *Pipeline) runSerial(r io.Reader) (*Result, error) {
	res := &Result{Aggregator: aggregator.New()}

	scanner := newLineScanner(r)
	for scanner.Scan() {
		if skipped := p.process(scanner.Text(), res.Aggregator); skipped {
			res.SkippedLines++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read flow log: %w", err)
	}

	return res, nil
}

func (p *Pipeline) runParallel(r io.Reader) (*Result, error) {
	lines := make(chan string, p.chanSize)
	partials := make([]*aggregator.Aggregator, p.numWorkers)
	skippedBy := make([]uint64, p.numWorkers)

	var wg sync.WaitGroup
	wg.Add(p.numWorkers)
	for i := 0; i < p.numWorkers; i++ {
		partials[i] = aggregator.New()
		go func(i int) {
			defer wg.Done()
			for line := range lines {
				if skipped := p.process(line, partials[i]); skipped {
					skippedBy[i]++
				}
			}
		}(i)
	}

	scanner := newLineScanner(r)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
	close(lines)
	wg.Wait()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read flow log: %w", err)
	}

	res := &Result{Aggregator: aggregator.New()}
	for i, partial := range partials {
		res.Aggregator.Merge(partial)
		res.SkippedLines += skippedBy[i]
	}
	return res, nil
}

// process classifies one line into agg. It reports whether the line was
// skipped as malformed; blank lines are dropped silently.
func (p *Pipeline) process(line string, agg *aggregator.Aggregator) bool {
	c, err := p.classifier.Classify(line)
	switch {
	case err == nil:
		agg.Record(c)
		return false
	case errors.Is(err, classifier.ErrBlankLine):
		return false
	default:
		p.diag.Printf("Skipping malformed line: %v", err)
		return true
	}
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}
