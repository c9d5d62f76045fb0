package lookup

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"FlowTagger/internal/model"
)

// Table maps (destination port, protocol name) to a tag. It is populated by
// Load and read-only afterwards, so it is safe to share across workers.
type Table struct {
	rules map[model.PortProto]string
}

// rule is one typed lookup row, validated at parse time.
type rule struct {
	Port     int
	Protocol string
	Tag      string
}

// Load reads tagging rules from CSV data. The header row must name the
// dstport, protocol and tag columns; column order is free and header keys are
// trimmed. A malformed row (missing field, non-numeric or negative port, bad
// quoting) is skipped with a diagnostic on diag and never aborts the load.
// A later row with the same (dstport, protocol) silently overwrites the
// earlier one. Only a reader-level failure returns an error.
func Load(r io.Reader, diag *log.Logger) (*Table, error) {
	if diag == nil {
		diag = log.Default()
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("lookup table has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	t := &Table{rules: make(map[model.PortProto]string)}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				diag.Printf("Skipping lookup row due to error: %v", err)
				continue
			}
			return nil, fmt.Errorf("failed to read lookup table: %w", err)
		}

		parsed, err := parseRule(row, cols)
		if err != nil {
			diag.Printf("Skipping lookup row due to error: %v", err)
			continue
		}
		t.rules[model.PortProto{Port: parsed.Port, Protocol: parsed.Protocol}] = parsed.Tag
	}

	return t, nil
}

// parseRule converts one raw CSV row into a typed rule.
func parseRule(row []string, cols map[string]int) (rule, error) {
	field := func(name string) (string, error) {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return "", fmt.Errorf("row has no %q field", name)
		}
		return strings.TrimSpace(row[i]), nil
	}

	portStr, err := field("dstport")
	if err != nil {
		return rule{}, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return rule{}, fmt.Errorf("invalid dstport %q: %w", portStr, err)
	}
	if port < 0 {
		return rule{}, fmt.Errorf("invalid dstport %d: must be non-negative", port)
	}

	proto, err := field("protocol")
	if err != nil {
		return rule{}, err
	}

	tag, err := field("tag")
	if err != nil {
		return rule{}, err
	}

	return rule{Port: port, Protocol: strings.ToLower(proto), Tag: tag}, nil
}

// Get returns the tag for a (port, protocol) pair.
func (t *Table) Get(port int, proto string) (string, bool) {
	tag, ok := t.rules[model.PortProto{Port: port, Protocol: proto}]
	return tag, ok
}

// Len returns the number of loaded rules.
func (t *Table) Len() int {
	return len(t.rules)
}
