package classifier

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"FlowTagger/internal/lookup"
	"FlowTagger/internal/model"
	"FlowTagger/internal/protocol"
)

// Field positions in a version-2 flow-log record. Records with fewer than
// minFields tokens are unusable because the destination port and protocol
// fields are absent.
const (
	dstPortField  = 6
	protocolField = 7
	minFields     = 8
)

// ErrBlankLine marks a line containing only whitespace. Blank lines are
// skipped silently, without a diagnostic.
var ErrBlankLine = errors.New("blank line")

// MalformedLineError describes a flow-log line that cannot be classified.
type MalformedLineError struct {
	Line   string
	Reason string
	Err    error
}

func (e *MalformedLineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s in line: %s (%v)", e.Reason, e.Line, e.Err)
	}
	return fmt.Sprintf("%s in line: %s", e.Reason, e.Line)
}

func (e *MalformedLineError) Unwrap() error {
	return e.Err
}

// Classifier turns raw flow-log lines into classifications using a read-only
// lookup table and protocol registry. Safe for concurrent use.
type Classifier struct {
	table    *lookup.Table
	registry *protocol.Registry
}

// New creates a classifier over the given lookup table and protocol registry.
func New(table *lookup.Table, registry *protocol.Registry) *Classifier {
	return &Classifier{table: table, registry: registry}
}

// Classify extracts the destination port and protocol from one flow-log line
// and resolves its tag. It returns ErrBlankLine for whitespace-only lines and
// a *MalformedLineError for lines with too few fields or non-integer port or
// protocol tokens. Integer values outside the usual port or protocol ranges
// are accepted as-is, matching the lenient parsing policy of the log format.
func (c *Classifier) Classify(line string) (model.Classification, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return model.Classification{}, ErrBlankLine
	}
	if len(fields) < minFields {
		return model.Classification{}, &MalformedLineError{
			Line:   strings.TrimSpace(line),
			Reason: "too few fields",
		}
	}

	dstPort, err := strconv.Atoi(fields[dstPortField])
	if err != nil {
		return model.Classification{}, &MalformedLineError{
			Line:   strings.TrimSpace(line),
			Reason: "non-numeric dstport",
			Err:    err,
		}
	}
	protoNum, err := strconv.Atoi(fields[protocolField])
	if err != nil {
		return model.Classification{}, &MalformedLineError{
			Line:   strings.TrimSpace(line),
			Reason: "non-numeric protocol",
			Err:    err,
		}
	}

	proto := c.registry.Name(protoNum)
	tag, ok := c.table.Get(dstPort, proto)
	if !ok {
		tag = model.UntaggedTag
	}

	return model.Classification{DstPort: dstPort, Protocol: proto, Tag: tag}, nil
}
