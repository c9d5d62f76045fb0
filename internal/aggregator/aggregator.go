package aggregator

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"FlowTagger/internal/model"
)

// Aggregator accumulates per-tag and per-(port, protocol) occurrence counts.
// It is not safe for concurrent use; the pipeline gives each worker its own
// instance and merges the partials afterwards.
type Aggregator struct {
	tagCounts       map[string]uint64
	portProtoCounts map[model.PortProto]uint64
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{
		tagCounts:       make(map[string]uint64),
		portProtoCounts: make(map[model.PortProto]uint64),
	}
}

// Record folds one classification into both count tables.
func (a *Aggregator) Record(c model.Classification) {
	a.tagCounts[c.Tag]++
	a.portProtoCounts[c.Key()]++
}

// Merge adds the counts of other into a. Merging is commutative, so partial
// aggregators can be folded in any order without affecting the result.
func (a *Aggregator) Merge(other *Aggregator) {
	for tag, n := range other.tagCounts {
		a.tagCounts[tag] += n
	}
	for key, n := range other.portProtoCounts {
		a.portProtoCounts[key] += n
	}
}

// Total returns the number of recorded classifications.
func (a *Aggregator) Total() uint64 {
	var n uint64
	for _, c := range a.tagCounts {
		n += c
	}
	return n
}

// TagCount returns the occurrence count for a tag.
func (a *Aggregator) TagCount(tag string) uint64 {
	return a.tagCounts[tag]
}

// PortProtoCount returns the occurrence count for a (port, protocol) pair.
func (a *Aggregator) PortProtoCount(port int, proto string) uint64 {
	return a.portProtoCounts[model.PortProto{Port: port, Protocol: proto}]
}

// WriteReport renders the two report sections to w: tag counts sorted by tag,
// then port/protocol combination counts sorted by port and protocol. Sorting
// is explicit, so identical state always renders identical bytes. Rendering
// does not freeze the aggregator; further records may follow.
func (a *Aggregator) WriteReport(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("Tag Counts:\n")
	bw.WriteString("Tag,Count\n")
	tags := make([]string, 0, len(a.tagCounts))
	for tag := range a.tagCounts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Fprintf(bw, "%s,%d\n", tag, a.tagCounts[tag])
	}

	bw.WriteString("\nPort/Protocol Combination Counts:\n")
	bw.WriteString("Port,Protocol,Count\n")
	keys := make([]model.PortProto, 0, len(a.portProtoCounts))
	for key := range a.portProtoCounts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Port != keys[j].Port {
			return keys[i].Port < keys[j].Port
		}
		return keys[i].Protocol < keys[j].Protocol
	})
	for _, key := range keys {
		fmt.Fprintf(bw, "%d,%s,%d\n", key.Port, key.Protocol, a.portProtoCounts[key])
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
