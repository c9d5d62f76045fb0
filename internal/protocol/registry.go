package protocol

import (
	"strconv"
	"strings"
)

// Protocol names for the well-known IANA protocol numbers that appear in VPC
// flow logs. Numbers outside this map are rendered as their decimal form.
var baseNames = map[int]string{
	1:  "icmp",
	6:  "tcp",
	17: "udp",
}

// Registry maps protocol numbers to canonical lowercase names. It is built
// once and read-only afterwards, so it is safe to share across workers.
type Registry struct {
	names map[int]string
}

// NewRegistry returns a registry holding the well-known protocol numbers.
// Entries in extra are merged over the defaults; names are trimmed and
// lowercased so lookups against the rule table stay case-consistent.
func NewRegistry(extra map[int]string) *Registry {
	names := make(map[int]string, len(baseNames)+len(extra))
	for num, name := range baseNames {
		names[num] = name
	}
	for num, name := range extra {
		names[num] = strings.ToLower(strings.TrimSpace(name))
	}
	return &Registry{names: names}
}

// Name returns the lowercase name for a protocol number. Numbers without a
// registered name map to their decimal string representation.
func (r *Registry) Name(num int) string {
	if name, ok := r.names[num]; ok {
		return name
	}
	return strconv.Itoa(num)
}
