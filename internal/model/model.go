package model

// UntaggedTag is the tag assigned to records that match no lookup rule.
const UntaggedTag = "Untagged"

// PortProto is a (destination port, protocol name) pair. It keys both the
// lookup table and the port/protocol combination counts. Protocol is always
// the canonical lowercase name, or the decimal string for unknown numbers.
type PortProto struct {
	Port     int
	Protocol string
}

// Classification is the outcome of classifying a single flow-log record.
// Classifications are transient; they are only folded into the aggregate
// count tables, never retained individually.
type Classification struct {
	DstPort  int
	Protocol string
	Tag      string
}

// Key returns the port/protocol pair of the classification.
func (c Classification) Key() PortProto {
	return PortProto{Port: c.DstPort, Protocol: c.Protocol}
}
