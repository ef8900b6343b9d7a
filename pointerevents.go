package touchtree

import (
	"fmt"
	"strings"
)

// PointerEvents controls how a node and its subtree take part in hit testing.
// The zero value is PointerEventsAuto.
type PointerEvents uint8

const (
	PointerEventsAuto    PointerEvents = iota // node and children receive events
	PointerEventsNone                         // neither the node nor its children receive events
	PointerEventsBoxNone                      // node doesn't receive events, its children do
	PointerEventsBoxOnly                      // node receives events, its children don't
)

// permeability is one row of the mode truth table.
type permeability struct {
	self     bool // node can be the terminal hit and joins chains through it
	children bool // children are visited
}

// permeabilityTable is indexed by PointerEvents. Every mode-dependent branch
// in the resolver reads from here.
var permeabilityTable = [...]permeability{
	PointerEventsAuto:    {self: true, children: true},
	PointerEventsNone:    {self: false, children: false},
	PointerEventsBoxNone: {self: false, children: true},
	PointerEventsBoxOnly: {self: true, children: false},
}

// permeability returns the truth-table row for p. Unknown values prune the
// subtree like PointerEventsNone.
func (p PointerEvents) permeability() permeability {
	if int(p) >= len(permeabilityTable) {
		return permeability{}
	}
	return permeabilityTable[p]
}

// Prunes reports whether the mode excludes the whole subtree.
func (p PointerEvents) Prunes() bool {
	r := p.permeability()
	return !r.self && !r.children
}

var pointerEventsNames = [...]string{
	PointerEventsAuto:    "auto",
	PointerEventsNone:    "none",
	PointerEventsBoxNone: "box-none",
	PointerEventsBoxOnly: "box-only",
}

// String returns the canonical lower-case, dash-separated name.
func (p PointerEvents) String() string {
	if int(p) < len(pointerEventsNames) {
		return pointerEventsNames[p]
	}
	return fmt.Sprintf("PointerEvents(%d)", uint8(p))
}

// ParsePointerEvents parses a mode name. Matching is case-insensitive and
// accepts underscores in place of dashes ("BOX_NONE").
func ParsePointerEvents(s string) (PointerEvents, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, name := range pointerEventsNames {
		if key == name {
			return PointerEvents(i), nil
		}
	}
	return PointerEventsNone, fmt.Errorf("touchtree: unknown pointer events mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p PointerEvents) MarshalText() ([]byte, error) {
	if int(p) >= len(pointerEventsNames) {
		return nil, fmt.Errorf("touchtree: invalid pointer events mode %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PointerEvents) UnmarshalText(text []byte) error {
	v, err := ParsePointerEvents(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
