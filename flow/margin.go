package flow

import (
	"fmt"
	"strings"
)

// Defaults used when the delegate does not provide a value.
const (
	DefaultMargin      = 8
	DefaultColumnCount = 2
	DefaultItemHeight  = 44
)

// MarginKind selects one of the per-section spacings.
type MarginKind int

const (
	// MarginTop separates a section's start (or its header) from the first
	// item of every column.
	MarginTop MarginKind = iota
	// MarginLeft is the space before the first column.
	MarginLeft
	// MarginBottom separates the tallest column from the section's end (or
	// its footer).
	MarginBottom
	// MarginRight is the space after the last column.
	MarginRight
	// MarginColumn is the horizontal gap between two columns.
	MarginColumn
	// MarginRow is the vertical gap between two items of the same column.
	MarginRow
)

var marginKindNames = [...]string{
	MarginTop:    "top",
	MarginLeft:   "left",
	MarginBottom: "bottom",
	MarginRight:  "right",
	MarginColumn: "column",
	MarginRow:    "row",
}

// MarginKinds lists every margin kind in declaration order.
func MarginKinds() []MarginKind {
	return []MarginKind{MarginTop, MarginLeft, MarginBottom, MarginRight, MarginColumn, MarginRow}
}

// IsValid reports whether k is one of the declared kinds.
func (k MarginKind) IsValid() bool {
	return k >= MarginTop && k <= MarginRow
}

// String implements fmt.Stringer.
func (k MarginKind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("MarginKind(%d)", int(k))
	}
	return marginKindNames[k]
}

// ParseMarginKind converts a name such as "column" into a MarginKind. The
// comparison ignores case and surrounding spaces.
func ParseMarginKind(name string) (MarginKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, n := range marginKindNames {
		if n == name {
			return MarginKind(kind), nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid margin kind, try [%s]", name, strings.Join(marginKindNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (k MarginKind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid margin kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *MarginKind) UnmarshalText(text []byte) error {
	kind, err := ParseMarginKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Margins holds the resolved spacing of one section.
type Margins struct {
	Top, Left, Bottom, Right, Column, Row float64
}

// UniformMargins returns margins with every kind set to m.
func UniformMargins(m float64) Margins {
	return Margins{Top: m, Left: m, Bottom: m, Right: m, Column: m, Row: m}
}

// DefaultMargins returns the margins used when no delegate is present.
func DefaultMargins() Margins {
	return UniformMargins(DefaultMargin)
}

// Get returns the margin of the given kind. It panics on an invalid kind.
func (m Margins) Get(kind MarginKind) float64 {
	switch kind {
	case MarginTop:
		return m.Top
	case MarginLeft:
		return m.Left
	case MarginBottom:
		return m.Bottom
	case MarginRight:
		return m.Right
	case MarginColumn:
		return m.Column
	case MarginRow:
		return m.Row
	}
	panic(fmt.Sprintf("flow: invalid margin kind %d", int(kind)))
}

// Set stores the margin of the given kind. It panics on an invalid kind.
func (m *Margins) Set(kind MarginKind, value float64) {
	switch kind {
	case MarginTop:
		m.Top = value
	case MarginLeft:
		m.Left = value
	case MarginBottom:
		m.Bottom = value
	case MarginRight:
		m.Right = value
	case MarginColumn:
		m.Column = value
	case MarginRow:
		m.Row = value
	default:
		panic(fmt.Sprintf("flow: invalid margin kind %d", int(kind)))
	}
}
