package flow

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// SectionInput is the resolved description of one section.
type SectionInput struct {
	// Columns is the number of columns, at least one.
	Columns int
	// Margins are the section's resolved spacings.
	Margins Margins
	// Heights holds one height per item, in item order.
	Heights []float64
	// Header is the height of the section header, nil without a header.
	Header *float64
	// Footer is the height of the section footer, nil without a footer.
	Footer *float64
}

// LayoutInput is everything Compute needs to place every frame.
type LayoutInput struct {
	// Width is the viewport width all frames are fitted into.
	Width float64
	// Inset is applied to the left and right of every section.
	Inset Insets
	// Header is the height of the global header placed above section 0, nil
	// without a global header.
	Header *float64
	// Footer is the height of the global footer placed after the last
	// section, nil without a global footer.
	Footer *float64
	// Sections are laid out in order.
	Sections []SectionInput
}

// SectionLayout is the computed placement of one section.
type SectionLayout struct {
	// Header is the header frame, nil when the section has none.
	Header *Rect
	// Items holds one frame per item, indexed by item.
	Items []Rect
	// Footer is the footer frame, nil when the section has none.
	Footer *Rect
	// Top is where the section starts: the header's top edge, or the first
	// column start when there is no header.
	Top float64
	// ContentBottom is the bottom of the tallest column plus the bottom
	// margin, which is also where the footer starts.
	ContentBottom float64
	// End is where the next section starts.
	End float64
	// MinY and MaxY bound every frame of the section. Negative margins can
	// push items above Top or below End.
	MinY, MaxY float64
	// Columns is the number of columns the items were distributed across.
	Columns int
	// ItemWidth is the width shared by every item of the section.
	ItemWidth float64
}

// Layout is the result of Compute.
type Layout struct {
	// Width is the viewport width the layout was computed for.
	Width float64
	// Header is the global header frame, nil without a global header.
	Header *Rect
	// Footer is the global footer frame, nil without a global footer.
	Footer *Rect
	// Sections holds one entry per section.
	Sections []SectionLayout
	// ContentHeight is the total scrollable height.
	ContentHeight float64
}

// ItemWidthFor returns the width of every item of a section with the given
// number of columns.
func ItemWidthFor(width float64, columns int, margins Margins, inset Insets) float64 {
	gaps := float64(columns-1) * margins.Column
	return (width - margins.Left - margins.Right - inset.Left - inset.Right - gaps) / float64(columns)
}

// Compute places every header, item and footer of in. Sections are processed
// in order and each item goes into the column whose bottom is currently the
// smallest; among equal bottoms the lowest column index wins.
//
// Invalid input (fewer than one column, negative or non-finite heights,
// non-finite margins) yields an error describing every problem found and no
// layout. Negative margins are accepted and pull frames together.
func Compute(in LayoutInput) (*Layout, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	l := &Layout{
		Width:    in.Width,
		Sections: make([]SectionLayout, len(in.Sections)),
	}

	var cursor float64
	if in.Header != nil {
		l.Header = &Rect{X: 0, Y: 0, Width: in.Width, Height: *in.Header}
		cursor = *in.Header
	}

	bottoms := make([]float64, 0, 8)
	for s, section := range in.Sections {
		out := &l.Sections[s]
		out.Top = cursor
		out.Columns = section.Columns
		out.ItemWidth = ItemWidthFor(in.Width, section.Columns, section.Margins, in.Inset)

		if section.Header != nil {
			out.Header = &Rect{X: 0, Y: cursor, Width: in.Width, Height: *section.Header}
			cursor = out.Header.MaxY()
		}

		// One bottom per column, all starting where the items start.
		start := cursor
		bottoms = bottoms[:0]
		for range section.Columns {
			bottoms = append(bottoms, start)
		}

		m := section.Margins
		out.Items = make([]Rect, len(section.Heights))
		for i, height := range section.Heights {
			column := shortestColumn(bottoms)
			bottom := bottoms[column]

			y := bottom + m.Row
			if bottom == start {
				y = bottom + m.Top
			}
			frame := Rect{
				X:      in.Inset.Left + m.Left + float64(column)*(m.Column+out.ItemWidth),
				Y:      y,
				Width:  out.ItemWidth,
				Height: height,
			}
			out.Items[i] = frame
			bottoms[column] = frame.MaxY()
		}

		cursor = bottoms[0]
		for _, b := range bottoms[1:] {
			cursor = max(cursor, b)
		}
		cursor += m.Bottom
		out.ContentBottom = cursor

		if section.Footer != nil {
			out.Footer = &Rect{X: 0, Y: cursor, Width: in.Width, Height: *section.Footer}
			cursor = out.Footer.MaxY()
		}
		out.End = cursor
		out.MinY, out.MaxY = out.extent()
	}

	if in.Footer != nil {
		l.Footer = &Rect{X: 0, Y: cursor, Width: in.Width, Height: *in.Footer}
		cursor = l.Footer.MaxY()
	}
	l.ContentHeight = cursor

	return l, nil
}

// extent returns the smallest and largest y covered by the section, never
// narrower than [Top, End).
func (s *SectionLayout) extent() (minY, maxY float64) {
	minY, maxY = s.Top, s.End
	for _, frame := range s.Items {
		minY = min(minY, frame.MinY())
		maxY = max(maxY, frame.MaxY())
	}
	for _, frame := range []*Rect{s.Header, s.Footer} {
		if frame != nil {
			minY = min(minY, frame.MinY())
			maxY = max(maxY, frame.MaxY())
		}
	}
	return minY, maxY
}

// shortestColumn returns the index of the strictly smallest bottom. Ties go
// to the lowest index.
func shortestColumn(bottoms []float64) int {
	column := 0
	for i := 1; i < len(bottoms); i++ {
		if bottoms[i] < bottoms[column] {
			column = i
		}
	}
	return column
}

func (in LayoutInput) validate() (err error) {
	if !finite(in.Width) || in.Width < 0 {
		err = multierr.Append(err, fmt.Errorf("width %v is not a non-negative number", in.Width))
	}
	for _, side := range []float64{in.Inset.Top, in.Inset.Left, in.Inset.Bottom, in.Inset.Right} {
		if !finite(side) {
			err = multierr.Append(err, fmt.Errorf("inset %+v is not finite", in.Inset))
			break
		}
	}
	if in.Header != nil && !validHeight(*in.Header) {
		err = multierr.Append(err, fmt.Errorf("global header height %v is invalid", *in.Header))
	}
	if in.Footer != nil && !validHeight(*in.Footer) {
		err = multierr.Append(err, fmt.Errorf("global footer height %v is invalid", *in.Footer))
	}
	for s, section := range in.Sections {
		if section.Columns < 1 {
			err = multierr.Append(err, fmt.Errorf("section %d: column count %d is less than 1", s, section.Columns))
		}
		for _, kind := range MarginKinds() {
			if v := section.Margins.Get(kind); !finite(v) {
				err = multierr.Append(err, fmt.Errorf("section %d: %s margin %v is not finite", s, kind, v))
			}
		}
		for i, h := range section.Heights {
			if !validHeight(h) {
				err = multierr.Append(err, fmt.Errorf("section %d: item %d height %v is invalid", s, i, h))
			}
		}
		if section.Header != nil && !validHeight(*section.Header) {
			err = multierr.Append(err, fmt.Errorf("section %d: header height %v is invalid", s, *section.Header))
		}
		if section.Footer != nil && !validHeight(*section.Footer) {
			err = multierr.Append(err, fmt.Errorf("section %d: footer height %v is invalid", s, *section.Footer))
		}
	}
	return err
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validHeight(v float64) bool {
	return finite(v) && v >= 0
}

// NumberOfSections returns the number of laid out sections.
func (l *Layout) NumberOfSections() int {
	if l == nil {
		return 0
	}
	return len(l.Sections)
}

// ItemFrame returns the frame of the item at index.
func (l *Layout) ItemFrame(index IndexPath) (Rect, bool) {
	if l == nil || index.Section < 0 || index.Section >= len(l.Sections) {
		return Rect{}, false
	}
	items := l.Sections[index.Section].Items
	if index.Item < 0 || index.Item >= len(items) {
		return Rect{}, false
	}
	return items[index.Item], true
}

// ItemWidth returns the item width of a section. Asking for a section the
// layout does not have is a programming error and panics.
func (l *Layout) ItemWidth(section int) float64 {
	if section < 0 || section >= l.NumberOfSections() {
		panic(fmt.Sprintf("flow: item width requested for section %d, layout has %d sections", section, l.NumberOfSections()))
	}
	return l.Sections[section].ItemWidth
}

// SectionAt returns the section whose [Top, End) range contains y, or -1.
func (l *Layout) SectionAt(y float64) int {
	if l == nil {
		return -1
	}
	for s := range l.Sections {
		if y >= l.Sections[s].Top && y < l.Sections[s].End {
			return s
		}
	}
	return -1
}

// IndexPaths returns every item index in layout order.
func (l *Layout) IndexPaths() []IndexPath {
	if l == nil {
		return nil
	}
	var paths []IndexPath
	for s := range l.Sections {
		for i := range l.Sections[s].Items {
			paths = append(paths, IndexPath{Section: s, Item: i})
		}
	}
	return paths
}
