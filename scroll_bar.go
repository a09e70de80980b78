package waterflow

import "github.com/gdamore/tcell/v2"

// eighths is the resolution of the thumb: one cell is split into eight
// steps, matching the block element glyphs.
const eighths = 8

var (
	// thumbLower[n-1] fills the lower n eighths of a cell.
	thumbLower = [eighths]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	// thumbUpper[n-1] approximates the upper n eighths of a cell.
	thumbUpper = [eighths]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"}
)

// ScrollBar shows where the visible rows of a FlowView sit within its
// content. It draws nothing when everything fits.
type ScrollBar struct {
	*Box

	content, visible, offset int

	trackGlyph string
	trackStyle tcell.Style
	thumbStyle tcell.Style
}

func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:        NewBox(),
		trackGlyph: " ",
		trackStyle: tcell.StyleDefault.Dim(true),
		thumbStyle: tcell.StyleDefault.Foreground(Styles.GraphicsColor),
	}
}

// SetLengths sets the content height and the number of visible rows.
func (s *ScrollBar) SetLengths(content, visible int) *ScrollBar {
	s.content = max(content, 0)
	s.visible = max(visible, 0)
	return s
}

// SetOffset sets the first visible content row.
func (s *ScrollBar) SetOffset(offset int) *ScrollBar {
	s.offset = max(offset, 0)
	return s
}

// thumb is the thumb position on a track, in eighths of a cell.
type thumb struct {
	start, length int
}

// thumbFor places the thumb on a track of cells rows. The thumb is at least
// one cell long and reaches the end of the track at the last offset.
func thumbFor(cells, content, visible, offset int) thumb {
	track := cells * eighths
	if track == 0 {
		return thumb{}
	}
	content = max(content, 1)
	visible = min(max(visible, 1), content)
	last := content - visible
	if last == 0 {
		return thumb{length: track}
	}
	offset = min(max(offset, 0), last)

	length := min(max(track*visible/content, eighths), track)
	return thumb{
		start:  (track - length) * offset / last,
		length: length,
	}
}

// fill returns where the thumb starts within cell and how many eighths of
// the cell it covers.
func (t thumb) fill(cell int) (start, length int) {
	cellStart := cell * eighths
	from := max(t.start, cellStart)
	to := min(t.start+t.length, cellStart+eighths)
	if to <= from {
		return 0, 0
	}
	return from - cellStart, to - from
}

func (s *ScrollBar) glyph(start, length int) (string, tcell.Style) {
	switch {
	case length <= 0:
		return s.trackGlyph, s.trackStyle
	case length >= eighths:
		return thumbLower[eighths-1], s.thumbStyle
	case start == 0:
		return thumbUpper[length-1], s.thumbStyle
	default:
		return thumbLower[length-1], s.thumbStyle
	}
}

func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawFrame(screen)

	x, y, _, height := s.GetInnerRect()
	if height <= 0 || s.content <= s.visible {
		return
	}
	t := thumbFor(height, s.content, s.visible, s.offset)
	for cell := range height {
		glyph, style := s.glyph(t.fill(cell))
		put(screen, x, y+cell, glyph, style)
	}
}
