package waterflow

import (
	"strings"

	"github.com/rivo/uniseg"
)

// grapheme is one user-perceived character of a string.
type grapheme struct {
	cluster string
	// width in screen cells.
	width int
	// lineBreak is uniseg.LineDontBreak, LineCanBreak or LineMustBreak for
	// the position after the cluster.
	lineBreak int
}

// graphemes splits text into grapheme clusters. The end of the text is never
// reported as a break opportunity unless the text ends with a newline.
func graphemes(text string) []grapheme {
	var (
		out   []grapheme
		state = -1
	)
	for len(text) > 0 {
		var (
			cluster    string
			boundaries int
		)
		cluster, text, boundaries, state = uniseg.StepString(text, state)
		g := grapheme{
			cluster:   cluster,
			width:     boundaries >> uniseg.ShiftWidth,
			lineBreak: boundaries & uniseg.MaskLine,
		}
		if text == "" && !uniseg.HasTrailingLineBreakInString(cluster) {
			g.lineBreak = uniseg.LineDontBreak
		}
		out = append(out, g)
	}
	return out
}

// StringWidth returns the number of cells text takes on screen.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// WordWrap splits text into lines no wider than width, breaking at the last
// opportunity before the limit and mid-word when a word does not fit on its
// own. Explicit newlines always break. The result has at least one line
// unless width is not positive.
func WordWrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var (
		lines     []string
		start     int // byte offset where the current line starts
		pos       int // byte offset after the last cluster seen
		lineWidth int

		// The last break opportunity on the current line.
		canBreak   bool
		breakAt    int
		breakWidth int
	)
	for _, g := range graphemes(text) {
		if lineWidth+g.width > width {
			if canBreak {
				lines = append(lines, text[start:breakAt])
				start = breakAt
				lineWidth -= breakWidth
			} else {
				lines = append(lines, text[start:pos])
				start = pos
				lineWidth = 0
			}
			canBreak = false
		}

		lineWidth += g.width
		pos += len(g.cluster)

		switch g.lineBreak {
		case uniseg.LineCanBreak:
			canBreak, breakAt, breakWidth = true, pos, lineWidth
		case uniseg.LineMustBreak:
			lines = append(lines, strings.TrimRight(text[start:pos], "\n\r"))
			start, lineWidth, canBreak = pos, 0, false
		}
	}
	return append(lines, text[start:])
}
