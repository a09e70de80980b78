package waterflow

import (
	"github.com/gdamore/tcell/v2"
)

type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// Print writes text into row y between x and x+maxWidth in the given color,
// keeping the background already on screen. It returns the number of bytes
// and cells printed.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, color tcell.Color) (int, int) {
	start, end, width := printWithStyle(screen, text, x, y, maxWidth, alignment, tcell.StyleDefault.Foreground(color), true)
	return end - start, width
}

// PrintWithStyle is Print with a complete style, background included.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	start, end, width := printWithStyle(screen, text, x, y, maxWidth, alignment, style, false)
	return end - start, width
}

// printWithStyle returns the byte range of text it printed and the cells it
// took. Right and centered text that does not fit loses clusters on the left;
// everything is cut on the right at maxWidth. With keepBackground the style's
// background is replaced by whatever each cell had before.
func printWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style, keepBackground bool) (start, end, printed int) {
	screenWidth, screenHeight := screen.Size()
	if maxWidth <= 0 || text == "" || y < 0 || y >= screenHeight {
		return 0, 0, 0
	}

	clusters := graphemes(text)
	total := 0
	for _, g := range clusters {
		total += g.width
	}

	// Reduce right and center alignment to printing left aligned from a
	// shifted x.
	first := 0
	drop := func() {
		total -= clusters[first].width
		start += len(clusters[first].cluster)
		first++
	}
	switch alignment {
	case AlignmentRight:
		for first < len(clusters) && total > maxWidth {
			drop()
		}
		x, maxWidth = x+maxWidth-total, total
	case AlignmentCenter:
		for excess := (total - maxWidth) / 2; first < len(clusters) && excess > 0; {
			excess -= clusters[first].width
			drop()
		}
		if total < maxWidth {
			x, maxWidth = x+maxWidth/2-total/2, total
		}
	}

	end = start
	right := min(x+maxWidth, screenWidth)
	for _, g := range clusters[first:] {
		if x+g.width > right {
			break
		}
		if g.width > 0 {
			cellStyle := style
			if keepBackground {
				_, background, _ := styleAt(screen, x, y).Decompose()
				cellStyle = style.Background(background)
			}
			// Wide clusters cover the cells to their right.
			for i := g.width - 1; i > 0; i-- {
				screen.SetContent(x+i, y, ' ', nil, cellStyle)
			}
			put(screen, x, y, g.cluster, cellStyle)
		}
		x += g.width
		end += len(g.cluster)
		printed += g.width
	}
	return start, end, printed
}
