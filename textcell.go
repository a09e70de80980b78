package waterflow

import (
	"github.com/ayn2op/waterflow/flow"
	"github.com/gdamore/tcell/v2"
)

// TextCell is a reusable view showing word wrapped text. It can serve as an
// item, a section header or footer, or a global header or footer of a
// FlowView.
type TextCell struct {
	*Box

	id        string
	text      string
	textStyle tcell.Style
	alignment Alignment

	// height is the preferred height in rows, zero to fit the text.
	height float64

	background         tcell.Color
	selectedBackground tcell.Color
	floatingBackground tcell.Color
	selected           bool
	floating           bool
}

// NewTextCell returns a cell with the given reuse identifier.
func NewTextCell(id string) *TextCell {
	return &TextCell{
		Box:                NewBox(),
		id:                 id,
		textStyle:          tcell.StyleDefault.Foreground(Styles.PrimaryTextColor),
		background:         Styles.PrimitiveBackgroundColor,
		selectedBackground: Styles.SelectedBackgroundColor,
		floatingBackground: Styles.FloatingBackgroundColor,
	}
}

// ReuseIdentifier returns the identifier the cell is pooled under.
func (c *TextCell) ReuseIdentifier() string {
	return c.id
}

// PreferredHeight returns the height set with SetHeight. Without one, the
// cell asks for the rows its text needs at the current width, plus the rows
// taken by borders and padding.
func (c *TextCell) PreferredHeight() float64 {
	if c.height > 0 {
		return c.height
	}
	_, _, width, _ := c.GetInnerRect()
	rows := len(WordWrap(c.text, max(width, 1)))
	if c.borders.Has(BordersTop) || c.title.text != "" {
		rows++
	}
	if c.borders.Has(BordersBottom) || c.footer.text != "" {
		rows++
	}
	return float64(rows + c.padding.top + c.padding.bottom)
}

// SetHeight sets the preferred height in rows.
func (c *TextCell) SetHeight(height float64) *TextCell {
	c.height = height
	return c
}

// SetText sets the text of the cell.
func (c *TextCell) SetText(text string) *TextCell {
	if c.text != text {
		c.text = text
		c.MarkDirty()
	}
	return c
}

// GetText returns the text of the cell.
func (c *TextCell) GetText() string {
	return c.text
}

// SetTextStyle sets the style of the text.
func (c *TextCell) SetTextStyle(style tcell.Style) *TextCell {
	if c.textStyle != style {
		c.textStyle = style
		c.MarkDirty()
	}
	return c
}

// SetAlignment sets the horizontal alignment of the text.
func (c *TextCell) SetAlignment(alignment Alignment) *TextCell {
	if c.alignment != alignment {
		c.alignment = alignment
		c.MarkDirty()
	}
	return c
}

// SetBackgroundColor sets the background shown while the cell is neither
// selected nor floating.
func (c *TextCell) SetBackgroundColor(color tcell.Color) *TextCell {
	c.background = color
	c.Box.SetBackgroundColor(color)
	return c
}

// SetSelected marks the cell as the one under the cursor.
func (c *TextCell) SetSelected(selected bool) {
	if c.selected != selected {
		c.selected = selected
		c.MarkDirty()
	}
}

// IsSelected reports whether the cell is under the cursor.
func (c *TextCell) IsSelected() bool {
	return c.selected
}

// SetFloating marks the cell as a header pinned above the content.
func (c *TextCell) SetFloating(floating bool) {
	if c.floating != floating {
		c.floating = floating
		c.MarkDirty()
	}
}

// Draw draws this primitive onto the screen.
func (c *TextCell) Draw(screen tcell.Screen) {
	background := c.background
	switch {
	case c.selected:
		background = c.selectedBackground
	case c.floating:
		background = c.floatingBackground
	}
	c.Box.SetBackgroundColor(background)
	c.DrawFrame(screen)

	x, y, width, height := c.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	style := c.textStyle.Background(background)
	for row, line := range WordWrap(c.text, width) {
		if row >= height {
			break
		}
		PrintWithStyle(screen, line, x, y+row, width, c.alignment, style)
	}
}

var (
	_ Primitive             = &TextCell{}
	_ flow.HeaderFooterView = &TextCell{}
)
