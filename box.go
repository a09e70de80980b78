package waterflow

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// label is a line of text drawn into a border row.
type label struct {
	text      string
	style     tcell.Style
	alignment Alignment
}

// Box is a rectangle with a background, optional borders, a title in the top
// row and a footer in the bottom row. Every primitive in this package embeds
// one and draws its content into the inner rect.
type Box struct {
	x, y, width, height int

	// inner caches GetInnerRect. valid is false after anything changing it.
	inner struct {
		x, y, width, height int
		valid               bool
	}
	padding struct {
		top, bottom, left, right int
	}

	backgroundColor tcell.Color

	borders     Borders
	borderSet   BorderSet
	borderStyle tcell.Style

	title, footer label

	hasFocus bool

	// dirty is set by every setter and cleared by whoever consumed it.
	dirty atomic.Bool
}

// NewBox returns a box without borders.
func NewBox() *Box {
	titleStyle := tcell.StyleDefault.Foreground(Styles.TitleColor)
	b := &Box{
		width:           15,
		height:          10,
		backgroundColor: Styles.PrimitiveBackgroundColor,
		borderSet:       BorderSetPlain(),
		borderStyle:     tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		title:           label{style: titleStyle, alignment: AlignmentCenter},
		footer:          label{style: titleStyle, alignment: AlignmentCenter},
	}
	b.dirty.Store(true)
	return b
}

// changed invalidates the inner rect and marks the box dirty.
func (b *Box) changed() {
	b.inner.valid = false
	b.MarkDirty()
}

// SetBorderPadding sets the space between the borders and the inner rect.
func (b *Box) SetBorderPadding(top, bottom, left, right int) *Box {
	p := &b.padding
	if p.top != top || p.bottom != bottom || p.left != left || p.right != right {
		p.top, p.bottom, p.left, p.right = top, bottom, left, right
		b.changed()
	}
	return b
}

// GetRect returns x, y, width and height.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// SetRect moves the box. FlowView calls it for every view it displays, the
// Application for the root on every frame.
func (b *Box) SetRect(x, y, width, height int) {
	if b.x != x || b.y != y || b.width != width || b.height != height {
		b.x, b.y, b.width, b.height = x, y, width, height
		b.changed()
	}
}

// GetInnerRect returns the rect left for content once borders, title, footer
// and padding are taken away. Width and height are never negative.
func (b *Box) GetInnerRect() (int, int, int, int) {
	if b.inner.valid {
		return b.inner.x, b.inner.y, b.inner.width, b.inner.height
	}

	x, y, width, height := b.x, b.y, b.width, b.height
	if b.title.text != "" || b.borders.Has(BordersTop) {
		y++
		height--
	}
	if b.footer.text != "" || b.borders.Has(BordersBottom) {
		height--
	}
	if b.borders.Has(BordersLeft) {
		x++
		width--
	}
	if b.borders.Has(BordersRight) {
		width--
	}

	x += b.padding.left
	y += b.padding.top
	width = max(0, width-b.padding.left-b.padding.right)
	height = max(0, height-b.padding.top-b.padding.bottom)
	return x, y, width, height
}

// InRect reports whether the cell x, y lies inside the box.
func (b *Box) InRect(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

func (b *Box) IsDirty() bool {
	return b.dirty.Load()
}

func (b *Box) MarkDirty() {
	b.dirty.Store(true)
}

func (b *Box) MarkClean() {
	b.dirty.Store(false)
}

// InputHandler ignores keys.
func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

// MouseHandler focuses the box when the left button goes down inside it.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

// SetBackgroundColor sets the color the box is filled with. Borders share it.
func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	if b.backgroundColor != color {
		b.backgroundColor = color
		b.borderStyle = b.borderStyle.Background(color)
		b.MarkDirty()
	}
	return b
}

// SetBorders sets which sides get a border.
func (b *Box) SetBorders(borders Borders) *Box {
	if b.borders != borders {
		b.borders = borders
		b.changed()
	}
	return b
}

// SetBorderSet sets the runes borders are drawn with.
func (b *Box) SetBorderSet(borderSet BorderSet) *Box {
	if b.borderSet != borderSet {
		b.borderSet = borderSet
		b.MarkDirty()
	}
	return b
}

// SetTitle sets the text centered in the top row. A title takes the top row
// even without a top border.
func (b *Box) SetTitle(title string) *Box {
	if b.title.text != title {
		b.title.text = title
		b.changed()
	}
	return b
}

// SetFooter sets the text centered in the bottom row.
func (b *Box) SetFooter(footer string) *Box {
	if b.footer.text != footer {
		b.footer.text = footer
		b.changed()
	}
	return b
}

// Draw fills the box and draws its frame.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawFrame(screen)
}

// DrawFrame fills the background and draws borders, title and footer. Types
// embedding Box call it before drawing into the inner rect.
func (b *Box) DrawFrame(screen tcell.Screen) {
	if b.width <= 0 || b.height <= 0 {
		return
	}

	background := tcell.StyleDefault.Background(b.backgroundColor)
	for y := b.y; y < b.y+b.height; y++ {
		for x := b.x; x < b.x+b.width; x++ {
			screen.SetContent(x, y, ' ', nil, background)
		}
	}

	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		b.drawBorders(screen)
	}
	if b.width >= 4 {
		b.drawLabel(screen, b.title, b.y)
		b.drawLabel(screen, b.footer, b.y+b.height-1)
	}

	b.inner.valid = false
	b.inner.x, b.inner.y, b.inner.width, b.inner.height = b.GetInnerRect()
	b.inner.valid = true
}

func (b *Box) drawBorders(screen tcell.Screen) {
	left, top := b.x, b.y
	right, bottom := b.x+b.width-1, b.y+b.height-1
	set := b.borderSet

	edges := []struct {
		side       Borders
		glyph      string
		horizontal bool
		at         int
	}{
		{BordersTop, set.Top, true, top},
		{BordersBottom, set.Bottom, true, bottom},
		{BordersLeft, set.Left, false, left},
		{BordersRight, set.Right, false, right},
	}
	for _, e := range edges {
		if !b.borders.Has(e.side) {
			continue
		}
		if e.horizontal {
			for x := left + 1; x < right; x++ {
				put(screen, x, e.at, e.glyph, b.borderStyle)
			}
		} else {
			for y := top + 1; y < bottom; y++ {
				put(screen, e.at, y, e.glyph, b.borderStyle)
			}
		}
	}

	corners := []struct {
		sides Borders
		glyph string
		x, y  int
	}{
		{BordersTop | BordersLeft, set.TopLeft, left, top},
		{BordersTop | BordersRight, set.TopRight, right, top},
		{BordersBottom | BordersLeft, set.BottomLeft, left, bottom},
		{BordersBottom | BordersRight, set.BottomRight, right, bottom},
	}
	for _, c := range corners {
		if b.borders.Has(c.sides) {
			put(screen, c.x, c.y, c.glyph, b.borderStyle)
		}
	}
}

// drawLabel prints l into row y between the corners, ending with an ellipsis
// when it is cut.
func (b *Box) drawLabel(screen tcell.Screen, l label, y int) {
	if l.text == "" {
		return
	}
	start, end, _ := printWithStyle(screen, l.text, b.x+1, y, b.width-2, l.alignment, l.style, true)
	printed := end - start
	if printed <= 0 || printed >= len(l.text) {
		return
	}
	ellipsisX := b.x + b.width - 2
	if l.alignment == AlignmentRight {
		ellipsisX = b.x + 1
	}
	fg, _, _ := styleAt(screen, ellipsisX, y).Decompose()
	Print(screen, SemigraphicsHorizontalEllipsis, ellipsisX, y, 1, AlignmentLeft, fg)
}

// Focus gives the box the focus. A box has no children to delegate to.
func (b *Box) Focus(delegate func(p Primitive)) {
	if !b.hasFocus {
		b.hasFocus = true
		b.MarkDirty()
	}
}

func (b *Box) Blur() {
	if b.hasFocus {
		b.hasFocus = false
		b.MarkDirty()
	}
}

func (b *Box) HasFocus() bool {
	return b.hasFocus
}
