package waterflow

import (
	"math"
	"slices"
	"sort"

	"github.com/ayn2op/waterflow/flow"
	"github.com/ayn2op/waterflow/keybind"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// FlowKeyMap holds the key bindings of a FlowView.
type FlowKeyMap struct {
	Down     keybind.Keybind
	Up       keybind.Keybind
	PageDown keybind.Keybind
	PageUp   keybind.Keybind
	Home     keybind.Keybind
	End      keybind.Keybind
	Next     keybind.Keybind
	Prev     keybind.Keybind
	Select   keybind.Keybind
}

// DefaultFlowKeyMap returns vi style bindings next to the arrow keys.
func DefaultFlowKeyMap() FlowKeyMap {
	return FlowKeyMap{
		Down:     keybind.NewKeybind(keybind.WithKeys("j", "down"), keybind.WithHelp("j/↓", "down")),
		Up:       keybind.NewKeybind(keybind.WithKeys("k", "up"), keybind.WithHelp("k/↑", "up")),
		PageDown: keybind.NewKeybind(keybind.WithKeys("pgdn", "space"), keybind.WithHelp("pgdn", "page down")),
		PageUp:   keybind.NewKeybind(keybind.WithKeys("pgup"), keybind.WithHelp("pgup", "page up")),
		Home:     keybind.NewKeybind(keybind.WithKeys("home", "g"), keybind.WithHelp("g", "top")),
		End:      keybind.NewKeybind(keybind.WithKeys("end", "G"), keybind.WithHelp("G", "bottom")),
		Next:     keybind.NewKeybind(keybind.WithKeys("tab"), keybind.WithHelp("tab", "next item")),
		Prev:     keybind.NewKeybind(keybind.WithKeys("shift+tab"), keybind.WithHelp("shift+tab", "previous item")),
		Select:   keybind.NewKeybind(keybind.WithKeys("enter"), keybind.WithHelp("enter", "select")),
	}
}

// ShortHelp returns the bindings shown in single line help.
func (k FlowKeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Down, k.Up, k.Next, k.Select}
}

// FullHelp returns the bindings grouped into scrolling and item columns.
func (k FlowKeyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{k.Down, k.Up, k.PageDown, k.PageUp},
		{k.Home, k.End},
		{k.Next, k.Prev, k.Select},
	}
}

// selectable is implemented by views which highlight the item under the
// cursor.
type selectable interface {
	SetSelected(selected bool)
}

// floatable is implemented by header views which look different while they
// are pinned above the content.
type floatable interface {
	SetFloating(floating bool)
}

type placement struct {
	frame    flow.Rect
	floating bool
}

// FlowView shows the masonry layout of a flow.Engine in a terminal. It is the
// engine's viewport: the inner rect of the box is the visible area, content
// offsets are counted in rows, and every attached view implementing
// Primitive is drawn at its frame, clipped to the inner rect.
//
// The engine is reloaded whenever the width changes and a visibility pass
// runs on every draw.
type FlowView struct {
	*Box

	engine *flow.Engine

	// offset is the content row shown in the first row of the inner rect.
	offset        int
	contentHeight float64
	// laidOutWidth is the width of the installed layout, -1 before the first
	// reload.
	laidOutWidth float64
	shown        map[flow.View]placement

	cursor    flow.IndexPath
	hasCursor bool
	changed   func(index flow.IndexPath)

	keyMap        FlowKeyMap
	scrollStep    int
	scrollBar     *ScrollBar
	showScrollBar bool
}

// NewFlowView returns a view driving a new engine configured by options.
func NewFlowView(options ...flow.Option) *FlowView {
	f := &FlowView{
		Box:           NewBox(),
		laidOutWidth:  -1,
		shown:         make(map[flow.View]placement),
		keyMap:        DefaultFlowKeyMap(),
		scrollStep:    3,
		scrollBar:     NewScrollBar(),
		showScrollBar: true,
	}
	f.engine = flow.NewEngine(f, options...)
	return f
}

// Engine returns the engine laying out this view. Data sources use it to
// dequeue reusable views.
func (f *FlowView) Engine() *flow.Engine {
	return f.engine
}

func (f *FlowView) logger() *zap.Logger {
	return f.engine.Logger()
}

// SetKeyMap replaces the key bindings.
func (f *FlowView) SetKeyMap(keyMap FlowKeyMap) *FlowView {
	f.keyMap = keyMap
	return f
}

// KeyMap returns the key bindings.
func (f *FlowView) KeyMap() FlowKeyMap {
	return f.keyMap
}

// SetScrollStep sets the number of rows scrolled per mouse wheel step.
func (f *FlowView) SetScrollStep(step int) *FlowView {
	f.scrollStep = max(step, 1)
	return f
}

// SetScrollBarVisible shows or hides the scroll bar in the right-most column
// of the inner rect.
func (f *FlowView) SetScrollBarVisible(visible bool) *FlowView {
	if f.showScrollBar != visible {
		f.showScrollBar = visible
		f.MarkDirty()
	}
	return f
}

// SetChangedFunc sets a handler called when the cursor moves to another item.
func (f *FlowView) SetChangedFunc(handler func(index flow.IndexPath)) *FlowView {
	f.changed = handler
	return f
}

// ContentOffset returns the content row shown at the top of the view.
func (f *FlowView) ContentOffset() float64 {
	return float64(f.offset)
}

// VisibleHeight returns the number of rows of the inner rect.
func (f *FlowView) VisibleHeight() float64 {
	_, _, _, height := f.GetInnerRect()
	return float64(height)
}

// Width returns the number of columns frames are laid out for, the inner
// width without the scroll bar column.
func (f *FlowView) Width() float64 {
	return float64(f.contentWidth())
}

func (f *FlowView) contentWidth() int {
	_, _, width, _ := f.GetInnerRect()
	if f.showScrollBar && width > 0 {
		width--
	}
	return width
}

// SetContentHeight is called by the engine with the height of the layout.
func (f *FlowView) SetContentHeight(height float64) {
	f.contentHeight = height
}

// ContentHeight returns the height of the installed layout in rows.
func (f *FlowView) ContentHeight() float64 {
	return f.contentHeight
}

// Attach is called by the engine to show v at a content frame.
func (f *FlowView) Attach(v flow.View, frame flow.Rect) {
	f.shown[v] = placement{frame: frame}
	f.MarkDirty()
}

// Float is called by the engine to pin v above the content.
func (f *FlowView) Float(v flow.View, frame flow.Rect) {
	f.shown[v] = placement{frame: frame, floating: true}
	f.MarkDirty()
}

// Detach is called by the engine to stop showing v.
func (f *FlowView) Detach(v flow.View) {
	delete(f.shown, v)
	f.MarkDirty()
}

// ReloadData lays the content out again for the current width. The offset is
// clamped to the new content height. After a failed reload the next Draw
// tries again.
func (f *FlowView) ReloadData() error {
	if err := f.engine.ReloadData(); err != nil {
		return err
	}
	f.laidOutWidth = f.Width()
	if f.hasCursor {
		if _, ok := f.engine.Layout().ItemFrame(f.cursor); !ok {
			f.hasCursor = false
		}
	}
	return f.clampOffset()
}

// GetOffset returns the content row shown at the top of the view.
func (f *FlowView) GetOffset() int {
	return f.offset
}

func (f *FlowView) maxOffset() int {
	_, _, _, height := f.GetInnerRect()
	return max(int(math.Ceil(f.contentHeight))-height, 0)
}

func (f *FlowView) clampOffset() error {
	return f.ScrollTo(f.offset)
}

// ScrollTo scrolls to the given content row, clamped to the scrollable
// range, and lets the engine update the displayed views. The offset is left
// unchanged when the engine rejects the scroll.
func (f *FlowView) ScrollTo(row int) error {
	row = min(max(row, 0), f.maxOffset())
	if row == f.offset {
		return nil
	}
	previous := f.offset
	f.offset = row
	if err := f.engine.DidScroll(); err != nil {
		f.offset = previous
		return err
	}
	f.MarkDirty()
	return nil
}

// ScrollBy scrolls by delta rows.
func (f *FlowView) ScrollBy(delta int) error {
	return f.ScrollTo(f.offset + delta)
}

// PageDown scrolls down by the visible height.
func (f *FlowView) PageDown() error {
	_, _, _, height := f.GetInnerRect()
	return f.ScrollBy(max(height, 1))
}

// PageUp scrolls up by the visible height.
func (f *FlowView) PageUp() error {
	_, _, _, height := f.GetInnerRect()
	return f.ScrollBy(-max(height, 1))
}

// Home scrolls to the top.
func (f *FlowView) Home() error {
	return f.ScrollTo(0)
}

// End scrolls to the bottom.
func (f *FlowView) End() error {
	return f.ScrollTo(f.maxOffset())
}

// Cursor returns the item under the cursor.
func (f *FlowView) Cursor() (flow.IndexPath, bool) {
	return f.cursor, f.hasCursor
}

// SetCursor moves the cursor to index and scrolls the item into view.
func (f *FlowView) SetCursor(index flow.IndexPath) error {
	if _, ok := f.engine.Layout().ItemFrame(index); !ok {
		return nil
	}
	moved := !f.hasCursor || f.cursor != index
	f.cursor, f.hasCursor = index, true
	f.MarkDirty()
	if moved && f.changed != nil {
		f.changed(index)
	}
	return f.ScrollToItem(index)
}

// MoveCursor moves the cursor by delta items in section order. Without a
// cursor it starts at the first or the last item.
func (f *FlowView) MoveCursor(delta int) error {
	paths := f.engine.Layout().IndexPaths()
	if len(paths) == 0 {
		return nil
	}
	i := -1
	if f.hasCursor {
		i = slices.Index(paths, f.cursor)
	}
	switch {
	case i < 0 && delta < 0:
		i = len(paths) - 1
	case i < 0:
		i = 0
	default:
		i = min(max(i+delta, 0), len(paths)-1)
	}
	return f.SetCursor(paths[i])
}

// ScrollToItem scrolls the least amount needed to show the item at index.
// Items taller than the view are aligned to the top.
func (f *FlowView) ScrollToItem(index flow.IndexPath) error {
	frame, ok := f.engine.Layout().ItemFrame(index)
	if !ok {
		return nil
	}
	_, _, _, height := f.GetInnerRect()
	top := int(math.Floor(frame.MinY()))
	bottom := int(math.Ceil(frame.MaxY()))
	switch {
	case top < f.offset:
		return f.ScrollTo(top)
	case bottom > f.offset+height:
		return f.ScrollTo(min(bottom-height, top))
	}
	return nil
}

// SelectCursor notifies the delegate that the item under the cursor was
// selected.
func (f *FlowView) SelectCursor() bool {
	if !f.hasCursor {
		return false
	}
	return f.engine.Select(f.cursor)
}

// Draw draws this primitive onto the screen.
func (f *FlowView) Draw(screen tcell.Screen) {
	f.DrawFrame(screen)

	x, y, _, height := f.GetInnerRect()
	width := f.contentWidth()
	if width <= 0 || height <= 0 {
		return
	}

	var err error
	if float64(width) != f.laidOutWidth {
		err = f.ReloadData()
	} else if err = f.engine.LayoutSubviews(); err == nil {
		// The visible height may have grown past the end of the content.
		err = f.clampOffset()
	}
	if err != nil {
		f.logger().Warn("Flow view pass failed", zap.Error(err))
	}

	var cursorView flow.View
	if f.hasCursor {
		cursorView, _ = f.engine.ItemView(f.cursor)
	}
	clipped := newClippedScreen(screen, x, y, width, height)
	for _, v := range f.drawOrder() {
		p, ok := v.(Primitive)
		if !ok {
			continue
		}
		pl := f.shown[v]
		if s, ok := v.(selectable); ok {
			s.SetSelected(v == cursorView)
		}
		if fl, ok := v.(floatable); ok {
			fl.SetFloating(pl.floating)
		}
		p.SetRect(f.cellRect(pl, x, y))
		p.Draw(clipped)
	}

	if f.showScrollBar {
		f.scrollBar.SetRect(x+width, y, 1, height)
		f.scrollBar.SetLengths(int(math.Ceil(f.contentHeight)), height).SetOffset(f.offset)
		f.scrollBar.Draw(screen)
	}
}

// drawOrder returns the shown views top to bottom, floating views last.
func (f *FlowView) drawOrder() []flow.View {
	views := make([]flow.View, 0, len(f.shown))
	for v := range f.shown {
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool {
		a, b := f.shown[views[i]], f.shown[views[j]]
		if a.floating != b.floating {
			return b.floating
		}
		if a.frame.Y != b.frame.Y {
			return a.frame.Y < b.frame.Y
		}
		return a.frame.X < b.frame.X
	})
	return views
}

// cellRect converts a frame into a screen rect. Frames start at the cell
// containing their top-left corner and end before the cell containing their
// bottom-right corner.
func (f *FlowView) cellRect(pl placement, x, y int) (int, int, int, int) {
	top := y
	if !pl.floating {
		top -= f.offset
	}
	left := x + int(math.Floor(pl.frame.MinX()))
	right := x + int(math.Floor(pl.frame.MaxX()))
	upper := top + int(math.Floor(pl.frame.MinY()))
	lower := top + int(math.Floor(pl.frame.MaxY()))
	return left, upper, right - left, lower - upper
}

// floatingAt reports whether a floating view covers the screen cell (x, y).
func (f *FlowView) floatingAt(x, y int) bool {
	ix, iy, _, _ := f.GetInnerRect()
	for _, pl := range f.shown {
		if !pl.floating {
			continue
		}
		left, top, width, height := f.cellRect(pl, ix, iy)
		if x >= left && x < left+width && y >= top && y < top+height {
			return true
		}
	}
	return false
}

// InputHandler handles scrolling and cursor keys.
func (f *FlowView) InputHandler(event *tcell.EventKey) Command {
	var err error
	switch km := f.keyMap; {
	case keybind.Matches(event, km.Down):
		err = f.ScrollBy(1)
	case keybind.Matches(event, km.Up):
		err = f.ScrollBy(-1)
	case keybind.Matches(event, km.PageDown):
		err = f.PageDown()
	case keybind.Matches(event, km.PageUp):
		err = f.PageUp()
	case keybind.Matches(event, km.Home):
		err = f.Home()
	case keybind.Matches(event, km.End):
		err = f.End()
	case keybind.Matches(event, km.Next):
		err = f.MoveCursor(1)
	case keybind.Matches(event, km.Prev):
		err = f.MoveCursor(-1)
	case keybind.Matches(event, km.Select):
		f.SelectCursor()
	default:
		return nil
	}
	if err != nil {
		f.logger().Warn("Scroll rejected", zap.Error(err))
	}
	return RedrawCommand{}
}

// MouseHandler scrolls on wheel events and selects the clicked item.
func (f *FlowView) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if !f.InRect(x, y) {
		return nil, nil
	}

	var err error
	switch action {
	case MouseLeftDown:
		return nil, SetFocusCommand{Target: f}
	case MouseLeftClick:
		ix, iy, _, height := f.GetInnerRect()
		if x < ix || x >= ix+f.contentWidth() || y < iy || y >= iy+height || f.floatingAt(x, y) {
			return nil, nil
		}
		index, ok := f.engine.SelectAt(float64(x-ix), float64(y-iy+f.offset))
		if !ok {
			return nil, nil
		}
		if f.cursor != index || !f.hasCursor {
			f.cursor, f.hasCursor = index, true
			if f.changed != nil {
				f.changed(index)
			}
		}
	case MouseScrollUp:
		err = f.ScrollBy(-f.scrollStep)
	case MouseScrollDown:
		err = f.ScrollBy(f.scrollStep)
	default:
		return nil, nil
	}
	if err != nil {
		f.logger().Warn("Scroll rejected", zap.Error(err))
	}
	return nil, RedrawCommand{}
}

var (
	_ Primitive     = &FlowView{}
	_ flow.Viewport = &FlowView{}
)
