// Package layers stacks primitives on top of each other, for example an item
// detail view above the flow view it was opened from.
package layers

import (
	"iter"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/ayn2op/waterflow"
)

type layer struct {
	name    string
	item    waterflow.Primitive
	resize  bool
	visible bool
	// overlay dims every layer below it and keeps mouse events from them.
	overlay bool
}

// Layers draws its layers back to front. The front-most visible layer gets
// the focus; the front-most visible overlay dims everything behind it.
type Layers struct {
	*waterflow.Box

	layers   []*layer
	dimStyle tcell.Style

	// setFocus is the delegate received with the focus, kept to move the
	// focus when the front layer changes.
	setFocus func(p waterflow.Primitive)
}

type Option func(*layer)

// WithName names the layer. Adding a layer with a used name replaces the
// old layer.
func WithName(name string) Option {
	return func(l *layer) { l.name = name }
}

// WithResize makes the layer cover the container's inner rect.
func WithResize(resize bool) Option {
	return func(l *layer) { l.resize = resize }
}

// WithVisible sets whether the layer starts visible, which is the default.
func WithVisible(visible bool) Option {
	return func(l *layer) { l.visible = visible }
}

// WithOverlay dims the layers below this one while it is visible.
func WithOverlay() Option {
	return func(l *layer) { l.overlay = true }
}

func New() *Layers {
	return &Layers{
		Box:      waterflow.NewBox(),
		dimStyle: tcell.StyleDefault.Dim(true),
	}
}

// AddLayer puts item in front of every other layer.
func (l *Layers) AddLayer(item waterflow.Primitive, options ...Option) *Layers {
	focused := l.HasFocus()
	added := &layer{item: item, visible: true}
	for _, option := range options {
		option(added)
	}
	if added.name != "" {
		l.layers = slices.DeleteFunc(l.layers, func(old *layer) bool {
			return old.name == added.name
		})
	}
	l.layers = append(l.layers, added)
	l.MarkDirty()
	if focused {
		l.Focus(l.setFocus)
	}
	return l
}

func (l *Layers) HasLayer(name string) bool {
	return l.find(name) != nil
}

// GetLayer returns the primitive of the named layer, nil if there is none.
func (l *Layers) GetLayer(name string) waterflow.Primitive {
	if found := l.find(name); found != nil {
		return found.item
	}
	return nil
}

// GetVisible reports whether the named layer exists and is visible.
func (l *Layers) GetVisible(name string) bool {
	found := l.find(name)
	return found != nil && found.visible
}

// ShowLayer makes the named layer visible. If the container has the focus it
// moves to the new front layer.
func (l *Layers) ShowLayer(name string) *Layers {
	return l.setVisible(name, true)
}

// HideLayer hides the named layer, handing its focus to the layer below.
func (l *Layers) HideLayer(name string) *Layers {
	return l.setVisible(name, false)
}

func (l *Layers) setVisible(name string, visible bool) *Layers {
	found := l.find(name)
	if found == nil || found.visible == visible {
		return l
	}
	focused := l.HasFocus()
	if !visible && found.item.HasFocus() {
		found.item.Blur()
	}
	found.visible = visible
	l.MarkDirty()
	if focused {
		l.Focus(l.setFocus)
	}
	return l
}

// GetFrontLayer returns the front-most visible layer, "" and nil when every
// layer is hidden.
func (l *Layers) GetFrontLayer() (string, waterflow.Primitive) {
	for _, front := range l.visibleFromFront() {
		return front.name, front.item
	}
	return "", nil
}

func (l *Layers) HasFocus() bool {
	for _, v := range l.visibleFromFront() {
		if v.item.HasFocus() {
			return true
		}
	}
	return l.Box.HasFocus()
}

// Focus hands the focus to the front layer. Without a delegate the container
// cannot pass it on and stays unfocused.
func (l *Layers) Focus(delegate func(p waterflow.Primitive)) {
	if delegate == nil {
		return
	}
	l.setFocus = delegate
	for _, front := range l.visibleFromFront() {
		delegate(front.item)
		return
	}
	l.Box.Focus(delegate)
}

func (l *Layers) Draw(screen tcell.Screen) {
	l.DrawFrame(screen)

	overlay := l.overlayIndex()
	dimmed := &dimScreen{Screen: screen, dim: l.dimStyle}
	for index, layer := range l.layers {
		if !layer.visible {
			continue
		}
		if layer.resize {
			layer.item.SetRect(l.GetInnerRect())
		}
		if index < overlay {
			layer.item.Draw(dimmed)
		} else {
			layer.item.Draw(screen)
		}
	}
}

// MouseHandler offers the event to the visible layers front to back, down to
// the front-most overlay. The first layer returning something wins.
func (l *Layers) MouseHandler(action waterflow.MouseAction, event *tcell.EventMouse) (waterflow.Primitive, waterflow.Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}
	for _, v := range l.visibleFromFront() {
		capture, cmd := v.item.MouseHandler(action, event)
		if capture != nil || cmd != nil || v.overlay {
			return capture, cmd
		}
	}
	return nil, nil
}

// InputHandler passes keys to the focused layer.
func (l *Layers) InputHandler(event *tcell.EventKey) waterflow.Command {
	for _, v := range l.visibleFromFront() {
		if v.item.HasFocus() {
			return v.item.InputHandler(event)
		}
	}
	return nil
}

func (l *Layers) find(name string) *layer {
	if i := slices.IndexFunc(l.layers, func(v *layer) bool { return v.name == name }); i >= 0 {
		return l.layers[i]
	}
	return nil
}

// visibleFromFront yields the visible layers with their index, front-most
// first.
func (l *Layers) visibleFromFront() iter.Seq2[int, *layer] {
	return func(yield func(int, *layer) bool) {
		for index, v := range slices.Backward(l.layers) {
			if v.visible && !yield(index, v) {
				return
			}
		}
	}
}

// overlayIndex returns the index of the front-most visible overlay, -1 if
// there is none.
func (l *Layers) overlayIndex() int {
	for index, v := range l.visibleFromFront() {
		if v.overlay {
			return index
		}
	}
	return -1
}

// dimScreen draws everything with the colors and attributes of dim added.
type dimScreen struct {
	tcell.Screen
	dim tcell.Style
}

func (s *dimScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	s.Screen.SetContent(x, y, primary, combining, blend(style, s.dim))
}

// blend replaces the colors of base with those set in top and adds the
// attributes of top.
func blend(base, top tcell.Style) tcell.Style {
	fg, bg, attrs := top.Decompose()
	_, _, baseAttrs := base.Decompose()
	if fg != tcell.ColorDefault {
		base = base.Foreground(fg)
	}
	if bg != tcell.ColorDefault {
		base = base.Background(bg)
	}
	return base.Attributes(baseAttrs | attrs)
}
