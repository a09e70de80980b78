package waterflow

import "github.com/gdamore/tcell/v2"

// Primitive is anything the Application can lay out, draw and route events
// to. FlowView, TextCell and the layers container are primitives; so is
// every view a FlowView attaches.
type Primitive interface {
	// Draw renders the primitive inside its rect.
	Draw(screen tcell.Screen)

	// GetRect returns x, y, width and height in screen cells.
	GetRect() (int, int, int, int)
	SetRect(x, y, width, height int)

	// InputHandler handles a key while the primitive has the focus.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler handles a mouse action. A non-nil primitive returned
	// receives every following mouse action until it returns nil.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command)

	// HasFocus reports whether the primitive or one of its children has the
	// focus.
	HasFocus() bool
	// Focus gives the primitive the focus. Containers pass it on through
	// delegate.
	Focus(delegate func(p Primitive))
	Blur()
}
