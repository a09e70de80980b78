package waterflow

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

const (
	eventQueueSize  = 100
	updateQueueSize = 100

	// Resizes arriving closer together than this get one trailing redraw.
	resizePause = 50 * time.Millisecond
)

// MouseAction is what the mouse did, derived from consecutive tcell mouse
// events.
type MouseAction int16

const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	// MouseLeftClick follows MouseLeftUp when the button went up where it
	// went down.
	MouseLeftClick
	MouseScrollUp
	MouseScrollDown
)

type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// mouseState is what the event loop remembers between mouse events.
type mouseState struct {
	// capture receives every mouse event while it is set.
	capture      Primitive
	x, y         int
	downX, downY int
	buttons      tcell.ButtonMask
}

// Application owns the terminal and runs the event loop. Keys go to the root
// primitive while it holds the focus, mouse actions go to the root or to the
// primitive that captured the mouse. Commands returned by either handler are
// executed before the next event is read.
//
//	if err := waterflow.NewApplication().SetRoot(grid).Run(); err != nil {
//	    panic(err)
//	}
type Application struct {
	mu sync.RWMutex

	// screen is nil before Run and after Stop.
	screen tcell.Screen
	root   Primitive
	focus  Primitive

	// quit ends screen.ChannelEvents, which in turn ends Run.
	quit    chan struct{}
	updates chan queuedUpdate

	mouse mouseState

	// wipe clears the screen before the next frame.
	wipe        bool
	lastResize  time.Time
	resizeTimer *time.Timer

	logger *zap.Logger
}

// NewApplication returns an application without a screen. Run creates one
// unless SetScreen was called.
func NewApplication() *Application {
	return &Application{
		updates: make(chan queuedUpdate, updateQueueSize),
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger reporting terminal failures.
func (a *Application) SetLogger(logger *zap.Logger) *Application {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// SetScreen makes Run use an already initialized screen. It has no effect
// once a screen is set.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.wipe = true
	}
	return a
}

// SetRoot sets the primitive covering the whole screen and gives it the
// focus.
func (a *Application) SetRoot(root Primitive) *Application {
	a.mu.Lock()
	a.root = root
	a.wipe = a.screen != nil
	a.mu.Unlock()

	return a.SetFocus(root)
}

// SetFocus blurs the focused primitive and focuses p, which may hand the focus
// on to one of its children.
func (a *Application) SetFocus(p Primitive) *Application {
	a.mu.Lock()
	if a.focus != nil {
		a.focus.Blur()
	}
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.mu.Unlock()

	if p != nil {
		p.Focus(func(child Primitive) {
			a.SetFocus(child)
		})
	}
	return a
}

// GetFocus returns the focused primitive or nil.
func (a *Application) GetFocus() Primitive {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.focus
}

// start makes sure there is a screen and prepares it for the event loop.
func (a *Application) start() (tcell.Screen, chan struct{}, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, nil, err
		}
		if err := screen.Init(); err != nil {
			return nil, nil, err
		}
		a.screen = screen
	}
	a.screen.EnableMouse()
	a.quit = make(chan struct{})
	return a.screen, a.quit, nil
}

// Run draws the root primitive and handles events until Stop is called, for
// example by a QuitCommand. A terminal error stops the loop and is returned.
func (a *Application) Run() error {
	screen, quit, err := a.start()
	if err != nil {
		return err
	}

	// A panic would leave the terminal in raw mode.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	events := make(chan tcell.Event, eventQueueSize)
	go screen.ChannelEvents(events, quit)

	a.draw()

	var runErr error
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return runErr
			}
			if err := a.handleEvent(screen, event); err != nil && runErr == nil {
				runErr = err
			}
		case update := <-a.updates:
			update.f()
			if update.done != nil {
				close(update.done)
			}
		}
	}
}

func (a *Application) handleEvent(screen tcell.Screen, event tcell.Event) error {
	switch event := event.(type) {
	case *tcell.EventKey:
		a.mu.RLock()
		root := a.root
		a.mu.RUnlock()
		if root != nil && root.HasFocus() && a.executeCommand(root.InputHandler(event)) {
			a.draw()
		}
	case *tcell.EventMouse:
		if a.handleMouse(event) {
			a.draw()
		}
	case *tcell.EventResize:
		a.handleResize(screen, event)
	case *tcell.EventError:
		a.logger.Error("Terminal reported an error", zap.Error(event))
		a.Stop()
		return event
	}
	return nil
}

func (a *Application) handleResize(screen tcell.Screen, event *tcell.EventResize) {
	a.mu.Lock()
	a.wipe = true
	a.mu.Unlock()

	if time.Since(a.lastResize) < resizePause {
		if a.resizeTimer != nil {
			a.resizeTimer.Stop()
		}
		a.resizeTimer = time.AfterFunc(resizePause, func() {
			_ = screen.PostEvent(event)
		})
	}
	a.lastResize = time.Now()

	width, height := event.Size()
	a.logger.Debug("Screen resized", zap.Int("width", width), zap.Int("height", height))
	a.draw()
}

// mouseActions turns event into actions, comparing it with the previous
// event.
func (a *Application) mouseActions(event *tcell.EventMouse) []MouseAction {
	var actions []MouseAction

	x, y := event.Position()
	if x != a.mouse.x || y != a.mouse.y {
		actions = append(actions, MouseMove)
		a.mouse.x, a.mouse.y = x, y
	}

	buttons := event.Buttons()
	if (buttons^a.mouse.buttons)&tcell.ButtonPrimary != 0 {
		if buttons&tcell.ButtonPrimary != 0 {
			actions = append(actions, MouseLeftDown)
			a.mouse.downX, a.mouse.downY = x, y
		} else {
			actions = append(actions, MouseLeftUp)
			if x == a.mouse.downX && y == a.mouse.downY {
				actions = append(actions, MouseLeftClick)
			}
		}
	}
	a.mouse.buttons = buttons

	if buttons&tcell.WheelUp != 0 {
		actions = append(actions, MouseScrollUp)
	}
	if buttons&tcell.WheelDown != 0 {
		actions = append(actions, MouseScrollDown)
	}
	return actions
}

// handleMouse delivers the actions of event and reports whether a redraw is
// due.
func (a *Application) handleMouse(event *tcell.EventMouse) bool {
	a.mu.RLock()
	root := a.root
	a.mu.RUnlock()

	redraw := false
	for _, action := range a.mouseActions(event) {
		target := a.mouse.capture
		if target == nil {
			target = root
		}
		if target == nil {
			continue
		}
		capture, cmd := target.MouseHandler(action, event)
		a.mouse.capture = capture
		if a.executeCommand(cmd) {
			redraw = true
		}
	}
	return redraw
}

// Stop finalizes the screen and makes Run return. It is safe to call from any
// goroutine and more than once.
func (a *Application) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen == nil {
		return
	}
	if a.quit != nil {
		close(a.quit)
		a.quit = nil
	}
	a.screen.Fini()
	a.screen = nil
}

func (a *Application) draw() {
	a.mu.Lock()
	screen, root, wipe := a.screen, a.root, a.wipe
	a.wipe = false
	a.mu.Unlock()

	if screen == nil || root == nil {
		return
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	if wipe {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()
}

// QueueUpdate runs f on the event loop goroutine and returns once it ran.
// Calling it from the event loop itself, for example from a delegate
// callback, deadlocks.
func (a *Application) QueueUpdate(f func()) *Application {
	done := make(chan struct{})
	a.updates <- queuedUpdate{f: f, done: done}
	<-done
	return a
}

// QueueUpdateDraw is QueueUpdate followed by a redraw.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	return a.QueueUpdate(func() {
		f()
		a.draw()
	})
}

// QueueEvent posts event to the screen's queue. It is dropped while the
// application is not running or when the queue is full.
func (a *Application) QueueEvent(event tcell.Event) *Application {
	a.mu.RLock()
	screen := a.screen
	a.mu.RUnlock()
	if screen == nil {
		return a
	}
	if err := screen.PostEvent(event); err != nil {
		a.logger.Warn("Event dropped", zap.Error(err))
	}
	return a
}

// executeCommand runs cmd and reports whether the screen needs a redraw.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case BatchCommand:
		redraw := false
		for _, item := range c {
			redraw = a.executeCommand(item) || redraw
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
	case SetFocusCommand:
		if c.Target == nil || c.Target == a.GetFocus() {
			return false
		}
		a.SetFocus(c.Target)
		return true
	}
	return false
}
