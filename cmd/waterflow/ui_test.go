package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/ayn2op/waterflow"
	"github.com/ayn2op/waterflow/flow"
)

func screenRow(screen tcell.Screen, y int) string {
	width, _ := screen.Size()
	var b strings.Builder
	for x := range width {
		r, _, _, _ := screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// newTestUI builds the demo screen and focuses it the way Application.Run
// would, without a terminal.
func newTestUI(t *testing.T) (*ui, *waterflow.Application, tcell.Screen) {
	t.Helper()
	u, err := newUI(testConfig(t), zap.NewNop())
	if err != nil {
		t.Fatalf("newUI() error = %v", err)
	}
	app := waterflow.NewApplication().SetRoot(u.root)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	return u, app, screen
}

func drawUI(u *ui, screen tcell.Screen) {
	width, height := screen.Size()
	u.root.SetRect(0, 0, width, height)
	u.root.Draw(screen)
}

func press(u *ui, k tcell.Key, r rune) waterflow.Command {
	return u.root.InputHandler(tcell.NewEventKey(k, r, tcell.ModNone))
}

func TestUIDraw(t *testing.T) {
	u, app, screen := newTestUI(t)
	drawUI(u, screen)

	if app.GetFocus() != u.grid {
		t.Fatalf("focus = %T, want the grid", app.GetFocus())
	}
	if got := screenRow(screen, 0); !strings.Contains(got, " waterflow ") {
		t.Errorf("title row = %q", got)
	}
	if got := screenRow(screen, 1); !strings.Contains(got, "waterflow: 6 sections, 3 columns") {
		t.Errorf("global header row = %q", got)
	}
	if got := screenRow(screen, 2); !strings.Contains(got, "Section 0") {
		t.Errorf("section header row = %q", got)
	}
	if got := screenRow(screen, 4); !strings.Contains(got, "Item 0.0 (3 rows)") {
		t.Errorf("first item row = %q", got)
	}
	if got := screenRow(screen, 23); !strings.Contains(got, "section 0 resting, row 0/") {
		t.Errorf("status row = %q", got)
	}
	if u.gallery.created == 0 || u.gallery.created != len(u.grid.Engine().DisplayedItems()) {
		t.Errorf("created %d views for %d displayed items", u.gallery.created, len(u.grid.Engine().DisplayedItems()))
	}
}

func TestUIScrollPinsHeader(t *testing.T) {
	u, _, screen := newTestUI(t)
	drawUI(u, screen)

	for range 5 {
		press(u, tcell.KeyRune, 'j')
	}
	drawUI(u, screen)
	if got := u.grid.GetOffset(); got != 5 {
		t.Fatalf("offset = %d, want 5", got)
	}
	state := u.grid.Engine().StickyState()
	if state.Phase != flow.StickyPinned || state.Section != 0 {
		t.Errorf("sticky state = %+v, want section 0 pinned", state)
	}
	if got := screenRow(screen, 1); !strings.Contains(got, "Section 0") {
		t.Errorf("top row = %q, want the pinned header", got)
	}
	if got := screenRow(screen, 23); !strings.Contains(got, "section 0 pinned, row 5/") {
		t.Errorf("status row = %q", got)
	}
}

func TestUIHelpToggle(t *testing.T) {
	u, _, screen := newTestUI(t)
	drawUI(u, screen)

	if cmd := press(u, tcell.KeyRune, '?'); cmd != (waterflow.RedrawCommand{}) {
		t.Errorf("? returned %v", cmd)
	}
	if !u.main.help.ShowAll() {
		t.Fatalf("full help not shown")
	}
	drawUI(u, screen)
	if _, _, _, height := u.grid.GetRect(); height != 20 {
		t.Errorf("grid height = %d, want 20 next to full help", height)
	}
	press(u, tcell.KeyRune, '?')
	drawUI(u, screen)
	if _, _, _, height := u.grid.GetRect(); height != 23 {
		t.Errorf("grid height = %d, want 23 next to short help", height)
	}
}

func TestUIDetail(t *testing.T) {
	u, app, screen := newTestUI(t)
	drawUI(u, screen)

	press(u, tcell.KeyTab, 0)
	press(u, tcell.KeyEnter, 0)
	if !u.root.GetVisible(detailLayer) {
		t.Fatalf("detail layer not shown after selecting")
	}
	if app.GetFocus() != u.detail {
		t.Fatalf("focus = %T, want the detail view", app.GetFocus())
	}
	if got := u.detail.GetText(); !strings.HasPrefix(got, "Section 0, item 0\n") {
		t.Errorf("detail text = %q", got)
	}

	drawUI(u, screen)
	if got := screenRow(screen, 8); !strings.Contains(got, " Item ") {
		t.Errorf("detail title row = %q", got)
	}

	// Keys other than close stay with the detail view.
	if cmd := press(u, tcell.KeyRune, 'j'); cmd != (waterflow.ConsumeEventCommand{}) || u.grid.GetOffset() != 0 {
		t.Errorf("j reached the grid behind the detail view")
	}
	if cmd := press(u, tcell.KeyEscape, 0); cmd != (waterflow.RedrawCommand{}) {
		t.Errorf("esc returned %v", cmd)
	}
	if u.root.GetVisible(detailLayer) {
		t.Errorf("detail layer still shown after esc")
	}
	if app.GetFocus() != u.grid {
		t.Errorf("focus = %T, want the grid back", app.GetFocus())
	}

	if cmd := press(u, tcell.KeyRune, 'q'); cmd != (waterflow.QuitCommand{}) {
		t.Errorf("q returned %v", cmd)
	}
}

func TestUIClickOpensDetail(t *testing.T) {
	u, app, screen := newTestUI(t)
	drawUI(u, screen)

	click := func(x, y int) {
		u.root.MouseHandler(waterflow.MouseLeftClick, tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	}

	click(3, 4)
	if !u.root.GetVisible(detailLayer) {
		t.Fatalf("detail layer not shown after clicking an item")
	}
	if index, ok := u.grid.Cursor(); !ok || index != flow.NewIndexPath(0, 0) {
		t.Errorf("cursor = %v %v, want the clicked item", index, ok)
	}
	drawUI(u, screen)

	click(0, 0)
	if u.root.GetVisible(detailLayer) {
		t.Errorf("click outside the detail view did not close it")
	}
	if app.GetFocus() != u.grid {
		t.Errorf("focus = %T, want the grid back", app.GetFocus())
	}
}

func TestStickyStatusIdle(t *testing.T) {
	cfg := testConfig(t)
	cfg.Layout.StickyHeaders = false
	u, err := newUI(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("newUI() error = %v", err)
	}
	if got := stickyStatus(u.grid); got != "row 0/0" {
		t.Errorf("stickyStatus() = %q, want the row only", got)
	}
}

func TestNewUIRejectsUnknownBorder(t *testing.T) {
	cfg := testConfig(t)
	cfg.Layout.Border = "dotted"
	if _, err := newUI(cfg, zap.NewNop()); err == nil {
		t.Errorf("newUI() error = nil for an unknown border")
	}
}
