package help

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ayn2op/waterflow/keybind"
)

type testKeyMap struct {
	short []keybind.Keybind
	full  [][]keybind.Keybind
}

func (k testKeyMap) ShortHelp() []keybind.Keybind  { return k.short }
func (k testKeyMap) FullHelp() [][]keybind.Keybind { return k.full }

func bind(key, desc string) keybind.Keybind {
	return keybind.NewKeybind(keybind.WithKeys(key), keybind.WithHelp(key, desc))
}

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(width, height)
	return screen
}

func row(screen tcell.Screen, y int) string {
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

func draw(t *testing.T, h *Help, width, height int) tcell.Screen {
	t.Helper()
	screen := newScreen(t, width, height)
	h.SetRect(0, 0, width, height)
	h.Draw(screen)
	return screen
}

func TestShortHelp(t *testing.T) {
	keys := testKeyMap{short: []keybind.Keybind{bind("j", "down"), bind("k", "up"), bind("q", "quit")}}

	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"fits", 30, "j down • k up • q quit"},
		{"truncated", 15, "j down • k up …"},
		{"first item only", 9, "j down …"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New().SetKeyMap(keys)
			screen := draw(t, h, tt.width, 1)
			if got := strings.TrimRight(row(screen, 0), " "); got != tt.want {
				t.Errorf("row = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortHelpSkipsDisabled(t *testing.T) {
	hidden := bind("x", "hidden")
	hidden.SetEnabled(false)
	keys := testKeyMap{short: []keybind.Keybind{bind("j", "down"), hidden, keybind.NewKeybind(keybind.WithKeys("z")), bind("q", "quit")}}

	screen := draw(t, New().SetKeyMap(keys), 30, 1)
	if got := strings.TrimRight(row(screen, 0), " "); got != "j down • q quit" {
		t.Errorf("row = %q", got)
	}
}

func TestStatus(t *testing.T) {
	keys := testKeyMap{short: []keybind.Keybind{bind("j", "down"), bind("k", "up")}}
	h := New().SetKeyMap(keys).SetStatus("row 3/10")

	screen := draw(t, h, 30, 1)
	line := row(screen, 0)
	if !strings.HasPrefix(line, "j down • k up") {
		t.Errorf("row = %q, want the short help first", line)
	}
	if !strings.HasSuffix(line, "row 3/10") {
		t.Errorf("row = %q, want the status right aligned", line)
	}

	// The status leaves less room for the bindings.
	screen = draw(t, h, 20, 1)
	if got := row(screen, 0); got != "j down …    row 3/10" {
		t.Errorf("narrow row = %q", got)
	}

	h.MarkClean()
	h.SetStatus("row 3/10")
	if h.IsDirty() {
		t.Errorf("setting the same status marked the help dirty")
	}
	h.SetStatus("row 4/10")
	if !h.IsDirty() {
		t.Errorf("changing the status did not mark the help dirty")
	}
}

func TestFullHelp(t *testing.T) {
	keys := testKeyMap{full: [][]keybind.Keybind{
		{bind("j", "down"), bind("pgdn", "page down")},
		{bind("q", "quit")},
	}}
	h := New().SetKeyMap(keys).SetShowAll(true).SetStatus("hidden in full help")
	if !h.ShowAll() {
		t.Fatalf("ShowAll() = false")
	}

	screen := draw(t, h, 40, 3)
	want := []string{
		"j    down         q quit",
		"pgdn page down",
		"",
	}
	for y, w := range want {
		if got := strings.TrimRight(row(screen, y), " "); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
}

func TestFullHelpTruncated(t *testing.T) {
	keys := testKeyMap{full: [][]keybind.Keybind{
		{bind("j", "down")},
		{bind("q", "quit")},
	}}
	h := New().SetKeyMap(keys).SetShowAll(true)

	screen := draw(t, h, 12, 1)
	if got := strings.TrimRight(row(screen, 0), " "); got != "j down …" {
		t.Errorf("row = %q", got)
	}

	screen = draw(t, h, 3, 1)
	if got := strings.TrimRight(row(screen, 0), " "); got != "…" {
		t.Errorf("row = %q, want an ellipsis only", got)
	}
}

func TestNoKeyMap(t *testing.T) {
	screen := draw(t, New().SetStatus("ready"), 10, 1)
	if got := row(screen, 0); got != "     ready" {
		t.Errorf("row = %q", got)
	}
}
