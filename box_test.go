package waterflow

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestBoxInnerRect(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *Box)
		want  [4]int
	}{
		{"plain", func(b *Box) {}, [4]int{2, 3, 10, 4}},
		{"borders", func(b *Box) { b.SetBorders(BordersAll) }, [4]int{3, 4, 8, 2}},
		{"left border only", func(b *Box) { b.SetBorders(BordersLeft) }, [4]int{3, 3, 9, 4}},
		{"title", func(b *Box) { b.SetTitle("t") }, [4]int{2, 4, 10, 3}},
		{"footer", func(b *Box) { b.SetFooter("f") }, [4]int{2, 3, 10, 3}},
		{"padding", func(b *Box) { b.SetBorders(BordersAll).SetBorderPadding(0, 0, 1, 1) }, [4]int{4, 4, 6, 2}},
		{"too much padding", func(b *Box) { b.SetBorderPadding(3, 3, 6, 6) }, [4]int{8, 6, 0, 0}},
	}
	for _, tt := range tests {
		b := NewBox()
		b.SetRect(2, 3, 10, 4)
		tt.setup(b)
		x, y, w, h := b.GetInnerRect()
		if got := [4]int{x, y, w, h}; got != tt.want {
			t.Errorf("%s: GetInnerRect() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBoxDraw(t *testing.T) {
	screen := newTestScreen(t, 8, 3)
	b := NewBox().SetBorders(BordersAll).SetBorderSet(BorderSetRound()).SetTitle("abcdefghij")
	b.SetRect(0, 0, 8, 3)
	b.Draw(screen)

	want := []string{"╭cdefg…╮", "│      │", "╰──────╯"}
	for y, row := range want {
		if got := screenRow(screen, y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
	if got := backgroundAt(screen, 3, 1); got != Styles.PrimitiveBackgroundColor {
		t.Errorf("background = %v", got)
	}
}

func TestBoxDirtyAndFocus(t *testing.T) {
	b := NewBox()
	b.MarkClean()
	b.SetRect(0, 0, 5, 5)
	if !b.IsDirty() {
		t.Errorf("SetRect did not mark the box dirty")
	}

	b.MarkClean()
	b.SetRect(0, 0, 5, 5)
	if b.IsDirty() {
		t.Errorf("SetRect with the same rect marked the box dirty")
	}

	b.Focus(nil)
	if !b.HasFocus() {
		t.Errorf("HasFocus() = false after Focus")
	}
	b.Blur()
	if b.HasFocus() {
		t.Errorf("HasFocus() = true after Blur")
	}

	inside := tcell.NewEventMouse(2, 2, tcell.Button1, tcell.ModNone)
	if _, cmd := b.MouseHandler(MouseLeftDown, inside); cmd != (SetFocusCommand{Target: b}) {
		t.Errorf("click inside returned %v", cmd)
	}
	outside := tcell.NewEventMouse(7, 2, tcell.Button1, tcell.ModNone)
	if _, cmd := b.MouseHandler(MouseLeftDown, outside); cmd != nil {
		t.Errorf("click outside returned %v", cmd)
	}
}

func TestParseBorderSet(t *testing.T) {
	tests := []struct {
		name string
		want BorderSet
		ok   bool
	}{
		{"", BorderSetPlain(), true},
		{"plain", BorderSetPlain(), true},
		{" Round ", BorderSetRound(), true},
		{"thick", BorderSetThick(), true},
		{"double", BorderSetDouble(), true},
		{"hidden", BorderSetHidden(), true},
		{"dotted", BorderSet{}, false},
	}
	for _, tt := range tests {
		got, err := ParseBorderSet(tt.name)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseBorderSet(%q) = %+v, %v", tt.name, got, err)
		}
	}
}
