package flow

import "testing"

func TestParseMarginKind(t *testing.T) {
	for _, kind := range MarginKinds() {
		got, err := ParseMarginKind(" " + kind.String() + " ")
		if err != nil {
			t.Errorf("ParseMarginKind(%q) error = %v", kind, err)
			continue
		}
		if got != kind {
			t.Errorf("ParseMarginKind(%q) = %v, want %v", kind, got, kind)
		}
	}
	if _, err := ParseMarginKind("diagonal"); err == nil {
		t.Errorf("ParseMarginKind(diagonal) error = nil")
	}
}

func TestMarginKindText(t *testing.T) {
	var k MarginKind
	if err := k.UnmarshalText([]byte("Column")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if k != MarginColumn {
		t.Errorf("UnmarshalText() = %v, want %v", k, MarginColumn)
	}
	if _, err := MarginKind(42).MarshalText(); err == nil {
		t.Errorf("MarshalText() of invalid kind error = nil")
	}
	if got := MarginKind(42).String(); got != "MarginKind(42)" {
		t.Errorf("String() = %q", got)
	}
}

func TestMarginsGetSet(t *testing.T) {
	var m Margins
	for i, kind := range MarginKinds() {
		m.Set(kind, float64(i+1))
	}
	if want := (Margins{Top: 1, Left: 2, Bottom: 3, Right: 4, Column: 5, Row: 6}); m != want {
		t.Errorf("margins = %+v, want %+v", m, want)
	}
	if got := m.Get(MarginRow); got != 6 {
		t.Errorf("Get(row) = %v, want 6", got)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Get(invalid) did not panic")
		}
	}()
	m.Get(MarginKind(-1))
}
