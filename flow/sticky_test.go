package flow

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

// newStickyFixture lays out three one column sections of a single 100 high
// item each, with 20 high headers and margins of 5:
//
//	section 0: header   0..20,  item  25..125, end 130
//	section 1: header 130..150, item 155..255, end 260
//	section 2: header 260..280, item 285..385, end 390
func newStickyFixture(t *testing.T, options ...Option) (*Engine, *testViewport, *testSource) {
	t.Helper()
	margins := UniformMargins(5)
	vp := newTestViewport(320, 100)
	ts := &testSource{
		heights: [][]float64{{100}, {100}, {100}},
		columns: []int{1, 1, 1},
		margins: &margins,
		headers: []float64{20, 20, 20},
	}
	e := newTestEngine(t, vp, ts, append([]Option{WithStickyHeaders(true)}, options...)...)
	if err := e.ReloadData(); err != nil {
		t.Fatalf("ReloadData() error = %v", err)
	}
	return e, vp, ts
}

func scrollTo(t *testing.T, e *Engine, vp *testViewport, offset float64) {
	t.Helper()
	vp.offset = offset
	if err := e.DidScroll(); err != nil {
		t.Fatalf("DidScroll(%v) error = %v", offset, err)
	}
}

func TestStickyPhases(t *testing.T) {
	e, vp, _ := newStickyFixture(t)

	tests := []struct {
		offset float64
		want   StickyState
	}{
		{0, StickyState{Phase: StickyResting, Section: 0, Baseline: 0}},
		{50, StickyState{Phase: StickyPinned, Section: 0, Baseline: 0}},
		{110, StickyState{Phase: StickyHandingOff, Section: 0, Baseline: 0}},
		{120, StickyState{Phase: StickyHandingOff, Section: 0, Baseline: 0, FloatY: -10}},
		{130, StickyState{Phase: StickyResting, Section: 1, Baseline: 130}},
		{131, StickyState{Phase: StickyPinned, Section: 1, Baseline: 130}},
		{259, StickyState{Phase: StickyHandingOff, Section: 1, Baseline: 130, FloatY: -19}},
		{300, StickyState{Phase: StickyPinned, Section: 2, Baseline: 260}},
		{1000, StickyState{Phase: StickyHandingOff, Section: 2, Baseline: 260, FloatY: -20}},
		{-5, StickyState{Phase: StickyResting, Section: 0, Baseline: 0}},
	}
	for _, tt := range tests {
		scrollTo(t, e, vp, tt.offset)
		if got := e.StickyState(); got != tt.want {
			t.Errorf("offset %v: state = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestStickyHandOffHappensExactlyOnce(t *testing.T) {
	e, vp, _ := newStickyFixture(t)
	end := e.Layout().Sections[0].End

	var sections []int
	last := e.StickyState().Section
	for offset := 0.0; offset <= end; offset++ {
		scrollTo(t, e, vp, offset)
		if s := e.StickyState().Section; s != last {
			sections = append(sections, s)
			last = s
		}
	}
	if len(sections) != 1 || sections[0] != 1 {
		t.Errorf("section changes = %v, want [1]", sections)
	}
}

func TestStickyFloatsOneHeaderAtATime(t *testing.T) {
	e, vp, _ := newStickyFixture(t)

	for offset := 0.0; offset <= 400; offset += 3 {
		scrollTo(t, e, vp, offset)
		floating := vp.floating()
		if len(floating) > 1 {
			t.Fatalf("offset %v: %d floating headers", offset, len(floating))
		}
		state := e.StickyState()
		pinned := state.Phase == StickyPinned || state.Phase == StickyHandingOff
		if pinned != (len(floating) == 1) {
			t.Fatalf("offset %v: phase %v with %d floating headers", offset, state.Phase, len(floating))
		}
		if !pinned {
			continue
		}
		want, _ := e.HeaderView(state.Section)
		if floating[0] != want {
			t.Errorf("offset %v: floating %v, want header of section %d", offset, floating[0], state.Section)
		}
		if y := vp.shown[floating[0]].frame.Y; y != state.FloatY || y > 0 || y < -20 {
			t.Errorf("offset %v: floating y = %v, state %v", offset, y, state.FloatY)
		}
	}
}

func TestStickyInlineHeaders(t *testing.T) {
	e, vp, _ := newStickyFixture(t)

	scrollTo(t, e, vp, 120)
	h0, _ := e.HeaderView(0)
	h1, _ := e.HeaderView(1)
	h2, _ := e.HeaderView(2)
	if p := vp.shown[h0]; !p.floating {
		t.Errorf("header 0 is not floating")
	}
	if p, ok := vp.shown[h1]; !ok || p.floating || p.frame != *e.Layout().Sections[1].Header {
		t.Errorf("header 1 shown = %v at %+v, want inline at its frame", ok, p)
	}
	if _, ok := vp.shown[h2]; ok {
		t.Errorf("header 2 is shown while out of view")
	}

	// Header 0 goes back to its static frame when the top is reached.
	scrollTo(t, e, vp, 0)
	if p, ok := vp.shown[h0]; !ok || p.floating || p.frame != *e.Layout().Sections[0].Header {
		t.Errorf("header 0 shown = %v at %+v, want inline at its frame", ok, p)
	}
	if got := e.PoolStats().Headers; got != 0 {
		t.Errorf("pooled headers = %d, want 0", got)
	}
}

func TestStickyJumpWalksEverySection(t *testing.T) {
	logger, logs := observedLogger(zapcore.DebugLevel)
	e, vp, _ := newStickyFixture(t, WithLogger(logger))

	scrollTo(t, e, vp, 300)
	if got := logs.FilterMessage("Sticky header advanced").Len(); got != 2 {
		t.Errorf("advances = %d, want 2", got)
	}
	scrollTo(t, e, vp, 140)
	if got := logs.FilterMessage("Sticky header retreated").Len(); got != 1 {
		t.Errorf("retreats = %d, want 1", got)
	}
	if got := e.StickyState().Section; got != 1 {
		t.Errorf("section = %d, want 1", got)
	}
}

func TestStickySectionWithoutHeader(t *testing.T) {
	e, vp, ts := newStickyFixture(t)
	ts.headers = []float64{20, 0, 20}
	if err := e.ReloadData(); err != nil {
		t.Fatalf("ReloadData() error = %v", err)
	}

	// Without its header section 1 runs from 130 to 240.
	scrollTo(t, e, vp, 150)
	if got, want := e.StickyState(), (StickyState{Phase: StickyResting, Section: 1, Baseline: 130}); got != want {
		t.Errorf("state = %+v, want %+v", got, want)
	}
	if got := len(vp.floating()); got != 0 {
		t.Errorf("floating headers = %d, want 0", got)
	}
	scrollTo(t, e, vp, 250)
	if got := e.StickyState(); got.Section != 2 || got.Phase != StickyPinned {
		t.Errorf("state = %+v, want section 2 pinned", got)
	}
}

func TestStickyDisabledIsIdle(t *testing.T) {
	vp := newTestViewport(320, 100)
	ts := &testSource{heights: [][]float64{{10}}, headers: []float64{20}}
	e := newTestEngine(t, vp, ts)
	if err := e.ReloadData(); err != nil {
		t.Fatalf("ReloadData() error = %v", err)
	}
	scrollTo(t, e, vp, 10)
	if got := e.StickyState(); got.Phase != StickyIdle {
		t.Errorf("phase = %v, want %v", got.Phase, StickyIdle)
	}
	if got := len(vp.floating()); got != 0 {
		t.Errorf("floating headers = %d, want 0", got)
	}
}

func TestStickyPhaseString(t *testing.T) {
	if got := StickyHandingOff.String(); got != "handing-off" {
		t.Errorf("String() = %q", got)
	}
	if got := StickyPhase(9).String(); got != "StickyPhase(9)" {
		t.Errorf("String() = %q", got)
	}
}
