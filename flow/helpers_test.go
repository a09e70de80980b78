package flow

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testView struct {
	id     string
	name   string
	height float64
}

func (v *testView) ReuseIdentifier() string  { return v.id }
func (v *testView) PreferredHeight() float64 { return v.height }
func (v *testView) String() string           { return v.name }

type placement struct {
	frame    Rect
	floating bool
}

// testViewport records what the engine shows.
type testViewport struct {
	offset        float64
	height        float64
	width         float64
	contentHeight float64

	shown    map[View]placement
	attaches int
	detaches int
}

func newTestViewport(width, height float64) *testViewport {
	return &testViewport{width: width, height: height, shown: make(map[View]placement)}
}

func (vp *testViewport) ContentOffset() float64          { return vp.offset }
func (vp *testViewport) VisibleHeight() float64          { return vp.height }
func (vp *testViewport) Width() float64                  { return vp.width }
func (vp *testViewport) SetContentHeight(height float64) { vp.contentHeight = height }

func (vp *testViewport) Attach(v View, frame Rect) {
	vp.attaches++
	vp.shown[v] = placement{frame: frame}
}

func (vp *testViewport) Float(v View, frame Rect) {
	vp.shown[v] = placement{frame: frame, floating: true}
}

func (vp *testViewport) Detach(v View) {
	vp.detaches++
	delete(vp.shown, v)
}

func (vp *testViewport) floating() []View {
	var views []View
	for v, p := range vp.shown {
		if p.floating {
			views = append(views, v)
		}
	}
	return views
}

// testSource is a data source and delegate driven by plain slices. Views are
// dequeued from the engine before new ones are created; created counts new
// item views.
type testSource struct {
	engine *Engine

	heights [][]float64
	columns []int
	margins *Margins
	inset   Insets

	headers []float64 // zero means no header
	footers []float64 // zero means no footer

	created        int
	createdHeaders int
	selected       []IndexPath
	scrolled       int
	nilViews       bool
	onItem         func(IndexPath)
	onScroll       func()
	onSelect       func(IndexPath)
}

func (ts *testSource) NumberOfSections() int { return len(ts.heights) }

func (ts *testSource) NumberOfItems(section int) int { return len(ts.heights[section]) }

func (ts *testSource) NumberOfColumns(section int) int {
	if section < len(ts.columns) {
		return ts.columns[section]
	}
	return DefaultColumnCount
}

func (ts *testSource) ItemView(index IndexPath) View {
	if ts.onItem != nil {
		ts.onItem(index)
	}
	if ts.nilViews {
		return nil
	}
	if v := ts.engine.DequeueReusableItem("cell"); v != nil {
		v.(*testView).name = index.String()
		return v
	}
	ts.created++
	return &testView{id: "cell", name: index.String()}
}

func (ts *testSource) ItemHeight(index IndexPath) float64 {
	return ts.heights[index.Section][index.Item]
}

func (ts *testSource) Margin(section int, kind MarginKind) float64 {
	if ts.margins == nil {
		return DefaultMargin
	}
	return ts.margins.Get(kind)
}

func (ts *testSource) Inset() Insets { return ts.inset }

func (ts *testSource) SectionHeaderView(section int) HeaderFooterView {
	if section >= len(ts.headers) || ts.headers[section] == 0 {
		return nil
	}
	if v := ts.engine.DequeueReusableSectionHeader("header"); v != nil {
		hv := v.(*testView)
		hv.name, hv.height = fmt.Sprintf("header %d", section), ts.headers[section]
		return hv
	}
	ts.createdHeaders++
	return &testView{id: "header", name: fmt.Sprintf("header %d", section), height: ts.headers[section]}
}

func (ts *testSource) SectionFooterView(section int) HeaderFooterView {
	if section >= len(ts.footers) || ts.footers[section] == 0 {
		return nil
	}
	if v := ts.engine.DequeueReusableSectionFooter("footer"); v != nil {
		fv := v.(*testView)
		fv.name, fv.height = fmt.Sprintf("footer %d", section), ts.footers[section]
		return fv
	}
	return &testView{id: "footer", name: fmt.Sprintf("footer %d", section), height: ts.footers[section]}
}

func (ts *testSource) DidSelect(index IndexPath) {
	ts.selected = append(ts.selected, index)
	if ts.onSelect != nil {
		ts.onSelect(index)
	}
}

func (ts *testSource) DidScroll() {
	ts.scrolled++
	if ts.onScroll != nil {
		ts.onScroll()
	}
}

func newTestEngine(t *testing.T, vp *testViewport, ts *testSource, options ...Option) *Engine {
	t.Helper()
	options = append([]Option{WithDataSource(ts), WithDelegate(ts)}, options...)
	e := NewEngine(vp, options...)
	ts.engine = e
	return e
}

func observedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func repeatHeights(n int, h float64) []float64 {
	heights := make([]float64, n)
	for i := range heights {
		heights[i] = h
	}
	return heights
}

func ptr(v float64) *float64 {
	return &v
}
