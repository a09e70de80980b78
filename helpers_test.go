package waterflow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ayn2op/waterflow/flow"
)

func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(width, height)
	return screen
}

// screenRow returns the runes of row y, blanks for empty cells.
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

func backgroundAt(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

// gridSource shows sections of TextCells labelled with their index path.
// Margins are zero so frames map to whole cells.
type gridSource struct {
	engine  *flow.Engine
	heights [][]float64
	columns int
	headers bool

	selected []flow.IndexPath
	scrolls  int
}

func (s *gridSource) NumberOfSections() int               { return len(s.heights) }
func (s *gridSource) NumberOfItems(section int) int       { return len(s.heights[section]) }
func (s *gridSource) NumberOfColumns(int) int             { return s.columns }
func (s *gridSource) Margin(int, flow.MarginKind) float64 { return 0 }

func (s *gridSource) ItemHeight(index flow.IndexPath) float64 {
	return s.heights[index.Section][index.Item]
}

func (s *gridSource) ItemView(index flow.IndexPath) flow.View {
	cell, ok := s.engine.DequeueReusableItem("item").(*TextCell)
	if !ok {
		cell = NewTextCell("item")
	}
	return cell.SetText(index.String())
}

func (s *gridSource) SectionHeaderView(section int) flow.HeaderFooterView {
	if !s.headers {
		return nil
	}
	cell, ok := s.engine.DequeueReusableSectionHeader("header").(*TextCell)
	if !ok {
		cell = NewTextCell("header").SetHeight(1)
	}
	return cell.SetText(fmt.Sprintf("S%d", section))
}

func (s *gridSource) DidSelect(index flow.IndexPath) {
	s.selected = append(s.selected, index)
}

func (s *gridSource) DidScroll() {
	s.scrolls++
}

// newGrid returns a flow view without scroll bar over src, sized to the
// whole screen.
func newGrid(src *gridSource, width, height int, options ...flow.Option) *FlowView {
	options = append(options, flow.WithDataSource(src), flow.WithDelegate(src))
	f := NewFlowView(options...)
	f.SetScrollBarVisible(false)
	f.SetRect(0, 0, width, height)
	src.engine = f.Engine()
	return f
}
