package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/ayn2op/waterflow"
	"github.com/ayn2op/waterflow/config"
	"github.com/ayn2op/waterflow/flow"
	"github.com/ayn2op/waterflow/help"
	"github.com/ayn2op/waterflow/keybind"
	"github.com/ayn2op/waterflow/layers"
)

const (
	mainLayer   = "main"
	detailLayer = "detail"
)

// keyMap adds the program keys to the grid's bindings.
type keyMap struct {
	waterflow.FlowKeyMap

	Help  keybind.Keybind
	Quit  keybind.Keybind
	Close keybind.Keybind
}

func newKeyMap(grid waterflow.FlowKeyMap) keyMap {
	return keyMap{
		FlowKeyMap: grid,
		Help:       keybind.NewKeybind(keybind.WithKeys("?"), keybind.WithHelp("?", "help")),
		Quit:       keybind.NewKeybind(keybind.WithKeys("q", "ctrl+c"), keybind.WithHelp("q", "quit")),
		Close:      keybind.NewKeybind(keybind.WithKeys("esc", "enter", "q"), keybind.WithHelp("esc", "close")),
	}
}

func (k keyMap) ShortHelp() []keybind.Keybind {
	return append(k.FlowKeyMap.ShortHelp(), k.Help, k.Quit)
}

func (k keyMap) FullHelp() [][]keybind.Keybind {
	return append(k.FlowKeyMap.FullHelp(), []keybind.Keybind{k.Help, k.Quit})
}

// mainView stacks the grid above a one line help bar. The grid keeps the
// focus, keys it does not handle are the program's.
type mainView struct {
	*waterflow.Box

	grid *waterflow.FlowView
	help *help.Help
	keys keyMap
}

func newMainView(grid *waterflow.FlowView) *mainView {
	m := &mainView{
		Box:  waterflow.NewBox(),
		grid: grid,
		help: help.New(),
		keys: newKeyMap(grid.KeyMap()),
	}
	m.help.SetKeyMap(m.keys)
	return m
}

func (m *mainView) Draw(screen tcell.Screen) {
	m.DrawFrame(screen)
	x, y, width, height := m.GetInnerRect()

	helpHeight := 1
	if m.help.ShowAll() {
		helpHeight = 4
	}
	helpHeight = min(helpHeight, height)
	m.grid.SetRect(x, y, width, height-helpHeight)
	m.grid.Draw(screen)

	m.help.SetStatus(stickyStatus(m.grid))
	m.help.SetRect(x, y+height-helpHeight, width, helpHeight)
	m.help.Draw(screen)
}

// stickyStatus describes the pinned header and the scroll position.
func stickyStatus(grid *waterflow.FlowView) string {
	state := grid.Engine().StickyState()
	position := fmt.Sprintf("row %d/%d", grid.GetOffset(), int(grid.ContentHeight()))
	if state.Phase == flow.StickyIdle {
		return position
	}
	return fmt.Sprintf("section %d %s, %s", state.Section, state.Phase, position)
}

func (m *mainView) InputHandler(event *tcell.EventKey) waterflow.Command {
	switch {
	case keybind.Matches(event, m.keys.Quit):
		return waterflow.QuitCommand{}
	case keybind.Matches(event, m.keys.Help):
		m.help.SetShowAll(!m.help.ShowAll())
		return waterflow.RedrawCommand{}
	}
	return m.grid.InputHandler(event)
}

func (m *mainView) MouseHandler(action waterflow.MouseAction, event *tcell.EventMouse) (waterflow.Primitive, waterflow.Command) {
	if !m.InRect(event.Position()) {
		return nil, nil
	}
	return m.grid.MouseHandler(action, event)
}

func (m *mainView) Focus(delegate func(p waterflow.Primitive)) {
	delegate(m.grid)
}

func (m *mainView) HasFocus() bool {
	return m.grid.HasFocus()
}

// detailView is the box popping up over the grid when an item is selected.
type detailView struct {
	*waterflow.TextCell

	keys    keyMap
	onClose func()
}

func newDetailView(keys keyMap, onClose func()) *detailView {
	d := &detailView{
		TextCell: waterflow.NewTextCell(detailLayer),
		keys:     keys,
		onClose:  onClose,
	}
	d.SetBorders(waterflow.BordersAll)
	d.SetTitle(" Item ")
	d.SetFooter(" esc to close ")
	d.SetBorderPadding(0, 0, 1, 1)
	d.SetBackgroundColor(waterflow.Styles.ContrastBackgroundColor)
	return d
}

// Draw centers the box on the screen.
func (d *detailView) Draw(screen tcell.Screen) {
	sw, sh := screen.Size()
	width, height := min(48, sw), min(7, sh)
	d.SetRect((sw-width)/2, (sh-height)/2, width, height)
	d.TextCell.Draw(screen)
}

func (d *detailView) InputHandler(event *tcell.EventKey) waterflow.Command {
	if keybind.Matches(event, d.keys.Close) {
		d.onClose()
		return waterflow.RedrawCommand{}
	}
	return waterflow.ConsumeEventCommand{}
}

func (d *detailView) MouseHandler(action waterflow.MouseAction, event *tcell.EventMouse) (waterflow.Primitive, waterflow.Command) {
	if action == waterflow.MouseLeftClick && !d.InRect(event.Position()) {
		d.onClose()
		return nil, waterflow.RedrawCommand{}
	}
	return nil, waterflow.ConsumeEventCommand{}
}

// ui is the complete screen of the demo.
type ui struct {
	root    *layers.Layers
	main    *mainView
	detail  *detailView
	grid    *waterflow.FlowView
	gallery *gallery
}

func newUI(cfg *config.Config, log *zap.Logger) (*ui, error) {
	borders, err := waterflow.ParseBorderSet(cfg.Layout.Border)
	if err != nil {
		return nil, err
	}

	g := newGallery(cfg, log)
	header, footer := g.globalViews()
	options := cfg.Layout.EngineOptions(log)
	if header != nil {
		options = append(options, flow.WithGlobalHeader(header))
	}
	if footer != nil {
		options = append(options, flow.WithGlobalFooter(footer))
	}
	options = append(options, flow.WithDataSource(g), flow.WithDelegate(g))

	grid := waterflow.NewFlowView(options...)
	grid.SetScrollStep(cfg.Layout.ScrollStep)
	grid.SetBorders(waterflow.BordersAll)
	grid.SetBorderSet(borders)
	grid.SetTitle(" waterflow ")
	g.setPool(grid.Engine())

	u := &ui{
		root:    layers.New(),
		main:    newMainView(grid),
		grid:    grid,
		gallery: g,
	}
	u.detail = newDetailView(u.main.keys, u.closeDetail)
	g.selected = u.showDetail

	u.root.AddLayer(u.main, layers.WithName(mainLayer), layers.WithResize(true))
	u.root.AddLayer(u.detail, layers.WithName(detailLayer), layers.WithOverlay(), layers.WithVisible(false))
	return u, nil
}

func (u *ui) showDetail(index flow.IndexPath) {
	frame, _ := u.grid.Engine().Layout().ItemFrame(index)
	u.detail.SetText(fmt.Sprintf("Section %d, item %d\n%g x %g cells at (%g, %g)",
		index.Section, index.Item, frame.Width, frame.Height, frame.X, frame.Y))
	u.root.ShowLayer(detailLayer)
}

func (u *ui) closeDetail() {
	u.root.HideLayer(detailLayer)
}
