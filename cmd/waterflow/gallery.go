package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/ayn2op/waterflow"
	"github.com/ayn2op/waterflow/config"
	"github.com/ayn2op/waterflow/flow"
)

// Reuse identifiers of the gallery views.
const (
	itemID   = "item"
	headerID = "header"
	footerID = "footer"
)

var palette = []tcell.Color{
	tcell.ColorDarkSlateGray,
	tcell.ColorDarkOliveGreen,
	tcell.ColorMaroon,
	tcell.ColorDarkSlateBlue,
	tcell.ColorSaddleBrown,
	tcell.ColorDarkCyan,
}

// dequeuer hands out pooled views, the engine in practice.
type dequeuer interface {
	DequeueReusableItem(id string) flow.View
	DequeueReusableSectionHeader(id string) flow.View
	DequeueReusableSectionFooter(id string) flow.View
}

// gallery is the data source and delegate of the demo: sections of items
// with varying heights, each shown by a TextCell.
type gallery struct {
	layout config.LayoutConfig
	demo   config.DemoConfig
	log    *zap.Logger

	pool    dequeuer
	heights [][]float64

	// created counts views which could not be dequeued.
	created  int
	selected func(index flow.IndexPath)
}

func newGallery(cfg *config.Config, log *zap.Logger) *gallery {
	g := &gallery{
		layout: cfg.Layout,
		demo:   cfg.Demo,
		log:    log,
	}
	g.heights = make([][]float64, cfg.Demo.Sections)
	for s := range g.heights {
		g.heights[s] = make([]float64, cfg.Demo.Items)
		for i := range g.heights[s] {
			g.heights[s][i] = float64(g.itemHeight(s, i))
		}
	}
	return g
}

// itemHeight picks a height between the configured bounds. Without a seed
// heights cycle through the range so the layout is the same on every run.
func (g *gallery) itemHeight(section, item int) int {
	spread := g.demo.MaxItemHeight - g.demo.MinItemHeight + 1
	if g.demo.Seed == 0 {
		return g.demo.MinItemHeight + (section*7+item*5)%spread
	}
	rnd := rand.New(rand.NewPCG(uint64(g.demo.Seed), uint64(section)<<32|uint64(item)))
	return g.demo.MinItemHeight + rnd.IntN(spread)
}

func (g *gallery) setPool(pool dequeuer) {
	g.pool = pool
}

func (g *gallery) NumberOfSections() int {
	return len(g.heights)
}

func (g *gallery) NumberOfItems(section int) int {
	return len(g.heights[section])
}

func (g *gallery) NumberOfColumns(int) int {
	return g.layout.Columns
}

func (g *gallery) ItemHeight(index flow.IndexPath) float64 {
	return g.heights[index.Section][index.Item]
}

func (g *gallery) Margin(_ int, kind flow.MarginKind) float64 {
	return g.layout.Margin(kind)
}

func (g *gallery) Inset() flow.Insets {
	return g.layout.Insets()
}

func (g *gallery) ItemView(index flow.IndexPath) flow.View {
	var cell *waterflow.TextCell
	if v, ok := g.pool.DequeueReusableItem(itemID).(*waterflow.TextCell); ok {
		cell = v
	} else {
		g.created++
		cell = waterflow.NewTextCell(itemID)
		cell.SetBorderPadding(0, 0, 1, 1)
	}
	cell.SetBackgroundColor(palette[(index.Section+index.Item)%len(palette)])
	cell.SetText(fmt.Sprintf("Item %d.%d (%g rows)", index.Section, index.Item, g.heights[index.Section][index.Item]))
	return cell
}

func (g *gallery) SectionHeaderView(section int) flow.HeaderFooterView {
	if g.demo.HeaderHeight == 0 {
		return nil
	}
	cell, ok := g.pool.DequeueReusableSectionHeader(headerID).(*waterflow.TextCell)
	if !ok {
		cell = newBanner(headerID)
	}
	cell.SetHeight(float64(g.demo.HeaderHeight))
	cell.SetText(fmt.Sprintf("Section %d", section))
	return cell
}

func (g *gallery) SectionFooterView(section int) flow.HeaderFooterView {
	if g.demo.FooterHeight == 0 {
		return nil
	}
	cell, ok := g.pool.DequeueReusableSectionFooter(footerID).(*waterflow.TextCell)
	if !ok {
		cell = newBanner(footerID)
		cell.SetTextStyle(tcell.StyleDefault.Foreground(waterflow.Styles.TertiaryTextColor))
	}
	cell.SetHeight(float64(g.demo.FooterHeight))
	cell.SetText(fmt.Sprintf("%d items", len(g.heights[section])))
	return cell
}

func (g *gallery) DidSelect(index flow.IndexPath) {
	g.log.Debug("Item selected", zap.Stringer("index", index))
	if g.selected != nil {
		g.selected(index)
	}
}

// globalViews returns the views shown above and below every section,
// nil for the ones the configuration leaves out.
func (g *gallery) globalViews() (header, footer flow.HeaderFooterView) {
	if g.demo.GlobalHeader {
		header = newBanner("global").SetHeight(1).
			SetText(fmt.Sprintf("waterflow: %d sections, %d columns", len(g.heights), g.layout.Columns))
	}
	if g.demo.GlobalFooter {
		footer = newBanner("global").SetHeight(1).SetText("end of content")
	}
	return header, footer
}

func newBanner(id string) *waterflow.TextCell {
	cell := waterflow.NewTextCell(id)
	cell.SetBackgroundColor(waterflow.Styles.HeaderBackgroundColor)
	cell.SetTextStyle(tcell.StyleDefault.Foreground(waterflow.Styles.SecondaryTextColor).Bold(true))
	cell.SetAlignment(waterflow.AlignmentCenter)
	return cell
}
