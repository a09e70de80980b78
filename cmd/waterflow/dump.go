package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"github.com/ayn2op/waterflow/flow"
)

// headless is a viewport without a screen. It tracks what would be shown.
type headless struct {
	width, height float64
	offset        float64
	contentHeight float64
	shown         map[flow.View]flow.Rect
	floating      map[flow.View]flow.Rect
}

func newHeadless(width, height float64) *headless {
	return &headless{
		width:    width,
		height:   height,
		shown:    make(map[flow.View]flow.Rect),
		floating: make(map[flow.View]flow.Rect),
	}
}

func (h *headless) ContentOffset() float64          { return h.offset }
func (h *headless) VisibleHeight() float64          { return h.height }
func (h *headless) Width() float64                  { return h.width }
func (h *headless) SetContentHeight(height float64) { h.contentHeight = height }

func (h *headless) Attach(v flow.View, frame flow.Rect) {
	delete(h.floating, v)
	h.shown[v] = frame
}

func (h *headless) Float(v flow.View, frame flow.Rect) {
	delete(h.shown, v)
	h.floating[v] = frame
}

func (h *headless) Detach(v flow.View) {
	delete(h.shown, v)
	delete(h.floating, v)
}

type (
	rectDump struct {
		X      float64 `yaml:"x"`
		Y      float64 `yaml:"y"`
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	}

	sectionDump struct {
		Top       float64    `yaml:"top"`
		End       float64    `yaml:"end"`
		Columns   int        `yaml:"columns"`
		ItemWidth float64    `yaml:"item_width"`
		Header    *rectDump  `yaml:"header,omitempty"`
		Items     []rectDump `yaml:"items,flow"`
		Footer    *rectDump  `yaml:"footer,omitempty"`
	}

	viewportDump struct {
		Offset    float64        `yaml:"offset"`
		Height    float64        `yaml:"height"`
		Displayed []string       `yaml:"displayed,flow"`
		Sticky    string         `yaml:"sticky"`
		FloatY    float64        `yaml:"float_y,omitempty"`
		Pools     flow.PoolStats `yaml:"pools"`
	}

	layoutDump struct {
		Width         float64       `yaml:"width"`
		ContentHeight float64       `yaml:"content_height"`
		Header        *rectDump     `yaml:"header,omitempty"`
		Sections      []sectionDump `yaml:"sections"`
		Footer        *rectDump     `yaml:"footer,omitempty"`
		Viewport      viewportDump  `yaml:"viewport"`
	}
)

func toRect(r flow.Rect) rectDump {
	return rectDump{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func toRectPtr(r *flow.Rect) *rectDump {
	if r == nil {
		return nil
	}
	d := toRect(*r)
	return &d
}

// dumpLayout lays the gallery out without a terminal, scrolls to offset and
// writes the result as YAML.
func dumpLayout(out io.Writer, g *gallery, width, height, offset float64, log *zap.Logger, options ...flow.Option) error {
	vp := newHeadless(width, height)
	header, footer := g.globalViews()
	if header != nil {
		options = append(options, flow.WithGlobalHeader(header))
	}
	if footer != nil {
		options = append(options, flow.WithGlobalFooter(footer))
	}
	options = append(options, flow.WithDataSource(g), flow.WithDelegate(g))

	e := flow.NewEngine(vp, options...)
	g.setPool(e)
	if err := e.ReloadData(); err != nil {
		return err
	}
	if offset != 0 {
		vp.offset = offset
		if err := e.DidScroll(); err != nil {
			return err
		}
	}

	layout := e.Layout()
	dump := layoutDump{
		Width:         layout.Width,
		ContentHeight: layout.ContentHeight,
		Header:        toRectPtr(layout.Header),
		Footer:        toRectPtr(layout.Footer),
		Sections:      make([]sectionDump, 0, len(layout.Sections)),
	}
	for _, s := range layout.Sections {
		sd := sectionDump{
			Top:       s.Top,
			End:       s.End,
			Columns:   s.Columns,
			ItemWidth: s.ItemWidth,
			Header:    toRectPtr(s.Header),
			Footer:    toRectPtr(s.Footer),
			Items:     make([]rectDump, 0, len(s.Items)),
		}
		for _, item := range s.Items {
			sd.Items = append(sd.Items, toRect(item))
		}
		dump.Sections = append(dump.Sections, sd)
	}

	state := e.StickyState()
	dump.Viewport = viewportDump{
		Offset: vp.offset,
		Height: vp.height,
		Sticky: state.Phase.String(),
		FloatY: state.FloatY,
		Pools:  e.PoolStats(),
	}
	if state.Phase != flow.StickyIdle {
		dump.Viewport.Sticky = fmt.Sprintf("%s section %d", state.Phase, state.Section)
	}
	for _, index := range e.DisplayedItems() {
		dump.Viewport.Displayed = append(dump.Viewport.Displayed, index.String())
	}

	log.Debug("Layout dumped",
		zap.Int("sections", len(dump.Sections)),
		zap.Float64("content_height", dump.ContentHeight),
		zap.Int("displayed", len(dump.Viewport.Displayed)))

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		return fmt.Errorf("unable to encode layout: %w", err)
	}
	return enc.Close()
}

func runDump(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	out := os.Stdout
	if fname := cmd.Args().First(); len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	}

	g := newGallery(env.Cfg, env.Log)
	return dumpLayout(out, g,
		float64(cmd.Int("width")), float64(cmd.Int("height")), float64(cmd.Int("offset")),
		env.Log, env.Cfg.Layout.EngineOptions(env.Log)...)
}
