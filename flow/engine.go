package flow

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Engine lays out the sections of a DataSource on a Viewport and keeps the
// visible part of the layout backed by views.
//
// The host calls ReloadData whenever its data changes, DidScroll whenever the
// content offset changes and LayoutSubviews whenever the viewport is resized
// or redrawn.
type Engine struct {
	viewport Viewport
	resolver *resolver
	logger   *zap.Logger

	pools    *Pools
	recycler *Recycler
	sticky   *StickyHeaders

	stickyEnabled bool
	poolLimit     int
	header        HeaderFooterView
	footer        HeaderFooterView

	layout *Layout
	// running is set while a pass is in progress.
	running string
}

// NewEngine returns an engine placing views on viewport. Nothing is laid out
// until ReloadData is called.
func NewEngine(viewport Viewport, options ...Option) *Engine {
	e := &Engine{
		viewport: viewport,
		resolver: &resolver{},
		logger:   zap.NewNop(),
	}
	for _, option := range options {
		option(e)
	}

	e.pools = NewPools(e.poolLimit)
	e.recycler = newRecycler(viewport, e.pools, e.resolver, e.logger)
	e.recycler.skipHeaders = e.stickyEnabled
	e.recycler.global[globalHeader] = e.header
	e.recycler.global[globalFooter] = e.footer
	if e.stickyEnabled {
		e.sticky = newStickyHeaders(viewport, e.logger)
	}
	return e
}

// SetDataSource replaces the data source. Call ReloadData afterwards.
func (e *Engine) SetDataSource(ds DataSource) *Engine {
	e.resolver.dataSource = ds
	return e
}

// SetDelegate replaces the delegate. Call ReloadData afterwards.
func (e *Engine) SetDelegate(d Delegate) *Engine {
	e.resolver.delegate = d
	return e
}

// StickyHeaders reports whether section headers stick to the viewport top.
func (e *Engine) StickyHeaders() bool {
	return e.stickyEnabled
}

// Layout returns the installed layout, nil before the first successful
// reload.
func (e *Engine) Layout() *Layout {
	return e.layout
}

// Logger returns the logger given with WithLogger, a no-op logger otherwise.
func (e *Engine) Logger() *zap.Logger {
	return e.logger
}

// NumberOfSections returns the number of sections reported by the data
// source, zero without one.
func (e *Engine) NumberOfSections() int {
	return e.resolver.sections()
}

// enter marks the start of a pass. A pass may not start while another one is
// running.
func (e *Engine) enter(trigger string) error {
	if e.running != "" {
		e.logger.Error("Re-entrant pass rejected",
			zap.String("trigger", trigger),
			zap.String("running", e.running))
		return fmt.Errorf("%s during %s: %w", trigger, e.running, ErrReentrantPass)
	}
	if e.viewport == nil {
		return ErrNoViewport
	}
	e.running = trigger
	return nil
}

func (e *Engine) leave() {
	e.running = ""
}

// ReloadData recomputes the layout from the data source and delegate and
// replaces every displayed view. When the new layout cannot be computed the
// previous one stays installed, together with its views.
func (e *Engine) ReloadData() error {
	if err := e.enter("reload"); err != nil {
		return err
	}
	defer e.leave()

	in, headers, footers, err := e.measure()
	if err == nil {
		var layout *Layout
		if layout, err = Compute(in); err == nil {
			e.install(layout, headers, footers)
			return nil
		}
	}

	// Measured views nobody displays go back to their pools.
	for _, v := range headers {
		if !e.owned(v) {
			e.pools.ReleaseHeader(v)
		}
	}
	for _, v := range footers {
		if !e.owned(v) {
			e.pools.ReleaseFooter(v)
		}
	}
	e.logger.Warn("Reload failed, keeping previous layout", zap.Error(err))
	return fmt.Errorf("reload: %w", err)
}

// measure asks the collaborators for everything Compute needs. Section header
// and footer views are requested here to learn their heights.
func (e *Engine) measure() (LayoutInput, map[int]HeaderFooterView, map[int]HeaderFooterView, error) {
	var (
		err     error
		headers = make(map[int]HeaderFooterView)
		footers = make(map[int]HeaderFooterView)
	)
	in := LayoutInput{
		Width: e.viewport.Width(),
		Inset: e.resolver.inset(),
	}
	if e.header != nil {
		h := e.header.PreferredHeight()
		in.Header = &h
	}
	if e.footer != nil {
		h := e.footer.PreferredHeight()
		in.Footer = &h
	}

	n := e.resolver.sections()
	in.Sections = make([]SectionInput, n)
	for s := range n {
		section := &in.Sections[s]
		section.Columns = e.resolver.columns(s)
		section.Margins = e.resolver.margins(s)

		count := e.resolver.items(s)
		if count < 0 {
			err = multierr.Append(err, fmt.Errorf("section %d: item count %d is negative", s, count))
			count = 0
		}
		section.Heights = make([]float64, count)
		for i := range count {
			section.Heights[i] = e.resolver.itemHeight(IndexPath{Section: s, Item: i})
		}

		if v := e.resolver.headerView(s); v != nil {
			h := v.PreferredHeight()
			section.Header = &h
			headers[s] = v
		}
		if v := e.resolver.footerView(s); v != nil {
			h := v.PreferredHeight()
			section.Footer = &h
			footers[s] = v
		}
	}
	return in, headers, footers, err
}

// owned reports whether v is currently displayed or held by the sticky
// controller.
func (e *Engine) owned(v View) bool {
	if e.recycler.isDisplayed(v) {
		return true
	}
	if e.sticky != nil {
		for s := range e.sticky.headers {
			if e.sticky.headers[s] == v {
				return true
			}
		}
	}
	return false
}

func (e *Engine) install(layout *Layout, headers, footers map[int]HeaderFooterView) {
	e.recycler.Flush()

	if e.sticky != nil {
		for _, v := range headers {
			e.pools.headers.Remove(v)
		}
		for _, v := range e.sticky.Reset(layout, headers) {
			e.pools.ReleaseHeader(v)
		}
	} else {
		for _, v := range headers {
			e.pools.ReleaseHeader(v)
		}
	}
	for _, v := range footers {
		e.pools.ReleaseFooter(v)
	}

	e.layout = layout
	e.viewport.SetContentHeight(layout.ContentHeight)
	e.logger.Debug("Layout reloaded",
		zap.Int("sections", layout.NumberOfSections()),
		zap.Float64("width", layout.Width),
		zap.Float64("content_height", layout.ContentHeight))

	e.pass()
}

// pass runs the visibility pass followed by the sticky header update.
func (e *Engine) pass() {
	e.recycler.Pass(e.layout)
	if e.sticky != nil && e.layout != nil {
		e.sticky.Update(e.viewport.ContentOffset(), e.viewport.VisibleHeight())
	}
}

// LayoutSubviews re-runs the visibility pass, for example after the viewport
// was resized. A width change is not picked up until the next ReloadData.
func (e *Engine) LayoutSubviews() error {
	if err := e.enter("layout"); err != nil {
		return err
	}
	defer e.leave()

	e.pass()
	return nil
}

// DidScroll notifies the delegate and re-runs the visibility pass for the
// current content offset.
func (e *Engine) DidScroll() error {
	if err := e.enter("scroll"); err != nil {
		return err
	}
	defer e.leave()

	e.resolver.didScroll()
	e.pass()
	return nil
}

// SelectAt selects the displayed item under the content point (x, y) and
// notifies the delegate.
func (e *Engine) SelectAt(x, y float64) (IndexPath, bool) {
	index, ok := e.recycler.ItemAt(x, y)
	if !ok {
		return IndexPath{}, false
	}
	e.logger.Debug("Item selected", zap.Stringer("index", index))
	e.resolver.didSelect(index)
	return index, true
}

// Select notifies the delegate that the item at index was selected. It
// returns false when the installed layout has no such item.
func (e *Engine) Select(index IndexPath) bool {
	if _, ok := e.layout.ItemFrame(index); !ok {
		return false
	}
	e.resolver.didSelect(index)
	return true
}

// ItemWidth returns the width of every item of section for the current
// viewport width. It panics when section is not below NumberOfSections or
// the engine has no viewport.
func (e *Engine) ItemWidth(section int) float64 {
	if e.viewport == nil {
		panic(fmt.Sprintf("flow: item width requested for section %d: %v", section, ErrNoViewport))
	}
	if n := e.resolver.sections(); section < 0 || section >= n {
		panic(fmt.Sprintf("flow: item width requested for section %d, data source has %d sections", section, n))
	}
	return ItemWidthFor(e.viewport.Width(), e.resolver.columns(section), e.resolver.margins(section), e.resolver.inset())
}

// DequeueReusableItem returns a pooled item view carrying id, or nil when a
// new one has to be created.
func (e *Engine) DequeueReusableItem(id string) View {
	return e.pools.LendItem(id)
}

// DequeueReusableSectionHeader returns a pooled header view carrying id, or
// nil when a new one has to be created.
func (e *Engine) DequeueReusableSectionHeader(id string) View {
	return e.pools.LendHeader(id)
}

// DequeueReusableSectionFooter returns a pooled footer view carrying id, or
// nil when a new one has to be created.
func (e *Engine) DequeueReusableSectionFooter(id string) View {
	return e.pools.LendFooter(id)
}

// ItemView returns the view currently displayed for index.
func (e *Engine) ItemView(index IndexPath) (View, bool) {
	return e.recycler.ItemView(index)
}

// DisplayedItems returns the indexes of every displayed item in order.
func (e *Engine) DisplayedItems() []IndexPath {
	return e.recycler.DisplayedItems()
}

// HeaderView returns the view showing the header of section, whether it is
// displayed inline or held by the sticky controller.
func (e *Engine) HeaderView(section int) (View, bool) {
	if e.sticky != nil {
		v, ok := e.sticky.Header(section)
		return v, ok
	}
	return e.recycler.HeaderView(section)
}

// FooterView returns the view displayed for the footer of section.
func (e *Engine) FooterView(section int) (View, bool) {
	return e.recycler.FooterView(section)
}

// StickyState returns the state of the sticky header controller, idle when
// sticky headers are disabled.
func (e *Engine) StickyState() StickyState {
	if e.sticky == nil {
		return StickyState{Phase: StickyIdle}
	}
	return e.sticky.State()
}

// PoolStats returns the number of views waiting in each pool.
func (e *Engine) PoolStats() PoolStats {
	return e.pools.Stats()
}
