package flow

import (
	"sort"

	"go.uber.org/zap"
)

// Viewport is the scrolling surface the engine places views on. All
// coordinates handed to Attach are content coordinates; Float takes a frame
// relative to the top of the visible area.
type Viewport interface {
	// ContentOffset returns the content y shown at the top of the viewport.
	ContentOffset() float64
	// VisibleHeight returns the height of the visible area.
	VisibleHeight() float64
	// Width returns the width frames are laid out for.
	Width() float64
	// SetContentHeight sets the total scrollable height.
	SetContentHeight(height float64)
	// Attach shows v at frame, moving it there if it is already shown.
	Attach(v View, frame Rect)
	// Float shows v above the content at a viewport relative frame, moving it
	// there if it is already shown.
	Float(v View, frame Rect)
	// Detach stops showing v.
	Detach(v View)
}

// InView reports whether frame overlaps the visible range
// [offset, offset+height). A frame touching either edge is not in view.
func InView(frame Rect, offset, height float64) bool {
	return frame.MaxY() > offset && frame.MinY() < offset+height
}

// Recycler keeps exactly the visible frames backed by views. Each pass
// attaches views for frames scrolling in and releases views of frames
// scrolling out into the pools.
type Recycler struct {
	viewport Viewport
	pools    *Pools
	resolver *resolver
	logger   *zap.Logger

	layout *Layout

	// Section headers are left alone when the sticky controller owns them.
	skipHeaders bool

	items   map[IndexPath]View
	headers map[int]View
	footers map[int]View
	// shown holds every view attached through attach, globals included.
	shown map[View]struct{}

	global         [2]HeaderFooterView
	globalAttached [2]bool
}

const (
	globalHeader = iota
	globalFooter
)

func newRecycler(viewport Viewport, pools *Pools, r *resolver, logger *zap.Logger) *Recycler {
	return &Recycler{
		viewport: viewport,
		pools:    pools,
		resolver: r,
		logger:   logger,
		items:    make(map[IndexPath]View),
		headers:  make(map[int]View),
		footers:  make(map[int]View),
		shown:    make(map[View]struct{}),
	}
}

// Pass attaches views for every frame of layout in view and releases the
// views of frames that left it.
func (r *Recycler) Pass(layout *Layout) {
	r.layout = layout
	offset := r.viewport.ContentOffset()
	height := r.viewport.VisibleHeight()

	r.sweep(offset, height)
	if layout == nil {
		return
	}

	for i, frame := range []*Rect{layout.Header, layout.Footer} {
		v := r.global[i]
		if v == nil || frame == nil {
			continue
		}
		visible := InView(*frame, offset, height)
		switch {
		case visible && !r.globalAttached[i]:
			r.attach(v, *frame)
			r.globalAttached[i] = true
		case !visible && r.globalAttached[i]:
			r.detach(v)
			r.globalAttached[i] = false
		}
	}

	for s := range layout.Sections {
		section := &layout.Sections[s]
		// Sections entirely outside the visible range have nothing to attach.
		if section.MaxY <= offset || section.MinY >= offset+height {
			continue
		}
		if !r.skipHeaders && section.Header != nil && InView(*section.Header, offset, height) {
			if _, ok := r.headers[s]; !ok {
				if v := r.resolver.headerView(s); r.claim(v) {
					r.attach(v, *section.Header)
					r.headers[s] = v
				}
			}
		}
		for i, frame := range section.Items {
			if !InView(frame, offset, height) {
				continue
			}
			index := IndexPath{Section: s, Item: i}
			if _, ok := r.items[index]; ok {
				continue
			}
			v := r.resolver.itemView(index)
			if v == nil {
				r.logger.Warn("Data source returned no item view", zap.Stringer("index", index))
				continue
			}
			if !r.claim(v) {
				continue
			}
			r.attach(v, frame)
			r.items[index] = v
		}
		if section.Footer != nil && InView(*section.Footer, offset, height) {
			if _, ok := r.footers[s]; !ok {
				if v := r.resolver.footerView(s); r.claim(v) {
					r.attach(v, *section.Footer)
					r.footers[s] = v
				}
			}
		}
	}
}

// sweep releases every displayed view whose frame is gone or out of view.
func (r *Recycler) sweep(offset, height float64) {
	for index, v := range r.items {
		frame, ok := r.layout.ItemFrame(index)
		if ok && InView(frame, offset, height) {
			continue
		}
		r.detach(v)
		delete(r.items, index)
		r.pools.ReleaseItem(index.Section, v)
	}
	for s, v := range r.headers {
		if frame := r.sectionFrame(s, true); frame != nil && !r.skipHeaders && InView(*frame, offset, height) {
			continue
		}
		r.detach(v)
		delete(r.headers, s)
		r.pools.ReleaseHeader(v)
	}
	for s, v := range r.footers {
		if frame := r.sectionFrame(s, false); frame != nil && InView(*frame, offset, height) {
			continue
		}
		r.detach(v)
		delete(r.footers, s)
		r.pools.ReleaseFooter(v)
	}
}

func (r *Recycler) sectionFrame(section int, header bool) *Rect {
	if section < 0 || section >= r.layout.NumberOfSections() {
		return nil
	}
	if header {
		return r.layout.Sections[section].Header
	}
	return r.layout.Sections[section].Footer
}

// claim makes sure v is not shown anywhere else and not pooled before it is
// attached. It returns false when v cannot be used.
func (r *Recycler) claim(v View) bool {
	if v == nil {
		return false
	}
	if r.displayed(v) {
		r.logger.Warn("View is already displayed, skipping", zap.String("reuse_identifier", v.ReuseIdentifier()))
		return false
	}
	r.pools.remove(v)
	return true
}

func (r *Recycler) displayed(v View) bool {
	_, ok := r.shown[v]
	return ok
}

func (r *Recycler) attach(v View, frame Rect) {
	r.viewport.Attach(v, frame)
	r.shown[v] = struct{}{}
}

func (r *Recycler) detach(v View) {
	r.viewport.Detach(v)
	delete(r.shown, v)
}

// Flush detaches every displayed view ahead of a reload. Headers and footers
// are pooled. Item views are dropped and the item pools are cleared, so items
// are always rebuilt by the data source after a reload.
func (r *Recycler) Flush() {
	for s, v := range r.headers {
		r.detach(v)
		r.pools.ReleaseHeader(v)
		delete(r.headers, s)
	}
	for s, v := range r.footers {
		r.detach(v)
		r.pools.ReleaseFooter(v)
		delete(r.footers, s)
	}
	for index, v := range r.items {
		r.detach(v)
		delete(r.items, index)
	}
	r.pools.ClearItems()
	for i, v := range r.global {
		if r.globalAttached[i] {
			r.detach(v)
			r.globalAttached[i] = false
		}
	}
	r.layout = nil
}

// ItemAt returns the index of the displayed item whose frame contains the
// content point (x, y).
func (r *Recycler) ItemAt(x, y float64) (IndexPath, bool) {
	for index := range r.items {
		if frame, ok := r.layout.ItemFrame(index); ok && frame.Contains(x, y) {
			return index, true
		}
	}
	return IndexPath{}, false
}

// ItemView returns the view displayed for index.
func (r *Recycler) ItemView(index IndexPath) (View, bool) {
	v, ok := r.items[index]
	return v, ok
}

// HeaderView returns the header view displayed inline for section. It is
// always empty while the sticky controller owns the headers.
func (r *Recycler) HeaderView(section int) (View, bool) {
	v, ok := r.headers[section]
	return v, ok
}

// FooterView returns the footer view displayed for section.
func (r *Recycler) FooterView(section int) (View, bool) {
	v, ok := r.footers[section]
	return v, ok
}

// DisplayedItems returns the indexes of every displayed item in order.
func (r *Recycler) DisplayedItems() []IndexPath {
	indexes := make([]IndexPath, 0, len(r.items))
	for index := range r.items {
		indexes = append(indexes, index)
	}
	sort.Slice(indexes, func(i, j int) bool { return indexes[i].Less(indexes[j]) })
	return indexes
}

// isDisplayed reports whether v is currently attached by the recycler.
func (r *Recycler) isDisplayed(v View) bool {
	return v != nil && r.displayed(v)
}
