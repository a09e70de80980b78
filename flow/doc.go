// Package flow implements a masonry ("waterfall") layout engine for a
// vertically scrolling viewport.
//
// Items of variable height are distributed across a fixed number of columns
// per section, each one placed into the currently shortest column. Sections
// may carry a header and a footer view, and section headers can optionally
// stick to the top edge of the viewport while their section is scrolled
// through.
//
// The package is split into a pure part and a stateful part. [Compute] turns
// a [LayoutInput] into a [Layout] without touching any view. The [Engine]
// drives a host supplied [Viewport]: it resolves sizes through the
// [DataSource] and [Delegate] collaborators, computes the layout on
// [Engine.ReloadData] and, on every scroll or size change, attaches the views
// whose frames intersect the visible range while returning the others to
// per-category reuse pools.
//
// All methods are meant to be called from a single goroutine, typically the
// host's UI event loop. A pass triggered from inside another pass (for example
// a reload requested by a data source callback) is rejected with
// [ErrReentrantPass].
package flow
