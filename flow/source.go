package flow

// View is a host rendered item, header or footer. The reuse identifier is an
// arbitrary category chosen by the host; pooled views are only handed out
// again for the identifier they carry.
//
// Views are used as map keys, so implementations must be comparable. Pointer
// types are the natural choice.
type View interface {
	ReuseIdentifier() string
}

// HeaderFooterView is a section header or footer, or the global header and
// footer of the layout. Its preferred height decides the height of the frame
// it is placed in; the width always spans the viewport.
type HeaderFooterView interface {
	View
	PreferredHeight() float64
}

// DataSource supplies the structure of the layout and the item views.
type DataSource interface {
	// NumberOfSections returns the number of sections.
	NumberOfSections() int
	// NumberOfItems returns the number of items in the given section.
	NumberOfItems(section int) int
	// ItemView returns the view for an item which has just become visible.
	// Implementations should call Engine.DequeueReusableItem before creating
	// a new view. Returning nil leaves the position empty until the next pass.
	ItemView(index IndexPath) View
}

// ColumnCounter is implemented by data sources which vary the number of
// columns. Without it every section has DefaultColumnCount columns.
type ColumnCounter interface {
	NumberOfColumns(section int) int
}

// Delegate is any value implementing zero or more of the capability
// interfaces below. A missing capability resolves to its documented default.
type Delegate any

// ItemHeighter provides the height of every item. Default: DefaultItemHeight.
type ItemHeighter interface {
	ItemHeight(index IndexPath) float64
}

// MarginProvider provides per-section spacing. Default: DefaultMargin.
type MarginProvider interface {
	Margin(section int, kind MarginKind) float64
}

// InsetProvider provides the content inset. Default: zero insets.
type InsetProvider interface {
	Inset() Insets
}

// SectionHeaderProvider returns the header view of a section, or nil when the
// section has no header. Implementations should call
// Engine.DequeueReusableSectionHeader before creating a new view.
type SectionHeaderProvider interface {
	SectionHeaderView(section int) HeaderFooterView
}

// SectionFooterProvider returns the footer view of a section, or nil when the
// section has no footer. Implementations should call
// Engine.DequeueReusableSectionFooter before creating a new view.
type SectionFooterProvider interface {
	SectionFooterView(section int) HeaderFooterView
}

// SelectionHandler is notified when an item is selected.
type SelectionHandler interface {
	DidSelect(index IndexPath)
}

// ScrollHandler is notified whenever the content offset changes.
type ScrollHandler interface {
	DidScroll()
}

// resolver answers layout questions, falling back to the defaults wherever a
// collaborator or one of its capabilities is absent.
type resolver struct {
	dataSource DataSource
	delegate   Delegate
}

func (r resolver) sections() int {
	if r.dataSource == nil {
		return 0
	}
	return max(r.dataSource.NumberOfSections(), 0)
}

func (r resolver) items(section int) int {
	if r.dataSource == nil {
		return 0
	}
	return r.dataSource.NumberOfItems(section)
}

func (r resolver) columns(section int) int {
	if c, ok := r.dataSource.(ColumnCounter); ok {
		return c.NumberOfColumns(section)
	}
	return DefaultColumnCount
}

func (r resolver) itemHeight(index IndexPath) float64 {
	if h, ok := r.delegate.(ItemHeighter); ok {
		return h.ItemHeight(index)
	}
	return DefaultItemHeight
}

func (r resolver) margin(section int, kind MarginKind) float64 {
	if m, ok := r.delegate.(MarginProvider); ok {
		return m.Margin(section, kind)
	}
	return DefaultMargin
}

func (r resolver) margins(section int) Margins {
	var m Margins
	for _, kind := range MarginKinds() {
		m.Set(kind, r.margin(section, kind))
	}
	return m
}

func (r resolver) inset() Insets {
	if i, ok := r.delegate.(InsetProvider); ok {
		return i.Inset()
	}
	return Insets{}
}

func (r resolver) itemView(index IndexPath) View {
	if r.dataSource == nil {
		return nil
	}
	return r.dataSource.ItemView(index)
}

func (r resolver) headerView(section int) HeaderFooterView {
	if p, ok := r.delegate.(SectionHeaderProvider); ok {
		return p.SectionHeaderView(section)
	}
	return nil
}

func (r resolver) footerView(section int) HeaderFooterView {
	if p, ok := r.delegate.(SectionFooterProvider); ok {
		return p.SectionFooterView(section)
	}
	return nil
}

func (r resolver) didSelect(index IndexPath) {
	if h, ok := r.delegate.(SelectionHandler); ok {
		h.DidSelect(index)
	}
}

func (r resolver) didScroll() {
	if h, ok := r.delegate.(ScrollHandler); ok {
		h.DidScroll()
	}
}
