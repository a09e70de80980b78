package flow

import "sort"

// ReusePool is an unordered set of detached views grouped by reuse
// identifier. Lend hands out any matching view; callers must not rely on
// FIFO or LIFO order.
//
// Pools are unbounded unless SetLimit is used, so a host which keeps
// introducing new identifiers keeps every view it ever released.
type ReusePool struct {
	views map[string]map[View]struct{}
	size  int
	limit int
}

// NewReusePool returns an empty, unbounded pool.
func NewReusePool() *ReusePool {
	return &ReusePool{views: make(map[string]map[View]struct{})}
}

// SetLimit bounds the number of views kept per reuse identifier. Zero means
// unbounded. Views already pooled above a lower limit are kept until lent.
func (p *ReusePool) SetLimit(limit int) {
	p.limit = max(limit, 0)
}

// Release puts v into the pool. Releasing the same view twice is a no-op. It
// returns false when v is nil, already pooled or dropped because its
// identifier is at the limit.
func (p *ReusePool) Release(v View) bool {
	if v == nil {
		return false
	}
	id := v.ReuseIdentifier()
	set, ok := p.views[id]
	if !ok {
		set = make(map[View]struct{})
		p.views[id] = set
	}
	if _, ok := set[v]; ok {
		return false
	}
	if p.limit > 0 && len(set) >= p.limit {
		return false
	}
	set[v] = struct{}{}
	p.size++
	return true
}

// Lend removes and returns a view carrying the reuse identifier id, or nil
// when the pool holds none.
func (p *ReusePool) Lend(id string) View {
	set := p.views[id]
	for v := range set {
		delete(set, v)
		p.size--
		return v
	}
	return nil
}

// Remove takes v out of the pool if it is there.
func (p *ReusePool) Remove(v View) bool {
	if v == nil {
		return false
	}
	set := p.views[v.ReuseIdentifier()]
	if _, ok := set[v]; !ok {
		return false
	}
	delete(set, v)
	p.size--
	return true
}

// Contains reports whether v is currently pooled.
func (p *ReusePool) Contains(v View) bool {
	if v == nil {
		return false
	}
	_, ok := p.views[v.ReuseIdentifier()][v]
	return ok
}

// Len returns the number of pooled views.
func (p *ReusePool) Len() int {
	return p.size
}

// Count returns the number of pooled views carrying the reuse identifier id.
func (p *ReusePool) Count(id string) int {
	return len(p.views[id])
}

// Clear drops every pooled view.
func (p *ReusePool) Clear() {
	clear(p.views)
	p.size = 0
}

// Identifiers returns the reuse identifiers with at least one pooled view,
// sorted.
func (p *ReusePool) Identifiers() []string {
	ids := make([]string, 0, len(p.views))
	for id, set := range p.views {
		if len(set) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// PoolStats is a snapshot of the pool sizes.
type PoolStats struct {
	Items   int
	Headers int
	Footers int
}

// Pools holds the three view pools of an engine. Item views are partitioned
// by the section they were displayed in. Headers and footers each share one
// flat pool.
type Pools struct {
	items   map[int]*ReusePool
	headers *ReusePool
	footers *ReusePool
	limit   int
}

// NewPools returns empty pools. A positive limit bounds every reuse
// identifier of every pool.
func NewPools(limit int) *Pools {
	p := &Pools{
		items:   make(map[int]*ReusePool),
		headers: NewReusePool(),
		footers: NewReusePool(),
		limit:   limit,
	}
	p.headers.SetLimit(limit)
	p.footers.SetLimit(limit)
	return p
}

// ReleaseItem pools an item view that was displayed in section.
func (p *Pools) ReleaseItem(section int, v View) bool {
	pool, ok := p.items[section]
	if !ok {
		pool = NewReusePool()
		pool.SetLimit(p.limit)
		p.items[section] = pool
	}
	return pool.Release(v)
}

// LendItem returns a pooled item view carrying id, searching every section
// in ascending order.
func (p *Pools) LendItem(id string) View {
	sections := make([]int, 0, len(p.items))
	for s := range p.items {
		sections = append(sections, s)
	}
	sort.Ints(sections)
	for _, s := range sections {
		if v := p.items[s].Lend(id); v != nil {
			return v
		}
	}
	return nil
}

// ReleaseHeader pools a section header view.
func (p *Pools) ReleaseHeader(v View) bool { return p.headers.Release(v) }

// LendHeader returns a pooled header view carrying id.
func (p *Pools) LendHeader(id string) View { return p.headers.Lend(id) }

// ReleaseFooter pools a section footer view.
func (p *Pools) ReleaseFooter(v View) bool { return p.footers.Release(v) }

// LendFooter returns a pooled footer view carrying id.
func (p *Pools) LendFooter(id string) View { return p.footers.Lend(id) }

// ClearItems drops every pooled item view. Header and footer pools survive.
func (p *Pools) ClearItems() {
	clear(p.items)
}

// Stats returns the number of views held in each pool.
func (p *Pools) Stats() PoolStats {
	var s PoolStats
	for _, pool := range p.items {
		s.Items += pool.Len()
	}
	s.Headers = p.headers.Len()
	s.Footers = p.footers.Len()
	return s
}

// remove takes v out of whichever pool holds it, so a view handed out by a
// collaborator without being dequeued is never pooled and displayed at once.
func (p *Pools) remove(v View) bool {
	if p.headers.Remove(v) || p.footers.Remove(v) {
		return true
	}
	for _, pool := range p.items {
		if pool.Remove(v) {
			return true
		}
	}
	return false
}
