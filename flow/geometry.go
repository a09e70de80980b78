package flow

import "fmt"

// IndexPath identifies a single item within a layout.
type IndexPath struct {
	Section int
	Item    int
}

// NewIndexPath returns the index path for the given section and item.
func NewIndexPath(section, item int) IndexPath {
	return IndexPath{Section: section, Item: item}
}

// String implements fmt.Stringer.
func (p IndexPath) String() string {
	return fmt.Sprintf("[%d,%d]", p.Section, p.Item)
}

// Less reports whether p is ordered before o (section first, then item).
func (p IndexPath) Less(o IndexPath) bool {
	if p.Section != o.Section {
		return p.Section < o.Section
	}
	return p.Item < o.Item
}

// Rect is a placement in content coordinates. Y grows downwards through the
// whole scrollable document and does not depend on the current scroll offset.
type Rect struct {
	X, Y, Width, Height float64
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Contains reports whether the point lies within the rectangle. The minimum
// edges are inclusive, the maximum edges exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX() && x < r.MaxX() && y >= r.MinY() && y < r.MaxY()
}

// Intersects reports whether both rectangles overlap vertically and
// horizontally. Rectangles which only touch do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// Offset returns the rectangle moved by dx and dy.
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// String implements fmt.Stringer.
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// Insets describe the distance kept between the content and the viewport
// edges. Only Left and Right take part in the layout, Top and Bottom are
// carried for hosts which pad their scrolling surface.
type Insets struct {
	Top, Left, Bottom, Right float64
}
