package flow

import (
	"fmt"

	"go.uber.org/zap"
)

// StickyPhase is the phase of the sticky header controller.
type StickyPhase int

const (
	// StickyIdle means there is nothing to pin: sticky headers are disabled or
	// no layout is installed.
	StickyIdle StickyPhase = iota
	// StickyResting means the tracked header sits at its static position.
	StickyResting
	// StickyPinned means the tracked header floats at the viewport top.
	StickyPinned
	// StickyHandingOff means the tracked header is sliding up, pushed out by
	// the end of its section.
	StickyHandingOff
)

var stickyPhaseNames = [...]string{
	StickyIdle:       "idle",
	StickyResting:    "resting",
	StickyPinned:     "pinned",
	StickyHandingOff: "handing-off",
}

func (p StickyPhase) String() string {
	if p < StickyIdle || p > StickyHandingOff {
		return fmt.Sprintf("StickyPhase(%d)", int(p))
	}
	return stickyPhaseNames[p]
}

// StickyState is a snapshot of the sticky header controller.
type StickyState struct {
	Phase StickyPhase
	// Section is the index of the tracked section.
	Section int
	// Baseline is the content y at which the tracked header starts sticking.
	Baseline float64
	// FloatY is the viewport relative y of the floating header, between minus
	// the header height and zero.
	FloatY float64
}

// stickyEpsilon keeps a header which was just handed over from being taken
// back at the exact same offset.
const stickyEpsilon = 0.001

type headerMode int

const (
	headerDetached headerMode = iota
	headerInline
	headerFloating
)

// StickyHeaders pins the header of the section being scrolled through to the
// viewport top. It owns every section header view while enabled: one of them
// floats, the others are attached at their static frames while in view and
// detached otherwise. Owned headers are never pooled.
type StickyHeaders struct {
	viewport Viewport
	logger   *zap.Logger

	layout  *Layout
	headers map[int]HeaderFooterView
	modes   map[int]headerMode
	state   StickyState
}

func newStickyHeaders(viewport Viewport, logger *zap.Logger) *StickyHeaders {
	return &StickyHeaders{
		viewport: viewport,
		logger:   logger,
		headers:  make(map[int]HeaderFooterView),
		modes:    make(map[int]headerMode),
	}
}

// State returns the current state.
func (s *StickyHeaders) State() StickyState {
	return s.state
}

// Header returns the header view owned for section.
func (s *StickyHeaders) Header(section int) (HeaderFooterView, bool) {
	v, ok := s.headers[section]
	return v, ok
}

// Reset detaches every owned header, takes ownership of headers for layout
// and starts over at section 0. It returns the previously owned views which
// are not part of headers.
func (s *StickyHeaders) Reset(layout *Layout, headers map[int]HeaderFooterView) []HeaderFooterView {
	var released []HeaderFooterView
	keep := make(map[HeaderFooterView]struct{}, len(headers))
	for _, v := range headers {
		keep[v] = struct{}{}
	}
	for section, v := range s.headers {
		if s.modes[section] != headerDetached {
			s.viewport.Detach(v)
		}
		if _, ok := keep[v]; !ok {
			released = append(released, v)
		}
	}
	clear(s.headers)
	clear(s.modes)
	for section, v := range headers {
		if v != nil {
			s.headers[section] = v
		}
	}

	s.layout = layout
	s.state = StickyState{Phase: StickyIdle}
	if layout.NumberOfSections() > 0 {
		s.state = StickyState{Phase: StickyResting, Baseline: layout.Sections[0].Top}
	}
	return released
}

// Update moves the pinned header for the given offset. A large jump walks
// through every section in between, one at a time.
func (s *StickyHeaders) Update(offset, visibleHeight float64) {
	n := s.layout.NumberOfSections()
	if n == 0 {
		s.state = StickyState{Phase: StickyIdle}
		return
	}

	k := s.state.Section
	if k >= n {
		k = n - 1
	}
	if offset <= 0 {
		if k != 0 {
			s.logger.Debug("Sticky header reset", zap.Int("from", k))
		}
		k = 0
	} else {
		for k+1 < n && offset >= s.layout.Sections[k].End {
			k++
			s.logger.Debug("Sticky header advanced", zap.Int("section", k), zap.Float64("offset", offset))
		}
		for k > 0 && offset <= s.layout.Sections[k].Top-stickyEpsilon {
			k--
			s.logger.Debug("Sticky header retreated", zap.Int("section", k), zap.Float64("offset", offset))
		}
	}

	section := &s.layout.Sections[k]
	state := StickyState{Phase: StickyResting, Section: k, Baseline: section.Top}
	_, owned := s.headers[k]
	if owned && section.Header != nil && offset > section.Top {
		h := section.Header.Height
		state.Phase = StickyPinned
		if start := section.End - h; offset >= start {
			state.Phase = StickyHandingOff
			state.FloatY = -min(max(offset-start, 0), h)
		}
	}
	s.state = state
	s.place(offset, visibleHeight)
}

// place attaches, floats or detaches every owned header for the current
// state.
func (s *StickyHeaders) place(offset, visibleHeight float64) {
	floating := -1
	if s.state.Phase == StickyPinned || s.state.Phase == StickyHandingOff {
		floating = s.state.Section
	}
	for section, v := range s.headers {
		var frame *Rect
		if section < s.layout.NumberOfSections() {
			frame = s.layout.Sections[section].Header
		}
		switch {
		case frame == nil:
			s.setMode(section, v, headerDetached, Rect{})
		case section == floating:
			s.setMode(section, v, headerFloating, Rect{
				X:      0,
				Y:      s.state.FloatY,
				Width:  frame.Width,
				Height: frame.Height,
			})
		case InView(*frame, offset, visibleHeight):
			s.setMode(section, v, headerInline, *frame)
		default:
			s.setMode(section, v, headerDetached, Rect{})
		}
	}
}

func (s *StickyHeaders) setMode(section int, v HeaderFooterView, mode headerMode, frame Rect) {
	previous := s.modes[section]
	switch mode {
	case headerDetached:
		if previous != headerDetached {
			s.viewport.Detach(v)
		}
	case headerInline:
		if previous != headerInline {
			s.viewport.Attach(v, frame)
		}
	case headerFloating:
		// The floating frame moves during a hand-off, so it is refreshed on
		// every update.
		s.viewport.Float(v, frame)
	}
	s.modes[section] = mode
}
