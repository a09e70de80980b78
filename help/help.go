// Package help draws the key bindings of a view, either as a single line or
// as columns of bindings.
package help

import (
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ayn2op/waterflow"
	"github.com/ayn2op/waterflow/keybind"
)

// KeyMap is implemented by views that publish their key bindings.
type KeyMap interface {
	// ShortHelp returns the bindings for the one line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns groups of bindings, one column per group.
	FullHelp() [][]keybind.Keybind
}

const (
	itemSeparator = " • "
	columnGap     = "    "
	ellipsis      = "…"
)

// Help draws the bindings of a KeyMap. The short form fits one line and
// leaves room for a status text on the right; the full form shows every
// group in its own column and no status.
type Help struct {
	*waterflow.Box
	Styles Styles

	keyMap  KeyMap
	status  string
	showAll bool
}

func New() *Help {
	return &Help{
		Box:    waterflow.NewBox(),
		Styles: DefaultStyles(),
	}
}

func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	return h
}

// SetShowAll switches between the short and the full form.
func (h *Help) SetShowAll(showAll bool) *Help {
	h.showAll = showAll
	return h
}

func (h *Help) ShowAll() bool {
	return h.showAll
}

// SetStatus sets the text printed right aligned next to the short help.
func (h *Help) SetStatus(status string) *Help {
	if h.status != status {
		h.status = status
		h.MarkDirty()
	}
	return h
}

func (h *Help) Draw(screen tcell.Screen) {
	h.DrawFrame(screen)

	x, y, width, height := h.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	if h.status != "" && !h.showAll {
		_, printed := waterflow.PrintWithStyle(screen, h.status, x, y, width, waterflow.AlignmentRight, h.Styles.StatusStyle)
		width -= printed + 1
	}
	if h.keyMap == nil || width <= 0 {
		return
	}

	var lines []line
	if h.showAll {
		lines = h.fullLines(h.keyMap.FullHelp(), width)
	} else {
		lines = []line{h.shortLine(h.keyMap.ShortHelp(), width)}
	}
	for row, l := range lines[:min(len(lines), height)] {
		l.draw(screen, x, y+row, width)
	}
}

type segment struct {
	text  string
	style tcell.Style
}

// line is a row of differently styled text.
type line []segment

func (l line) width() int {
	width := 0
	for _, s := range l {
		width += waterflow.StringWidth(s.text)
	}
	return width
}

func (l line) draw(screen tcell.Screen, x, y, width int) {
	for _, s := range l {
		if width <= 0 {
			return
		}
		_, printed := waterflow.PrintWithStyle(screen, s.text, x, y, width, waterflow.AlignmentLeft, s.style)
		x += printed
		width -= printed
	}
}

// withEllipsis marks l as cut short, if the mark fits into width.
func (h *Help) withEllipsis(l line, width int) line {
	tail := line{{" ", h.Styles.EllipsisStyle}, {ellipsis, h.Styles.EllipsisStyle}}
	if l.width()+tail.width() > width {
		return l
	}
	return slices.Concat(l, tail)
}

// shortItem renders one binding as "key desc", nil when it shows nothing.
func (h *Help) shortItem(kb keybind.Keybind) line {
	if !kb.Enabled() {
		return nil
	}
	help := kb.Help()
	var l line
	if help.Key != "" {
		l = append(l, segment{help.Key, h.Styles.ShortKeyStyle})
	}
	if help.Key != "" && help.Desc != "" {
		l = append(l, segment{" ", h.Styles.ShortDescStyle})
	}
	if help.Desc != "" {
		l = append(l, segment{help.Desc, h.Styles.ShortDescStyle})
	}
	return l
}

// shortLine joins as many bindings as fit into width. The first binding is
// kept even when it is too wide, unless it is the only one.
func (h *Help) shortLine(bindings []keybind.Keybind, width int) line {
	separator := line{{itemSeparator, h.Styles.ShortSeparatorStyle}}

	var out line
	for _, kb := range bindings {
		item := h.shortItem(kb)
		if item == nil {
			continue
		}
		if out == nil {
			out = item
			continue
		}
		next := slices.Concat(out, separator, item)
		if next.width() > width {
			return h.withEllipsis(out, width)
		}
		out = next
	}
	if out.width() > width {
		return nil
	}
	return out
}

type entry struct {
	key, desc string
}

// column is one group of the full help. Keys are padded to the widest key so
// descriptions line up.
type column struct {
	entries  []entry
	keyWidth int
	width    int
}

func newColumn(group []keybind.Keybind) column {
	var c column
	for _, kb := range group {
		help := kb.Help()
		if !kb.Enabled() || help == (keybind.Help{}) {
			continue
		}
		c.entries = append(c.entries, entry{help.Key, help.Desc})
		c.keyWidth = max(c.keyWidth, waterflow.StringWidth(help.Key))
	}
	for _, e := range c.entries {
		w := c.keyWidth + waterflow.StringWidth(e.desc)
		if e.key != "" && e.desc != "" {
			w++
		}
		c.width = max(c.width, w)
	}
	return c
}

// row renders the entry in row r. With pad the result is exactly as wide as
// the column so the next column starts at the same x on every row.
func (c column) row(r int, pad bool, styles Styles) line {
	if r >= len(c.entries) {
		return line{{strings.Repeat(" ", c.width), styles.FullDescStyle}}
	}

	e := c.entries[r]
	var l line
	if e.key != "" {
		l = append(l, segment{e.key, styles.FullKeyStyle})
	}
	if keyPad := c.keyWidth - waterflow.StringWidth(e.key); keyPad > 0 {
		l = append(l, segment{strings.Repeat(" ", keyPad), styles.FullKeyStyle})
	}
	if e.key != "" && e.desc != "" {
		l = append(l, segment{" ", styles.FullDescStyle})
	}
	if e.desc != "" {
		l = append(l, segment{e.desc, styles.FullDescStyle})
	}
	if rest := c.width - l.width(); pad && rest > 0 {
		l = append(l, segment{strings.Repeat(" ", rest), styles.FullDescStyle})
	}
	return l
}

// fullLines lays the groups out side by side, dropping the columns that do
// not fit into width.
func (h *Help) fullLines(groups [][]keybind.Keybind, width int) []line {
	var columns []column
	for _, group := range groups {
		if c := newColumn(group); len(c.entries) > 0 {
			columns = append(columns, c)
		}
	}
	if len(columns) == 0 {
		return nil
	}

	gap := waterflow.StringWidth(columnGap)
	used, shown := 0, 0
	for i, c := range columns {
		w := c.width
		if i > 0 {
			w += gap
		}
		if used+w > width {
			break
		}
		used += w
		shown++
	}
	if shown == 0 {
		return []line{{{ellipsis, h.Styles.EllipsisStyle}}}
	}

	rows := 0
	for _, c := range columns[:shown] {
		rows = max(rows, len(c.entries))
	}
	lines := make([]line, rows)
	for r := range lines {
		for i, c := range columns[:shown] {
			if i > 0 {
				lines[r] = append(lines[r], segment{columnGap, h.Styles.FullSeparatorStyle})
			}
			lines[r] = append(lines[r], c.row(r, i < shown-1, h.Styles)...)
		}
	}
	if shown < len(columns) {
		lines[0] = h.withEllipsis(lines[0], width)
	}
	return lines
}
