// Package keybind matches tcell key events against configurable key strings
// such as "j", "pgdn" or "ctrl+c".
package keybind

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Keybind is a set of equivalent keys plus the help shown for them. Keys are
// normalized when set, so "Ctrl+C", "ctrl-c" and "control+c" are one key.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

// Help is the text the help bar shows for a keybind.
type Help struct {
	Key  string
	Desc string
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

func WithKeys(keys ...string) Option {
	return func(k *Keybind) { k.SetKeys(keys...) }
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) { k.SetHelp(key, desc) }
}

// WithDisabled creates the keybind disabled.
func WithDisabled() Option {
	return func(k *Keybind) { k.disabled = true }
}

func (k Keybind) Keys() []string { return k.keys }

// SetKeys replaces the keys. Keys normalizing to nothing are dropped.
func (k *Keybind) SetKeys(keys ...string) {
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		if key = normalizeKey(key); key != "" {
			normalized = append(normalized, key)
		}
	}
	k.keys = normalized
}

func (k Keybind) Help() Help { return k.help }

func (k *Keybind) SetHelp(key, desc string) {
	k.help = Help{Key: key, Desc: desc}
}

// Enabled reports whether the keybind has keys and was not disabled. Only
// enabled keybinds match events and show up in help.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

// Matches reports whether event is one of the keys of an enabled keybind.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}
	key := eventKeyString(event)
	return slices.ContainsFunc(keybinds, func(k Keybind) bool {
		return k.Enabled() && slices.Contains(k.keys, key)
	})
}

type modifier uint8

const (
	modCtrl modifier = 1 << iota
	modAlt
	modShift
	modMeta
)

// modifierNames is also the order modifiers are written in.
var modifierNames = []struct {
	mod  modifier
	name string
}{
	{modCtrl, "ctrl"},
	{modAlt, "alt"},
	{modShift, "shift"},
	{modMeta, "meta"},
}

var modifierAliases = map[string]modifier{
	"ctrl":    modCtrl,
	"control": modCtrl,
	"alt":     modAlt,
	"shift":   modShift,
	"meta":    modMeta,
}

var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
	"spacebar": "space",
}

// keyNames covers the keys whose codes collide with ctrl+letter: tab is
// ctrl+i, enter ctrl+m and backspace ctrl+h.
var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
}

// format writes a key with its modifiers in canonical order. Single
// character keys are lower cased when a modifier is present.
func format(mods modifier, key string) string {
	if mods == 0 {
		return key
	}
	var b strings.Builder
	for _, m := range modifierNames {
		if mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	if utf8.RuneCountInString(key) == 1 {
		key = strings.ToLower(key)
	}
	b.WriteString(key)
	return b.String()
}

// primaryKey normalizes the non-modifier part of a key string. Some spellings
// imply a modifier.
func primaryKey(part string) (modifier, string) {
	if inner, ok := strings.CutPrefix(part, "Rune["); ok && len(inner) > 1 && strings.HasSuffix(inner, "]") {
		return 0, strings.TrimSuffix(inner, "]")
	}
	if utf8.RuneCountInString(part) == 1 {
		return 0, part
	}

	lower := strings.ToLower(part)
	if alias, ok := keyAliases[lower]; ok {
		return 0, alias
	}
	if lower == "backtab" {
		return modShift, "tab"
	}
	if letter, ok := strings.CutPrefix(lower, "ctrl-"); ok && letter != "" {
		return modCtrl, letter
	}
	return 0, lower
}

func normalizeKey(key string) string {
	var (
		mods    modifier
		primary string
	)
	for part := range strings.SplitSeq(key, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if mod, ok := modifierAliases[strings.ToLower(part)]; ok {
			mods |= mod
			continue
		}
		var implied modifier
		implied, primary = primaryKey(part)
		mods |= implied
	}
	if primary == "" {
		return ""
	}
	return format(mods, primary)
}

func eventKeyString(event *tcell.EventKey) string {
	key := event.Key()
	primary, named := keyNames[key]
	switch {
	case named:
	case key == tcell.KeyRune:
		primary = string(event.Rune())
		if event.Rune() == ' ' {
			primary = "space"
		}
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		return format(modCtrl, string(rune('a'+key-tcell.KeyCtrlA)))
	default:
		return normalizeKey(event.Name())
	}

	var mods modifier
	if key == tcell.KeyBacktab {
		mods |= modShift
	}
	eventMods := event.Modifiers()
	if eventMods&tcell.ModCtrl != 0 {
		mods |= modCtrl
	}
	if eventMods&tcell.ModAlt != 0 {
		mods |= modAlt
	}
	// Shifted runes arrive as upper case already.
	if eventMods&tcell.ModShift != 0 && key != tcell.KeyRune {
		mods |= modShift
	}
	if eventMods&tcell.ModMeta != 0 {
		mods |= modMeta
	}
	return format(mods, primary)
}
