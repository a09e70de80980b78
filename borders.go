package waterflow

import (
	"fmt"
	"strings"
)

// BorderSet holds the glyphs a Box draws its borders with.
type BorderSet struct {
	Top, Bottom, Left, Right                   string
	TopLeft, TopRight, BottomLeft, BottomRight string
}

func borderSet(horizontal, vertical, topLeft, topRight, bottomLeft, bottomRight string) BorderSet {
	return BorderSet{
		Top: horizontal, Bottom: horizontal,
		Left: vertical, Right: vertical,
		TopLeft: topLeft, TopRight: topRight,
		BottomLeft: bottomLeft, BottomRight: bottomRight,
	}
}

// BorderSetHidden reserves the border cells without drawing anything.
func BorderSetHidden() BorderSet {
	return borderSet(" ", " ", " ", " ", " ", " ")
}

func BorderSetPlain() BorderSet {
	return borderSet(BoxDrawingsLightHorizontal, BoxDrawingsLightVertical,
		BoxDrawingsLightDownAndRight, BoxDrawingsLightDownAndLeft,
		BoxDrawingsLightUpAndRight, BoxDrawingsLightUpAndLeft)
}

func BorderSetRound() BorderSet {
	return borderSet(BoxDrawingsLightHorizontal, BoxDrawingsLightVertical,
		BoxDrawingsLightArcDownAndRight, BoxDrawingsLightArcDownAndLeft,
		BoxDrawingsLightArcUpAndRight, BoxDrawingsLightArcUpAndLeft)
}

func BorderSetThick() BorderSet {
	return borderSet(BoxDrawingsHeavyHorizontal, BoxDrawingsHeavyVertical,
		BoxDrawingsHeavyDownAndRight, BoxDrawingsHeavyDownAndLeft,
		BoxDrawingsHeavyUpAndRight, BoxDrawingsHeavyUpAndLeft)
}

func BorderSetDouble() BorderSet {
	return borderSet(BoxDrawingsDoubleHorizontal, BoxDrawingsDoubleVertical,
		BoxDrawingsDoubleDownAndRight, BoxDrawingsDoubleDownAndLeft,
		BoxDrawingsDoubleUpAndRight, BoxDrawingsDoubleUpAndLeft)
}

var borderSets = map[string]func() BorderSet{
	"hidden": BorderSetHidden,
	"plain":  BorderSetPlain,
	"":       BorderSetPlain,
	"round":  BorderSetRound,
	"thick":  BorderSetThick,
	"double": BorderSetDouble,
}

// ParseBorderSet returns the border set named in configuration files:
// hidden, plain, round, thick or double. An empty name means plain.
func ParseBorderSet(name string) (BorderSet, error) {
	set, ok := borderSets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return BorderSet{}, fmt.Errorf("unknown border set %q", name)
	}
	return set(), nil
}

// Borders selects the sides of a Box that get a border.
type Borders uint

const (
	BordersTop Borders = 1 << iota
	BordersBottom
	BordersLeft
	BordersRight

	BordersNone Borders = 0
	BordersAll          = BordersTop | BordersBottom | BordersLeft | BordersRight
)

// Has reports whether any side in sides is set.
func (b Borders) Has(sides Borders) bool {
	return b&sides != 0
}
