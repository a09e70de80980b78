package waterflow

import "github.com/gdamore/tcell/v2"

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	ContrastBackgroundColor  tcell.Color // Background color for contrasting elements.
	BorderColor              tcell.Color // Box borders.
	TitleColor               tcell.Color // Box titles.
	GraphicsColor            tcell.Color // Graphics.
	PrimaryTextColor         tcell.Color // Primary text.
	SecondaryTextColor       tcell.Color // Secondary text (e.g. section headers).
	TertiaryTextColor        tcell.Color // Tertiary text (e.g. section footers).
	InverseTextColor         tcell.Color // Text on primary-colored backgrounds.

	HeaderBackgroundColor   tcell.Color // Section headers and footers.
	SelectedBackgroundColor tcell.Color // The item under the cursor.
	FloatingBackgroundColor tcell.Color // A header pinned above the content.
}

// Styles defines the theme for applications. The default is for a black
// background and some basic colors: black, white, yellow, green, cyan, and
// blue.
var Styles = Theme{
	PrimitiveBackgroundColor: tcell.ColorBlack,
	ContrastBackgroundColor:  tcell.ColorBlue,
	BorderColor:              tcell.ColorWhite,
	TitleColor:               tcell.ColorWhite,
	GraphicsColor:            tcell.ColorWhite,
	PrimaryTextColor:         tcell.ColorWhite,
	SecondaryTextColor:       tcell.ColorYellow,
	TertiaryTextColor:        tcell.ColorGreen,
	InverseTextColor:         tcell.ColorBlue,

	HeaderBackgroundColor:   tcell.ColorNavy,
	SelectedBackgroundColor: tcell.ColorTeal,
	FloatingBackgroundColor: tcell.ColorPurple,
}
