package help

import "github.com/gdamore/tcell/v2"

// Styles are the styles of the parts of the help. Keys and separators are
// dimmed by default so descriptions stand out.
type Styles struct {
	ShortKeyStyle       tcell.Style
	ShortDescStyle      tcell.Style
	ShortSeparatorStyle tcell.Style

	FullKeyStyle       tcell.Style
	FullDescStyle      tcell.Style
	FullSeparatorStyle tcell.Style

	EllipsisStyle tcell.Style
	StatusStyle   tcell.Style
}

func DefaultStyles() Styles {
	dim := tcell.StyleDefault.Dim(true)
	return Styles{
		ShortKeyStyle:       dim,
		ShortDescStyle:      tcell.StyleDefault,
		ShortSeparatorStyle: dim,
		FullKeyStyle:        dim,
		FullDescStyle:       tcell.StyleDefault,
		FullSeparatorStyle:  dim,
		EllipsisStyle:       dim,
		StatusStyle:         dim.Italic(true),
	}
}
