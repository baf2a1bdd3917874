package markdown

import "github.com/charmbracelet/lipgloss"

// Palette names the colors the renderer styles segments with. A zero
// color value means "terminal default". Palettes are immutable for the
// duration of a render call.
type Palette struct {
	TextFg       lipgloss.Color
	LinkFg       lipgloss.Color
	InlineCodeFg lipgloss.Color
	CodeTextFg   lipgloss.Color
	CodeBg       lipgloss.Color
	CodeHeaderFg lipgloss.Color
	BorderFg     lipgloss.Color
	TableHeadFg  lipgloss.Color

	// HeadingFg maps heading depth (1..6) to a color. Depths without
	// an entry fall back to the depth-6 entry.
	HeadingFg map[int]lipgloss.Color

	// Monochrome disables background colors (inline code, code
	// blocks) for terminals where the backgrounds are unreadable.
	Monochrome bool

	// SyntaxHighlight enables chroma token coloring inside fenced
	// code blocks. When off, code lines render uniformly in
	// CodeTextFg.
	SyntaxHighlight bool

	// ChromaStyle selects the chroma style when SyntaxHighlight is
	// on. Empty means the package default.
	ChromaStyle string
}

// Merge returns a copy of p with the non-zero fields of over applied.
// The heading map is merged entry-by-entry rather than replaced, so an
// override can restyle a single depth.
func (p Palette) Merge(over Palette) Palette {
	merged := p
	if over.TextFg != "" {
		merged.TextFg = over.TextFg
	}
	if over.LinkFg != "" {
		merged.LinkFg = over.LinkFg
	}
	if over.InlineCodeFg != "" {
		merged.InlineCodeFg = over.InlineCodeFg
	}
	if over.CodeTextFg != "" {
		merged.CodeTextFg = over.CodeTextFg
	}
	if over.CodeBg != "" {
		merged.CodeBg = over.CodeBg
	}
	if over.CodeHeaderFg != "" {
		merged.CodeHeaderFg = over.CodeHeaderFg
	}
	if over.BorderFg != "" {
		merged.BorderFg = over.BorderFg
	}
	if over.TableHeadFg != "" {
		merged.TableHeadFg = over.TableHeadFg
	}
	if len(over.HeadingFg) > 0 {
		headings := make(map[int]lipgloss.Color, len(p.HeadingFg)+len(over.HeadingFg))
		for depth, color := range p.HeadingFg {
			headings[depth] = color
		}
		for depth, color := range over.HeadingFg {
			headings[depth] = color
		}
		merged.HeadingFg = headings
	}
	if over.Monochrome {
		merged.Monochrome = true
	}
	if over.SyntaxHighlight {
		merged.SyntaxHighlight = true
	}
	if over.ChromaStyle != "" {
		merged.ChromaStyle = over.ChromaStyle
	}
	return merged
}

// headingColor resolves the color for a heading depth, falling back to
// the depth-6 entry when the map has no entry for the depth.
func (p Palette) headingColor(depth int) lipgloss.Color {
	if color, ok := p.HeadingFg[depth]; ok {
		return color
	}
	return p.HeadingFg[6]
}
