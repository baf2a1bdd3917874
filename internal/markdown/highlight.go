package markdown

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

const defaultChromaStyle = "monokai"

// chromaHighlight tokenizes a code block and maps chroma token styles
// onto per-line segment runs. Returns ok=false for unknown languages
// or lexer failures; callers fall back to uniform code styling.
func chromaHighlight(code, lang, styleName string) ([][]Segment, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil, false
	}
	lexer = chroma.Coalesce(lexer)

	if styleName == "" {
		styleName = defaultChromaStyle
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, strings.TrimSuffix(code, "\n"))
	if err != nil {
		return nil, false
	}

	lines := [][]Segment{nil}
	for _, token := range iterator.Tokens() {
		entry := style.Get(token.Type)
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			segment := Segment{
				Text:   part,
				Bold:   entry.Bold == chroma.Yes,
				Italic: entry.Italic == chroma.Yes,
			}
			if entry.Colour.IsSet() {
				segment.Fg = lipgloss.Color(entry.Colour.String())
			}
			current := len(lines) - 1
			lines[current] = append(lines[current], segment)
		}
	}
	return lines, true
}
