package markdown

import (
	"strconv"
	"strings"
)

// Logger is the external logging collaborator. The renderer only ever
// logs degradations; it never fails a call over them.
type Logger interface {
	Printf(format string, args ...any)
}

// Options configure one render call.
type Options struct {
	Palette Palette
	Width   int
	Logger  Logger
}

// state is the per-call render state. It lives for exactly one
// top-level call and is never shared or cached across calls.
type state struct {
	palette Palette
	width   int
	keys    int
}

func (st *state) nextKey() int {
	st.keys++
	return st.keys
}

// tag assigns monotonic keys to a segment sequence, for UIs that
// reconcile lists by key. Positional and without semantic meaning.
func (st *state) tag(segments []Segment) []Segment {
	for i := range segments {
		segments[i].key = st.nextKey()
	}
	return segments
}

// Render parses, normalizes, and renders markdown into segments. It
// never panics out to the caller: any parser or rendering failure is
// logged and degrades to the raw input as a single literal segment.
func Render(input string, opts Options) (segments []Segment) {
	defer func() {
		if r := recover(); r != nil {
			if opts.Logger != nil {
				opts.Logger.Printf("markdown render failed, falling back to raw text: %v", r)
			}
			segments = []Segment{literal(input)}
		}
	}()
	return RenderTree(NormalizeEmphasis(Parse(input)), opts)
}

// RenderTree renders an already-parsed tree.
func RenderTree(doc *Node, opts Options) []Segment {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	st := &state{palette: opts.Palette, width: width}
	return st.tag(renderNode(doc, st, KindRoot, nil))
}

// renderNode converts one node into segments. Parent context and the
// next sibling travel as explicit parameters so each call is a pure
// function of its arguments.
func renderNode(node *Node, st *state, parent Kind, next *Node) []Segment {
	if node == nil {
		return nil
	}
	switch node.Kind {

	case KindRoot:
		return renderChildren(node, st, KindRoot)

	case KindParagraph:
		segments := renderChildren(node, st, KindParagraph)
		switch parent {
		case KindListItem, KindBlockquote:
			segments = append(segments, literal("\n"))
		case KindRoot:
			// Tight spacing before a following blockquote or list:
			// a single newline instead of a paragraph break.
			if next != nil && (next.Kind == KindBlockquote || next.Kind == KindList) {
				segments = append(segments, literal("\n"))
			} else {
				segments = append(segments, literal("\n\n"))
			}
		}
		return segments

	case KindText:
		return []Segment{literal(node.Value)}

	case KindStrong:
		return []Segment{{Bold: true, Children: renderChildren(node, st, KindStrong)}}

	case KindEmphasis:
		return []Segment{{Italic: true, Children: renderChildren(node, st, KindEmphasis)}}

	case KindStrikethrough:
		return []Segment{{Dim: true, Children: renderChildren(node, st, KindStrikethrough)}}

	case KindInlineCode:
		return []Segment{renderInlineCode(node.Value, st.palette)}

	case KindHeading:
		return renderHeading(node, st)

	case KindCode:
		return renderCode(node, st)

	case KindList:
		return renderList(node, st)

	case KindListItem:
		// Only reachable for a malformed tree (item outside a list);
		// render its content without a marker.
		return renderChildren(node, st, KindListItem)

	case KindBlockquote:
		return renderBlockquote(node, st)

	case KindThematicBreak:
		length := st.width
		if length > 80 {
			length = 80
		}
		if length < 10 {
			length = 10
		}
		rule := Segment{Text: strings.Repeat("─", length), Fg: st.palette.BorderFg}
		return []Segment{rule, literal("\n\n")}

	case KindLink:
		body := renderChildren(node, st, KindLink)
		if len(body) == 0 {
			body = []Segment{literal(node.URL)}
		}
		return []Segment{{Fg: st.palette.LinkFg, Children: body}}

	case KindTable:
		return renderTable(node.Rows, st)

	case KindUnknown:
		if flat := PlainText(node); flat != "" {
			return []Segment{literal(flat)}
		}
		if len(node.Children) > 0 {
			return renderChildren(node, st, KindUnknown)
		}
		return nil
	}
	return nil
}

// renderChildren renders a node's children in order, handing each
// child its next sibling as a lookahead hint.
func renderChildren(node *Node, st *state, parent Kind) []Segment {
	var segments []Segment
	for i, child := range node.Children {
		var next *Node
		if i+1 < len(node.Children) {
			next = node.Children[i+1]
		}
		segments = append(segments, renderNode(child, st, parent, next)...)
	}
	return segments
}

func renderInlineCode(value string, palette Palette) Segment {
	text := " " + value + " "
	if value == "" {
		// Never an empty span: degrade to a single visible space.
		text = " "
	}
	segment := Segment{Text: text, Fg: palette.InlineCodeFg}
	if !palette.Monochrome {
		segment.Bg = palette.CodeBg
	}
	return segment
}

func renderHeading(node *Node, st *state) []Segment {
	depth := node.Depth
	if depth < 1 {
		depth = 1
	}
	if depth > 6 {
		depth = 6
	}
	head := Segment{
		Fg:       st.palette.headingColor(depth),
		Bold:     true,
		Children: renderChildren(node, st, KindHeading),
	}
	return []Segment{head, literal("\n\n")}
}

func renderCode(node *Node, st *state) []Segment {
	var segments []Segment
	if node.Lang != "" {
		segments = append(segments,
			Segment{Text: "// " + node.Lang, Fg: st.palette.CodeHeaderFg, Dim: true},
			literal("\n"))
	}

	lines, highlighted := highlightedLines(node.Value, node.Lang, st.palette)
	for _, line := range lines {
		if len(line) == 0 {
			// A genuinely empty line still needs a painted cell so the
			// code background doesn't collapse to zero width.
			line = []Segment{{Text: " ", Fg: st.palette.CodeTextFg}}
		}
		for _, segment := range line {
			if !highlighted {
				segment.Fg = st.palette.CodeTextFg
			}
			if !st.palette.Monochrome {
				segment.Bg = st.palette.CodeBg
			}
			segments = append(segments, segment)
		}
		segments = append(segments, literal("\n"))
	}
	return append(segments, literal("\n"))
}

// highlightedLines splits code into per-line segment runs, through
// chroma when syntax highlighting is enabled and the language is
// known, else as bare text runs.
func highlightedLines(code, lang string, palette Palette) (lines [][]Segment, highlighted bool) {
	if palette.SyntaxHighlight && lang != "" {
		if chromaLines, ok := chromaHighlight(code, lang, palette.ChromaStyle); ok {
			return chromaLines, true
		}
	}
	raw := strings.Split(strings.TrimSuffix(code, "\n"), "\n")
	lines = make([][]Segment, len(raw))
	for i, line := range raw {
		if line == "" {
			continue
		}
		lines[i] = []Segment{{Text: line}}
	}
	return lines, false
}

func renderList(node *Node, st *state) []Segment {
	var segments []Segment
	number := node.Start
	for _, item := range node.Children {
		if item.Kind != KindListItem {
			segments = append(segments, renderNode(item, st, KindList, nil)...)
			continue
		}

		var marker string
		switch {
		case item.Checked == CheckedOn:
			marker = "[x] "
		case item.Checked == CheckedOff:
			marker = "[ ] "
		case node.Ordered:
			marker = strconv.Itoa(number) + ". "
			number++
		default:
			marker = "- "
		}

		content := trimTrailingBlank(renderChildren(item, st, KindListItem))
		segments = append(segments, literal(marker))
		segments = append(segments, content...)
		segments = append(segments, literal("\n"))
	}
	return append(segments, literal("\n"))
}

// trimTrailingBlank drops trailing segments that are nothing but
// newlines, so list items control their own line breaks.
func trimTrailingBlank(segments []Segment) []Segment {
	for len(segments) > 0 {
		last := segments[len(segments)-1]
		if len(last.Children) > 0 || last.styled() {
			break
		}
		if strings.Trim(last.Text, "\n") != "" {
			trimmed := strings.TrimRight(last.Text, "\n")
			segments[len(segments)-1].Text = trimmed
			break
		}
		segments = segments[:len(segments)-1]
	}
	return segments
}

func renderBlockquote(node *Node, st *state) []Segment {
	body := renderChildren(node, st, KindBlockquote)
	var segments []Segment
	for _, line := range splitSegmentLines(body) {
		if Plain(line) == "" {
			continue
		}
		segments = append(segments, Segment{Text: "> ", Fg: st.palette.BorderFg})
		segments = append(segments, Segment{Fg: st.palette.TextFg, Children: line})
		segments = append(segments, literal("\n"))
	}
	return append(segments, literal("\n"))
}

// splitSegmentLines breaks a segment sequence into lines at literal
// newlines. Newlines inside styled runs or containers do not split;
// only plain literal text delimits lines.
func splitSegmentLines(segments []Segment) [][]Segment {
	var lines [][]Segment
	var current []Segment
	for _, segment := range segments {
		if len(segment.Children) == 0 && !segment.styled() && strings.Contains(segment.Text, "\n") {
			parts := strings.Split(segment.Text, "\n")
			for i, part := range parts {
				if i > 0 {
					lines = append(lines, current)
					current = nil
				}
				if part != "" {
					current = append(current, literal(part))
				}
			}
			continue
		}
		current = append(current, segment)
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

func renderTable(rows [][]string, st *state) []Segment {
	widths := columnWidths(rows, st.width)
	if len(widths) == 0 {
		return nil
	}

	border := func(text string) Segment {
		return Segment{Text: text, Fg: st.palette.BorderFg}
	}

	var segments []Segment
	segments = append(segments, border(borderLine(widths, "┌", "┬", "┐")), literal("\n"))
	for rowIndex, row := range rows {
		segments = append(segments, border("│ "))
		for i, width := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			fitted := Segment{Text: fitCell(cell, width)}
			if rowIndex == 0 {
				fitted.Bold = true
				fitted.Fg = st.palette.TableHeadFg
			}
			segments = append(segments, fitted)
			if i < len(widths)-1 {
				segments = append(segments, border(" │ "))
			}
		}
		segments = append(segments, border(" │"), literal("\n"))
		if rowIndex == 0 && len(rows) > 1 {
			segments = append(segments, border(borderLine(widths, "├", "┼", "┤")), literal("\n"))
		}
	}
	segments = append(segments, border(borderLine(widths, "└", "┴", "┘")), literal("\n"))
	return append(segments, literal("\n"))
}
