package markdown

import (
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// The goldmark parser is configured once and shared. Parsing allocates
// per-call state internally, so the shared instance is safe for
// concurrent use.
var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func getParser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return parserInstance
}

// Parse runs the external CommonMark+GFM parser and converts its AST
// into the closed Node union. The returned tree is rooted at KindRoot.
func Parse(input string) *Node {
	source := []byte(input)
	document := getParser().Parser().Parse(text.NewReader(source))

	root := &Node{Kind: KindRoot}
	for child := document.FirstChild(); child != nil; child = child.NextSibling() {
		if converted := convert(child, source); converted != nil {
			root.Children = append(root.Children, converted)
		}
	}
	return root
}

// convert maps one goldmark node to the internal union. Returns nil
// for nodes that have no rendering (task checkboxes are folded into
// their list item instead).
func convert(n ast.Node, source []byte) *Node {
	switch n.Kind() {

	case ast.KindParagraph, ast.KindTextBlock:
		return &Node{Kind: KindParagraph, Children: convertChildren(n, source)}

	case ast.KindHeading:
		heading := n.(*ast.Heading)
		return &Node{Kind: KindHeading, Depth: heading.Level, Children: convertChildren(n, source)}

	case ast.KindList:
		list := n.(*ast.List)
		start := 1
		if list.IsOrdered() && list.Start > 0 {
			start = list.Start
		}
		return &Node{
			Kind:     KindList,
			Ordered:  list.IsOrdered(),
			Start:    start,
			Children: convertChildren(n, source),
		}

	case ast.KindListItem:
		item := &Node{Kind: KindListItem, Children: convertChildren(n, source)}
		item.Checked = extractTaskMarker(item)
		return item

	case ast.KindBlockquote:
		return &Node{Kind: KindBlockquote, Children: convertChildren(n, source)}

	case ast.KindFencedCodeBlock:
		block := n.(*ast.FencedCodeBlock)
		return &Node{
			Kind:  KindCode,
			Lang:  string(block.Language(source)),
			Value: blockLines(n, source),
		}

	case ast.KindCodeBlock:
		return &Node{Kind: KindCode, Value: blockLines(n, source)}

	case ast.KindThematicBreak:
		return &Node{Kind: KindThematicBreak}

	case ast.KindText:
		textNode := n.(*ast.Text)
		value := string(textNode.Segment.Value(source))
		if textNode.SoftLineBreak() || textNode.HardLineBreak() {
			value += "\n"
		}
		return &Node{Kind: KindText, Value: value}

	case ast.KindString:
		return &Node{Kind: KindText, Value: string(n.(*ast.String).Value)}

	case ast.KindEmphasis:
		kind := KindEmphasis
		if n.(*ast.Emphasis).Level >= 2 {
			kind = KindStrong
		}
		return &Node{Kind: kind, Children: convertChildren(n, source)}

	case ast.KindCodeSpan:
		return &Node{Kind: KindInlineCode, Value: inlineText(n, source)}

	case ast.KindLink:
		link := n.(*ast.Link)
		return &Node{Kind: KindLink, URL: string(link.Destination), Children: convertChildren(n, source)}

	case ast.KindAutoLink:
		return &Node{Kind: KindLink, URL: string(n.(*ast.AutoLink).URL(source))}

	case ast.KindImage:
		// Images have no terminal representation of their own; render
		// the alt text as a link to the image URL.
		image := n.(*ast.Image)
		return &Node{Kind: KindLink, URL: string(image.Destination), Children: convertChildren(n, source)}

	case ast.KindHTMLBlock:
		return &Node{Kind: KindUnknown, Value: blockLines(n, source)}

	case ast.KindRawHTML:
		raw := n.(*ast.RawHTML)
		var b strings.Builder
		for i := 0; i < raw.Segments.Len(); i++ {
			segment := raw.Segments.At(i)
			b.Write(segment.Value(source))
		}
		return &Node{Kind: KindUnknown, Value: b.String()}

	case extast.KindStrikethrough:
		return &Node{Kind: KindStrikethrough, Children: convertChildren(n, source)}

	case extast.KindTable:
		return convertTable(n, source)

	case extast.KindTaskCheckBox:
		checkbox := n.(*extast.TaskCheckBox)
		checked := CheckedOff
		if checkbox.IsChecked {
			checked = CheckedOn
		}
		return &Node{Kind: KindListItem, Checked: checked, Children: nil}

	default:
		return &Node{Kind: KindUnknown, Children: convertChildren(n, source)}
	}
}

func convertChildren(n ast.Node, source []byte) []*Node {
	var children []*Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if converted := convert(child, source); converted != nil {
			children = append(children, converted)
		}
	}
	return children
}

// extractTaskMarker pulls a GFM task checkbox out of a converted list
// item. The checkbox parses as the first inline of the item's first
// paragraph; it is removed from the tree and reported as the item's
// Checked state.
func extractTaskMarker(item *Node) Checked {
	if len(item.Children) == 0 {
		return CheckedNone
	}
	first := item.Children[0]
	if first.Kind != KindParagraph || len(first.Children) == 0 {
		return CheckedNone
	}
	marker := first.Children[0]
	if marker.Kind != KindListItem {
		// convert() encodes TaskCheckBox as a childless KindListItem
		// carrying only the Checked flag.
		return CheckedNone
	}
	first.Children = first.Children[1:]
	// The checkbox is followed by its separating space in the source
	// text; trim a single leading space from the remaining text.
	if len(first.Children) > 0 && first.Children[0].Kind == KindText {
		first.Children[0].Value = strings.TrimPrefix(first.Children[0].Value, " ")
	}
	return marker.Checked
}

// blockLines joins the raw source lines of a block node.
func blockLines(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(source))
	}
	return b.String()
}

// inlineText collects the literal text under an inline node (code
// spans hold their content as child text segments).
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
		case *ast.String:
			b.Write(c.Value)
		}
	}
	return b.String()
}

// convertTable flattens a GFM table into rows of plain cell text. Row
// zero is the header row.
func convertTable(n ast.Node, source []byte) *Node {
	var rows [][]string
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.Kind() {
		case extast.KindTableHeader, extast.KindTableRow:
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				if cell.Kind() != extast.KindTableCell {
					continue
				}
				cells = append(cells, cellText(cell, source))
			}
			rows = append(rows, cells)
		}
	}
	return &Node{Kind: KindTable, Rows: rows}
}

// cellText flattens a table cell's inline content to plain text.
func cellText(n ast.Node, source []byte) string {
	converted := &Node{Kind: KindUnknown, Children: convertChildren(n, source)}
	return strings.TrimSpace(PlainText(converted))
}
