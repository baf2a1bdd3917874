package markdown

// Kind identifies a markdown AST node type. The set is closed: the
// renderer switches exhaustively over it, and anything the parser
// produces outside this set maps to KindUnknown.
type Kind int

const (
	KindRoot Kind = iota
	KindParagraph
	KindText
	KindStrong
	KindEmphasis
	KindStrikethrough
	KindInlineCode
	KindHeading
	KindList
	KindListItem
	KindBlockquote
	KindCode
	KindThematicBreak
	KindLink
	KindTable
	KindUnknown
)

var kindNames = map[Kind]string{
	KindRoot:          "root",
	KindParagraph:     "paragraph",
	KindText:          "text",
	KindStrong:        "strong",
	KindEmphasis:      "emphasis",
	KindStrikethrough: "strikethrough",
	KindInlineCode:    "inlineCode",
	KindHeading:       "heading",
	KindList:          "list",
	KindListItem:      "listItem",
	KindBlockquote:    "blockquote",
	KindCode:          "code",
	KindThematicBreak: "thematicBreak",
	KindLink:          "link",
	KindTable:         "table",
	KindUnknown:       "unknown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Checked is the tri-state task-list marker on a list item.
type Checked int

const (
	CheckedNone Checked = iota // not a task item
	CheckedOff
	CheckedOn
)

// Node is one markdown AST node. It is a tagged union: Kind selects
// which payload fields are meaningful. Trees are acyclic and rooted at
// a KindRoot node.
type Node struct {
	Kind     Kind
	Children []*Node

	// KindText, KindInlineCode, KindCode: literal content.
	Value string

	// KindHeading: 1..6.
	Depth int

	// KindList.
	Ordered bool
	Start   int

	// KindListItem.
	Checked Checked

	// KindCode: info string language, may be empty.
	Lang string

	// KindLink.
	URL string

	// KindTable: rows of already-flattened cell text. Row 0 is the
	// header row.
	Rows [][]string
}

// Text returns a new text node.
func Text(value string) *Node {
	return &Node{Kind: KindText, Value: value}
}

// PlainText flattens a node to its unstyled text content. This is the
// generic tree-to-text walker used for unknown node kinds and for
// measuring cell content.
func PlainText(node *Node) string {
	if node == nil {
		return ""
	}
	switch node.Kind {
	case KindText, KindInlineCode, KindCode, KindUnknown:
		if node.Value != "" {
			return node.Value
		}
	}
	var out string
	for _, child := range node.Children {
		out += PlainText(child)
	}
	return out
}
