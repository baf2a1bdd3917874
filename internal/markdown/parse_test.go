package markdown

import (
	"testing"
)

func TestParseBasicStructure(t *testing.T) {
	doc := Parse("# Title\n\nA paragraph with **bold** text.\n\n- one\n- two\n")

	if doc.Kind != KindRoot {
		t.Fatalf("root kind = %v", doc.Kind)
	}
	if len(doc.Children) != 3 {
		t.Fatalf("top-level children = %d, want 3", len(doc.Children))
	}

	heading := doc.Children[0]
	if heading.Kind != KindHeading || heading.Depth != 1 {
		t.Errorf("first child = %v depth %d, want heading depth 1", heading.Kind, heading.Depth)
	}
	if doc.Children[1].Kind != KindParagraph {
		t.Errorf("second child = %v, want paragraph", doc.Children[1].Kind)
	}
	list := doc.Children[2]
	if list.Kind != KindList || list.Ordered {
		t.Errorf("third child = %v ordered=%v, want unordered list", list.Kind, list.Ordered)
	}
	if len(list.Children) != 2 {
		t.Errorf("list items = %d, want 2", len(list.Children))
	}
}

func TestParseOrderedListStart(t *testing.T) {
	doc := Parse("5. five\n6. six\n")
	list := doc.Children[0]
	if !list.Ordered || list.Start != 5 {
		t.Errorf("ordered=%v start=%d, want ordered start 5", list.Ordered, list.Start)
	}
}

func TestParseTaskListMarkers(t *testing.T) {
	doc := Parse("- [x] done\n- [ ] open\n- plain\n")
	list := doc.Children[0]
	if len(list.Children) != 3 {
		t.Fatalf("items = %d, want 3", len(list.Children))
	}
	want := []Checked{CheckedOn, CheckedOff, CheckedNone}
	for i, item := range list.Children {
		if item.Checked != want[i] {
			t.Errorf("item %d checked = %v, want %v", i, item.Checked, want[i])
		}
	}
	// The checkbox text must not leak into the item content.
	if got := PlainText(list.Children[0]); got != "done" {
		t.Errorf("checked item content = %q, want %q", got, "done")
	}
}

func TestParseFencedCode(t *testing.T) {
	doc := Parse("```go\nfunc main() {}\n```\n")
	code := doc.Children[0]
	if code.Kind != KindCode {
		t.Fatalf("kind = %v, want code", code.Kind)
	}
	if code.Lang != "go" {
		t.Errorf("lang = %q, want go", code.Lang)
	}
	if code.Value != "func main() {}\n" {
		t.Errorf("value = %q", code.Value)
	}
}

func TestParseTableRows(t *testing.T) {
	doc := Parse("| a | b |\n|---|---|\n| 1 | 2 |\n| 3 | 4 |\n")
	table := doc.Children[0]
	if table.Kind != KindTable {
		t.Fatalf("kind = %v, want table", table.Kind)
	}
	want := [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}
	if len(table.Rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(table.Rows), len(want))
	}
	for i, row := range want {
		for j, cell := range row {
			if table.Rows[i][j] != cell {
				t.Errorf("cell [%d][%d] = %q, want %q", i, j, table.Rows[i][j], cell)
			}
		}
	}
}

func TestParseStrikethroughAndLink(t *testing.T) {
	doc := Parse("~~old~~ and [site](https://example.com)\n")
	paragraph := doc.Children[0]

	var strike, link *Node
	var walk func(n *Node)
	walk = func(n *Node) {
		switch n.Kind {
		case KindStrikethrough:
			strike = n
		case KindLink:
			link = n
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(paragraph)

	if strike == nil || PlainText(strike) != "old" {
		t.Error("strikethrough not parsed")
	}
	if link == nil || link.URL != "https://example.com" || PlainText(link) != "site" {
		t.Error("link not parsed with URL and children")
	}
}

func TestParseSoftBreakBecomesNewline(t *testing.T) {
	doc := Parse("line one\nline two\n")
	paragraph := doc.Children[0]
	if got := PlainText(paragraph); got != "line one\nline two" {
		t.Errorf("paragraph text = %q, want embedded newline", got)
	}
}

func TestParseHTMLBlockIsUnknown(t *testing.T) {
	doc := Parse("<div>\nraw\n</div>\n")
	if doc.Children[0].Kind != KindUnknown {
		t.Errorf("html block kind = %v, want unknown", doc.Children[0].Kind)
	}
}
