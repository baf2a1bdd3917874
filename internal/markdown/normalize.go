package markdown

import "strings"

// NormalizeEmphasis rebuilds a tree, rescanning plain-text leaves for
// `*` and `**` emphasis runs the strict parser left unparsed (CommonMark
// flanking rules reject markers like "Other**.github/**"). The result
// is a new tree; the input is never mutated. Newly created emphasis
// interiors are themselves normalized.
func NormalizeEmphasis(node *Node) *Node {
	if node == nil {
		return nil
	}

	rebuilt := *node
	rebuilt.Children = nil

	switch node.Kind {
	case KindCode, KindInlineCode, KindTable, KindThematicBreak:
		// Literal content; never rescanned.
		return &rebuilt
	}

	// Goldmark splits inline text at rejected delimiters, so a marker
	// and its closer may sit in different sibling leaves. Coalesce
	// adjacent text leaves before scanning.
	for _, child := range coalesceText(node.Children) {
		if child.Kind == KindText {
			rebuilt.Children = append(rebuilt.Children, splitEmphasis(child.Value)...)
			continue
		}
		rebuilt.Children = append(rebuilt.Children, NormalizeEmphasis(child))
	}
	return &rebuilt
}

// coalesceText merges runs of adjacent text leaves into single leaves.
// Returns fresh nodes; the input slice is untouched.
func coalesceText(children []*Node) []*Node {
	var out []*Node
	var pending strings.Builder
	flush := func() {
		if pending.Len() > 0 {
			out = append(out, Text(pending.String()))
			pending.Reset()
		}
	}
	for _, child := range children {
		if child.Kind == KindText {
			pending.WriteString(child.Value)
			continue
		}
		flush()
		out = append(out, child)
	}
	flush()
	return out
}

// splitEmphasis scans one text value for unescaped emphasis markers and
// returns the node sequence that replaces it: literal text interleaved
// with strong/emphasis nodes. Markers with no matching closer stay
// literal.
func splitEmphasis(value string) []*Node {
	var out []*Node
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, Text(lit.String()))
			lit.Reset()
		}
	}

	i := 0
	for i < len(value) {
		if value[i] != '*' || markerEscaped(value, i) {
			lit.WriteByte(value[i])
			i++
			continue
		}

		markerLen := 1
		if i+1 < len(value) && value[i+1] == '*' {
			markerLen = 2
		}
		closer := findCloser(value, i+markerLen, markerLen)
		if closer < 0 {
			lit.WriteString(value[i : i+markerLen])
			i += markerLen
			continue
		}
		inner := value[i+markerLen : closer]
		if inner == "" {
			lit.WriteString(value[i : i+markerLen])
			i += markerLen
			continue
		}

		flush()
		kind := KindEmphasis
		if markerLen == 2 {
			kind = KindStrong
		}
		out = append(out, &Node{Kind: kind, Children: normalizedInner(inner)})
		i = closer + markerLen
	}
	flush()
	return out
}

// normalizedInner recursively normalizes the interior of a recovered
// emphasis span, so nested markers rebuild too.
func normalizedInner(inner string) []*Node {
	wrapper := NormalizeEmphasis(&Node{Kind: KindParagraph, Children: []*Node{Text(inner)}})
	return wrapper.Children
}

// markerEscaped reports whether the marker at index i is escaped: an
// odd number of backslashes immediately precedes it.
func markerEscaped(value string, i int) bool {
	backslashes := 0
	for j := i - 1; j >= 0 && value[j] == '\\'; j-- {
		backslashes++
	}
	return backslashes%2 == 1
}

// findCloser returns the index of the next unescaped closing marker of
// exactly the opener's length, or -1. A `**` run closes a `**` opener;
// a lone `*` closes a `*` opener (a `**` run is skipped whole so it
// can pair with its own opener).
func findCloser(value string, from, markerLen int) int {
	j := from
	for j < len(value) {
		if value[j] != '*' || markerEscaped(value, j) {
			j++
			continue
		}
		run := 0
		k := j
		for k < len(value) && value[k] == '*' {
			run++
			k++
		}
		if markerLen == 2 && run >= 2 {
			return j
		}
		if markerLen == 1 && run == 1 {
			return j
		}
		j = k
	}
	return -1
}
