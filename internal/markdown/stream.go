package markdown

import (
	"regexp"
	"strings"
)

const fence = "```"

// listLineRe matches a bullet or numbered list line, the one bit of
// markdown syntax that plain ContainsAny probing can't detect without
// false positives on ordinary hyphens.
var listLineRe = regexp.MustCompile(`(?m)^\s*(\d+\.|[-*+])\s`)

// hasMarkdownSyntax reports whether content contains any
// markdown-significant characters.
func hasMarkdownSyntax(content string) bool {
	if strings.ContainsAny(content, "*_`#>[|~") {
		return true
	}
	return listLineRe.MatchString(content)
}

// RenderIncremental renders content that may still be streaming in.
//
// Plain text with no markdown syntax passes through unchanged. With a
// balanced number of code fences the content renders fully. An odd
// fence count means a code block is still open: everything before the
// last fence renders as completed markdown, and everything from the
// fence onward is appended verbatim. Because the completed prefix only
// ever grows at fence boundaries, output already shown for it stays
// byte-identical across calls, so nothing flickers as characters
// stream in.
func RenderIncremental(content string, opts Options) []Segment {
	if !hasMarkdownSyntax(content) {
		return []Segment{literal(content)}
	}
	if strings.Count(content, fence)%2 == 0 {
		return Render(content, opts)
	}
	split := strings.LastIndex(content, fence)
	segments := Render(content[:split], opts)
	return append(segments, literal(content[split:]))
}
