package tui

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLText extracts the readable text from an HTML fragment, dropping
// tags and the contents of script/style elements. Runs of whitespace
// collapse to single spaces; block boundaries are not reconstructed.
func HTMLText(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var parts []string
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(parts, " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			if text := strings.Join(strings.Fields(string(tokenizer.Text())), " "); text != "" {
				parts = append(parts, text)
			}
		}
	}
}
