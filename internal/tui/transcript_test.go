package tui

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/batalabs/mdux/internal/blocks"
	"github.com/batalabs/mdux/internal/markdown"
)

func testFormatter() *Formatter {
	return NewFormatter(markdown.Options{Palette: DefaultPalette(), Width: 80})
}

func TestFormatTranscriptMixedBlocks(t *testing.T) {
	content := []blocks.ContentBlock{
		{Type: blocks.TypeText, TextType: blocks.TextTypeReasoning, Text: "considering the options"},
		{Type: blocks.TypeText, TextType: blocks.TextTypeReasoning, Text: "picking one"},
		{Type: blocks.TypeText, Text: "Here is the answer."},
		{Type: blocks.TypeTool, ToolName: "bash", ToolInput: map[string]any{"command": "ls"}},
		{Type: blocks.TypeTool, ToolName: "read", ToolInput: map[string]any{"path": "main.go"}},
	}
	out := testFormatter().FormatTranscript(content, 80)

	for _, want := range []string{
		"∴ thinking",
		"considering the options",
		"Here is the answer.",
		"● bash",
		"command=ls",
		"● read",
		"path=main.go",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Reasoning, text, and tool groups are separate sections.
	if got := strings.Count(out, "\n\n"); got < 2 {
		t.Errorf("expected at least 2 section separators, got %d:\n%s", got, out)
	}
	// Both tool calls share one section.
	if i, j := strings.Index(out, "● bash"), strings.Index(out, "● read"); i >= 0 && j >= 0 {
		if strings.Contains(out[i:j], "\n\n") {
			t.Error("consecutive tool calls must not be split into separate sections")
		}
	}
}

func TestFormatTranscriptEmptySectionsDropped(t *testing.T) {
	content := []blocks.ContentBlock{
		{Type: blocks.TypeText, TextType: blocks.TextTypeReasoning, Text: "   "},
		{Type: blocks.TypeText, Text: ""},
		{Type: blocks.TypeHTML, Text: "<script>alert(1)</script>"},
	}
	if out := testFormatter().FormatTranscript(content, 80); out != "" {
		t.Errorf("all-empty content should format to empty string, got %q", out)
	}
}

func TestFormatToolCallOutput(t *testing.T) {
	f := testFormatter()

	t.Run("no output shows header only", func(t *testing.T) {
		out := f.formatToolCall(blocks.ContentBlock{
			Type: blocks.TypeTool, ToolName: "grep",
			ToolInput: map[string]any{"pattern": "TODO"},
		}, 80)
		if strings.Contains(out, "\n") {
			t.Errorf("header-only call should be a single line: %q", out)
		}
		if !strings.Contains(out, "● grep") || !strings.Contains(out, "pattern=TODO") {
			t.Errorf("header malformed: %q", out)
		}
	})

	t.Run("long output is capped", func(t *testing.T) {
		var lines []string
		for i := 0; i < 25; i++ {
			lines = append(lines, fmt.Sprintf("line %d", i))
		}
		out := f.formatToolCall(blocks.ContentBlock{
			Type: blocks.TypeTool, ToolName: "bash",
			ToolInput:  map[string]any{"command": "seq 25"},
			ToolOutput: strings.Join(lines, "\n"),
			HasOutput:  true,
		}, 80)
		if !strings.Contains(out, "line 19") {
			t.Error("20th output line should be shown")
		}
		if strings.Contains(out, "line 20") {
			t.Error("21st output line should be elided")
		}
		if !strings.Contains(out, "(5 more lines)") {
			t.Errorf("missing elision note:\n%s", out)
		}
	})
}

func TestAgentGroupNesting(t *testing.T) {
	content := []blocks.ContentBlock{{
		Type:          blocks.TypeAgent,
		AgentType:     "reviewer",
		Status:        "done",
		InitialPrompt: "check the diff\nsecond line is dropped",
		Blocks: []blocks.ContentBlock{
			{Type: blocks.TypeText, Text: "Looks fine."},
		},
	}}
	out := testFormatter().FormatTranscript(content, 80)

	if !strings.Contains(out, "◆ reviewer") || !strings.Contains(out, "(done)") {
		t.Errorf("agent header malformed:\n%s", out)
	}
	if !strings.Contains(out, "check the diff") {
		t.Error("initial prompt first line missing")
	}
	if strings.Contains(out, "second line is dropped") {
		t.Error("only the first prompt line should appear")
	}
	// The nested transcript is indented under the header.
	var nestedIndented bool
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Looks fine.") && strings.HasPrefix(line, "  ") {
			nestedIndented = true
		}
	}
	if !nestedIndented {
		t.Errorf("nested transcript not indented:\n%s", out)
	}
}

func TestSingleBlockKinds(t *testing.T) {
	f := testFormatter()
	opts := markdown.Options{Palette: DefaultPalette(), Width: 80}

	tests := []struct {
		name   string
		block  blocks.ContentBlock
		want   []string
		absent []string
	}{
		{
			name:  "html extracts text",
			block: blocks.ContentBlock{Type: blocks.TypeHTML, Text: "<p>Hello <b>world</b></p>"},
			want:  []string{"Hello world"},
		},
		{
			name:  "plan gets a header",
			block: blocks.ContentBlock{Type: blocks.TypePlan, Text: "Do the thing."},
			want:  []string{"plan", "Do the thing."},
		},
		{
			name:  "ask-user passes through trimmed",
			block: blocks.ContentBlock{Type: blocks.TypeAskUser, Text: "  Which one?  "},
			want:  []string{"Which one?"},
		},
		{
			name: "agent list names agents",
			block: blocks.ContentBlock{Type: blocks.TypeAgentList, Blocks: []blocks.ContentBlock{
				{Type: blocks.TypeAgent, AgentType: "planner"},
				{Type: blocks.TypeAgent, AgentType: "reviewer"},
			}},
			want: []string{"agents: planner, reviewer"},
		},
		{
			name:   "unknown type falls back to raw text",
			block:  blocks.ContentBlock{Type: "mystery", Text: " raw payload "},
			want:   []string{"raw payload"},
			absent: []string{" raw payload "},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := f.singleBlock(tt.block, opts)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("missing %q in %q", want, out)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(out, absent) {
					t.Errorf("unexpected %q in %q", absent, out)
				}
			}
		})
	}
}

func TestImplementorPredicateOverride(t *testing.T) {
	f := testFormatter()
	var sawImplementor bool
	f.SetImplementorPredicate(func(agentType string) bool {
		sawImplementor = sawImplementor || agentType == "builder"
		return agentType == "builder"
	})
	f.FormatTranscript([]blocks.ContentBlock{
		{Type: blocks.TypeAgent, AgentType: "builder"},
	}, 80)
	if !sawImplementor {
		t.Error("custom predicate was not consulted")
	}
}

func TestSortedToolParams(t *testing.T) {
	tests := []struct {
		name  string
		tool  string
		input map[string]any
		want  []string
	}{
		{
			name:  "primary param first",
			tool:  "bash",
			input: map[string]any{"timeout": 5, "command": "ls", "a": 1},
			want:  []string{"command", "a", "timeout"},
		},
		{
			name:  "unknown tool sorts alphabetically",
			tool:  "custom",
			input: map[string]any{"zeta": 1, "alpha": 2},
			want:  []string{"alpha", "zeta"},
		},
		{
			name:  "primary absent leaves order sorted",
			tool:  "read",
			input: map[string]any{"offset": 1, "limit": 2},
			want:  []string{"limit", "offset"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SortedToolParams(tt.tool, tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SortedToolParams = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruncateParam(t *testing.T) {
	long := strings.Repeat("x", 300)
	tests := []struct {
		key     string
		value   any
		wantLen int
	}{
		{"command", long, 83},   // 80 + "..."
		{"path", long, 203},     // 200 + "..."
		{"other", long, 53},     // 50 + "..."
		{"command", "short", 5}, // under the limit, untouched
		{"count", 42, 2},        // non-strings formatted
	}
	for _, tt := range tests {
		got := TruncateParam(tt.key, tt.value)
		if len(got) != tt.wantLen {
			t.Errorf("TruncateParam(%q, …) length = %d, want %d", tt.key, len(got), tt.wantLen)
		}
	}
}

func TestHTMLText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tags stripped", "<p>Hello <b>world</b></p>", "Hello world"},
		{"script dropped", "<div>keep</div><script>var x = 1;</script><div>this</div>", "keep this"},
		{"style dropped", "<style>.a{color:red}</style>text", "text"},
		{"whitespace collapsed", "<p>a\n\n   b</p>", "a b"},
		{"plain text unchanged", "no tags here", "no tags here"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTMLText(tt.in); got != tt.want {
				t.Errorf("HTMLText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
