package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/batalabs/mdux/internal/blocks"
	"github.com/batalabs/mdux/internal/markdown"
)

const maxResultLines = 20

// Formatter renders a conversation's content blocks into styled
// terminal text: markdown for text, compact headers for tool calls,
// indented nested transcripts for sub-agents.
type Formatter struct {
	opts          markdown.Options
	painter       *markdown.Painter
	isImplementor func(agentType string) bool
}

// NewFormatter builds a Formatter rendering with the given markdown
// options. The implementor predicate defaults to agent types named
// "implementor" or prefixed "implementor-".
func NewFormatter(opts markdown.Options) *Formatter {
	return &Formatter{
		opts:    opts,
		painter: markdown.NewPainter(io.Discard),
		isImplementor: func(agentType string) bool {
			return agentType == "implementor" || strings.HasPrefix(agentType, "implementor-")
		},
	}
}

// SetImplementorPredicate replaces the agent-subtype classifier.
func (f *Formatter) SetImplementorPredicate(pred func(agentType string) bool) {
	f.isImplementor = pred
}

// FormatTranscript classifies the blocks and renders each group,
// joined by blank lines. Groups whose handler produces nothing are
// dropped silently.
func (f *Formatter) FormatTranscript(content []blocks.ContentBlock, width int) string {
	if width < 30 {
		width = 30
	}
	opts := f.opts
	opts.Width = width

	handlers := blocks.Handlers{
		IsImplementor: f.isImplementor,
		OnReasoningGroup: func(run []blocks.ContentBlock, _ int) blocks.RenderNode {
			return nonEmpty(f.reasoningGroup(run, width))
		},
		OnToolGroup: func(run []blocks.ContentBlock, _, _ int) blocks.RenderNode {
			return nonEmpty(f.toolGroup(run, width))
		},
		OnImplementorGroup: func(run []blocks.ContentBlock, _, _ int) blocks.RenderNode {
			return nonEmpty(f.agentGroup(run, width))
		},
		OnAgentGroup: func(run []blocks.ContentBlock, _, _ int) blocks.RenderNode {
			return nonEmpty(f.agentGroup(run, width))
		},
		OnSingleBlock: func(block blocks.ContentBlock, _ int) blocks.RenderNode {
			return nonEmpty(f.singleBlock(block, opts))
		},
		OnImageBlock: func(block blocks.ContentBlock, _ int) blocks.RenderNode {
			return nonEmpty(ImageNoteStyle.Render("[image " + block.MediaType + "]"))
		},
	}

	var sections []string
	for _, node := range blocks.Classify(content, handlers) {
		sections = append(sections, node.(string))
	}
	return strings.Join(sections, "\n\n")
}

// nonEmpty converts an empty section to a nil render node so the
// classifier filters it.
func nonEmpty(section string) blocks.RenderNode {
	if section == "" {
		return nil
	}
	return section
}

func (f *Formatter) reasoningGroup(run []blocks.ContentBlock, width int) string {
	var texts []string
	for _, block := range run {
		if trimmed := strings.TrimSpace(block.Text); trimmed != "" {
			texts = append(texts, trimmed)
		}
	}
	if len(texts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(ReasoningHeadStyle.Render("∴ thinking"))
	for _, line := range strings.Split(ansi.Wrap(strings.Join(texts, "\n\n"), width-2, " ,.;-"), "\n") {
		b.WriteString("\n  " + ReasoningStyle.Render(line))
	}
	return b.String()
}

func (f *Formatter) toolGroup(run []blocks.ContentBlock, width int) string {
	var parts []string
	for _, block := range run {
		parts = append(parts, f.formatToolCall(block, width))
	}
	return strings.Join(parts, "\n")
}

func (f *Formatter) formatToolCall(block blocks.ContentBlock, width int) string {
	keys := SortedToolParams(block.ToolName, block.ToolInput)
	params := make([]string, 0, len(keys))
	for _, key := range keys {
		params = append(params, key+"="+TruncateParam(key, block.ToolInput[key]))
	}

	header := ToolNameStyle.Render("● " + block.ToolName)
	if len(params) > 0 {
		header += ToolInputStyle.Render("(" + strings.Join(params, ", ") + ")")
	}
	header = ansi.Truncate(header, width, "…")
	if !block.HasOutput {
		return header
	}

	lines := strings.Split(strings.TrimRight(block.ToolOutput, "\n"), "\n")
	if len(lines) > maxResultLines {
		lines = append(lines[:maxResultLines],
			fmt.Sprintf("… (%d more lines)", len(lines)-maxResultLines))
	}
	body := make([]string, len(lines))
	for i, line := range lines {
		body[i] = "  " + ToolResultStyle.Render(ansi.Truncate(line, width-2, "…"))
	}
	return header + "\n" + strings.Join(body, "\n")
}

func (f *Formatter) agentGroup(run []blocks.ContentBlock, width int) string {
	var parts []string
	for _, agent := range run {
		var b strings.Builder
		b.WriteString(AgentHeadStyle.Render("◆ " + agent.AgentType))
		if agent.Status != "" {
			b.WriteString(AgentStatusStyle.Render(" (" + agent.Status + ")"))
		}
		if agent.InitialPrompt != "" {
			prompt := firstLine(agent.InitialPrompt)
			b.WriteString("\n  " + AgentStatusStyle.Render(ansi.Truncate(prompt, width-2, "…")))
		}
		if len(agent.Blocks) > 0 {
			nested := f.FormatTranscript(agent.Blocks, width-2)
			if nested != "" {
				b.WriteString("\n" + indentLines(nested, 2))
			}
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n")
}

func (f *Formatter) singleBlock(block blocks.ContentBlock, opts markdown.Options) string {
	switch block.Type {
	case blocks.TypeText:
		return f.renderMarkdown(block.Text, opts)
	case blocks.TypeHTML:
		if text := HTMLText(block.Text); text != "" {
			return HTMLTextStyle.Render(text)
		}
		return ""
	case blocks.TypePlan:
		rendered := f.renderMarkdown(block.Text, opts)
		if rendered == "" {
			return ""
		}
		return PlanHeadStyle.Render("plan") + "\n" + rendered
	case blocks.TypeAskUser:
		return AskUserStyle.Render(strings.TrimSpace(block.Text))
	case blocks.TypeAgentList:
		var names []string
		for _, agent := range block.Blocks {
			if agent.Type == blocks.TypeAgent {
				names = append(names, agent.AgentType)
			}
		}
		if len(names) == 0 {
			return ""
		}
		return AgentStatusStyle.Render("agents: " + strings.Join(names, ", "))
	default:
		return strings.TrimSpace(block.Text)
	}
}

func (f *Formatter) renderMarkdown(source string, opts markdown.Options) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	segments := markdown.Render(source, opts)
	return strings.TrimRight(f.painter.Paint(segments), "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func indentLines(content string, width int) string {
	indent := strings.Repeat(" ", width)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}

// SortedToolParams returns parameter keys in a deterministic order,
// placing the primary param for each tool first.
func SortedToolParams(toolName string, input map[string]any) []string {
	primary := map[string]string{
		"read":  "path",
		"write": "path",
		"edit":  "path",
		"bash":  "command",
		"grep":  "pattern",
		"ls":    "path",
	}

	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if primaryKey, ok := primary[toolName]; ok {
		for i, key := range keys {
			if key == primaryKey {
				keys = append([]string{key}, append(keys[:i], keys[i+1:]...)...)
				break
			}
		}
	}
	return keys
}

// TruncateParam returns a truncated string representation of a tool
// param value.
func TruncateParam(key string, value any) string {
	text := fmt.Sprintf("%v", value)
	limit := 50
	switch key {
	case "command":
		limit = 80
	case "path", "old_string", "new_string", "content":
		limit = 200
	}
	if len(text) > limit {
		text = text[:limit] + "..."
	}
	return text
}
