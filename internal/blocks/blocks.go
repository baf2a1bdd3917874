// Package blocks models the flat sequence of heterogeneous content a
// conversation turn produces (text, tool calls, sub-agent transcripts,
// images) and partitions it into maximal same-kind runs for composite
// display.
package blocks

// BlockType tags a ContentBlock.
type BlockType string

const (
	TypeText      BlockType = "text"
	TypeTool      BlockType = "tool"
	TypeAgent     BlockType = "agent"
	TypeImage     BlockType = "image"
	TypeHTML      BlockType = "html"
	TypePlan      BlockType = "plan"
	TypeAskUser   BlockType = "ask-user"
	TypeAgentList BlockType = "agent-list"
)

// Text block subtypes.
const (
	TextTypeReasoning = "reasoning"
	TextTypeText      = "text"
)

// ContentBlock is one unit of conversation content. Type selects which
// fields are meaningful. Sequence order is semantic and is never
// reordered by classification.
type ContentBlock struct {
	Type BlockType `json:"type"`

	// TypeText and TypeHTML.
	Text     string `json:"text,omitempty"`
	TextType string `json:"text_type,omitempty"` // "reasoning" or "text"; empty means "text"

	// TypeTool.
	ToolCallID string         `json:"tool_call_id,omitempty"`
	ToolName   string         `json:"tool_name,omitempty"`
	ToolInput  map[string]any `json:"tool_input,omitempty"`
	ToolOutput string         `json:"tool_output,omitempty"`
	HasOutput  bool           `json:"has_output,omitempty"`

	// TypeAgent.
	AgentID       string         `json:"agent_id,omitempty"`
	AgentType     string         `json:"agent_type,omitempty"`
	Status        string         `json:"status,omitempty"`
	Blocks        []ContentBlock `json:"blocks,omitempty"`
	InitialPrompt string         `json:"initial_prompt,omitempty"`

	// TypeImage.
	MediaType string `json:"media_type,omitempty"`
	Data      string `json:"data,omitempty"`
}

// IsReasoning reports whether the block is reasoning text.
func (b ContentBlock) IsReasoning() bool {
	return b.Type == TypeText && b.TextType == TextTypeReasoning
}

// GroupKind labels a classified run.
type GroupKind string

const (
	GroupReasoning   GroupKind = "reasoning"
	GroupTool        GroupKind = "tool"
	GroupImplementor GroupKind = "implementor"
	GroupAgent       GroupKind = "agent"
	GroupSingle      GroupKind = "single"
)

// Group is one maximal run of same-kind blocks. Start and Next are
// positions in the original sequence: the run covers [Start, Next).
// Groups partition their input with no gaps or overlaps; for grouped
// kinds Next-Start == len(Blocks), for GroupSingle it is exactly 1.
type Group struct {
	Kind   GroupKind
	Blocks []ContentBlock
	Start  int
	Next   int
}
