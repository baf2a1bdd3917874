package blocks

// RenderNode is whatever a handler produces for display. The
// classifier only moves them around; nil results are filtered out.
type RenderNode = any

// Handlers is the callback table Classify dispatches groups to, one
// callback per group kind standing in for a polymorphic interface.
// OnSingleBlock is mandatory. OnImageBlock is optional: when nil,
// image blocks are skipped entirely. A handler returning nil
// contributes nothing; that is a silent filter, not an error.
type Handlers struct {
	OnReasoningGroup   func(run []ContentBlock, start int) RenderNode
	OnToolGroup        func(run []ContentBlock, start, next int) RenderNode
	OnImplementorGroup func(run []ContentBlock, start, next int) RenderNode
	OnAgentGroup       func(run []ContentBlock, start, next int) RenderNode
	OnSingleBlock      func(block ContentBlock, index int) RenderNode
	OnImageBlock       func(block ContentBlock, index int) RenderNode

	// IsImplementor classifies agent subtypes. Nil means no agent is
	// an implementor.
	IsImplementor func(agentType string) bool
}

// Partition splits a block sequence into maximal homogeneous groups in
// a single forward pass. Runs never reorder blocks, and a single
// non-matching block always terminates a run even if the same category
// resumes immediately after. Indices reflect original positions.
func Partition(input []ContentBlock, isImplementor func(agentType string) bool) []Group {
	if isImplementor == nil {
		isImplementor = func(string) bool { return false }
	}

	var groups []Group
	i := 0
	for i < len(input) {
		block := input[i]
		start := i

		switch {
		case block.IsReasoning():
			for i < len(input) && input[i].IsReasoning() {
				i++
			}
			groups = append(groups, Group{Kind: GroupReasoning, Blocks: input[start:i], Start: start, Next: i})

		case block.Type == TypeTool:
			for i < len(input) && input[i].Type == TypeTool {
				i++
			}
			groups = append(groups, Group{Kind: GroupTool, Blocks: input[start:i], Start: start, Next: i})

		case block.Type == TypeAgent:
			impl := isImplementor(block.AgentType)
			for i < len(input) && input[i].Type == TypeAgent && isImplementor(input[i].AgentType) == impl {
				i++
			}
			kind := GroupAgent
			if impl {
				kind = GroupImplementor
			}
			groups = append(groups, Group{Kind: kind, Blocks: input[start:i], Start: start, Next: i})

		default:
			// Text, image, html, plan, ask-user, and anything
			// unrecognized stand alone.
			i++
			groups = append(groups, Group{Kind: GroupSingle, Blocks: input[start:i], Start: start, Next: i})
		}
	}
	return groups
}

// Classify partitions blocks and dispatches each group to its handler,
// collecting non-nil results in order. O(n) over the input; a pure
// function of (blocks, handlers).
func Classify(input []ContentBlock, handlers Handlers) []RenderNode {
	var nodes []RenderNode
	emit := func(node RenderNode) {
		if node != nil {
			nodes = append(nodes, node)
		}
	}

	for _, group := range Partition(input, handlers.IsImplementor) {
		switch group.Kind {
		case GroupReasoning:
			if handlers.OnReasoningGroup != nil {
				emit(handlers.OnReasoningGroup(group.Blocks, group.Start))
			}
		case GroupTool:
			if handlers.OnToolGroup != nil {
				emit(handlers.OnToolGroup(group.Blocks, group.Start, group.Next))
			}
		case GroupImplementor:
			if handlers.OnImplementorGroup != nil {
				emit(handlers.OnImplementorGroup(group.Blocks, group.Start, group.Next))
			}
		case GroupAgent:
			if handlers.OnAgentGroup != nil {
				emit(handlers.OnAgentGroup(group.Blocks, group.Start, group.Next))
			}
		case GroupSingle:
			block := group.Blocks[0]
			if block.Type == TypeImage {
				// Image handling is optional: with no handler
				// registered the block is skipped, not an error.
				if handlers.OnImageBlock != nil {
					emit(handlers.OnImageBlock(block, group.Start))
				}
				continue
			}
			if handlers.OnSingleBlock != nil {
				emit(handlers.OnSingleBlock(block, group.Start))
			}
		}
	}
	return nodes
}
