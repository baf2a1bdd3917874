package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/batalabs/mdux/internal/markdown"
)

var (
	ReasoningHeadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	ReasoningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	ToolNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("147")).Bold(true)
	ToolInputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ToolResultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))

	AgentHeadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true)
	AgentStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	PlanHeadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("222")).Bold(true)
	AskUserStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	ImageNoteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	HTMLTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// DefaultPalette is the standard 256-color markdown palette.
func DefaultPalette() markdown.Palette {
	return markdown.Palette{
		TextFg:       lipgloss.Color("252"),
		LinkFg:       lipgloss.Color("111"),
		InlineCodeFg: lipgloss.Color("81"),
		CodeTextFg:   lipgloss.Color("252"),
		CodeBg:       lipgloss.Color("236"),
		CodeHeaderFg: lipgloss.Color("240"),
		BorderFg:     lipgloss.Color("240"),
		TableHeadFg:  lipgloss.Color("111"),
		HeadingFg: map[int]lipgloss.Color{
			1: lipgloss.Color("213"),
			2: lipgloss.Color("219"),
			3: lipgloss.Color("222"),
			6: lipgloss.Color("181"),
		},
	}
}

// MonoPalette disables background fills for terminals where the
// default code background is unreadable.
func MonoPalette() markdown.Palette {
	palette := DefaultPalette()
	palette.Monochrome = true
	return palette
}
