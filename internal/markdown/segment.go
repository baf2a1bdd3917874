package markdown

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Segment is one unit of rendered output: a literal string, a styled
// run, or a nested sequence. Segment order is render order. Segments
// are values; renders never share or mutate them after returning.
type Segment struct {
	Text string

	Fg lipgloss.Color
	Bg lipgloss.Color

	Bold          bool
	Italic        bool
	Dim           bool
	Strikethrough bool

	// Children, when non-empty, makes this a container. A container's
	// style applies to every descendant that doesn't override it
	// (nested emphasis composes this way).
	Children []Segment

	// key orders segments for list-reconciling UIs. Carries no
	// semantic meaning; assigned from a per-render counter.
	key int
}

// literal returns an unstyled segment.
func literal(text string) Segment {
	return Segment{Text: text}
}

// styled returns true if the segment carries any style of its own.
func (s Segment) styled() bool {
	return s.Fg != "" || s.Bg != "" || s.Bold || s.Italic || s.Dim || s.Strikethrough
}

// Plain returns the text content of a segment sequence with all
// styling dropped. Useful for tests and width measurement.
func Plain(segments []Segment) string {
	var b strings.Builder
	writePlain(&b, segments)
	return b.String()
}

func writePlain(b *strings.Builder, segments []Segment) {
	for _, segment := range segments {
		if len(segment.Children) > 0 {
			writePlain(b, segment.Children)
			continue
		}
		b.WriteString(segment.Text)
	}
}

// DisplayWidth returns the terminal column width of a plain string,
// accounting for wide runes and combining marks.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Painter converts segments to ANSI-styled text through a dedicated
// lipgloss renderer. The color profile is forced rather than detected:
// output is always destined for a terminal display, and detection
// produces uncolored output when stdout is not a TTY (tests, pipes
// into a pager).
type Painter struct {
	renderer *lipgloss.Renderer
}

// NewPainter returns a Painter writing profile-forced ANSI.
func NewPainter(out io.Writer) *Painter {
	renderer := lipgloss.NewRenderer(out, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)
	return &Painter{renderer: renderer}
}

// NewPlainPainter returns a Painter that emits no escape sequences.
func NewPlainPainter(out io.Writer) *Painter {
	renderer := lipgloss.NewRenderer(out, termenv.WithProfile(termenv.Ascii))
	renderer.SetColorProfile(termenv.Ascii)
	return &Painter{renderer: renderer}
}

// Paint renders a segment sequence to a single ANSI string.
func (p *Painter) Paint(segments []Segment) string {
	var b strings.Builder
	for _, segment := range segments {
		p.paintOne(&b, segment, Segment{})
	}
	return b.String()
}

// paintOne writes one segment, inheriting any style the enclosing
// containers established.
func (p *Painter) paintOne(b *strings.Builder, segment, inherited Segment) {
	effective := mergeStyle(inherited, segment)
	if len(segment.Children) > 0 {
		for _, child := range segment.Children {
			p.paintOne(b, child, effective)
		}
		return
	}
	if segment.Text == "" {
		return
	}
	if !effective.styled() {
		b.WriteString(segment.Text)
		return
	}

	// Style each line separately: a styled run spanning a newline
	// would otherwise leak background color across the line break.
	style := p.renderer.NewStyle()
	if effective.Fg != "" {
		style = style.Foreground(effective.Fg)
	}
	if effective.Bg != "" {
		style = style.Background(effective.Bg)
	}
	style = style.Bold(effective.Bold).
		Italic(effective.Italic).
		Faint(effective.Dim).
		Strikethrough(effective.Strikethrough)

	lines := strings.Split(segment.Text, "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		if line == "" {
			continue
		}
		b.WriteString(style.Render(line))
	}
}

// mergeStyle layers a segment's own style over the inherited one.
func mergeStyle(inherited, segment Segment) Segment {
	merged := segment
	if merged.Fg == "" {
		merged.Fg = inherited.Fg
	}
	if merged.Bg == "" {
		merged.Bg = inherited.Bg
	}
	merged.Bold = merged.Bold || inherited.Bold
	merged.Italic = merged.Italic || inherited.Italic
	merged.Dim = merged.Dim || inherited.Dim
	merged.Strikethrough = merged.Strikethrough || inherited.Strikethrough
	return merged
}
