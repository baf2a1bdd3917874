package tui

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/batalabs/mdux/internal/markdown"
)

// streamChunk is how many bytes of source each stream tick reveals.
const streamChunk = 48

type streamTickMsg struct{}

// Viewer is a bubbletea pager for a rendered markdown document. In
// streaming mode it reveals the source incrementally, re-rendering the
// growing prefix through the streaming gate each tick the way a chat
// client renders a reply as it generates.
type Viewer struct {
	source  string
	opts    markdown.Options
	stream  bool
	shown   int
	ready   bool
	vp      viewport.Model
	painter *markdown.Painter
}

// NewViewer builds a viewer over markdown source.
func NewViewer(source string, opts markdown.Options, stream bool) *Viewer {
	shown := len(source)
	if stream {
		shown = 0
	}
	return &Viewer{source: source, opts: opts, stream: stream, shown: shown}
}

// Run starts the pager and blocks until the user quits.
func (v *Viewer) Run() error {
	program := tea.NewProgram(v, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

func (v *Viewer) Init() tea.Cmd {
	if v.stream {
		return streamTick()
	}
	return nil
}

func streamTick() tea.Cmd {
	return tea.Tick(40*time.Millisecond, func(time.Time) tea.Msg {
		return streamTickMsg{}
	})
}

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		if !v.ready {
			v.vp = viewport.New(msg.Width, msg.Height-1)
			v.painter = markdown.NewPainter(io.Discard)
			v.ready = true
		} else {
			v.vp.Width = msg.Width
			v.vp.Height = msg.Height - 1
		}
		v.opts.Width = msg.Width
		v.refresh()
		return v, nil

	case streamTickMsg:
		if v.shown >= len(v.source) {
			return v, nil
		}
		v.shown = advanceShown(v.source, v.shown, streamChunk)
		v.refresh()
		v.vp.GotoBottom()
		return v, streamTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return v, tea.Quit
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

// advanceShown moves the reveal cursor forward by roughly chunk bytes,
// then on to the next rune boundary so a partial rune never renders.
func advanceShown(source string, shown, chunk int) int {
	shown += chunk
	if shown >= len(source) {
		return len(source)
	}
	for shown < len(source) && !utf8.RuneStart(source[shown]) {
		shown++
	}
	return shown
}

// refresh re-renders the visible prefix into the viewport.
func (v *Viewer) refresh() {
	if !v.ready {
		return
	}
	segments := markdown.RenderIncremental(v.source[:v.shown], v.opts)
	v.vp.SetContent(v.painter.Paint(segments))
}

func (v *Viewer) View() string {
	if !v.ready {
		return "loading…"
	}
	status := "q quit  ↑/↓ scroll"
	if v.stream && v.shown < len(v.source) {
		status = fmt.Sprintf("streaming %d%%  ·  %s", v.shown*100/len(v.source), status)
	}
	return v.vp.View() + "\n" + ToolInputStyle.Render(truncateStatus(status, v.vp.Width))
}

func truncateStatus(status string, width int) string {
	if width <= 0 || len(status) <= width {
		return status
	}
	return strings.TrimSpace(status[:width])
}
