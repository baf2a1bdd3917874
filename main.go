// mdux CLI entry point
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/batalabs/mdux/internal/config"
	"github.com/batalabs/mdux/internal/markdown"
	"github.com/batalabs/mdux/internal/tui"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	widthFlag := flag.Int("width", 0, "Target render width (default: config, then 100)")
	monoFlag := flag.Bool("mono", false, "Monochrome palette (no background fills)")
	plainFlag := flag.Bool("plain", false, "Strip all styling from output")
	viewFlag := flag.Bool("view", false, "Open the rendered document in an interactive pager")
	streamFlag := flag.Bool("stream", false, "Simulate incremental (streaming) rendering in the pager")
	flag.Parse()

	logger := config.NewLogger()
	defer logger.Close()

	if *versionFlag {
		fmt.Printf("mdux %s\n", version)
		return
	}

	source, err := readSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	prefs := config.LoadPreferences()

	palette := tui.DefaultPalette()
	if *monoFlag || prefs.Theme == "mono" {
		palette = tui.MonoPalette()
	}
	palette.SyntaxHighlight = prefs.SyntaxHighlight
	palette.ChromaStyle = prefs.ChromaStyle

	width := 100
	if prefs.Width > 0 {
		width = prefs.Width
	}
	if *widthFlag > 0 {
		width = *widthFlag
	}

	opts := markdown.Options{Palette: palette, Width: width, Logger: logger}

	if *viewFlag || *streamFlag {
		if err := tui.NewViewer(source, opts, *streamFlag).Run(); err != nil {
			logger.Printf("viewer: %v", err)
			fmt.Fprintf(os.Stderr, "error: %v (details in %s)\n", err, config.LogPath())
			os.Exit(1)
		}
		return
	}

	painter := markdown.NewPainter(os.Stdout)
	if *plainFlag {
		painter = markdown.NewPlainPainter(os.Stdout)
	}
	fmt.Println(painter.Paint(markdown.Render(source, opts)))
}

// readSource reads the markdown source from a file argument or, when
// absent, from stdin.
func readSource(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
