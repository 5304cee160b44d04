package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")  // teal, headings and spinner
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted text
)

var (
	// StyleTitle renders headings such as the inspected file path.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue renders class names and paths.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
	// StyleWarning renders warning text.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
)

// statusOut receives status lines. Stdout is reserved for diagrams.
var statusOut io.Writer = os.Stderr

// statusIcons maps each status line kind to its prefix.
var statusIcons = map[string]string{
	"success": lipgloss.NewStyle().Foreground(colorGreen).Render("✓"),
	"warning": lipgloss.NewStyle().Foreground(colorYellow).Render("!"),
	"info":    lipgloss.NewStyle().Foreground(colorGray).Render("›"),
}

func status(kind, msg string) {
	fmt.Fprintln(statusOut, statusIcons[kind]+" "+msg)
}

func printSuccess(format string, args ...any) { status("success", fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	status("warning", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) { status("info", fmt.Sprintf(format, args...)) }

// printDetail prints an indented muted line under the previous status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written output file.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printStats prints scan counts on one line, e.g.
// "12 files · 10 classes · 14 imports · 8/12 cached".
func printStats(files, nodes, edges, cacheHits int) {
	parts := []string{fmt.Sprintf("%d files", files)}
	if nodes > 0 {
		parts = append(parts, fmt.Sprintf("%d classes", nodes))
	}
	if edges > 0 {
		parts = append(parts, fmt.Sprintf("%d imports", edges))
	}

	var cached string
	switch {
	case files > 0 && cacheHits == files:
		cached = styleCached.Render("cached")
	case cacheHits > 0:
		cached = StyleDim.Render(fmt.Sprintf("%d/%d cached", cacheHits, files))
	default:
		cached = StyleDim.Render("fresh")
	}

	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	parts = append(parts, cached)
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}
