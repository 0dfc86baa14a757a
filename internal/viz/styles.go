package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/digirain/internal/theme"
)

type styles struct {
	head    lipgloss.Style
	glyph   lipgloss.Style
	canvas  lipgloss.Style
	sidebar lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
	paused  lipgloss.Style
	running lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	return styles{
		head:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Head)).Bold(true),
		glyph:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Glyph)),
		canvas:  lipgloss.NewStyle().Padding(0, 1),
		sidebar: lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color(t.Muted)).Padding(0, 2).Width(40),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).Width(10),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		graph:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).MarginTop(1),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).Italic(true).MarginTop(1),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00")),
		running: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent)),
	}
}

// gradientText colors each rune of text along a blend from start to end.
func gradientText(text string, start, end string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Blend(start, end, t)))
		sb.WriteString(style.Render(string(r)))
	}
	return sb.String()
}
