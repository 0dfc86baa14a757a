package export

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// SVGOptions controls how a grid snapshot is drawn.
type SVGOptions struct {
	Cell       float64 // pixel size of one cell
	Foreground string
	Background string
	Highlight  string // color for highlighted cells
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Cell:       16,
		Foreground: "#00ff41",
		Background: "#0a0a0a",
		Highlight:  "#d8ffd8",
	}
}

// GridToSVG renders rows of glyphs as SVG text elements. Blank cells are
// skipped. Cells listed in highlight (as [col, row]) use opts.Highlight.
func GridToSVG(rows [][]string, opts SVGOptions, highlight map[[2]int]bool) string {
	if len(rows) == 0 {
		return ""
	}
	if opts.Cell <= 0 {
		opts.Cell = DefaultSVGOptions().Cell
	}

	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	width := float64(cols) * opts.Cell
	height := float64(len(rows)) * opts.Cell

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s" font-family="monospace" font-size="%.1f" text-anchor="middle">
`, width, height, width, height, opts.Background, opts.Foreground, opts.Cell*0.9))

	for row, line := range rows {
		for col, g := range line {
			if strings.TrimSpace(g) == "" {
				continue
			}
			cx := float64(col)*opts.Cell + opts.Cell/2
			cy := float64(row)*opts.Cell + opts.Cell*0.8

			fill := ""
			if highlight[[2]int{col, row}] {
				fill = fmt.Sprintf(` fill="%s"`, opts.Highlight)
			}
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f"%s>`, cx, cy, fill))
			xml.EscapeText(&sb, []byte(g))
			sb.WriteString("</text>\n")
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
