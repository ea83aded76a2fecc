package extract

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF coordinates grow upward, so reading order is descending y. Fragments
// whose vertical positions differ by no more than sameLineTolerance are
// treated as one line and ordered left to right; a vertical jump beyond
// lineBreakThreshold starts a new line.
const (
	sameLineTolerance  = 2.0
	lineBreakThreshold = 5.0
)

type textFragment struct {
	x, y float64
	s    string
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var pages []string
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content := page.Content()
		fragments := make([]textFragment, 0, len(content.Text))
		for _, t := range content.Text {
			if t.S == "" {
				continue
			}
			fragments = append(fragments, textFragment{x: t.X, y: t.Y, s: t.S})
		}

		pages = append(pages, assemblePage(fragments))
	}

	return strings.TrimSpace(strings.Join(pages, "\n\n")), nil
}

// assemblePage rebuilds reading order for a page: top to bottom, left to
// right within a line. Multi-column layouts with shared baselines come out
// in visual order rather than PDF stream order.
func assemblePage(fragments []textFragment) string {
	sort.SliceStable(fragments, func(i, j int) bool {
		yDiff := fragments[j].y - fragments[i].y
		if yDiff > sameLineTolerance || yDiff < -sameLineTolerance {
			return fragments[i].y > fragments[j].y
		}
		return fragments[i].x < fragments[j].x
	})

	var lines []string
	var line []string
	lastY := 0.0
	for i, f := range fragments {
		if i > 0 && abs(lastY-f.y) > lineBreakThreshold {
			lines = append(lines, strings.Join(line, " "))
			line = line[:0]
		}
		line = append(line, f.s)
		lastY = f.y
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
