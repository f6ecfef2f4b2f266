// Package text provides text metrics shared by the simulated page (margin box
// heights) and the editor view (anchor coordinates), so both sides of a
// layout pass measure text the same way.
package text

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/width"
)

// Metrics measures text set in a fixed cell font.
type Metrics struct {
	face       *basicfont.Face
	lineHeight int
}

// NewMetrics returns metrics for the built in 7x13 face with extra spacing
// between lines.
func NewMetrics(lineGap int) *Metrics {
	if lineGap < 0 {
		lineGap = 0
	}
	face := basicfont.Face7x13
	return &Metrics{
		face:       face,
		lineHeight: face.Metrics().Height.Ceil() + lineGap,
	}
}

// Face returns font face used for measurements, so rendering can use the same.
func (m *Metrics) Face() font.Face {
	return m.face
}

func (m *Metrics) LineHeight() int {
	return m.lineHeight
}

// RuneAdvance returns horizontal advance of a rune. East Asian wide and
// fullwidth runes take two cells.
func (m *Metrics) RuneAdvance(r rune) int {
	adv := font.MeasureString(m.face, string(r)).Ceil()
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2 * adv
	}
	return adv
}

func (m *Metrics) StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += m.RuneAdvance(r)
	}
	return w
}

// Wrap splits text into lines not wider than maxWidth. Lines break at spaces
// when possible, words longer than a line are broken at rune boundary.
// Empty text produces a single empty line.
func (m *Metrics) Wrap(s string, maxWidth int) []string {
	runes := []rune(s)
	offsets := m.Offsets(runes, maxWidth)
	lines := make([]string, 0, len(offsets))
	for i, start := range offsets {
		end := len(runes)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		lines = append(lines, strings.TrimSuffix(string(runes[start:end]), " "))
	}
	return lines
}

// Offsets returns rune offsets at which wrapped lines start, it lets callers
// map a rune offset back to its line.
func (m *Metrics) Offsets(runes []rune, maxWidth int) []int {
	offsets := []int{0}
	var (
		start     int
		lineWidth int
		lastSpace = -1
	)
	for i := 0; i < len(runes); i++ {
		adv := m.RuneAdvance(runes[i])
		// trailing spaces hang past the line end
		if runes[i] != ' ' && lineWidth+adv > maxWidth && i > start {
			next := i
			if lastSpace > start {
				next = lastSpace + 1
			}
			offsets = append(offsets, next)
			start = next
			lastSpace = -1
			lineWidth = 0
			for j := start; j < i; j++ {
				lineWidth += m.RuneAdvance(runes[j])
			}
		}
		if runes[i] == ' ' {
			lastSpace = i
		}
		lineWidth += adv
	}
	return offsets
}

// Height returns height of text wrapped to maxWidth.
func (m *Metrics) Height(s string, maxWidth int) int {
	return len(m.Wrap(s, maxWidth)) * m.lineHeight
}
