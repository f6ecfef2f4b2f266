package marginbox

import (
	"fmt"
	"strings"
)

const (
	DefaultTopInset  = 10
	DefaultMinMargin = 10
)

// MeasuredBox is what measure phase learns about a rendered box.
type MeasuredBox struct {
	Hidden    bool
	Height    float64
	AnchorTop float64 // viewport top of the anchor position
}

// PlacedBox is the outcome of placement for a single box.
type PlacedBox struct {
	Hidden bool
	Margin int
	Rule   bool    // margin comes from a placement rule
	Top    float64 // viewport top of the box
	Cursor float64 // cursor after the box
}

type Placement struct {
	Style string
	Boxes []PlacedBox
}

// ComputePlacement stacks boxes from the container top, pushing each visible
// box down to its anchor when the anchor is below the boxes placed so far.
// Boxes with anchors at or above the cursor get minMargin and no rule.
func ComputePlacement(containerTop float64, topInset, minMargin int, boxes []MeasuredBox) Placement {
	var (
		style  strings.Builder
		placed = make([]PlacedBox, len(boxes))
		cursor = containerTop + float64(topInset)
	)
	for i, b := range boxes {
		if b.Hidden {
			placed[i] = PlacedBox{Hidden: true, Cursor: cursor}
			continue
		}
		p := PlacedBox{Margin: minMargin}
		if b.AnchorTop > cursor {
			p.Margin, p.Rule = int(b.AnchorTop-cursor), true
			fmt.Fprintf(&style, ".margin-box:nth-of-type(%d) {margin-top: %dpx;}\n", i+1, p.Margin)
		}
		p.Top = cursor + float64(p.Margin)
		cursor += b.Height + float64(p.Margin)
		p.Cursor = cursor
		placed[i] = p
	}
	return Placement{Style: style.String(), Boxes: placed}
}
