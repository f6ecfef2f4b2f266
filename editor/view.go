package editor

import (
	"sort"

	"marginbox/doc"
	"marginbox/text"
)

// Geometry describes where the document column is laid out on the page.
type Geometry struct {
	DocumentTop   int
	DocumentLeft  int
	DocumentWidth int
	BlockSpacing  int
}

// Coords is a screen rectangle of zero width at a document position.
type Coords struct {
	Top    int
	Bottom int
	Left   int
}

// Block is a laid out block of the document column in document coordinates
// (scroll is not applied).
type Block struct {
	Type   string
	Pos    int
	Top    int
	Left   int
	Width  int
	Height int
	Lines  []string
}

type blockLayout struct {
	Block
	runes   []rune
	offsets []int // rune offset of each line start
}

// View lays the document out into a single column of blocks and answers
// coordinate queries against that layout.
type View struct {
	state   *State
	metrics *text.Metrics
	geom    Geometry
	scrollY int
	blocks  []blockLayout // nil when state changed since last layout
}

func NewView(st *State, metrics *text.Metrics, geom Geometry) *View {
	return &View{state: st, metrics: metrics, geom: geom}
}

func (v *View) State() *State {
	return v.state
}

// UpdateState replaces editor state, layout is recomputed lazily.
func (v *View) UpdateState(st *State) {
	v.state = st
	v.blocks = nil
}

func (v *View) SetScroll(y int) {
	v.scrollY = y
}

func (v *View) ScrollY() int {
	return v.scrollY
}

// Blocks returns document layout.
func (v *View) Blocks() []Block {
	v.layout()
	res := make([]Block, 0, len(v.blocks))
	for _, b := range v.blocks {
		res = append(res, b.Block)
	}
	return res
}

// CoordsAtPos returns screen coordinates of a document position. Positions
// between blocks resolve to the top of the following block.
func (v *View) CoordsAtPos(pos int) Coords {
	v.layout()
	lh := v.metrics.LineHeight()
	if len(v.blocks) == 0 {
		top := v.geom.DocumentTop - v.scrollY
		return Coords{Top: top, Bottom: top + lh, Left: v.geom.DocumentLeft}
	}

	if res, ok := v.state.Doc.Resolve(pos); ok {
		i := sort.Search(len(v.blocks), func(i int) bool { return v.blocks[i].Pos >= res.Start-1 })
		if i < len(v.blocks) && v.blocks[i].Pos == res.Start-1 {
			b := &v.blocks[i]
			line := sort.SearchInts(b.offsets, res.Offset+1) - 1
			line = max(line, 0)
			top := b.Top + line*lh - v.scrollY
			left := b.Left + v.metrics.StringWidth(string(b.runes[b.offsets[line]:min(res.Offset, len(b.runes))]))
			return Coords{Top: top, Bottom: top + lh, Left: left}
		}
	}

	i := sort.Search(len(v.blocks), func(i int) bool { return v.blocks[i].Pos >= pos })
	if i == len(v.blocks) {
		last := v.blocks[len(v.blocks)-1]
		top := last.Top + last.Height - v.scrollY
		return Coords{Top: top, Bottom: top + lh, Left: last.Left}
	}
	b := v.blocks[i]
	top := b.Top - v.scrollY
	return Coords{Top: top, Bottom: top + lh, Left: b.Left}
}

func (v *View) layout() {
	if v.blocks != nil || v.state == nil || v.state.Doc == nil {
		return
	}
	lh := v.metrics.LineHeight()
	y := v.geom.DocumentTop
	blocks := make([]blockLayout, 0, 16)
	v.state.Doc.Descendants(func(node *doc.Node, pos int, _ *doc.Node) bool {
		switch {
		case node.IsInline():
			return false
		case node.IsTextblock():
			runes := blockRunes(node)
			b := blockLayout{
				Block: Block{
					Type:  node.TypeName(),
					Pos:   pos,
					Top:   y,
					Left:  v.geom.DocumentLeft,
					Width: v.geom.DocumentWidth,
				},
				runes:   runes,
				offsets: v.metrics.Offsets(runes, v.geom.DocumentWidth),
			}
			for i, start := range b.offsets {
				end := len(runes)
				if i+1 < len(b.offsets) {
					end = b.offsets[i+1]
				}
				b.Lines = append(b.Lines, string(runes[start:end]))
			}
			b.Height = len(b.offsets) * lh
			blocks = append(blocks, b)
			y += b.Height + v.geom.BlockSpacing
			return false
		case node.IsLeaf():
			blocks = append(blocks, blockLayout{
				Block:   Block{Type: node.TypeName(), Pos: pos, Top: y, Left: v.geom.DocumentLeft, Width: v.geom.DocumentWidth, Height: lh},
				offsets: []int{0},
			})
			y += lh + v.geom.BlockSpacing
			return false
		}
		return true
	})
	v.blocks = blocks
}

// blockRunes flattens textblock content so that rune index equals position
// offset inside the block.
func blockRunes(block *doc.Node) []rune {
	runes := make([]rune, 0, block.ContentSize())
	for _, c := range block.Children {
		switch {
		case c.IsText():
			runes = append(runes, []rune(c.Text)...)
		default:
			// inline leaves take one cell
			runes = append(runes, ' ')
		}
	}
	return runes
}

// Editor bundles what a layout pass needs from the editor.
type Editor struct {
	View    *View
	User    User
	DocInfo DocInfo
}
