package dom

import (
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"marginbox/css"
)

// BoxClass marks margin box elements inside the container.
const BoxClass = "margin-box"

// Box is a margin box element as currently present in the container.
type Box struct {
	Index   int // position among margin boxes, 0 based
	Tag     string
	Classes []string
	Attrs   map[string]string
	Text    string
	Height  int // border box height, 0 for hidden boxes
	el      *css.Element
}

// Hidden reports if box is not displayed.
func (b *Box) Hidden() bool {
	return slices.Contains(b.Classes, "hidden")
}

// HasClass checks element class list.
func (b *Box) HasClass(class string) bool {
	return slices.Contains(b.Classes, class)
}

// Rect is the final position of a displayed box.
type Rect struct {
	Index  int
	Left   int
	Top    int
	Width  int
	Height int
	Margin int
}

// blocks which start a new line of text inside a box
var lineBreaking = map[atom.Atom]bool{
	atom.Div: true, atom.P: true, atom.Header: true, atom.Footer: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Blockquote: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Br: true,
}

// QueryBoxes parses container markup and returns margin box elements in
// document order with their measured heights.
func (p *Page) QueryBoxes() []*Box {
	container := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	nodes, err := html.ParseFragment(strings.NewReader(p.InnerHTML(ContainerID)), container)
	if err != nil {
		p.log.Warn("Unable to parse box container", zap.Error(err))
		return nil
	}

	root := &css.Element{Name: "div", Attrs: map[string]string{"id": ContainerID}}
	var boxes []*Box
	var walk func(n *html.Node, parent *css.Element, nth map[string]int)
	walk = func(n *html.Node, parent *css.Element, nth map[string]int) {
		if n.Type != html.ElementNode {
			return
		}
		nth[n.Data]++
		el := &css.Element{Name: n.Data, Attrs: make(map[string]string, len(n.Attr)), NthOfType: nth[n.Data], Parent: parent}
		for _, a := range n.Attr {
			el.Attrs[a.Key] = a.Val
			if a.Key == "class" {
				el.Classes = strings.Fields(a.Val)
			}
		}
		if slices.Contains(el.Classes, BoxClass) {
			box := &Box{
				Index:   len(boxes),
				Tag:     n.Data,
				Classes: el.Classes,
				Attrs:   el.Attrs,
				el:      el,
			}
			lines := paragraphs(n)
			box.Text = strings.Join(lines, "\n")
			if !box.Hidden() {
				box.Height = p.boxHeight(lines)
			}
			boxes = append(boxes, box)
		}
		children := make(map[string]int)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, el, children)
		}
	}
	top := make(map[string]int)
	for _, n := range nodes {
		walk(n, root, top)
	}
	return boxes
}

func (p *Page) boxHeight(lines []string) int {
	inner := max(p.geom.BoxWidth-2*p.geom.BoxPadding, 1)
	h := 2 * p.geom.BoxPadding
	for _, l := range lines {
		h += p.metrics.Height(l, inner)
	}
	return h
}

// paragraphs returns text of the box split at line breaking elements, with
// white space collapsed. Empty paragraphs are dropped.
func paragraphs(n *html.Node) []string {
	var (
		res []string
		cur strings.Builder
	)
	flush := func() {
		if s := strings.Join(strings.Fields(cur.String()), " "); s != "" {
			res = append(res, s)
		}
		cur.Reset()
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			cur.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.DataAtom == atom.Script || n.DataAtom == atom.Style || hasClass(n, "hidden") {
				return
			}
		}
		breaks := n.Type == html.ElementNode && lineBreaking[n.DataAtom]
		if breaks {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if breaks {
			flush()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	flush()
	return res
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" && slices.Contains(strings.Fields(a.Val), class) {
			return true
		}
	}
	return false
}

// Layout applies the placement stylesheet to current boxes and returns final
// rectangles of displayed boxes, stacked from the container top.
func (p *Page) Layout() []Rect {
	sheet := p.Stylesheet(PlacementStyleID)
	for _, w := range sheet.Warnings {
		p.log.Debug("Placement stylesheet", zap.String("warning", w))
	}

	cursor := p.ContainerTop() + p.geom.TopInset
	var rects []Rect
	for _, b := range p.QueryBoxes() {
		if b.Hidden() {
			continue
		}
		margin := p.geom.DefaultMargin
		if v, ok := sheet.Lookup(b.el, "margin-top"); ok && v.IsNumeric() {
			margin = int(v.Value)
		}
		top := cursor + margin
		rects = append(rects, Rect{
			Index:  b.Index,
			Left:   p.geom.ContainerLeft,
			Top:    top,
			Width:  p.geom.BoxWidth,
			Height: b.Height,
			Margin: margin,
		})
		cursor = top + b.Height
	}
	return rects
}
