// Package doc defines the tree shaped rich text document margin boxes are
// anchored to. Positions follow the usual rich text editor convention: a text
// node occupies one position per rune, a leaf node occupies one position and
// every other node occupies its content plus an opening and a closing token.
package doc

import (
	"strings"
	"unicode/utf8"

	"marginbox/common"
)

// MarkAttrs holds attributes of a mark. Which of them are meaningful depends
// on mark kind.
type MarkAttrs struct {
	UserID   string // insertion, deletion
	Username string // insertion, deletion
	Date     int64  // insertion, deletion, unix seconds
	Approved bool   // insertion
	ID       string // comment
	Href     string // link
}

type Mark struct {
	Kind  MarkKind
	Attrs MarkAttrs
}

// TrackAttr is explicit change tracking information attached to a block node.
type TrackAttr struct {
	Kind     common.TrackKind
	UserID   string
	Username string
	Date     int64
}

type Node struct {
	Kind     NodeKind
	Text     string // only for text nodes
	Marks    []Mark
	Track    []TrackAttr
	Attrs    map[string]string
	Children []*Node
}

// NewText creates text node with provided marks.
func NewText(text string, marks ...Mark) *Node {
	return &Node{Kind: NodeKindText, Text: text, Marks: marks}
}

// NewNode creates node of requested kind with children.
func NewNode(kind NodeKind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// IsInline reports whether node lives inside textblocks.
func (n *Node) IsInline() bool {
	return nodeSpecs[n.Kind].inline
}

// IsLeaf reports whether node cannot have content.
func (n *Node) IsLeaf() bool {
	return nodeSpecs[n.Kind].leaf
}

func (n *Node) IsText() bool {
	return n.Kind == NodeKindText
}

func (n *Node) IsTextblock() bool {
	return nodeSpecs[n.Kind].textblock
}

// IsBlock reports whether node is a block: textblock, container or block leaf.
func (n *Node) IsBlock() bool {
	return !n.IsInline()
}

// TypeName returns node type name as used in markup and stylesheets.
func (n *Node) TypeName() string {
	return n.Kind.String()
}

// HasMark checks if node carries mark of the kind.
func (n *Node) HasMark(kind MarkKind) bool {
	for _, m := range n.Marks {
		if m.Kind == kind {
			return true
		}
	}
	return false
}

// NodeSize returns number of positions node occupies in its parent.
func (n *Node) NodeSize() int {
	switch {
	case n.IsText():
		return utf8.RuneCountInString(n.Text)
	case n.IsLeaf():
		return 1
	default:
		return n.ContentSize() + 2
	}
}

// ContentSize returns number of positions taken by node children.
func (n *Node) ContentSize() int {
	size := 0
	for _, c := range n.Children {
		size += c.NodeSize()
	}
	return size
}

// Descendants calls fn for every descendant of the node in document order
// together with its position (relative to the start of node content) and
// parent. When fn returns false children of that node are not visited.
func (n *Node) Descendants(fn func(node *Node, pos int, parent *Node) bool) {
	n.descend(0, fn)
}

func (n *Node) descend(start int, fn func(node *Node, pos int, parent *Node) bool) {
	pos := start
	for _, child := range n.Children {
		if fn(child, pos, n) && len(child.Children) > 0 {
			child.descend(pos+1, fn)
		}
		pos += child.NodeSize()
	}
}

// TextContent concatenates text of all descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var sb strings.Builder
	n.Descendants(func(node *Node, _ int, _ *Node) bool {
		if node.IsText() {
			sb.WriteString(node.Text)
		}
		return true
	})
	return sb.String()
}

// NodeAt returns the inline node covering position pos (the node whose range
// contains pos, preferring the one starting at pos) and its start.
func (n *Node) NodeAt(pos int) (*Node, int) {
	var (
		found *Node
		start int
	)
	n.Descendants(func(node *Node, p int, _ *Node) bool {
		if found != nil {
			return false
		}
		if node.IsInline() && p <= pos && pos < p+node.NodeSize() {
			found, start = node, p
			return false
		}
		return p <= pos && pos < p+node.NodeSize()
	})
	return found, start
}
