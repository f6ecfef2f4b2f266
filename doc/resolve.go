package doc

// Resolved describes a position inside a textblock.
type Resolved struct {
	Block  *Node
	Start  int // position of the first content token of Block
	Offset int // pos - Start
}

// Resolve returns the innermost textblock containing pos. Positions right
// before or right after the textblock content belong to it. When pos points
// between blocks ok is false.
func (n *Node) Resolve(pos int) (res Resolved, ok bool) {
	n.Descendants(func(node *Node, p int, _ *Node) bool {
		if ok || node.IsInline() {
			return false
		}
		end := p + node.NodeSize()
		if pos <= p || pos >= end {
			return false
		}
		if node.IsTextblock() {
			res, ok = Resolved{Block: node, Start: p + 1, Offset: pos - p - 1}, true
			return false
		}
		return true
	})
	return res, ok
}
