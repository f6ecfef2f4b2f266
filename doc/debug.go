package doc

import (
	"marginbox/utils/debug"
)

// String returns readable tree of the node with positions, the dump command
// prints it.
func (n *Node) String() string {
	if n == nil {
		return "<nil Node>"
	}
	tw := debug.NewTreeWriter()
	tw.Line(0, "%s size[%d]", n.TypeName(), n.NodeSize())
	depth := map[*Node]int{n: 0}
	n.Descendants(func(node *Node, pos int, parent *Node) bool {
		d := depth[parent] + 1
		depth[node] = d
		switch {
		case node.IsText():
			tw.Positioned(d, pos, "text %q", node.Text)
		default:
			tw.Positioned(d, pos, "%s size[%d]", node.TypeName(), node.NodeSize())
		}
		for _, m := range node.Marks {
			tw.Line(d+1, "mark %s %+v", m.Kind, m.Attrs)
		}
		for _, t := range node.Track {
			tw.Line(d+1, "track %s user[%s] date[%d]", t.Kind, t.UserID, t.Date)
		}
		return true
	})
	return tw.String()
}
