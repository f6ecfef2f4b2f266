package marginbox

import (
	"marginbox/common"
	"marginbox/utils/debug"
)

// DumpCollection returns human readable list of boxes for debug reports.
func DumpCollection(c *Collection) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "boxes[%d] style[%d]", c.Len(), len(c.Style))
	for i, d := range c.Descriptors {
		switch d.Kind {
		case common.BoxKindTrack:
			tw.Positioned(1, d.Pos, "#%d %s %s by %s (%s) at %d", i+1, d.Track.Kind, d.Track.NodeType, d.Track.Author.Name, d.Track.Author.ID, d.Track.Date)
		case common.BoxKindComment:
			tw.Positioned(1, d.Pos, "#%d comment %s draft=%t resolved=%t", i+1, d.Comment.ID, d.Draft, d.Comment.Resolved)
			if d.Comment.Text != "" {
				tw.TextBlock(2, "text", d.Comment.Text)
			}
		}
	}
	return tw.String()
}
