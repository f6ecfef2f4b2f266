package marginbox

import (
	"marginbox/common"
	"marginbox/doc"
)

type markTrack struct {
	kind common.TrackKind
	// approved marks are part of the document already
	skipApproved bool
}

// marks producing tracked change boxes
var markTracks = map[doc.MarkKind]markTrack{
	doc.MarkKindInsertion: {kind: common.TrackKindInsertion, skipApproved: true},
	doc.MarkKindDeletion:  {kind: common.TrackKindDeletion},
}

// nodeTracks returns tracked changes of a node: explicit tracking attributes
// when present, changes derived from marks otherwise.
func nodeTracks(n *doc.Node) []TrackChange {
	nodeType := "text"
	if n.IsBlock() {
		nodeType = n.TypeName()
	}

	var tracks []TrackChange
	if len(n.Track) > 0 {
		for _, t := range n.Track {
			tracks = append(tracks, TrackChange{
				Kind:     t.Kind,
				NodeType: nodeType,
				Author:   Author{ID: t.UserID, Name: t.Username},
				Date:     t.Date,
			})
		}
		return tracks
	}
	for _, m := range n.Marks {
		mt, ok := markTracks[m.Kind]
		if !ok || (mt.skipApproved && m.Attrs.Approved) {
			continue
		}
		tracks = append(tracks, TrackChange{
			Kind:     mt.kind,
			NodeType: nodeType,
			Author:   Author{ID: m.Attrs.UserID, Name: m.Attrs.Username},
			Date:     m.Attrs.Date,
		})
	}
	return tracks
}
