package marginbox

import (
	"slices"

	"marginbox/common"
	"marginbox/comments"
	"marginbox/doc"
)

// CommentIDFinder returns ids of comments referencing a node.
type CommentIDFinder interface {
	FindCommentIDs(node *doc.Node) []string
}

// CommentFinder resolves comment ids, nil for unknown ids.
type CommentFinder interface {
	FindComment(id string) *comments.Comment
}

// collector is the accumulator of a single document walk.
type collector struct {
	ids       CommentIDFinder
	store     CommentFinder
	highlight Highlighter

	// tracks of the previous node when it was inline, empty otherwise
	prevInline []TrackChange
	placed     map[*comments.Comment]bool
	style      []byte
	res        Collection
}

// Collect walks the document once and returns boxes in document order with
// their anchors and highlight style for every comment placed.
func Collect(root *doc.Node, ids CommentIDFinder, store CommentFinder, highlight Highlighter) Collection {
	c := &collector{
		ids:       ids,
		store:     store,
		highlight: highlight,
		placed:    make(map[*comments.Comment]bool),
	}
	root.Descendants(func(node *doc.Node, pos int, _ *doc.Node) bool {
		c.visit(node, pos)
		return true
	})
	c.res.Style = string(c.style)
	return c.res
}

func (c *collector) visit(node *doc.Node, pos int) {
	var commentIDs []string
	if node.IsInline() || node.IsLeaf() {
		commentIDs = c.ids.FindCommentIDs(node)
	}

	tracks := nodeTracks(node)
	for _, t := range tracks {
		// block level changes always need new boxes
		if !node.IsBlock() && slices.ContainsFunc(c.prevInline, t.same) {
			continue
		}
		c.res.add(Descriptor{Kind: common.BoxKindTrack, Pos: pos, Track: &t})
	}
	if node.IsBlock() {
		c.prevInline = nil
	} else {
		c.prevInline = tracks
	}

	for _, id := range commentIDs {
		comment := c.store.FindComment(id)
		if comment == nil || c.placed[comment] {
			continue
		}
		c.placed[comment] = true
		c.style = c.highlight.AppendCommentRule(c.style, comment.ID)
		c.res.add(Descriptor{Kind: common.BoxKindComment, Pos: pos, Comment: comment})
	}
}
