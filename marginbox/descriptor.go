// Package marginbox lays out margin boxes: comments and tracked changes shown
// beside the document, aligned with the text they refer to and never
// overlapping each other.
package marginbox

import (
	"marginbox/common"
	"marginbox/comments"
)

type Author struct {
	ID   string
	Name string
}

// TrackChange is a tracked change box. NodeType is "text" for changes of
// inline content and block type name otherwise.
type TrackChange struct {
	Kind     common.TrackKind
	NodeType string
	Author   Author
	Date     int64
}

// same reports whether two changes belong to the same edit.
func (t TrackChange) same(o TrackChange) bool {
	return t.Kind == o.Kind && t.Author.ID == o.Author.ID && t.Date == o.Date
}

// Descriptor is a single margin box to be rendered, either a tracked change
// or a comment.
type Descriptor struct {
	Kind    common.BoxKind
	Pos     int // anchor position
	Track   *TrackChange
	Comment *comments.Comment
	Draft   bool // comment is being created
}

// Collection is the ordered list of boxes with their anchors, anchors are
// index aligned with descriptors.
type Collection struct {
	Descriptors []Descriptor
	Anchors     []int
	// Style highlights comment ranges in the document.
	Style string
}

func (c *Collection) add(d Descriptor) {
	c.Descriptors = append(c.Descriptors, d)
	c.Anchors = append(c.Anchors, d.Pos)
}

func (c *Collection) Len() int {
	return len(c.Descriptors)
}
