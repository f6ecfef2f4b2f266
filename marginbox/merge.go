package marginbox

import (
	"errors"
	"slices"

	"marginbox/common"
	"marginbox/comments"
)

// ErrUnsortedAnchors means anchors are not in document order and insertion
// point for a new box cannot be found.
var ErrUnsortedAnchors = errors.New("anchors are not sorted")

// InsertionIndex returns index of the first anchor not less than pos.
func InsertionIndex(anchors []int, pos int) int {
	i := 0
	for i < len(anchors) && anchors[i] < pos {
		i++
	}
	return i
}

// MergeDraft inserts box of the comment being created anchored at pos keeping
// document order and appends its highlight rule.
func MergeDraft(c *Collection, draft *comments.Comment, pos int, highlight Highlighter) error {
	if !slices.IsSorted(c.Anchors) {
		return ErrUnsortedAnchors
	}
	i := InsertionIndex(c.Anchors, pos)
	c.Descriptors = slices.Insert(c.Descriptors, i, Descriptor{Kind: common.BoxKindComment, Pos: pos, Comment: draft, Draft: true})
	c.Anchors = slices.Insert(c.Anchors, i, pos)
	c.Style = string(highlight.AppendDraftRule([]byte(c.Style)))
	return nil
}
