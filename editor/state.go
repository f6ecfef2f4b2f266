// Package editor models the parts of a rich text editor margin box layout
// talks to: editor state with selection and decorations, and a view able to
// tell where a document position is on screen.
package editor

import (
	"slices"

	"marginbox/common"
	"marginbox/doc"
)

// CommentDuringCreationKey identifies decoration marking range of a comment
// which is still being composed.
const CommentDuringCreationKey = "comment-during-creation"

type Selection struct {
	Anchor int
	Head   int
}

type Range struct {
	From int
	To   int
}

// Decoration is a transient visual range, it is never part of the document.
type Decoration struct {
	Range
	Key string
}

type State struct {
	Doc         *doc.Node
	Selection   Selection
	Decorations []Decoration
}

// User is the person working with the editor.
type User struct {
	ID       string `yaml:"id"`
	Username string `yaml:"username"`
}

// DocInfo carries document level permissions affecting box rendering.
type DocInfo struct {
	Title      string `yaml:"title"`
	AccessRole string `yaml:"access_rights"`
}

// CanComment reports if access role allows answering and resolving comments.
func (d DocInfo) CanComment() bool {
	switch d.AccessRole {
	case "write", "write-tracked", "comment", "review":
		return true
	}
	return false
}

// CommentDuringCreationDecoration returns range of the comment being created
// if the decoration exists and can be resolved against current document.
func CommentDuringCreationDecoration(st *State) (Range, bool) {
	if st == nil || st.Doc == nil {
		return Range{}, false
	}
	size := st.Doc.ContentSize()
	for _, d := range st.Decorations {
		if d.Key != CommentDuringCreationKey {
			continue
		}
		if d.From < 0 || d.To < d.From || d.To > size {
			return Range{}, false
		}
		return d.Range, true
	}
	return Range{}, false
}

// SelectedChange is a run of inline content carrying the same tracked change
// under selection head.
type SelectedChange struct {
	Kind common.TrackKind
	Range
}

// SelectedChanges returns insertion and deletion runs selection head is in.
func SelectedChanges(st *State) []SelectedChange {
	if st == nil || st.Doc == nil {
		return nil
	}
	node, _ := st.Doc.NodeAt(st.Selection.Head)
	if node == nil {
		return nil
	}
	var changes []SelectedChange
	for _, m := range node.Marks {
		kind, ok := trackedMark(m)
		if !ok {
			continue
		}
		if r, ok := markRun(st.Doc, st.Selection.Head, m); ok {
			changes = append(changes, SelectedChange{Kind: kind, Range: r})
		}
	}
	return changes
}

func trackedMark(m doc.Mark) (common.TrackKind, bool) {
	switch {
	case m.Kind == doc.MarkKindDeletion:
		return common.TrackKindDeletion, true
	case m.Kind == doc.MarkKindInsertion && !m.Attrs.Approved:
		return common.TrackKindInsertion, true
	}
	return 0, false
}

// markRun extends inline node under pos in both directions while siblings
// carry the same mark.
func markRun(root *doc.Node, pos int, mark doc.Mark) (Range, bool) {
	res, ok := root.Resolve(pos)
	if !ok {
		return Range{}, false
	}
	var (
		run  Range
		open bool
	)
	childPos := res.Start
	for _, c := range res.Block.Children {
		size := c.NodeSize()
		switch {
		case hasMark(c, mark) && !open:
			run, open = Range{From: childPos, To: childPos + size}, true
		case hasMark(c, mark):
			run.To = childPos + size
		default:
			if open && run.From <= pos && pos < run.To {
				return run, true
			}
			open = false
		}
		childPos += size
	}
	if open && run.From <= pos && pos < run.To {
		return run, true
	}
	return Range{}, false
}

func hasMark(n *doc.Node, mark doc.Mark) bool {
	return slices.Contains(n.Marks, mark)
}
