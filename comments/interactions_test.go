package comments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"marginbox/doc"
	"marginbox/editor"
	"marginbox/text"
)

func commentMark(id string) doc.Mark {
	return doc.Mark{Kind: doc.MarkKindComment, Attrs: doc.MarkAttrs{ID: id}}
}

func TestFindCommentIDs(t *testing.T) {
	i := NewInteractions(NewStore(), zap.NewNop())
	n := doc.NewText("x", commentMark("b"), doc.Mark{Kind: doc.MarkKindStrong}, commentMark("a"), commentMark("b"))
	assert.Equal(t, []string{"b", "a"}, i.FindCommentIDs(n))
	assert.Empty(t, i.FindCommentIDs(doc.NewText("y")))
}

func TestActivateSelectedComment(t *testing.T) {
	store := NewStore()
	assert.NoError(t, store.Add(&Comment{ID: "c1"}))

	// paragraph 0, "ab" 1-2, "cd" 3-4 (dangling + c1), "ef" 5-6
	d := doc.NewNode(doc.NodeKindDoc, doc.NewNode(doc.NodeKindParagraph,
		doc.NewText("ab"),
		doc.NewText("cd", commentMark("gone"), commentMark("c1")),
		doc.NewText("ef"),
	))
	st := &editor.State{Doc: d, Selection: editor.Selection{Anchor: 3, Head: 4}}
	view := editor.NewView(st, text.NewMetrics(0), editor.Geometry{DocumentWidth: 100})

	i := NewInteractions(store, nil)
	i.ActivateSelectedComment(view)
	assert.Equal(t, "c1", i.ActiveCommentID())

	i.SetActiveAnswer("a1")
	i.ActivateSelectedComment(view)
	assert.Equal(t, "a1", i.ActiveCommentAnswerID(), "same comment keeps active answer")

	view.UpdateState(&editor.State{Doc: d, Selection: editor.Selection{Anchor: 6, Head: 6}})
	i.ActivateSelectedComment(view)
	assert.Empty(t, i.ActiveCommentID())
	assert.Empty(t, i.ActiveCommentAnswerID())
}

func TestEditing(t *testing.T) {
	i := NewInteractions(NewStore(), nil)
	assert.False(t, i.IsCurrentlyEditing())
	i.SetEditing(true)
	assert.True(t, i.IsCurrentlyEditing())
}

func TestFindCommentPos(t *testing.T) {
	d := doc.NewNode(doc.NodeKindDoc,
		doc.NewNode(doc.NodeKindParagraph, doc.NewText("ab")),
		doc.NewNode(doc.NodeKindParagraph, doc.NewText("cd"), doc.NewText("ef", commentMark("c1"))),
	)
	pos, ok := FindCommentPos(d, "c1")
	assert.True(t, ok)
	assert.Equal(t, 7, pos)

	_, ok = FindCommentPos(d, "c2")
	assert.False(t, ok)
}
