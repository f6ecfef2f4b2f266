package comments

import (
	"slices"

	"go.uber.org/zap"

	"marginbox/doc"
	"marginbox/editor"
)

// Interactions tracks what the user is doing with comments: which one is
// active and whether a comment text is being edited at the moment.
type Interactions struct {
	store          *Store
	log            *zap.Logger
	editing        bool
	activeID       string
	activeAnswerID string
}

func NewInteractions(store *Store, log *zap.Logger) *Interactions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactions{store: store, log: log.Named("comments")}
}

func (i *Interactions) Store() *Store {
	return i.store
}

// IsCurrentlyEditing reports if a comment text field has focus.
func (i *Interactions) IsCurrentlyEditing() bool {
	return i.editing
}

func (i *Interactions) SetEditing(editing bool) {
	i.editing = editing
}

func (i *Interactions) ActiveCommentID() string {
	return i.activeID
}

func (i *Interactions) ActiveCommentAnswerID() string {
	return i.activeAnswerID
}

// SetActiveAnswer marks answer of the active comment as the one user works with.
func (i *Interactions) SetActiveAnswer(id string) {
	i.activeAnswerID = id
}

// FindCommentIDs returns IDs of comment marks on node in mark order, each ID
// once.
func (i *Interactions) FindCommentIDs(node *doc.Node) []string {
	var ids []string
	for _, m := range node.Marks {
		if m.Kind != doc.MarkKindComment || m.Attrs.ID == "" {
			continue
		}
		if !slices.Contains(ids, m.Attrs.ID) {
			ids = append(ids, m.Attrs.ID)
		}
	}
	return ids
}

// ActivateSelectedComment makes the comment under selection head active, or
// deactivates any when there is none. Active answer is kept only while the
// active comment stays the same.
func (i *Interactions) ActivateSelectedComment(view *editor.View) {
	id := ""
	if st := view.State(); st != nil && st.Doc != nil {
		if node, _ := st.Doc.NodeAt(st.Selection.Head); node != nil {
			for _, cid := range i.FindCommentIDs(node) {
				if i.store.FindComment(cid) != nil {
					id = cid
					break
				}
			}
		}
	}
	if id != i.activeID {
		i.log.Debug("Active comment changed", zap.String("from", i.activeID), zap.String("to", id))
		i.activeAnswerID = ""
	}
	i.activeID = id
}

// FindCommentPos returns position of the first node marked with comment id.
func FindCommentPos(root *doc.Node, id string) (int, bool) {
	pos, found := 0, false
	root.Descendants(func(node *doc.Node, p int, _ *doc.Node) bool {
		if found {
			return false
		}
		for _, m := range node.Marks {
			if m.Kind == doc.MarkKindComment && m.Attrs.ID == id {
				pos, found = p, true
				return false
			}
		}
		return true
	})
	return pos, found
}
