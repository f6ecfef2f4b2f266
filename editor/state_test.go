package editor

import (
	"testing"

	"marginbox/common"
	"marginbox/doc"
)

func trackedDoc() *doc.Node {
	ins := doc.Mark{Kind: doc.MarkKindInsertion, Attrs: doc.MarkAttrs{UserID: "u1", Username: "Ann", Date: 10}}
	del := doc.Mark{Kind: doc.MarkKindDeletion, Attrs: doc.MarkAttrs{UserID: "u2", Username: "Bob", Date: 20}}
	strong := doc.Mark{Kind: doc.MarkKindStrong}
	// positions: paragraph 0, "ab" 1-2, "cd" 3-4 (ins), "ef" 5-6 (ins+strong), "gh" 7-8 (del), "ij" 9-10
	return doc.NewNode(doc.NodeKindDoc,
		doc.NewNode(doc.NodeKindParagraph,
			doc.NewText("ab"),
			doc.NewText("cd", ins),
			doc.NewText("ef", ins, strong),
			doc.NewText("gh", del),
			doc.NewText("ij"),
		),
	)
}

func TestCommentDuringCreationDecoration(t *testing.T) {
	d := trackedDoc()
	tests := []struct {
		name  string
		decos []Decoration
		want  Range
		ok    bool
	}{
		{"none", nil, Range{}, false},
		{"other key", []Decoration{{Range{1, 2}, "search"}}, Range{}, false},
		{"found", []Decoration{{Range{1, 2}, "search"}, {Range{3, 5}, CommentDuringCreationKey}}, Range{3, 5}, true},
		{"outside document", []Decoration{{Range{3, 50}, CommentDuringCreationKey}}, Range{}, false},
		{"inverted", []Decoration{{Range{5, 3}, CommentDuringCreationKey}}, Range{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CommentDuringCreationDecoration(&State{Doc: d, Decorations: tt.decos})
			if ok != tt.ok || got != tt.want {
				t.Errorf("got %v %v, want %v %v", got, ok, tt.want, tt.ok)
			}
		})
	}
	if _, ok := CommentDuringCreationDecoration(nil); ok {
		t.Error("nil state resolved a decoration")
	}
}

func TestSelectedChanges(t *testing.T) {
	d := trackedDoc()
	tests := []struct {
		name string
		head int
		want []SelectedChange
	}{
		{"plain text", 1, nil},
		{"insertion start", 3, []SelectedChange{{common.TrackKindInsertion, Range{3, 7}}}},
		{"insertion spans marks", 6, []SelectedChange{{common.TrackKindInsertion, Range{3, 7}}}},
		{"deletion", 8, []SelectedChange{{common.TrackKindDeletion, Range{7, 9}}}},
		{"outside textblock", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectedChanges(&State{Doc: d, Selection: Selection{Anchor: tt.head, Head: tt.head}})
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("change[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSelectedChanges_ApprovedInsertionIgnored(t *testing.T) {
	ins := doc.Mark{Kind: doc.MarkKindInsertion, Attrs: doc.MarkAttrs{UserID: "u1", Approved: true}}
	d := doc.NewNode(doc.NodeKindDoc, doc.NewNode(doc.NodeKindParagraph, doc.NewText("abc", ins)))
	if got := SelectedChanges(&State{Doc: d, Selection: Selection{Head: 2}}); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestDocInfoCanComment(t *testing.T) {
	for role, want := range map[string]bool{"write": true, "comment": true, "read": false, "": false} {
		if got := (DocInfo{AccessRole: role}).CanComment(); got != want {
			t.Errorf("CanComment(%q) = %v, want %v", role, got, want)
		}
	}
}
