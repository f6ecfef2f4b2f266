package marginbox

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"marginbox/common"
	"marginbox/comments"
)

func anchored(anchors ...int) Collection {
	var c Collection
	for _, a := range anchors {
		c.add(Descriptor{Kind: common.BoxKindComment, Pos: a, Comment: &comments.Comment{}})
	}
	return c
}

func TestInsertionIndex(t *testing.T) {
	tests := []struct {
		anchors []int
		pos     int
		want    int
	}{
		{[]int{5, 12, 20}, 15, 2},
		{[]int{5, 12, 20}, 1, 0},
		{[]int{5, 12, 20}, 25, 3},
		{[]int{5, 12, 12, 20}, 12, 1},
		{nil, 3, 0},
	}
	for _, tt := range tests {
		if got := InsertionIndex(tt.anchors, tt.pos); got != tt.want {
			t.Errorf("InsertionIndex(%v, %d) = %d, want %d", tt.anchors, tt.pos, got, tt.want)
		}
	}
}

func TestMergeDraft(t *testing.T) {
	c := anchored(5, 12, 20)
	draft := &comments.Comment{ID: "draft"}

	if err := MergeDraft(&c, draft, 15, Highlighter{}); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(c.Anchors, []int{5, 12, 15, 20}) {
		t.Errorf("anchors = %v", c.Anchors)
	}
	d := c.Descriptors[2]
	if d.Comment != draft || !d.Draft || d.Pos != 15 {
		t.Errorf("descriptor[2] = %+v", d)
	}
	if !strings.Contains(c.Style, ".comments-enabled .active-comment") {
		t.Errorf("draft highlight missing: %q", c.Style)
	}
}

func TestMergeDraft_Unsorted(t *testing.T) {
	c := anchored(5, 20, 12)
	err := MergeDraft(&c, &comments.Comment{ID: "draft"}, 15, Highlighter{})
	if !errors.Is(err, ErrUnsortedAnchors) {
		t.Fatalf("err = %v, want ErrUnsortedAnchors", err)
	}
	if c.Len() != 3 || c.Style != "" {
		t.Errorf("collection changed on failed merge: %v %q", c.Anchors, c.Style)
	}
}
