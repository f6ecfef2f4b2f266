package doc_test

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"marginbox/common"
	"marginbox/doc"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<doc>
  <heading level="1">
    <track type="insertion" user="2" username="Bob" date="1700000100"/>
    Title
  </heading>
  <paragraph>
    Plain <ins user="1" username="Ann" date="1700000000">added <strong>bold</strong></ins>
    <del user="1" username="Ann" date="1700000000">gone</del>
    <comment id="c1">noted</comment><hard_break/>tail
  </paragraph>
  <blockquote>
    <paragraph><ins user="3" username="Cid" date="5" approved="true">ok</ins></paragraph>
  </blockquote>
</doc>`

func TestReadXML(t *testing.T) {
	root, err := doc.ReadXML(strings.NewReader(sampleXML), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("ReadXML() error = %v", err)
	}
	if root.Kind != doc.NodeKindDoc || len(root.Children) != 3 {
		t.Fatalf("unexpected root: %s", root)
	}

	heading := root.Children[0]
	if heading.Kind != doc.NodeKindHeading {
		t.Fatalf("first child = %s, want heading", heading.Kind)
	}
	if len(heading.Track) != 1 || heading.Track[0].Kind != common.TrackKindInsertion || heading.Track[0].Username != "Bob" {
		t.Errorf("heading track = %+v", heading.Track)
	}
	if heading.Attrs["level"] != "1" {
		t.Errorf("heading level = %q", heading.Attrs["level"])
	}
	if got := heading.TextContent(); got != "Title" {
		t.Errorf("heading text = %q, want Title", got)
	}

	para := root.Children[1]
	var kinds []string
	for _, c := range para.Children {
		kinds = append(kinds, c.TypeName())
	}
	want := "text,text,text,text,text,text,text,hard_break,text"
	if got := strings.Join(kinds, ","); got != want {
		t.Fatalf("paragraph children = %s, want %s\n%s", got, want, root)
	}
	if para.Children[0].Text != "Plain " {
		t.Errorf("first text = %q", para.Children[0].Text)
	}
	bold := para.Children[2]
	if bold.Text != "bold" || !bold.HasMark(doc.MarkKindInsertion) || !bold.HasMark(doc.MarkKindStrong) {
		t.Errorf("bold text = %q marks %+v", bold.Text, bold.Marks)
	}
	del := para.Children[4]
	if del.Text != "gone" || !del.HasMark(doc.MarkKindDeletion) {
		t.Errorf("deleted text = %q marks %+v", del.Text, del.Marks)
	}
	comment := para.Children[6]
	if comment.Marks[0].Kind != doc.MarkKindComment || comment.Marks[0].Attrs.ID != "c1" {
		t.Errorf("comment marks = %+v", comment.Marks)
	}
	if para.Children[8].Text != "tail" {
		t.Errorf("last text = %q", para.Children[8].Text)
	}

	approved := root.Children[2].Children[0].Children[0]
	if !approved.Marks[0].Attrs.Approved {
		t.Error("expected approved insertion")
	}
}

func TestReadXML_Errors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"malformed", `<doc><paragraph>`},
		{"wrong root", `<book/>`},
		{"inline at block level", `<doc><text/></doc>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := doc.ReadXML(strings.NewReader(tt.xml), nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadXML_UnknownWrapper(t *testing.T) {
	root, err := doc.ReadXML(strings.NewReader(`<doc><section><paragraph>x</paragraph></section></doc>`), nil)
	if err != nil {
		t.Fatalf("ReadXML() error = %v", err)
	}
	if len(root.Children) != 1 || root.Children[0].Kind != doc.NodeKindParagraph {
		t.Errorf("unknown wrapper must be unwrapped:\n%s", root)
	}
}

func TestReadXML_RootAttrs(t *testing.T) {
	root, err := doc.ReadXML(strings.NewReader(`<doc title="Field notes"><paragraph>x</paragraph></doc>`), nil)
	if err != nil {
		t.Fatalf("ReadXML() error = %v", err)
	}
	if got := root.Attrs["title"]; got != "Field notes" {
		t.Errorf("title = %q, want Field notes", got)
	}
}
