package doc

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"marginbox/common"
)

// XML representation of the document is a direct mapping of the node tree:
// element names are node kind names, inline wrappers (ins, del, comment,
// strong, em, a, u) become marks on the text they enclose and <track/>
// elements directly under a block become its explicit tracking attributes.

var markTags = map[string]MarkKind{
	"ins":     MarkKindInsertion,
	"del":     MarkKindDeletion,
	"comment": MarkKindComment,
	"strong":  MarkKindStrong,
	"b":       MarkKindStrong,
	"em":      MarkKindEm,
	"i":       MarkKindEm,
	"a":       MarkKindLink,
	"u":       MarkKindUnderline,
}

// ReadXML parses XML document from reader.
func ReadXML(r io.Reader, log *zap.Logger) (*Node, error) {
	xd := etree.NewDocument()
	if _, err := xd.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read document XML: %w", err)
	}
	return ParseXML(xd, log)
}

// ParseXML walks etree DOM and builds document node tree.
func ParseXML(xd *etree.Document, log *zap.Logger) (*Node, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if xd == nil {
		return nil, fmt.Errorf("nil document")
	}
	root := xd.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	if root.Tag != NodeKindDoc.String() {
		return nil, fmt.Errorf("unexpected root element %q", root.Tag)
	}
	p := &xmlParser{log: log.Named("doc")}
	node := &Node{Kind: NodeKindDoc, Attrs: elementAttrs(root)}
	if err := p.parseBlockContent(root, node); err != nil {
		return nil, err
	}
	return node, nil
}

type xmlParser struct {
	log *zap.Logger
}

func (p *xmlParser) parseBlockContent(el *etree.Element, parent *Node) error {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				p.log.Debug("Ignoring text outside of textblock", zap.String("parent", parent.TypeName()), zap.String("text", t.Data))
			}
		case *etree.Element:
			if t.Tag == "track" {
				attr, err := parseTrack(t)
				if err != nil {
					p.log.Debug("Ignoring malformed track element", zap.String("parent", parent.TypeName()), zap.Error(err))
					continue
				}
				parent.Track = append(parent.Track, attr)
				continue
			}
			kind, err := ParseNodeKind(t.Tag)
			if err != nil || kind == NodeKindDoc {
				p.log.Warn("Unexpected element, unwrapping", zap.String("tag", t.Tag), zap.String("parent", parent.TypeName()))
				if err := p.parseBlockContent(t, parent); err != nil {
					return err
				}
				continue
			}
			child := &Node{Kind: kind, Attrs: elementAttrs(t)}
			switch {
			case child.IsInline():
				return fmt.Errorf("inline element %q directly inside %q", t.Tag, parent.TypeName())
			case child.IsTextblock():
				p.parseTrackChildren(t, child)
				p.parseInlineContent(t, child, nil)
				normalizeInline(child)
			case child.IsLeaf():
				p.parseTrackChildren(t, child)
			default:
				if err := p.parseBlockContent(t, child); err != nil {
					return fmt.Errorf("%s: %w", t.Tag, err)
				}
			}
			parent.Children = append(parent.Children, child)
		}
	}
	return nil
}

func (p *xmlParser) parseTrackChildren(el *etree.Element, node *Node) {
	for _, t := range el.SelectElements("track") {
		attr, err := parseTrack(t)
		if err != nil {
			p.log.Debug("Ignoring malformed track element", zap.String("parent", node.TypeName()), zap.Error(err))
			continue
		}
		node.Track = append(node.Track, attr)
	}
}

func (p *xmlParser) parseInlineContent(el *etree.Element, block *Node, marks []Mark) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			text := collapseSpace(t.Data)
			if text == "" {
				continue
			}
			block.Children = append(block.Children, NewText(text, append([]Mark(nil), marks...)...))
		case *etree.Element:
			if t.Tag == "track" {
				// already processed
				continue
			}
			if kind, ok := markTags[t.Tag]; ok {
				p.parseInlineContent(t, block, append(marks, parseMark(kind, t)))
				continue
			}
			if kind, err := ParseMarkKind(t.Tag); err == nil {
				p.parseInlineContent(t, block, append(marks, parseMark(kind, t)))
				continue
			}
			kind, err := ParseNodeKind(t.Tag)
			if err != nil || !(&Node{Kind: kind}).IsInline() || kind == NodeKindText {
				p.log.Warn("Unexpected inline element, unwrapping", zap.String("tag", t.Tag), zap.String("parent", block.TypeName()))
				p.parseInlineContent(t, block, marks)
				continue
			}
			block.Children = append(block.Children, &Node{Kind: kind, Marks: append([]Mark(nil), marks...), Attrs: elementAttrs(t)})
		}
	}
}

func parseMark(kind MarkKind, el *etree.Element) Mark {
	m := Mark{Kind: kind}
	m.Attrs.UserID = el.SelectAttrValue("user", "")
	m.Attrs.Username = el.SelectAttrValue("username", "")
	m.Attrs.Date, _ = strconv.ParseInt(el.SelectAttrValue("date", "0"), 10, 64)
	m.Attrs.Approved, _ = strconv.ParseBool(el.SelectAttrValue("approved", "false"))
	m.Attrs.ID = el.SelectAttrValue("id", "")
	m.Attrs.Href = el.SelectAttrValue("href", "")
	return m
}

func parseTrack(el *etree.Element) (TrackAttr, error) {
	kind, err := common.ParseTrackKind(el.SelectAttrValue("type", ""))
	if err != nil {
		return TrackAttr{}, err
	}
	date, err := strconv.ParseInt(el.SelectAttrValue("date", "0"), 10, 64)
	if err != nil {
		return TrackAttr{}, fmt.Errorf("bad track date: %w", err)
	}
	return TrackAttr{
		Kind:     kind,
		UserID:   el.SelectAttrValue("user", ""),
		Username: el.SelectAttrValue("username", ""),
		Date:     date,
	}, nil
}

func elementAttrs(el *etree.Element) map[string]string {
	if len(el.Attr) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(el.Attr))
	for _, a := range el.Attr {
		attrs[a.Key] = a.Value
	}
	return attrs
}

func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			space = true
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.WriteRune(r)
	}
	if space {
		sb.WriteByte(' ')
	}
	return sb.String()
}

// normalizeInline trims whitespace at textblock edges and joins adjacent text
// nodes carrying the same marks.
func normalizeInline(block *Node) {
	children := block.Children[:0]
	for _, c := range block.Children {
		if n := len(children); n > 0 && c.IsText() && children[n-1].IsText() && sameMarks(c.Marks, children[n-1].Marks) {
			children[n-1].Text += c.Text
			continue
		}
		children = append(children, c)
	}
	if n := len(children); n > 0 {
		if first := children[0]; first.IsText() {
			first.Text = strings.TrimLeft(first.Text, " ")
		}
		if last := children[n-1]; last.IsText() {
			last.Text = strings.TrimRight(last.Text, " ")
		}
	}
	block.Children = children[:0]
	for _, c := range children {
		if c.IsText() && c.Text == "" {
			continue
		}
		block.Children = append(block.Children, c)
	}
}

func sameMarks(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
