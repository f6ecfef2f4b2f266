// Package report summarizes a finished layout pass: where every box ended up
// on the page relative to the text it refers to.
package report

import (
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"

	"marginbox/common"
	"marginbox/dom"
	"marginbox/editor"
	"marginbox/marginbox"
)

type Box struct {
	Ordinal   int    `yaml:"ordinal"` // nth-of-type of the box in container
	Kind      string `yaml:"kind"`
	ID        string `yaml:"id,omitempty"`
	Change    string `yaml:"change,omitempty"`
	Anchor    int    `yaml:"anchor"`
	AnchorTop int    `yaml:"anchor_top"`
	Margin    int    `yaml:"margin"`
	Top       int    `yaml:"top"`
	Height    int    `yaml:"height"`
	Aligned   bool   `yaml:"aligned"`
	Hidden    bool   `yaml:"hidden,omitempty"`
	Draft     bool   `yaml:"draft,omitempty"`
}

type Container struct {
	Top   int `yaml:"top"`
	Left  int `yaml:"left"`
	Width int `yaml:"width"`
}

type Summary struct {
	Pass   int  `yaml:"pass"`
	Placed bool `yaml:"placed"`
	// Misaligned is set when container holds Rendered boxes for a different
	// number of anchors, box geometry is omitted then.
	Misaligned bool      `yaml:"misaligned,omitempty"`
	Rendered   int       `yaml:"rendered,omitempty"`
	Writes     int       `yaml:"writes"`
	Container  Container `yaml:"container"`
	Boxes      []Box     `yaml:"boxes"`
}

// Build combines pass result with the page as it is now. Box geometry comes
// from the page, so an aborted pass reports whatever previous placement left.
// When rendered boxes do not line up with anchors only descriptors are
// reported.
func Build(page *dom.Page, view *editor.View, res *marginbox.PassResult) (*Summary, error) {
	if res == nil {
		return nil, fmt.Errorf("no layout pass completed")
	}
	geom := page.Geometry()
	s := &Summary{
		Pass:   res.Pass,
		Placed: res.Placement != nil,
		Writes: page.Writes(),
		Container: Container{
			Top:   page.ContainerTop(),
			Left:  geom.ContainerLeft,
			Width: geom.BoxWidth,
		},
		Boxes: make([]Box, 0, res.Collection.Len()),
	}

	boxes := page.QueryBoxes()
	aligned := len(boxes) == res.Collection.Len()
	rects := make(map[int]dom.Rect)
	if aligned {
		for _, r := range page.Layout() {
			rects[r.Index] = r
		}
	} else {
		s.Placed, s.Misaligned, s.Rendered = false, true, len(boxes)
	}

	for i, d := range res.Collection.Descriptors {
		b := Box{
			Ordinal:   i + 1,
			Kind:      d.Kind.String(),
			Anchor:    d.Pos,
			AnchorTop: view.CoordsAtPos(d.Pos).Top,
			Draft:     d.Draft,
		}
		if aligned {
			b.Hidden = boxes[i].Hidden()
		}
		switch d.Kind {
		case common.BoxKindComment:
			b.ID = d.Comment.ID
		case common.BoxKindTrack:
			b.Change = d.Track.Kind.String()
		}
		if r, ok := rects[i]; ok {
			b.Margin, b.Top, b.Height = r.Margin, r.Top, r.Height
			b.Aligned = r.Top == b.AnchorTop
		}
		s.Boxes = append(s.Boxes, b)
	}
	return s, nil
}

// Overlaps returns ordinals of displayed boxes starting above the bottom of
// the previous displayed box. Placement never produces any.
func (s *Summary) Overlaps() []int {
	var (
		out    []int
		bottom int
		seen   bool
	)
	for _, b := range s.Boxes {
		if b.Hidden {
			continue
		}
		if seen && b.Top < bottom {
			out = append(out, b.Ordinal)
		}
		bottom, seen = b.Top+b.Height, true
	}
	return out
}

func (s *Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("unable to encode layout summary: %w", err)
	}
	return enc.Close()
}
