// Package preview paints laid out page: document column on the left, margin
// boxes on the right and connectors from every displayed box to its anchor.
package preview

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"marginbox/config"
	"marginbox/dom"
	"marginbox/editor"
	"marginbox/text"
)

const (
	canvasMargin = 20
	jpegQuality  = 90
)

type Options struct {
	Format       config.PreviewFmt
	Scale        float64
	Background   string
	ActiveColor  string
	NeutralColor string
}

// Painter draws a single page into an image.
type Painter struct {
	view    *editor.View
	page    *dom.Page
	metrics *text.Metrics
	opts    Options
}

func NewPainter(view *editor.View, page *dom.Page, opts Options) *Painter {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	return &Painter{view: view, page: page, metrics: page.Metrics(), opts: opts}
}

// Paint returns image of the page in document coordinates, anchors are index
// aligned with boxes in the container. Boxes which do not line up with anchors
// are painted without connectors.
func (p *Painter) Paint(anchors []int) image.Image {
	var (
		blocks = p.view.Blocks()
		boxes  = p.page.QueryBoxes()
		rects  = p.page.Layout()
		scroll = p.view.ScrollY()
	)
	connect := len(boxes) == len(anchors)

	w, h := 0, 0
	for _, b := range blocks {
		w, h = max(w, b.Left+b.Width), max(h, b.Top+b.Height)
	}
	for _, r := range rects {
		w, h = max(w, r.Left+r.Width), max(h, r.Top+scroll+r.Height)
	}
	dc := gg.NewContext(w+canvasMargin, h+canvasMargin)
	dc.SetFontFace(p.metrics.Face())
	dc.SetHexColor(p.opts.Background)
	dc.Clear()

	for _, b := range blocks {
		p.drawLines(dc, b.Lines, float64(b.Left), float64(b.Top))
	}

	geom := p.page.Geometry()
	for _, r := range rects {
		box := boxes[r.Index]
		top := float64(r.Top + scroll)

		color := p.opts.NeutralColor
		if box.HasClass("active") {
			color = p.opts.ActiveColor
		}
		dc.SetHexColor(color)
		dc.DrawRectangle(float64(r.Left), top, float64(r.Width), float64(r.Height))
		dc.Fill()
		dc.SetRGB(0.6, 0.6, 0.6)
		dc.SetLineWidth(1)
		dc.DrawRectangle(float64(r.Left), top, float64(r.Width), float64(r.Height))
		dc.Stroke()

		inner := max(r.Width-2*geom.BoxPadding, 1)
		var lines []string
		for _, para := range strings.Split(box.Text, "\n") {
			lines = append(lines, p.metrics.Wrap(para, inner)...)
		}
		p.drawLines(dc, lines, float64(r.Left+geom.BoxPadding), top+float64(geom.BoxPadding))

		if !connect {
			continue
		}
		// anchor coordinates are viewport ones as well
		at := p.view.CoordsAtPos(anchors[r.Index])
		dc.SetRGB(0.8, 0.3, 0.3)
		dc.DrawLine(float64(at.Left), float64(at.Bottom+scroll), float64(r.Left), top)
		dc.Stroke()
	}
	return dc.Image()
}

func (p *Painter) drawLines(dc *gg.Context, lines []string, left, top float64) {
	ascent := float64(p.metrics.Face().Metrics().Ascent.Ceil())
	dc.SetRGB(0, 0, 0)
	for i, l := range lines {
		dc.DrawString(l, left, top+float64(i*p.metrics.LineHeight())+ascent)
	}
}

// Write paints the page, scales it and encodes it in requested format.
func (p *Painter) Write(w io.Writer, anchors []int) error {
	var err error
	img := p.Paint(anchors)
	if p.opts.Scale != 1 {
		width := max(int(float64(img.Bounds().Dx())*p.opts.Scale), 1)
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}
	switch p.opts.Format {
	case config.PreviewFmtJpeg:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	default:
		err = imaging.Encode(w, img, imaging.PNG)
	}
	if err != nil {
		return fmt.Errorf("unable to encode preview: %w", err)
	}
	return nil
}
