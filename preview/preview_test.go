package preview_test

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"marginbox/config"
	"marginbox/doc"
	"marginbox/dom"
	"marginbox/editor"
	"marginbox/preview"
	"marginbox/text"
)

func setup(t *testing.T) (*editor.View, *dom.Page) {
	t.Helper()
	metrics := text.NewMetrics(3)
	root := doc.NewNode(doc.NodeKindDoc,
		doc.NewNode(doc.NodeKindParagraph, doc.NewText("Some commented text")),
		doc.NewNode(doc.NodeKindParagraph, doc.NewText("More text further down")),
	)
	view := editor.NewView(&editor.State{Doc: root}, metrics, editor.Geometry{
		DocumentTop:   10,
		DocumentLeft:  10,
		DocumentWidth: 200,
		BlockSpacing:  150,
	})
	page := dom.NewPage(dom.Geometry{
		ContainerTop:  10,
		ContainerLeft: 240,
		TopInset:      10,
		BoxWidth:      120,
		BoxPadding:    5,
		DefaultMargin: 10,
	}, metrics, zaptest.NewLogger(t))
	page.CreateStyle(dom.PlacementStyleID)
	require.NoError(t, page.SetInnerHTML(dom.ContainerID,
		`<div class="margin-box comment"><p>first</p></div>`+"\n"+
			`<div class="margin-box comment hidden"><p>resolved</p></div>`+"\n"+
			`<div class="margin-box comment active"><p>second</p></div>`))
	require.NoError(t, page.SetInnerHTML(dom.PlacementStyleID, ".margin-box:nth-of-type(3) {margin-top: 120px;}\n"))
	return view, page
}

func near(t *testing.T, want color.NRGBA, got color.Color) {
	t.Helper()
	r, g, b, _ := got.RGBA()
	diff := func(a uint8, b uint32) int { return max(int(a)-int(b>>8), int(b>>8)-int(a)) }
	assert.LessOrEqual(t, diff(want.R, r), 2, "red of %v", got)
	assert.LessOrEqual(t, diff(want.G, g), 2, "green of %v", got)
	assert.LessOrEqual(t, diff(want.B, b), 2, "blue of %v", got)
}

func TestPainter_Paint(t *testing.T) {
	view, page := setup(t)
	p := preview.NewPainter(view, page, preview.Options{
		Background:   "#ffffff",
		ActiveColor:  "#fffacf",
		NeutralColor: "#f2f2f2",
	})

	img := p.Paint([]int{1, 5, 22})

	rects := page.Layout()
	require.Len(t, rects, 2)
	assert.Equal(t, 2, rects[1].Index)

	b := img.Bounds()
	assert.GreaterOrEqual(t, b.Dx(), 240+120)
	assert.GreaterOrEqual(t, b.Dy(), rects[1].Top+rects[1].Height)

	inside := func(r dom.Rect) (int, int) { return r.Left + r.Width - 3, r.Top + 2 }
	near(t, color.NRGBA{0xf2, 0xf2, 0xf2, 0xff}, img.At(inside(rects[0])))
	near(t, color.NRGBA{0xff, 0xfa, 0xcf, 0xff}, img.At(inside(rects[1])))
	near(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, img.At(b.Max.X-1, b.Max.Y-1))
}

func TestPainter_Mismatch(t *testing.T) {
	view, page := setup(t)
	p := preview.NewPainter(view, page, preview.Options{
		Background:   "#ffffff",
		ActiveColor:  "#fffacf",
		NeutralColor: "#f2f2f2",
	})

	// boxes are still painted, connectors are not
	img := p.Paint([]int{1})
	rects := page.Layout()
	require.Len(t, rects, 2)
	near(t, color.NRGBA{0xff, 0xfa, 0xcf, 0xff}, img.At(rects[1].Left+rects[1].Width-3, rects[1].Top+2))

	var buf bytes.Buffer
	assert.NoError(t, p.Write(&buf, nil))
	assert.NotZero(t, buf.Len())
}

func TestPainter_Write(t *testing.T) {
	view, page := setup(t)

	full := preview.NewPainter(view, page, preview.Options{Background: "#ffffff"}).Paint([]int{1, 5, 22})

	for _, tt := range []struct {
		name string
		fmt  config.PreviewFmt
	}{
		{"png", config.PreviewFmtPng},
		{"jpeg", config.PreviewFmtJpeg},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p := preview.NewPainter(view, page, preview.Options{Format: tt.fmt, Scale: 0.5, Background: "#ffffff"})

			path := filepath.Join(t.TempDir(), "preview"+tt.fmt.Ext())
			var buf bytes.Buffer
			require.NoError(t, p.Write(&buf, []int{1, 5, 22}))
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

			img, err := imaging.Open(path)
			require.NoError(t, err)
			assert.Equal(t, full.Bounds().Dx()/2, img.Bounds().Dx())
		})
	}
}
