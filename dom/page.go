// Package dom simulates the part of a browser page margin boxes live in: the
// box container and style elements, with geometry derived from text metrics
// instead of a rendering engine.
package dom

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"marginbox/css"
	"marginbox/text"
)

// Element ids used by margin box layout.
const (
	ContainerID          = "margin-box-container"
	ActiveCommentStyleID = "active-comment-style"
	PlacementStyleID     = "margin-box-placement-style"
)

// Geometry describes the margin box column.
type Geometry struct {
	ContainerTop  int // page coordinate of the container top
	ContainerLeft int
	TopInset      int // container padding above the first box
	BoxWidth      int
	BoxPadding    int
	DefaultMargin int // box top margin when no placement rule applies
}

type element struct {
	tag   string
	inner string
}

// Page holds elements by id and counts every write to them.
type Page struct {
	geom     Geometry
	metrics  *text.Metrics
	log      *zap.Logger
	parser   *css.Parser
	elements map[string]*element
	order    []string
	writes   int
	scrollY  int
}

// NewPage creates page with an empty box container.
func NewPage(geom Geometry, metrics *text.Metrics, log *zap.Logger) *Page {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Page{
		geom:     geom,
		metrics:  metrics,
		log:      log.Named("dom"),
		parser:   css.NewParser(log),
		elements: make(map[string]*element),
	}
	p.add(ContainerID, "div")
	return p
}

func (p *Page) add(id, tag string) {
	p.elements[id] = &element{tag: tag}
	p.order = append(p.order, id)
}

func (p *Page) Geometry() Geometry {
	return p.geom
}

func (p *Page) Metrics() *text.Metrics {
	return p.metrics
}

// CreateStyle appends empty style element to the page head unless element
// with this id already exists.
func (p *Page) CreateStyle(id string) {
	if _, ok := p.elements[id]; ok {
		return
	}
	p.add(id, "style")
	p.writes++
	p.log.Debug("Style element created", zap.String("id", id))
}

// Has reports if element exists.
func (p *Page) Has(id string) bool {
	_, ok := p.elements[id]
	return ok
}

// InnerHTML returns element content, empty for unknown elements.
func (p *Page) InnerHTML(id string) string {
	if e, ok := p.elements[id]; ok {
		return e.inner
	}
	return ""
}

// SetInnerHTML replaces element content. Every call is a write, even when
// content does not change.
func (p *Page) SetInnerHTML(id, html string) error {
	e, ok := p.elements[id]
	if !ok {
		return fmt.Errorf("no element with id '%s'", id)
	}
	e.inner = html
	p.writes++
	p.log.Debug("Element updated", zap.String("id", id), zap.Int("bytes", len(html)), zap.Int("writes", p.writes))
	return nil
}

// Writes returns number of DOM writes performed so far.
func (p *Page) Writes() int {
	return p.writes
}

func (p *Page) SetScroll(y int) {
	p.scrollY = y
}

// ContainerTop returns top of the container bounding rectangle in viewport
// coordinates.
func (p *Page) ContainerTop() int {
	return p.geom.ContainerTop - p.scrollY
}

// Stylesheet parses content of a style element.
func (p *Page) Stylesheet(id string) *css.Stylesheet {
	return p.parser.Parse([]byte(p.InnerHTML(id)), id)
}

// IDs returns ids of page elements in creation order.
func (p *Page) IDs() []string {
	return slices.Clone(p.order)
}
