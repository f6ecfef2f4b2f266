package marginbox

import (
	"fmt"

	"go.uber.org/zap"

	"marginbox/common"
	"marginbox/comments"
	"marginbox/dom"
	"marginbox/editor"
)

// Scheduler batches geometry reads and writes of all page users.
type Scheduler interface {
	Measure(fn func())
	Mutate(fn func())
}

// DataReporter receives per pass artifacts for debug reports.
type DataReporter interface {
	StoreData(name string, data []byte)
}

type Options struct {
	TopInset           int
	MinMargin          int
	ActiveColor        string
	NeutralColor       string
	TemplatePath       string
	ShowResolved       bool
	ShowTrackedChanges bool
}

// DefaultOptions returns options boxes are laid out with unless configured
// otherwise.
func DefaultOptions() Options {
	return Options{
		TopInset:           DefaultTopInset,
		MinMargin:          DefaultMinMargin,
		ActiveColor:        DefaultActiveColor,
		NeutralColor:       DefaultNeutralColor,
		ShowTrackedChanges: true,
	}
}

// PassResult describes a finished layout pass.
type PassResult struct {
	Pass       int
	Collection Collection
	Markup     string
	// Placement is nil when pass was aborted.
	Placement *Placement
	// Draft is set when box of the comment being created was placed.
	Draft bool
}

// Marginboxes keeps margin boxes of an editor in sync with its document.
type Marginboxes struct {
	editor       *editor.Editor
	interactions *comments.Interactions
	store        *comments.Store
	page         *dom.Page
	sched        Scheduler
	renderer     *Renderer
	opts         Options
	log          *zap.Logger
	report       DataReporter

	pass int
	last *PassResult
}

func New(ed *editor.Editor, interactions *comments.Interactions, page *dom.Page, sched Scheduler, opts Options, log *zap.Logger) (*Marginboxes, error) {
	if log == nil {
		log = zap.NewNop()
	}
	renderer, err := NewRenderer(opts.TemplatePath)
	if err != nil {
		return nil, err
	}
	return &Marginboxes{
		editor:       ed,
		interactions: interactions,
		store:        interactions.Store(),
		page:         page,
		sched:        sched,
		renderer:     renderer,
		opts:         opts,
		log:          log.Named("marginbox"),
	}, nil
}

// SetReport makes every pass store its artifacts in r.
func (m *Marginboxes) SetReport(r DataReporter) {
	m.report = r
}

// Setup adds style elements boxes are positioned and highlighted with.
func (m *Marginboxes) Setup() {
	m.page.CreateStyle(dom.ActiveCommentStyleID)
	m.page.CreateStyle(dom.PlacementStyleID)
}

// LastPass returns result of the most recently completed pass, nil if none
// completed yet.
func (m *Marginboxes) LastPass() *PassResult {
	return m.last
}

// View lays boxes out for current editor state unless user is editing a
// comment, in which case nothing is touched and false is returned.
func (m *Marginboxes) View(view *editor.View) (<-chan struct{}, bool) {
	if m.interactions.IsCurrentlyEditing() {
		m.log.Debug("Comment is being edited, layout skipped")
		return nil, false
	}
	m.interactions.ActivateSelectedComment(view)
	return m.UpdateDOM(), true
}

func (m *Marginboxes) OnSelectionChange() (<-chan struct{}, bool) {
	return m.View(m.editor.View)
}

func (m *Marginboxes) OnDocumentChange(st *editor.State) (<-chan struct{}, bool) {
	m.editor.View.UpdateState(st)
	return m.View(m.editor.View)
}

func (m *Marginboxes) OnResize() (<-chan struct{}, bool) {
	return m.View(m.editor.View)
}

func (m *Marginboxes) highlighter() Highlighter {
	return Highlighter{
		ActiveID:     m.interactions.ActiveCommentID(),
		ActiveColor:  m.opts.ActiveColor,
		NeutralColor: m.opts.NeutralColor,
	}
}

// UpdateDOM runs a layout pass: boxes and highlight style are written right
// away, placement is measured and written through the scheduler. Returned
// channel is closed when the pass is over, whether placement was written or
// abandoned.
func (m *Marginboxes) UpdateDOM() <-chan struct{} {
	done := make(chan struct{})
	m.pass++
	res := &PassResult{Pass: m.pass}
	log := m.log.With(zap.Int("pass", res.Pass))

	st := m.editor.View.State()
	hl := m.highlighter()
	res.Collection = Collect(st.Doc, m.interactions, m.store, hl)

	draft := m.store.CommentDuringCreation()
	if draft != nil {
		if r, ok := editor.CommentDuringCreationDecoration(st); !ok {
			log.Debug("Comment during creation has no range, not shown")
		} else if err := MergeDraft(&res.Collection, draft.Comment, r.From, hl); err != nil {
			log.Warn("Unable to place comment during creation", zap.Int("from", r.From), zap.Ints("anchors", res.Collection.Anchors), zap.Error(err))
		} else {
			res.Draft = true
		}
	}

	markup, err := m.renderer.render(m.markupData(&res.Collection, st))
	if err != nil {
		log.Error("Layout pass abandoned", zap.Error(err))
		close(done)
		return done
	}
	res.Markup = markup
	m.write(dom.ContainerID, markup)
	m.write(dom.ActiveCommentStyleID, res.Collection.Style)

	anchors := res.Collection.Anchors
	m.sched.Measure(func() {
		boxes := m.page.QueryBoxes()
		if len(boxes) != len(anchors) {
			log.Debug("Rendered boxes do not match anchors, placement skipped", zap.Int("boxes", len(boxes)), zap.Int("anchors", len(anchors)))
			m.finish(res)
			close(done)
			return
		}
		measured := make([]MeasuredBox, len(boxes))
		for i, b := range boxes {
			if b.Hidden() {
				measured[i].Hidden = true
				continue
			}
			measured[i] = MeasuredBox{
				Height:    float64(b.Height),
				AnchorTop: float64(m.editor.View.CoordsAtPos(anchors[i]).Top),
			}
		}
		placement := ComputePlacement(float64(m.page.ContainerTop()), m.opts.TopInset, m.opts.MinMargin, measured)

		m.sched.Mutate(func() {
			m.write(dom.PlacementStyleID, placement.Style)
			if res.Draft && draft != nil {
				draft.InDOM = true
			}
			res.Placement = &placement
			m.finish(res)
			close(done)
		})
	})
	return done
}

// write replaces element content unless it is already there.
func (m *Marginboxes) write(id, content string) {
	if m.page.InnerHTML(id) == content {
		return
	}
	if err := m.page.SetInnerHTML(id, content); err != nil {
		m.log.Warn("Unable to update page", zap.String("id", id), zap.Error(err))
	}
}

func (m *Marginboxes) markupData(c *Collection, st *editor.State) *markupData {
	data := &markupData{
		Boxes:          make([]boxData, 0, c.Len()),
		User:           m.editor.User,
		DocInfo:        m.editor.DocInfo,
		ActiveID:       m.interactions.ActiveCommentID(),
		ActiveAnswerID: m.interactions.ActiveCommentAnswerID(),
	}
	selected := editor.SelectedChanges(st)
	for _, d := range c.Descriptors {
		b := boxData{Descriptor: d}
		switch d.Kind {
		case common.BoxKindTrack:
			b.Hidden = !m.opts.ShowTrackedChanges
			for _, s := range selected {
				if s.Kind == d.Track.Kind && s.From <= d.Pos && d.Pos < s.To {
					b.Selected = true
				}
			}
		case common.BoxKindComment:
			b.Active = d.Draft || d.Comment.ID == data.ActiveID
			b.Hidden = !d.Draft && d.Comment.Resolved && !m.opts.ShowResolved
		}
		data.Boxes = append(data.Boxes, b)
	}
	return data
}

func (m *Marginboxes) finish(res *PassResult) {
	m.last = res
	if m.report == nil {
		return
	}
	prefix := fmt.Sprintf("pass-%03d", res.Pass)
	m.report.StoreData(prefix+"/boxes.txt", []byte(DumpCollection(&res.Collection)))
	m.report.StoreData(prefix+"/"+dom.ContainerID+".html", []byte(res.Markup))
	m.report.StoreData(prefix+"/"+dom.ActiveCommentStyleID+".css", []byte(res.Collection.Style))
	if res.Placement != nil {
		m.report.StoreData(prefix+"/"+dom.PlacementStyleID+".css", []byte(res.Placement.Style))
	}
}
