package place

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"marginbox/comments"
	"marginbox/doc"
	"marginbox/dom"
	"marginbox/editor"
	"marginbox/frame"
	"marginbox/marginbox"
	"marginbox/state"
)

// Session wires an editor over a single document to margin box layout and
// replays user interactions against it.
type Session struct {
	log   *zap.Logger
	view  *editor.View
	page  *dom.Page
	store *comments.Store
	inter *comments.Interactions
	sched *frame.Scheduler
	mb    *marginbox.Marginboxes
	user  editor.User

	passes  []*marginbox.PassResult
	skipped int
}

func NewSession(env *state.LocalEnv, root *doc.Node, store *comments.Store, script *Script) (*Session, error) {
	log := env.Log.Named("session")

	s := &Session{
		log:   log,
		view:  editor.NewView(&editor.State{Doc: root}, env.Metrics, env.EditorGeometry()),
		page:  dom.NewPage(env.PageGeometry(), env.Metrics, log),
		store: store,
		inter: comments.NewInteractions(store, log),
		sched: frame.New(env.Cfg.Layout.Frame(), log),
		user:  script.User,
	}

	info := script.DocInfo
	if info.Title == "" && root.Attrs != nil {
		info.Title = root.Attrs["title"]
	}
	ed := &editor.Editor{View: s.view, User: script.User, DocInfo: info}

	mb, err := marginbox.New(ed, s.inter, s.page, s.sched, env.LayoutOptions(), log)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare margin boxes: %w", err)
	}
	if env.Rpt != nil {
		mb.SetReport(env.Rpt)
	}
	mb.Setup()
	s.mb = mb
	return s, nil
}

func (s *Session) View() *editor.View {
	return s.view
}

func (s *Session) Page() *dom.Page {
	return s.page
}

// Passes returns results of completed layout passes in order.
func (s *Session) Passes() []*marginbox.PassResult {
	return s.passes
}

// Skipped returns number of interactions which did not lead to a layout
// pass because a comment was being edited.
func (s *Session) Skipped() int {
	return s.skipped
}

// Last returns most recent completed pass or nil.
func (s *Session) Last() *marginbox.PassResult {
	if len(s.passes) == 0 {
		return nil
	}
	return s.passes[len(s.passes)-1]
}

// Replay runs the initial layout pass followed by one pass per step. Frame
// loop runs for the duration of the call.
func (s *Session) Replay(ctx context.Context, steps []Step) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	loop := make(chan struct{})
	go func() {
		defer close(loop)
		s.sched.Run(ctx)
	}()
	defer func() {
		cancel()
		<-loop
	}()

	done, ok := s.mb.View(s.view)
	if err := s.wait(ctx, done, ok); err != nil {
		return err
	}
	for i, step := range steps {
		done, ok, err := s.apply(step)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := s.wait(ctx, done, ok); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	stats := s.sched.Stats()
	s.log.Debug("Session replayed", zap.Int("steps", len(steps)), zap.Int("passes", len(s.passes)), zap.Int("skipped", s.skipped),
		zap.Int("reads", stats.Reads), zap.Int("writes", stats.Writes), zap.Int("frames", stats.Flushes), zap.Int("dom writes", s.page.Writes()))
	return nil
}

func (s *Session) wait(ctx context.Context, done <-chan struct{}, ok bool) error {
	if !ok {
		s.skipped++
		return nil
	}
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if last := s.mb.LastPass(); last != nil {
		s.passes = append(s.passes, last)
	}
	return nil
}

func (s *Session) apply(step Step) (<-chan struct{}, bool, error) {
	st := s.view.State()

	// every change produces new state, view keeps the old one until updated
	next := &editor.State{Doc: st.Doc, Selection: st.Selection, Decorations: slices.Clone(st.Decorations)}
	docChanged := false

	if step.Select != nil {
		next.Selection = editor.Selection{Anchor: *step.Select, Head: *step.Select}
	}
	if step.Activate != "" {
		pos, found := comments.FindCommentPos(st.Doc, step.Activate)
		if !found {
			return nil, false, fmt.Errorf("comment '%s' is not anchored in the document", step.Activate)
		}
		next.Selection = editor.Selection{Anchor: pos, Head: pos}
	}
	if step.Draft != nil {
		if _, err := s.store.StartCreation(&comments.Comment{
			UserID:   s.user.ID,
			Username: s.user.Username,
			Text:     step.Draft.Text,
		}); err != nil {
			return nil, false, err
		}
		next.Decorations = withoutDraft(next.Decorations)
		next.Decorations = append(next.Decorations, editor.Decoration{
			Range: editor.Range{From: step.Draft.From, To: step.Draft.To},
			Key:   editor.CommentDuringCreationKey,
		})
		docChanged = true
	}
	if step.CancelDraft {
		s.store.CancelCreation()
		next.Decorations = withoutDraft(next.Decorations)
		docChanged = true
	}
	if step.Answer != "" {
		// kept only if the pass leaves the same comment active
		s.inter.SetActiveAnswer(step.Answer)
	}
	if step.Editing != nil {
		s.inter.SetEditing(*step.Editing)
	}
	if step.Scroll != nil {
		s.view.SetScroll(*step.Scroll)
		s.page.SetScroll(*step.Scroll)
	}

	if docChanged {
		done, ok := s.mb.OnDocumentChange(next)
		return done, ok, nil
	}
	s.view.UpdateState(next)
	if step.Scroll != nil {
		done, ok := s.mb.OnResize()
		return done, ok, nil
	}
	done, ok := s.mb.OnSelectionChange()
	return done, ok, nil
}

func withoutDraft(decorations []editor.Decoration) []editor.Decoration {
	return slices.DeleteFunc(decorations, func(d editor.Decoration) bool {
		return d.Key == editor.CommentDuringCreationKey
	})
}
