// Package place implements the place command: lays out margin boxes of a
// document, optionally replaying an editing session, and writes resulting
// markup, stylesheets, layout summary and preview.
package place

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"marginbox/comments"
	"marginbox/config"
	"marginbox/doc"
	"marginbox/dom"
	"marginbox/preview"
	"marginbox/report"
	"marginbox/state"
)

// Request is everything place needs besides program environment.
type Request struct {
	Document string
	Comments string // optional, YAML or SQLite
	Script   *Script
	Dst      string
	Preview  bool
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("place")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input document has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	script, err := scriptFromCommand(cmd)
	if err != nil {
		return err
	}

	env.Overwrite = cmd.Bool("overwrite")
	if f := cmd.String("preview"); len(f) > 0 {
		if env.Cfg.Preview.Format, err = config.ParsePreviewFmt(f); err != nil {
			return fmt.Errorf("unknown preview format: %w", err)
		}
		env.Cfg.Preview.Enable = true
	}

	req := &Request{
		Document: src,
		Comments: cmd.String("comments"),
		Script:   script,
		Dst:      dst,
		Preview:  env.Cfg.Preview.Enable,
	}

	log.Info("Processing starting", zap.String("document", src), zap.String("destination", dst), zap.Int("steps", len(script.Steps)))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return Process(ctx, env, req)
}

// scriptFromCommand loads session script or builds single step one from
// command line flags. Flags are appended as a step after the script.
func scriptFromCommand(cmd *cli.Command) (*Script, error) {
	script := &Script{}
	if path := cmd.String("script"); len(path) > 0 {
		var err error
		if script, err = LoadScript(path); err != nil {
			return nil, err
		}
	}
	if u := cmd.String("user"); len(u) > 0 {
		script.User.ID, script.User.Username = u, u
	}
	if r := cmd.String("role"); len(r) > 0 {
		script.DocInfo.AccessRole = r
	}

	var (
		step Step
		set  bool
	)
	if cmd.IsSet("select") {
		pos := int(cmd.Int("select"))
		step.Select, set = &pos, true
	}
	if id := cmd.String("active"); len(id) > 0 {
		step.Activate, set = id, true
	}
	if r := cmd.String("draft"); len(r) > 0 {
		rng, err := ParseRange(r)
		if err != nil {
			return nil, err
		}
		step.Draft, set = &DraftStep{From: rng.From, To: rng.To, Text: cmd.String("draft-text")}, true
	}
	if cmd.IsSet("scroll") {
		y := int(cmd.Int("scroll"))
		step.Scroll, set = &y, true
	}
	if cmd.Bool("editing") {
		editing := true
		step.Editing, set = &editing, true
	}
	if set {
		script.Steps = append(script.Steps, step)
	}
	return script, nil
}

// Process lays out margin boxes and writes results into req.Dst directory.
func Process(ctx context.Context, env *state.LocalEnv, req *Request) error {
	log := env.Log.Named("place")
	if env.Metrics == nil {
		env.Configure(env.Cfg)
	}

	root, err := readDocument(req.Document, env)
	if err != nil {
		return err
	}

	store := comments.NewStore()
	if len(req.Comments) > 0 {
		if store, err = comments.Load(req.Comments, log); err != nil {
			return err
		}
		env.Rpt.Store("input/"+filepath.Base(req.Comments), req.Comments)
	}

	script := req.Script
	if script == nil {
		script = &Script{}
	}
	s, err := NewSession(env, root, store, script)
	if err != nil {
		return err
	}
	if err := s.Replay(ctx, script.Steps); err != nil {
		return err
	}
	last := s.Last()
	if last == nil {
		return errors.New("no layout pass has been completed")
	}
	if last.Placement == nil {
		log.Warn("Last layout pass was abandoned, placement is stale", zap.Int("pass", last.Pass))
	}

	base := outputBase(req.Document, root)
	if err := os.MkdirAll(req.Dst, 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}

	outputs := map[string][]byte{
		base + ".boxes.html":    []byte(s.Page().InnerHTML(dom.ContainerID)),
		base + ".highlight.css": []byte(s.Page().InnerHTML(dom.ActiveCommentStyleID)),
		base + ".placement.css": []byte(s.Page().InnerHTML(dom.PlacementStyleID)),
	}

	summary, err := report.Build(s.Page(), s.View(), last)
	if err != nil {
		return err
	}
	if summary.Misaligned {
		log.Warn("Rendered boxes do not match collected anchors, layout summary has no geometry",
			zap.Int("rendered", summary.Rendered), zap.Int("anchors", last.Collection.Len()))
	}
	if o := summary.Overlaps(); len(o) > 0 {
		log.Warn("Boxes overlap", zap.Ints("ordinals", o))
	}
	buf := new(bytes.Buffer)
	if err := summary.WriteYAML(buf); err != nil {
		return err
	}
	outputs[base+".layout.yaml"] = buf.Bytes()

	if req.Preview {
		p := preview.NewPainter(s.View(), s.Page(), preview.Options{
			Format:       env.Cfg.Preview.Format,
			Scale:        env.Cfg.Preview.Scale,
			Background:   env.Cfg.Preview.Background,
			ActiveColor:  env.Cfg.Style.ActiveColor,
			NeutralColor: env.Cfg.Style.NeutralColor,
		})
		img := new(bytes.Buffer)
		if err := p.Write(img, last.Collection.Anchors); err != nil {
			return err
		}
		outputs[base+".preview"+env.Cfg.Preview.Format.Ext()] = img.Bytes()
	}

	for name, data := range outputs {
		err = multierr.Append(err, writeOutput(filepath.Join(req.Dst, name), data, env.Overwrite))
	}
	if err != nil {
		return err
	}

	log.Info("Margin boxes placed", zap.Int("boxes", last.Collection.Len()), zap.Int("passes", len(s.Passes())),
		zap.Int("skipped", s.Skipped()), zap.String("output", filepath.Join(req.Dst, base+".*")))
	return nil
}

func readDocument(path string, env *state.LocalEnv) (*doc.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open document: %w", err)
	}
	defer f.Close()

	root, err := doc.ReadXML(f, env.Log)
	if err != nil {
		return nil, fmt.Errorf("unable to load document '%s': %w", path, err)
	}
	env.Rpt.Store("input/"+filepath.Base(path), path)
	return root, nil
}

// outputBase names results after document title when there is one.
func outputBase(path string, root *doc.Node) string {
	if title := root.Attrs["title"]; len(title) > 0 {
		if s := slug.Make(title); len(s) > 0 {
			return config.CleanFileName(s)
		}
	}
	return config.CleanFileName(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

func writeOutput(name string, data []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(name); err == nil {
			return fmt.Errorf("output file already exists: %s", name)
		}
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("unable to write '%s': %w", name, err)
	}
	return nil
}
