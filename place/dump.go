package place

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"marginbox/comments"
	"marginbox/doc"
	"marginbox/marginbox"
	"marginbox/state"
)

// Dump prints document tree with positions and boxes collected from it.
func Dump(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("dump")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input document has been specified")
	}
	root, err := readDocument(src, env)
	if err != nil {
		return err
	}
	store := comments.NewStore()
	if path := cmd.String("comments"); len(path) > 0 {
		if store, err = comments.Load(path, log); err != nil {
			return err
		}
	}

	out := io.Writer(os.Stdout)
	if fname := cmd.Args().Get(1); len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	}
	return WriteDump(out, root, store, log)
}

// WriteDump writes document tree followed by collected boxes. Nothing is
// active, so highlight style lists every comment with neutral color.
func WriteDump(w io.Writer, root *doc.Node, store *comments.Store, log *zap.Logger) error {
	inter := comments.NewInteractions(store, log)
	c := marginbox.Collect(root, inter, store, marginbox.Highlighter{})
	if _, err := fmt.Fprintf(w, "%s\n%s\n", root, marginbox.DumpCollection(&c)); err != nil {
		return fmt.Errorf("unable to write dump: %w", err)
	}
	return nil
}
