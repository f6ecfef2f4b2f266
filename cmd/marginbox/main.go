package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"marginbox/config"
	"marginbox/misc"
	"marginbox/place"
	"marginbox/state"
)

// initializeAppContext loads configuration and sets up logging and debug
// report once command line is parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// help or version only
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	cfg, err := config.LoadConfiguration(configFile)
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	env.Configure(cfg)
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// user configuration merged with defaults
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// destroyAppContext flushes logs and closes debug report.
func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	env.RestoreStdLog()

	// logger is closed, anything below goes to stderr
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		err = multierr.Append(err, removeEmptyCrashLog(filepath.Dir(env.Cfg.Logging.FileLogger.Destination)))
	}
	return
}

// removeEmptyCrashLog deletes crash log left in dir when nothing was written
// to it.
func removeEmptyCrashLog(dir string) error {
	debug.SetCrashOutput(nil, debug.CrashOptions{})
	fname := filepath.Join(dir, misc.GetAppName()+"-panic.log")
	if fi, err := os.Stat(fname); err != nil || fi.Size() > 0 {
		return nil
	}
	if err := os.Remove(fname); err != nil {
		return fmt.Errorf("unable to remove empty crash log '%s': %w", fname, err)
	}
	return nil
}

// Commands return plain errors rather than cli.Exit values, exitErrHandler logs
// them and main sets exit code.
var errWasHandled bool

// exitErrHandler runs before After, while logger is still open.
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

// usageErrorHandler passes error through, it is printed by exitErrHandler or
// by main.
func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// frame loop of a session stops with the context
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "lays out comment and tracked change boxes beside a rich text document",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "place",
				Usage:        "Places margin boxes of a document, optionally replaying an editing session",
				OnUsageError: usageErrorHandler,
				Action:       place.Run,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "comments", Aliases: []string{"cm"}, Usage: "load comments from `FILE` (YAML or SQLite database)"},
					&cli.StringFlag{Name: "script", Usage: "replay editing session described in `FILE` (YAML)"},
					&cli.StringFlag{Name: "user", Usage: "act as `USER` (id and name)"},
					&cli.StringFlag{Name: "role", Usage: "document access `ROLE` (write, write-tracked, comment, review, read)"},
					&cli.IntFlag{Name: "select", Usage: "put cursor at document `POSITION`"},
					&cli.StringFlag{Name: "active", Usage: "put cursor on comment with `ID`"},
					&cli.StringFlag{Name: "draft", Usage: "start new comment over `FROM[:TO]` document range"},
					&cli.StringFlag{Name: "draft-text", Usage: "text of the new comment"},
					&cli.IntFlag{Name: "scroll", Usage: "scroll page by `PIXELS` before layout"},
					&cli.BoolFlag{Name: "editing", Usage: "simulate comment being edited, no layout is performed"},
					&cli.StringFlag{Name: "preview", Usage: "paint page preview as `TYPE` (supported types: " + strings.Join(config.PreviewFmtNames(), ", ") + ")"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "overwrite existing output files"},
				},
				ArgsUsage: "DOCUMENT [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
DOCUMENT:
    path to document XML file, root element "doc"

DESTINATION:
    directory to write results to, if absent - current working directory.
    Result names are derived from document title or file name:
        NAME.boxes.html     content of margin box container
        NAME.highlight.css  comment highlight stylesheet
        NAME.placement.css  box placement stylesheet
        NAME.layout.yaml    final box geometry
        NAME.preview.EXT    page preview, when requested

	Command line cursor and draft flags are applied as a single step after
	session script steps.
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "dump",
				Usage:        "Dumps document tree with positions and margin boxes collected from it",
				OnUsageError: usageErrorHandler,
				Action:       place.Dump,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "comments", Aliases: []string{"cm"}, Usage: "load comments from `FILE` (YAML or SQLite database)"},
				},
				ArgsUsage: "DOCUMENT [DESTINATION]",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Writes configuration in effect: defaults with configuration file values on
top. Use --default to see built in defaults only.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// must stay the only deferred call, os.Exit skips the rest
	defer func() {
		stop()
		if err != nil {
			// no logger during argument parsing
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

// outputConfiguration writes default or effective configuration as YAML.
func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	args := cmd.Args().Slice()
	if len(args) > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", args[1:]))
	}
	var fname string
	if len(args) > 0 {
		fname = args[0]
	}
	return writeConfiguration(env, cmd.Bool("default"), fname)
}

// writeConfiguration writes configuration to fname, or to stdout when fname
// is empty.
func writeConfiguration(env *state.LocalEnv, defaults bool, fname string) error {
	kind, prepare := "actual", func() ([]byte, error) { return config.Dump(env.Cfg) }
	if defaults {
		kind, prepare = "default", config.Prepare
	}
	data, err := prepare()
	if err != nil {
		return fmt.Errorf("unable to get %s configuration: %w", kind, err)
	}

	if len(fname) == 0 {
		env.Log.Info("Writing configuration", zap.String("state", kind), zap.String("file", "STDOUT"))
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("unable to write configuration: %w", err)
		}
		return nil
	}
	env.Log.Info("Writing configuration", zap.String("state", kind), zap.String("file", fname))
	if err := os.WriteFile(fname, data, 0644); err != nil {
		return fmt.Errorf("unable to write configuration to '%s': %w", fname, err)
	}
	return nil
}
