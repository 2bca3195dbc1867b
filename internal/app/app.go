// Package app wires the configuration, the multiplier registry and the
// presentation layers into the bigntt command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/agbru/bigntt/internal/cli"
	"github.com/agbru/bigntt/internal/config"
	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/logging"
	"github.com/agbru/bigntt/internal/mul"
	"github.com/agbru/bigntt/internal/ui"
)

// Application represents the bigntt application instance.
type Application struct {
	Config   config.AppConfig
	Registry *mul.Registry
	Engine   *mul.Engine
	Logger   logging.Logger

	In        io.Reader
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets the registry backends are looked up in. The configured
// engine is registered on it as "ntt".
func WithRegistry(r *mul.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithLogger overrides the console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithInput sets the reader used by the repl command.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application by parsing command-line arguments. args
// starts with the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "bigntt"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	_, noColorEnv := os.LookupEnv("NO_COLOR")
	noColor := cfg.NoColor || noColorEnv
	if app.Logger == nil {
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		app.Logger = logging.NewConsoleLogger("bigntt", level, noColor)
	}
	ui.InitTheme(noColor)

	app.Engine, err = mul.NewEngine(cfg.ToMulConfig(), mul.WithLogger(app.Logger))
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	if app.Registry == nil {
		app.Registry = mul.Backends().Clone()
	}
	app.Registry.Register("ntt", app.Engine)

	return app, nil
}

// Run executes the configured command and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	a.Logger.Debug("starting command",
		logging.String("command", a.Config.Command),
		logging.String("backend", a.Config.Backend))

	switch a.Config.Command {
	case "completion":
		return a.runCompletion(out)
	case "info":
		return a.report(a.runInfo(out))
	case "repl":
		return a.runREPL(out)
	case "bench":
		if a.Config.TUI {
			return a.runTUI(ctx)
		}
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	var err error
	switch a.Config.Command {
	case "mul", "square":
		err = a.runMultiply(ctx, out)
	case "bits":
		err = a.runBits(out)
	case "plan":
		err = a.runPlan(out)
	case "bench":
		err = a.runBench(ctx, out)
	case "metrics":
		err = a.runMetrics(ctx, out)
	default:
		err = apperrors.NewConfigError("unknown command %q", a.Config.Command)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: a.Config.Command, Limit: a.Config.Timeout}
	}
	return a.report(err)
}

// report prints err and maps it to an exit code.
func (a *Application) report(err error) int {
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "%sError:%s %v\n", ui.ColorError(), ui.ColorReset(), err)
		if apperrors.IsContextError(err) {
			a.Logger.Warn("command interrupted", logging.String("command", a.Config.Command), logging.Err(err))
		} else {
			a.Logger.Error("command failed", err, logging.String("command", a.Config.Command))
		}
	}
	return apperrors.ExitCode(err)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if len(a.Config.Args) != 1 {
		fmt.Fprintf(a.ErrWriter, "Usage: bigntt completion <%s>\n", strings.Join(cli.Shells, "|"))
		return apperrors.ExitErrorConfig
	}
	if err := cli.GenerateCompletion(out, a.Config.Args[0], a.Registry.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive editor.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Registry, cli.REPLConfig{
		Backend:   a.Config.Backend,
		Timeout:   a.Config.Timeout,
		HexOutput: a.Config.Hex,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (-help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCode maps an error returned by New to a process exit status.
func ExitCode(err error) int {
	return apperrors.ExitCode(err)
}
