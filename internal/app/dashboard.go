package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/logging"
	"github.com/agbru/bigntt/internal/mul"
	"github.com/agbru/bigntt/internal/tui"
)

// DashboardLogEnv names the file that receives log output while the bench
// dashboard owns the terminal. Logs are dropped when it is unset.
const DashboardLogEnv = "BIGNTT_TUI_LOG"

// runTUI launches the interactive bench dashboard. The configured engine
// is rebuilt with a logger that stays off the alternate screen.
func (a *Application) runTUI(ctx context.Context) int {
	runner, err := a.benchRunner()
	if err != nil {
		return a.report(err)
	}
	logger, closeLog, err := dashboardLogger(os.Getenv(DashboardLogEnv))
	if err != nil {
		return a.report(err)
	}
	defer closeLog()

	engine, err := mul.NewEngine(a.Engine.Config(), mul.WithLogger(logger))
	if err != nil {
		return a.report(apperrors.NewConfigError("%v", err))
	}
	runner.Registry = a.Registry.Clone()
	runner.Registry.Register("ntt", engine)

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, runner, Version)
}

// dashboardLogger returns the logger used under the dashboard. With a
// path, the standard logger is pointed at that file and wrapped; the
// returned func closes it.
func dashboardLogger(path string) (logging.Logger, func(), error) {
	if path == "" {
		return logging.Nop(), func() {}, nil
	}
	f, err := tea.LogToFile(path, "bigntt")
	if err != nil {
		return nil, nil, apperrors.NewConfigError("cannot open dashboard log %s: %v", path, err)
	}
	return logging.NewStdLoggerAdapter(log.Default()), func() { _ = f.Close() }, nil
}
