package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/balkashynov/clockr/internal/activity"
	"github.com/balkashynov/clockr/internal/config"
	clog "github.com/balkashynov/clockr/internal/log"
	"github.com/balkashynov/clockr/internal/store"
	"github.com/balkashynov/clockr/internal/timer"
	"github.com/balkashynov/clockr/internal/tui"
)

// app is everything a command needs, wired from config
type app struct {
	cfg      *config.Config
	store    *store.Store
	client   *store.Client
	svc      *activity.Service
	notifier *tui.Notifier
	logFile  *os.File
}

// newApp loads config, routes logs, opens the store and builds the service.
// Logs go to the log file unless logToStderr is set, so command output and
// the TUI stay clean.
func newApp(logToStderr bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, notifier: &tui.Notifier{}}

	var out io.Writer = os.Stderr
	if !logToStderr {
		out = io.Discard
		if f, err := openLogFile(cfg.LogFile); err == nil {
			a.logFile = f
			out = f
		}
	}
	clog.Configure(clog.Config{Level: cfg.LogLevel, Output: out, Version: version})

	a.store, err = store.Open(cfg.DBPath)
	if err != nil {
		a.Close()
		return nil, err
	}

	token, err := store.LoadToken(cfg.CredentialsPath)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.client = store.NewClient(a.store, token, cfg.ExportBaseURL)

	a.svc, err = activity.New(&activity.Config{
		Backend:  a.client,
		Uploader: a.client,
		Timer: timer.New(
			timer.WithPeriod(cfg.Tick),
			timer.WithTickHook(a.notifier.Hook),
		),
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// Close releases the store and log file
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger := clog.WithComponent("commands")
			logger.Warn().Err(err).Msg("failed to close store")
		}
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// withApp wraps a command function to wire the app first
func withApp(fn func(*cobra.Command, []string, *app)) func(*cobra.Command, []string) {
	return wireApp(false, fn)
}

func wireApp(logToStderr bool, fn func(*cobra.Command, []string, *app)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := newApp(logToStderr)
		if err != nil {
			printError(err)
			return
		}
		defer a.Close()
		fn(cmd, args, a)
	}
}

// commandContext returns the command context, never nil
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printError(err error) {
	fmt.Printf("Error: %v\n", err)
}

// requireUser prints a hint and returns false when nobody is signed in
func requireUser(cmd *cobra.Command, a *app) bool {
	if _, err := a.client.CurrentUser(commandContext(cmd)); err != nil {
		printError(err)
		fmt.Println("Use 'clockr login' or 'clockr signup' first.")
		return false
	}
	return true
}

func runTUI(cmd *cobra.Command, args []string, a *app) {
	if !requireUser(cmd, a) {
		return
	}

	exportDir, err := os.Getwd()
	if err != nil {
		exportDir = "."
	}
	opts := tui.Options{
		Notifier:   a.notifier,
		ExportDir:  exportDir,
		TimeLayout: a.cfg.TimeLayout,
	}
	if err := tui.Run(commandContext(cmd), a.svc, opts); err != nil {
		printError(err)
	}
}
