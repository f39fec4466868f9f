// Package tui is the interactive tabbed interface: Timer, Activities,
// Dashboard and Settings.
package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/clockr/internal/activity"
	"github.com/balkashynov/clockr/internal/export"
	"github.com/balkashynov/clockr/internal/models"
	"github.com/balkashynov/clockr/internal/stats"
	"github.com/balkashynov/clockr/internal/timer"
)

// Service is the subset of the activity service the TUI drives
type Service interface {
	Timer() timer.Snapshot
	StartTimer(ctx context.Context) (timer.Snapshot, error)
	StopTimer() (timer.Snapshot, error)
	SubmitMetadata(ctx context.Context, md activity.Metadata) (*models.Session, error)
	CancelTimer(ctx context.Context)
	Shutdown()

	ListSessions(ctx context.Context) ([]models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Summary(ctx context.Context) (stats.Summary, error)
	ExportCSV(ctx context.Context, opts ...export.Option) (string, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name, color string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

// Notifier forwards timer ticks into a running program. Pass Hook to
// timer.WithTickHook.
type Notifier struct {
	mu sync.Mutex
	p  *tea.Program
}

// Hook wakes the program to redraw the clock. It never blocks the timer
// goroutine.
func (n *Notifier) Hook(_ timer.Snapshot) {
	n.mu.Lock()
	p := n.p
	n.mu.Unlock()
	if p != nil {
		go p.Send(tickMsg{})
	}
}

func (n *Notifier) attach(p *tea.Program) {
	n.mu.Lock()
	n.p = p
	n.mu.Unlock()
}

// Options configures the TUI
type Options struct {
	Notifier   *Notifier
	ExportDir  string // where "x" writes CSV files
	TimeLayout string // CSV instant layout
}

// Run starts the TUI and blocks until the user quits. A running timer is
// torn down on exit; its in-progress entry stays stored.
func Run(ctx context.Context, svc Service, opts Options) error {
	model := New(ctx, svc, opts)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Notifier != nil {
		opts.Notifier.attach(p)
		defer opts.Notifier.attach(nil)
	}

	_, err := p.Run()

	snap := svc.Timer()
	svc.Shutdown()
	switch snap.State {
	case timer.Running:
		fmt.Printf("💡 Timer stopped at %s; the in-progress entry was kept.\n", formatClock(snap.ElapsedSeconds))
	case timer.StoppedPendingMetadata:
		fmt.Println("💡 Stopped session was left without details; the in-progress entry was kept.")
	}

	return err
}
