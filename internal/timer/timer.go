// Package timer implements the start/stop session timer.
//
// A Timer has a single writer (whoever calls Start, Stop and Reset) and any
// number of readers taking Snapshots. While Running, a background Task
// recomputes the elapsed seconds on a fixed period; every transition out of
// Running cancels that task before it returns.
package timer

import (
	"sync"
	"time"
)

// DefaultPeriod is how often elapsed time is recomputed while running
const DefaultPeriod = time.Second

// MinSpan is the shortest interval a stopped session can cover, so a
// stop in the same clock instant as its start still yields end > start
const MinSpan = time.Millisecond

// State is the timer lifecycle state
type State int

const (
	Idle State = iota
	Running
	StoppedPendingMetadata
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case StoppedPendingMetadata:
		return "stopped"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the timer state
type Snapshot struct {
	State          State
	SessionID      string
	StartedAt      time.Time
	StoppedAt      time.Time
	ElapsedSeconds int64
}

// Running reports whether the snapshot was taken while the timer was running
func (s Snapshot) Running() bool {
	return s.State == Running
}

// Timer is the session timer state machine
type Timer struct {
	clock  Clock
	ids    IDGenerator
	period time.Duration
	hook   func(Snapshot)

	mu        sync.RWMutex
	state     State
	sessionID string
	startedAt time.Time
	stoppedAt time.Time
	elapsed   int64
	task      *Task
}

// Option configures a Timer
type Option func(*Timer)

// WithClock overrides the wall clock
func WithClock(c Clock) Option {
	return func(t *Timer) { t.clock = c }
}

// WithPeriod overrides the recompute period
func WithPeriod(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.period = d
		}
	}
}

// WithIDGenerator overrides the session id generator
func WithIDGenerator(g IDGenerator) Option {
	return func(t *Timer) { t.ids = g }
}

// WithTickHook registers a callback invoked after each recompute.
// It runs on the tick goroutine and must not block. A hook racing a
// concurrent Stop may still see one Running snapshot, so treat it as a
// wake-up and re-read Snapshot.
func WithTickHook(fn func(Snapshot)) Option {
	return func(t *Timer) { t.hook = fn }
}

// New creates an idle timer
func New(opts ...Option) *Timer {
	t := &Timer{
		clock:  &DefaultClock{},
		ids:    NewIDGenerator(),
		period: DefaultPeriod,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start moves Idle to Running and returns the periodic recompute task.
// Outside Idle it does nothing and returns false.
func (t *Timer) Start() (*Task, bool) {
	t.mu.Lock()
	if t.state != Idle {
		t.mu.Unlock()
		return nil, false
	}

	now := t.clock.Now()
	task := newTask()
	t.state = Running
	t.sessionID = t.ids.NewSessionID(now)
	t.startedAt = now
	t.stoppedAt = time.Time{}
	t.elapsed = 0
	t.task = task
	t.mu.Unlock()

	go t.run(task)
	return task, true
}

// Stop moves Running to StoppedPendingMetadata, freezing the elapsed value.
// The recorded stop instant is always at least MinSpan after the start.
// Outside Running it does nothing and returns false.
func (t *Timer) Stop() (Snapshot, bool) {
	t.mu.Lock()
	if t.state != Running {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap, false
	}

	task := t.task
	t.task = nil
	t.state = StoppedPendingMetadata
	t.stoppedAt = t.clock.Now()
	if earliest := t.startedAt.Add(MinSpan); t.stoppedAt.Before(earliest) {
		t.stoppedAt = earliest
	}
	snap := t.snapshotLocked()
	t.mu.Unlock()

	task.Cancel()
	return snap, true
}

// Reset returns the timer to Idle from any state, cancelling any running task
func (t *Timer) Reset() Snapshot {
	t.mu.Lock()
	task := t.task
	t.task = nil
	t.state = Idle
	t.sessionID = ""
	t.startedAt = time.Time{}
	t.stoppedAt = time.Time{}
	t.elapsed = 0
	snap := t.snapshotLocked()
	t.mu.Unlock()

	task.Cancel()
	return snap
}

// Snapshot returns a copy of the current state
func (t *Timer) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotLocked()
}

func (t *Timer) snapshotLocked() Snapshot {
	return Snapshot{
		State:          t.state,
		SessionID:      t.sessionID,
		StartedAt:      t.startedAt,
		StoppedAt:      t.stoppedAt,
		ElapsedSeconds: t.elapsed,
	}
}

// run drives the periodic recompute until the task is cancelled
func (t *Timer) run(task *Task) {
	defer close(task.done)

	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	for {
		select {
		case <-task.stop:
			return
		case <-ticker.C:
			snap, ok := t.recompute(task)
			if !ok {
				return
			}
			select {
			case <-task.stop:
				return
			default:
			}
			if t.hook != nil {
				t.hook(snap)
			}
		}
	}
}

// recompute updates elapsed only if task is still the live one
func (t *Timer) recompute(task *Task) (Snapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.task != task || t.state != Running {
		return Snapshot{}, false
	}
	t.elapsed = ElapsedSeconds(t.startedAt, t.clock.Now())
	return t.snapshotLocked(), true
}

// ElapsedSeconds is floor((now - start) / 1s), never negative
func ElapsedSeconds(start, now time.Time) int64 {
	d := now.Sub(start)
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}

// Task is the cancellable periodic recompute started by Start
type Task struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func newTask() *Task {
	return &Task{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Cancel stops future ticks. Safe to call more than once and on nil.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.once.Do(func() { close(t.stop) })
}

// Done is closed once the tick goroutine has exited
func (t *Task) Done() <-chan struct{} {
	return t.done
}
