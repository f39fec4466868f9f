package activity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/balkashynov/clockr/internal/models"
	"github.com/balkashynov/clockr/internal/store"
	"github.com/balkashynov/clockr/internal/timer"
	"github.com/balkashynov/clockr/internal/validate"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingBackend counts mutating calls and can fail them on demand
type recordingBackend struct {
	Backend
	mutations  atomic.Int32
	failCreate func(session *models.Session) error
	failUpdate error
	failDelete error
}

func (b *recordingBackend) CreateSession(ctx context.Context, session *models.Session) error {
	b.mutations.Add(1)
	if b.failCreate != nil {
		if err := b.failCreate(session); err != nil {
			return err
		}
	}
	return b.Backend.CreateSession(ctx, session)
}

func (b *recordingBackend) UpdateSession(ctx context.Context, session *models.Session) error {
	b.mutations.Add(1)
	if b.failUpdate != nil {
		return b.failUpdate
	}
	return b.Backend.UpdateSession(ctx, session)
}

func (b *recordingBackend) DeleteSession(ctx context.Context, sessionID string) error {
	b.mutations.Add(1)
	if b.failDelete != nil {
		return b.failDelete
	}
	return b.Backend.DeleteSession(ctx, sessionID)
}

func (b *recordingBackend) CreateCategory(ctx context.Context, category *models.Category) error {
	b.mutations.Add(1)
	return b.Backend.CreateCategory(ctx, category)
}

type ActivityServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *store.Store
	client  *store.Client
	backend *recordingBackend
	clock   *fakeClock
	timer   *timer.Timer
	service *Service
}

func (s *ActivityServiceTestSuite) SetupTest() {
	s.ctx = context.Background()

	st, err := store.OpenMemory(uuid.NewString())
	s.Require().NoError(err)
	s.store = st

	_, err = st.SignUp(s.ctx, "ada@example.com", "correct-horse")
	s.Require().NoError(err)
	token, _, err := st.SignIn(s.ctx, "ada@example.com", "correct-horse")
	s.Require().NoError(err)

	s.client = store.NewClient(st, token, "http://localhost:8080")
	s.backend = &recordingBackend{Backend: s.client}
	s.clock = &fakeClock{now: time.Date(2025, 4, 16, 9, 0, 0, 0, time.UTC)}
	// long period: elapsed only moves when a test wants it to
	s.timer = timer.New(timer.WithClock(s.clock), timer.WithPeriod(time.Hour))

	s.service, err = New(&Config{
		Backend:  s.backend,
		Uploader: s.client,
		Timer:    s.timer,
		Clock:    s.clock,
	})
	s.Require().NoError(err)
}

func (s *ActivityServiceTestSuite) TearDownTest() {
	s.service.Shutdown()
	s.Require().NoError(s.store.Close())
}

func TestActivityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ActivityServiceTestSuite))
}

func (s *ActivityServiceTestSuite) entry(name string, start time.Time, d time.Duration) ManualEntry {
	return ManualEntry{Name: name, Start: start, End: start.Add(d)}
}

func (s *ActivityServiceTestSuite) TestNewRequiresBackend() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)
	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilBackend)
}

func (s *ActivityServiceTestSuite) TestTimerLifecycle() {
	snap, err := s.service.StartTimer(s.ctx)
	s.Require().NoError(err)
	s.Equal(timer.Running, snap.State)

	placeholder, err := s.client.GetSession(s.ctx, snap.SessionID)
	s.Require().NoError(err)
	s.True(placeholder.InProgress())
	s.Empty(placeholder.Name)
	s.True(s.clock.Now().Equal(placeholder.StartTime))

	s.clock.Advance(25*time.Minute + 30*time.Second)
	stopped, err := s.service.StopTimer()
	s.Require().NoError(err)
	s.Equal(timer.StoppedPendingMetadata, stopped.State)

	session, err := s.service.SubmitMetadata(s.ctx, Metadata{
		Name:        "  Write report ",
		Description: "quarterly numbers",
		Category:    "Work",
	})
	s.Require().NoError(err)
	s.Equal("Write report", session.Name)
	s.Equal(int64(1530), session.Duration())

	s.Equal(timer.Snapshot{}, s.service.Timer())

	saved, err := s.client.GetSession(s.ctx, snap.SessionID)
	s.Require().NoError(err)
	s.False(saved.InProgress())
	s.Equal("Work", saved.CategoryText())
	s.Equal("quarterly numbers", saved.DescriptionText())
	s.Equal(int64(1530), saved.Duration())
}

func (s *ActivityServiceTestSuite) TestImmediateStopCanBeSubmitted() {
	started, err := s.service.StartTimer(s.ctx)
	s.Require().NoError(err)

	stopped, err := s.service.StopTimer()
	s.Require().NoError(err)
	s.Zero(stopped.ElapsedSeconds)

	session, err := s.service.SubmitMetadata(s.ctx, Metadata{Name: "quick"})
	s.Require().NoError(err)
	s.Equal(started.SessionID, session.SessionID)
	s.Zero(session.Duration())
	s.Require().NotNil(session.EndTime)
	s.True(session.EndTime.After(session.StartTime))

	s.Equal(timer.Idle, s.service.Timer().State)
	s.Equal(timer.Snapshot{}, s.service.Timer())
}

func (s *ActivityServiceTestSuite) TestStartRequiresAuth() {
	anon, err := New(&Config{Backend: store.NewClient(s.store, "", ""), Timer: s.timer, Clock: s.clock})
	s.Require().NoError(err)

	_, err = anon.StartTimer(s.ctx)
	s.ErrorIs(err, store.ErrAuthRequired)
	s.Equal(timer.Idle, s.timer.Snapshot().State)
}

func (s *ActivityServiceTestSuite) TestStartFailureResetsTimer() {
	s.backend.failCreate = func(*models.Session) error { return errors.New("connection refused") }

	_, err := s.service.StartTimer(s.ctx)
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to start timer")
	s.Equal(timer.Snapshot{}, s.service.Timer())
}

func (s *ActivityServiceTestSuite) TestStartWhileBusy() {
	_, err := s.service.StartTimer(s.ctx)
	s.Require().NoError(err)

	_, err = s.service.StartTimer(s.ctx)
	s.ErrorIs(err, ErrTimerBusy)

	_, err = s.service.StopTimer()
	s.Require().NoError(err)
	_, err = s.service.StartTimer(s.ctx)
	s.ErrorIs(err, ErrTimerBusy)
}

func (s *ActivityServiceTestSuite) TestStopWhileIdle() {
	_, err := s.service.StopTimer()
	s.ErrorIs(err, ErrTimerNotRunning)
}

func (s *ActivityServiceTestSuite) TestSubmitWithoutPendingSession() {
	_, err := s.service.SubmitMetadata(s.ctx, Metadata{Name: "x"})
	s.ErrorIs(err, ErrNoPendingSession)
}

func (s *ActivityServiceTestSuite) TestSubmitRequiresName() {
	_, err := s.service.StartTimer(s.ctx)
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.service.StopTimer()
	s.Require().NoError(err)

	before := s.backend.mutations.Load()
	_, err = s.service.SubmitMetadata(s.ctx, Metadata{Name: "   "})

	var verr *validate.Error
	s.Require().ErrorAs(err, &verr)
	s.Equal("name", verr.Field)
	s.Equal(before, s.backend.mutations.Load(), "no backend call on validation failure")
	s.Equal(timer.StoppedPendingMetadata, s.service.Timer().State)
}

func (s *ActivityServiceTestSuite) TestSubmitBackendFailureKeepsPending() {
	_, err := s.service.StartTimer(s.ctx)
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.service.StopTimer()
	s.Require().NoError(err)

	s.backend.failUpdate = errors.New("timeout")
	_, err = s.service.SubmitMetadata(s.ctx, Metadata{Name: "Retry me"})
	s.Require().Error(err)
	s.Equal(timer.StoppedPendingMetadata, s.service.Timer().State)

	s.backend.failUpdate = nil
	_, err = s.service.SubmitMetadata(s.ctx, Metadata{Name: "Retry me"})
	s.Require().NoError(err)
	s.Equal(timer.Idle, s.service.Timer().State)
}

func (s *ActivityServiceTestSuite) TestCancelRemovesPlaceholder() {
	snap, err := s.service.StartTimer(s.ctx)
	s.Require().NoError(err)
	_, err = s.service.StopTimer()
	s.Require().NoError(err)

	s.service.CancelTimer(s.ctx)
	s.Equal(timer.Snapshot{}, s.service.Timer())

	_, err = s.client.GetSession(s.ctx, snap.SessionID)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *ActivityServiceTestSuite) TestCancelCleanupFailureIsNotFatal() {
	_, err := s.service.StartTimer(s.ctx)
	s.Require().NoError(err)

	s.backend.failDelete = errors.New("offline")
	s.NotPanics(func() { s.service.CancelTimer(s.ctx) })
	s.Equal(timer.Idle, s.service.Timer().State)
}

func (s *ActivityServiceTestSuite) TestCreateManual() {
	start := time.Date(2025, 4, 15, 14, 0, 0, 0, time.UTC)
	session, err := s.service.CreateManual(s.ctx, ManualEntry{
		Name:     "Review PR",
		Category: "Work",
		Start:    start,
		End:      start.Add(45 * time.Minute),
	})
	s.Require().NoError(err)
	s.True(strings.HasPrefix(session.SessionID, "session_"))
	s.Equal(int64(2700), session.Duration())

	sessions, err := s.service.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Len(sessions, 1)
}

func (s *ActivityServiceTestSuite) TestCreateManualRejectsBadIntervalBeforeBackend() {
	start := time.Date(2025, 4, 15, 14, 0, 0, 0, time.UTC)

	for _, end := range []time.Time{start, start.Add(-time.Minute)} {
		_, err := s.service.CreateManual(s.ctx, ManualEntry{Name: "Bad", Start: start, End: end})
		var verr *validate.Error
		s.Require().ErrorAs(err, &verr)
		s.Equal("end time", verr.Field)
	}
	s.Zero(s.backend.mutations.Load())
}

func (s *ActivityServiceTestSuite) TestCreateBatch() {
	start := time.Date(2025, 4, 14, 9, 0, 0, 0, time.UTC)
	entries := []ManualEntry{
		s.entry("Mon", start, time.Hour),
		s.entry("Tue", start.AddDate(0, 0, 1), 2*time.Hour),
		s.entry("Wed", start.AddDate(0, 0, 2), 30*time.Minute),
	}

	created, err := s.service.CreateBatch(s.ctx, entries)
	s.Require().NoError(err)
	s.Len(created, 3)

	sessions, err := s.service.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Len(sessions, 3)
}

func (s *ActivityServiceTestSuite) TestCreateBatchValidatesEverythingFirst() {
	start := time.Date(2025, 4, 14, 9, 0, 0, 0, time.UTC)
	entries := []ManualEntry{
		s.entry("Good", start, time.Hour),
		s.entry("Bad", start, 0),
	}

	_, err := s.service.CreateBatch(s.ctx, entries)
	s.Require().Error(err)
	s.Contains(err.Error(), "entry 2")
	s.Zero(s.backend.mutations.Load())

	_, err = s.service.CreateBatch(s.ctx, nil)
	s.ErrorIs(err, ErrEmptyBatch)
}

func (s *ActivityServiceTestSuite) TestCreateBatchPartialFailureKeepsCreated() {
	start := time.Date(2025, 4, 14, 9, 0, 0, 0, time.UTC)
	s.backend.failCreate = func(session *models.Session) error {
		if session.Name == "Boom" {
			return errors.New("backend unavailable")
		}
		return nil
	}

	created, err := s.service.CreateBatch(s.ctx, []ManualEntry{
		s.entry("One", start, time.Hour),
		s.entry("Boom", start, time.Hour),
		s.entry("Three", start, time.Hour),
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "entry 2")
	s.Len(created, 2)
	s.Equal(int32(3), s.backend.mutations.Load(), "every request is issued")

	sessions, err := s.service.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Len(sessions, 2)
}

func (s *ActivityServiceTestSuite) TestUpdateSession() {
	start := time.Date(2025, 4, 15, 14, 0, 0, 0, time.UTC)
	session, err := s.service.CreateManual(s.ctx, ManualEntry{
		Name:        "Draft",
		Description: "old",
		Category:    "Work",
		Start:       start,
		End:         start.Add(time.Hour),
	})
	s.Require().NoError(err)

	name := "Final"
	empty := ""
	end := start.Add(90 * time.Minute)
	updated, err := s.service.UpdateSession(s.ctx, session.SessionID, Patch{
		Name:        &name,
		Description: &empty,
		End:         &end,
	})
	s.Require().NoError(err)
	s.Equal("Final", updated.Name)
	s.Nil(updated.Description)
	s.Equal("Work", updated.CategoryText())
	s.Equal(int64(5400), updated.Duration())

	duration := int64(4000)
	updated, err = s.service.UpdateSession(s.ctx, session.SessionID, Patch{DurationSeconds: &duration})
	s.Require().NoError(err)
	s.Equal(int64(4000), updated.Duration())
}

func (s *ActivityServiceTestSuite) TestUpdateSessionRejectsBadInterval() {
	start := time.Date(2025, 4, 15, 14, 0, 0, 0, time.UTC)
	session, err := s.service.CreateManual(s.ctx, s.entry("Draft", start, time.Hour))
	s.Require().NoError(err)
	before := s.backend.mutations.Load()

	newStart := start.Add(2 * time.Hour)
	_, err = s.service.UpdateSession(s.ctx, session.SessionID, Patch{Start: &newStart})
	s.Error(err)

	blank := " "
	_, err = s.service.UpdateSession(s.ctx, session.SessionID, Patch{Name: &blank})
	s.Error(err)

	negative := int64(-1)
	_, err = s.service.UpdateSession(s.ctx, session.SessionID, Patch{DurationSeconds: &negative})
	s.ErrorIs(err, ErrNegativeDuration)

	s.Equal(before, s.backend.mutations.Load())
}

func (s *ActivityServiceTestSuite) TestDeleteSession() {
	start := time.Date(2025, 4, 15, 14, 0, 0, 0, time.UTC)
	session, err := s.service.CreateManual(s.ctx, s.entry("Gone", start, time.Hour))
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteSession(s.ctx, session.SessionID))
	_, err = s.service.GetSession(s.ctx, session.SessionID)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *ActivityServiceTestSuite) TestDeleteRunningSessionRefused() {
	snap, err := s.service.StartTimer(s.ctx)
	s.Require().NoError(err)

	err = s.service.DeleteSession(s.ctx, snap.SessionID)
	s.ErrorIs(err, ErrTimerBusy)
}

func (s *ActivityServiceTestSuite) TestCategories() {
	_, err := s.service.CreateCategory(s.ctx, "", "")
	s.Error(err)
	_, err = s.service.CreateCategory(s.ctx, strings.Repeat("x", 51), "")
	s.Error(err)
	_, err = s.service.CreateCategory(s.ctx, "Work", "purple")
	s.Error(err)
	s.Zero(s.backend.mutations.Load())

	category, err := s.service.CreateCategory(s.ctx, strings.Repeat("x", 50), "#7C3AED")
	s.Require().NoError(err)
	s.Equal("#7C3AED", category.ColorText())

	name := "Work"
	noColor := ""
	category, err = s.service.UpdateCategory(s.ctx, category.ID, CategoryPatch{Name: &name, Color: &noColor})
	s.Require().NoError(err)
	s.Equal("Work", category.Name)
	s.Nil(category.Color)

	categories, err := s.service.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Len(categories, 1)

	s.Require().NoError(s.service.DeleteCategory(s.ctx, category.ID))
	categories, err = s.service.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Empty(categories)
}

func (s *ActivityServiceTestSuite) TestSummaryAndTimesheet() {
	monday := time.Date(2025, 4, 14, 9, 0, 0, 0, time.UTC)
	_, err := s.service.CreateBatch(s.ctx, []ManualEntry{
		{Name: "a", Category: "Work", Start: monday, End: monday.Add(time.Hour)},
		{Name: "b", Start: monday.AddDate(0, 0, 2), End: monday.AddDate(0, 0, 2).Add(30 * time.Minute)},
	})
	s.Require().NoError(err)

	sum, err := s.service.Summary(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, sum.Count)
	s.Equal(int64(5400), sum.TotalSeconds)
	s.Equal(int64(2700), sum.AverageSeconds)
	s.Equal(int64(1800), sum.TodaySeconds)

	sheet, err := s.service.Timesheet(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(5400), sheet.Total)
}

func (s *ActivityServiceTestSuite) TestExportAndPublish() {
	start := time.Date(2025, 4, 15, 14, 0, 0, 0, time.UTC)
	_, err := s.service.CreateManual(s.ctx, ManualEntry{
		Name:        "Call",
		Description: `He said, "hi"`,
		Start:       start,
		End:         start.Add(time.Minute),
	})
	s.Require().NoError(err)

	csv, err := s.service.ExportCSV(s.ctx)
	s.Require().NoError(err)
	s.Contains(csv, `"He said, ""hi"""`)
	s.Equal(2, strings.Count(csv, "\n"))

	url, err := s.service.PublishExport(s.ctx)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(url, "http://localhost:8080/exports/"))

	noUpload, err := New(&Config{Backend: s.client, Clock: s.clock})
	s.Require().NoError(err)
	_, err = noUpload.PublishExport(s.ctx)
	s.ErrorIs(err, ErrUploadUnavailable)
}
