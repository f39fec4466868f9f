// Package activity orchestrates the timer, manual entries, categories and
// exports on top of a Backend. It is the single writer of the timer.
package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	clog "github.com/balkashynov/clockr/internal/log"
	"github.com/balkashynov/clockr/internal/models"
	"github.com/balkashynov/clockr/internal/timer"
	"github.com/balkashynov/clockr/internal/validate"
)

// Config wires the service dependencies
type Config struct {
	Backend  Backend
	Uploader Uploader // optional
	Timer    *timer.Timer
	Clock    timer.Clock
	IDs      timer.IDGenerator
}

// Service implements the time-tracking operations
type Service struct {
	backend  Backend
	uploader Uploader
	timer    *timer.Timer
	clock    timer.Clock
	ids      timer.IDGenerator
	logger   zerolog.Logger
}

// New creates a new activity service
func New(cfg *Config) (*Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Backend == nil {
		return nil, ErrNilBackend
	}

	s := &Service{
		backend:  cfg.Backend,
		uploader: cfg.Uploader,
		timer:    cfg.Timer,
		clock:    cfg.Clock,
		ids:      cfg.IDs,
		logger:   clog.WithComponent("activity"),
	}
	if s.clock == nil {
		s.clock = &timer.DefaultClock{}
	}
	if s.timer == nil {
		s.timer = timer.New(timer.WithClock(s.clock))
	}
	if s.ids == nil {
		s.ids = timer.NewIDGenerator()
	}
	return s, nil
}

// Timer returns the current timer state for observers
func (s *Service) Timer() timer.Snapshot {
	return s.timer.Snapshot()
}

// StartTimer starts the timer and creates the empty in-progress record
func (s *Service) StartTimer(ctx context.Context) (timer.Snapshot, error) {
	if _, err := s.backend.CurrentUser(ctx); err != nil {
		return timer.Snapshot{}, err
	}

	if _, ok := s.timer.Start(); !ok {
		return s.timer.Snapshot(), ErrTimerBusy
	}
	snap := s.timer.Snapshot()

	session := &models.Session{
		SessionID: snap.SessionID,
		StartTime: snap.StartedAt,
	}
	if err := s.backend.CreateSession(ctx, session); err != nil {
		s.timer.Reset()
		return timer.Snapshot{}, fmt.Errorf("failed to start timer: %w", err)
	}

	s.logger.Info().Str("session_id", snap.SessionID).Msg("timer started")
	return snap, nil
}

// StopTimer freezes the running timer and waits for metadata
func (s *Service) StopTimer() (timer.Snapshot, error) {
	snap, ok := s.timer.Stop()
	if !ok {
		return snap, ErrTimerNotRunning
	}
	s.logger.Info().
		Str("session_id", snap.SessionID).
		Int64("elapsed_seconds", snap.ElapsedSeconds).
		Msg("timer stopped")
	return snap, nil
}

// SubmitMetadata finalizes the stopped session and resets the timer.
// On any error the timer stays pending so the user can retry or cancel.
func (s *Service) SubmitMetadata(ctx context.Context, md Metadata) (*models.Session, error) {
	snap := s.timer.Snapshot()
	if snap.State != timer.StoppedPendingMetadata {
		return nil, ErrNoPendingSession
	}
	if err := validate.SessionName(md.Name); err != nil {
		return nil, err
	}
	if err := validate.Interval(snap.StartedAt, snap.StoppedAt); err != nil {
		return nil, err
	}

	session := &models.Session{
		SessionID:   snap.SessionID,
		Name:        strings.TrimSpace(md.Name),
		Description: models.StringPtr(strings.TrimSpace(md.Description)),
		Category:    models.StringPtr(strings.TrimSpace(md.Category)),
		StartTime:   snap.StartedAt,
	}
	session.Finish(snap.StoppedAt, timer.ElapsedSeconds(snap.StartedAt, snap.StoppedAt))

	if err := s.backend.UpdateSession(ctx, session); err != nil {
		return nil, err
	}

	s.timer.Reset()
	s.logger.Info().
		Str("session_id", session.SessionID).
		Int64("duration_seconds", session.Duration()).
		Msg("session saved")
	return session, nil
}

// CancelTimer discards the current timer session. Removing the placeholder
// record is best-effort cleanup.
func (s *Service) CancelTimer(ctx context.Context) {
	snap := s.timer.Snapshot()
	s.timer.Reset()
	if snap.SessionID == "" {
		return
	}

	if err := s.backend.DeleteSession(ctx, snap.SessionID); err != nil {
		s.logger.Warn().Err(err).Str("session_id", snap.SessionID).Msg("failed to remove cancelled session")
		return
	}
	s.logger.Info().Str("session_id", snap.SessionID).Msg("timer cancelled")
}

// Shutdown stops any periodic recompute on teardown. A session that was
// running keeps its in-progress record.
func (s *Service) Shutdown() {
	snap := s.timer.Reset()
	if snap.SessionID != "" {
		s.logger.Info().Str("session_id", snap.SessionID).Msg("timer discarded on shutdown")
	}
}

// CreateManual validates and stores a fully formed entry in one call
func (s *Service) CreateManual(ctx context.Context, entry ManualEntry) (*models.Session, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	session := s.newManualSession(entry)
	if err := s.backend.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CreateBatch validates every entry, then creates them concurrently and
// waits for all requests. Any failure rejects the batch; records already
// created are kept and returned alongside the error.
func (s *Service) CreateBatch(ctx context.Context, entries []ManualEntry) ([]*models.Session, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}
	for i, entry := range entries {
		if err := validateEntry(entry); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	sessions := make([]*models.Session, len(entries))
	for i, entry := range entries {
		sessions[i] = s.newManualSession(entry)
	}

	created := make([]bool, len(entries))
	var g errgroup.Group
	for i := range sessions {
		g.Go(func() error {
			if err := s.backend.CreateSession(ctx, sessions[i]); err != nil {
				return fmt.Errorf("entry %d: %w", i+1, err)
			}
			created[i] = true
			return nil
		})
	}
	err := g.Wait()

	var out []*models.Session
	for i, ok := range created {
		if ok {
			out = append(out, sessions[i])
		}
	}
	if err != nil {
		s.logger.Warn().Err(err).Int("created", len(out)).Int("requested", len(entries)).Msg("batch create failed")
		return out, err
	}
	return out, nil
}

func (s *Service) newManualSession(entry ManualEntry) *models.Session {
	session := &models.Session{
		SessionID:   s.ids.NewSessionID(s.clock.Now()),
		Name:        strings.TrimSpace(entry.Name),
		Description: models.StringPtr(strings.TrimSpace(entry.Description)),
		Category:    models.StringPtr(strings.TrimSpace(entry.Category)),
		StartTime:   entry.Start,
	}
	session.Finish(entry.End, timer.ElapsedSeconds(entry.Start, entry.End))
	return session
}

func validateEntry(entry ManualEntry) error {
	if err := validate.SessionName(entry.Name); err != nil {
		return err
	}
	return validate.Interval(entry.Start, entry.End)
}

// UpdateSession applies a patch after validating the resulting record
func (s *Service) UpdateSession(ctx context.Context, sessionID string, patch Patch) (*models.Session, error) {
	if patch.Name != nil {
		if err := validate.SessionName(*patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.DurationSeconds != nil && *patch.DurationSeconds < 0 {
		return nil, ErrNegativeDuration
	}

	session, err := s.backend.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		session.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		session.Description = models.StringPtr(strings.TrimSpace(*patch.Description))
	}
	if patch.Category != nil {
		session.Category = models.StringPtr(strings.TrimSpace(*patch.Category))
	}

	if patch.Start != nil {
		session.StartTime = *patch.Start
	}
	end := session.EndTime
	if patch.End != nil {
		end = patch.End
	}
	if end == nil && patch.DurationSeconds != nil {
		return nil, &validate.Error{Field: "duration", Message: "requires an end time"}
	}
	if end != nil {
		if err := validate.Interval(session.StartTime, *end); err != nil {
			return nil, err
		}
		seconds := timer.ElapsedSeconds(session.StartTime, *end)
		if patch.DurationSeconds != nil && patch.Start == nil && patch.End == nil {
			seconds = *patch.DurationSeconds
		}
		session.Finish(*end, seconds)
	}

	if err := s.backend.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes a session immediately and irreversibly
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	if current := s.timer.Snapshot().SessionID; current != "" && current == sessionID {
		return ErrTimerBusy
	}
	return s.backend.DeleteSession(ctx, sessionID)
}

// GetSession loads one session
func (s *Service) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.backend.GetSession(ctx, sessionID)
}

// ListSessions returns all sessions, newest created first
func (s *Service) ListSessions(ctx context.Context) ([]models.Session, error) {
	return s.backend.ListSessions(ctx)
}
