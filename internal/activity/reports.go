package activity

import (
	"context"

	"github.com/balkashynov/clockr/internal/export"
	"github.com/balkashynov/clockr/internal/stats"
)

// Summary computes dashboard aggregates over all sessions
func (s *Service) Summary(ctx context.Context) (stats.Summary, error) {
	sessions, err := s.backend.ListSessions(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(sessions, s.clock.Now()), nil
}

// Timesheet groups the current week's sessions by category and day
func (s *Service) Timesheet(ctx context.Context) (stats.Timesheet, error) {
	sessions, err := s.backend.ListSessions(ctx)
	if err != nil {
		return stats.Timesheet{}, err
	}
	return stats.Weekly(sessions, s.clock.Now()), nil
}

// ExportCSV serializes all sessions in list order
func (s *Service) ExportCSV(ctx context.Context, opts ...export.Option) (string, error) {
	sessions, err := s.backend.ListSessions(ctx)
	if err != nil {
		return "", err
	}
	return export.CSV(sessions, opts...), nil
}

// PublishExport uploads the CSV and returns the retrieval URL
func (s *Service) PublishExport(ctx context.Context, opts ...export.Option) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadUnavailable
	}
	csv, err := s.ExportCSV(ctx, opts...)
	if err != nil {
		return "", err
	}

	url, err := s.uploader.UploadExport(ctx, export.Filename(s.clock.Now()), []byte(csv))
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("url", url).Msg("export published")
	return url, nil
}
