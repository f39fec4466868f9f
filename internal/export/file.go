package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/renameio/v2"

	clog "github.com/balkashynov/clockr/internal/log"
)

// Filename is the default name for an export written on day now
func Filename(now time.Time) string {
	return fmt.Sprintf("time-tracking-export-%s.csv", now.Format("2006-01-02"))
}

// SaveFile writes csv to path atomically. The pending temp file is always
// released; a failure to clean it up is only logged.
func SaveFile(ctx context.Context, path, csv string) error {
	logger := clog.FromContext(ctx)

	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("cleanup pending export file")
		}
	}()

	if _, err := pendingFile.WriteString(csv); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to save export: %w", err)
	}

	logger.Info().Str("path", path).Int("bytes", len(csv)).Msg("export saved")
	return nil
}
