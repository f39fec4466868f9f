// Package httpapi serves uploaded CSV exports by their retrieval URL.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	clog "github.com/balkashynov/clockr/internal/log"
	"github.com/balkashynov/clockr/internal/models"
	"github.com/balkashynov/clockr/internal/store"
)

var exportDownloads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "clockr_export_downloads_total",
	Help: "Export download attempts by result.",
}, []string{"result"})

// ExportSource loads uploaded exports
type ExportSource interface {
	GetExport(ctx context.Context, id string) (*models.Export, error)
}

// NewRouter builds the HTTP routes
func NewRouter(src ExportSource) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.Limit(
		60,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/exports/{id}", exportHandler(src))
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func exportHandler(src ExportSource) http.HandlerFunc {
	logger := clog.WithComponent("httpapi")

	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		export, err := src.GetExport(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			exportDownloads.WithLabelValues("not_found").Inc()
			http.Error(w, "export not found", http.StatusNotFound)
			return
		}
		if err != nil {
			exportDownloads.WithLabelValues("error").Inc()
			logger.Error().Err(err).Str("export_id", id).Msg("failed to load export")
			http.Error(w, "failed to load export", http.StatusInternalServerError)
			return
		}

		exportDownloads.WithLabelValues("ok").Inc()
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(export.Content)
	}
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	logger := clog.WithComponent("httpapi")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		logger.Info().Msg("server stopped")
		return nil
	}
}
