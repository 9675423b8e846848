// Package server serves the diagnostic dashboard and its JSON API over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/inovally/diagnostico/internal/apperr"
	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/metrics"
	"github.com/inovally/diagnostico/internal/notify"
	"github.com/inovally/diagnostico/internal/profile"
	"github.com/inovally/diagnostico/internal/report"
	"github.com/inovally/diagnostico/internal/schedule"
	"github.com/inovally/diagnostico/internal/schema"
	"github.com/inovally/diagnostico/internal/scoreset"
)

// Options configures a Server.
type Options struct {
	Profile *profile.Profile
	// Link overrides the profile's scheduling link when BaseURL is set.
	Link    schedule.Link
	Strict  bool
	Version string

	// ActionRate and ActionBurst limit CTA requests per client IP.
	ActionRate  rate.Limit
	ActionBurst int
	// TrustedProxies are the proxies whose X-Forwarded-For is believed.
	// With none, the client IP is the connection's peer address.
	TrustedProxies []string

	Logger *zap.Logger
}

// Server holds the report currently on the dashboard.
type Server struct {
	opts     Options
	logger   *zap.Logger
	engine   *gin.Engine
	hub      *notify.Hub
	notifier notify.Notifier
	limiter  *ipLimiter

	mu      sync.RWMutex
	current *report.Report
}

// New builds a Server and its routes. It shows no report until SetScores
// or Load is called.
func New(opts Options) (*Server, error) {
	if opts.Profile == nil {
		return nil, errors.New("server.New: profile is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Link.BaseURL == "" {
		opts.Link = schedule.Link{
			BaseURL:         opts.Profile.Schedule.BaseURL,
			MessageTemplate: opts.Profile.Schedule.MessageTemplate,
		}
	}
	if opts.ActionRate <= 0 {
		opts.ActionRate = 2
	}
	if opts.ActionBurst <= 0 {
		opts.ActionBurst = 5
	}

	logger := opts.Logger.Named("server")
	s := &Server{
		opts:    opts,
		logger:  logger,
		limiter: newIPLimiter(opts.ActionRate, opts.ActionBurst, 10*time.Minute, maxTrackedClients),
	}
	s.hub = notify.NewHub(func(n notify.Notification) {
		logger.Debug("notification dismissed", zap.String("id", n.ID))
	})
	s.notifier = notify.Multi(notify.NewLog(opts.Logger), s.hub)
	engine, err := s.routes()
	if err != nil {
		s.hub.Close()
		return nil, fmt.Errorf("server.New: %w", err)
	}
	s.engine = engine
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Current returns the report on the dashboard, or nil.
func (s *Server) Current() *report.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetScores classifies set and makes it the dashboard's report.
func (s *Server) SetScores(set diagnosis.ScoreSet, file, hash string) error {
	r, err := s.build(set, file, hash, "dashboard")
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = r
	s.mu.Unlock()
	metrics.OverallPercentage.Set(float64(r.Summary.OverallPercentage))
	return nil
}

// Load is a scoreset.Watcher callback. A rejected set leaves the current
// report in place.
func (s *Server) Load(f *scoreset.File) {
	if err := s.SetScores(f.Scores, f.FilePath, f.Hash); err != nil {
		metrics.Reloads.WithLabelValues("rejected").Inc()
		s.logger.Warn("score set rejected", zap.String("file", f.FilePath), zap.Error(err))
		return
	}
	metrics.Reloads.WithLabelValues("ok").Inc()
	s.logger.Info("dashboard updated",
		zap.String("file", f.FilePath),
		zap.String("hash", f.Hash),
		zap.Int("overall_percentage", s.Current().Summary.OverallPercentage),
	)
}

func (s *Server) build(set diagnosis.ScoreSet, file, hash, source string) (*report.Report, error) {
	findings := schema.ValidateScores(set)
	if s.opts.Strict && len(findings) > 0 {
		metrics.InvalidInputs.WithLabelValues(source).Inc()
		return nil, validationError(findings)
	}

	r, err := report.Build(report.Options{
		Scores:     set,
		Profile:    s.opts.Profile,
		Link:       s.opts.Link,
		ScoresFile: file,
		ScoresHash: hash,
		Version:    s.opts.Version,
	})
	if err != nil {
		metrics.InvalidInputs.WithLabelValues(source).Inc()
		return nil, fmt.Errorf("server: %w", err)
	}
	for _, f := range findings {
		r.Warnings = append(r.Warnings, f.Error())
	}
	metrics.Classifications.WithLabelValues(source).Inc()
	return r, nil
}

func validationError(findings []schema.ValidationError) *apperr.AppError {
	fields := make([]map[string]string, 0, len(findings))
	for _, f := range findings {
		fields = append(fields, map[string]string{"field": f.Path, "message": f.Message})
	}
	return apperr.ErrValidation.WithDetails(map[string]any{"fields": fields})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server.Run: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Run: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Run: %w", err)
	}
	return nil
}

// Close dismisses pending notifications and stops their timers.
func (s *Server) Close() {
	s.hub.Close()
}
