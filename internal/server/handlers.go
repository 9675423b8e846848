package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/inovally/diagnostico/internal/apperr"
	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/indicator"
	"github.com/inovally/diagnostico/internal/metrics"
	"github.com/inovally/diagnostico/internal/notify"
	"github.com/inovally/diagnostico/internal/render"
	"github.com/inovally/diagnostico/internal/scoreset"
)

const maxBodyBytes = 64 << 10

func (s *Server) routes() (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(s.opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/", s.dashboard)
	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/diagnostic", s.getDiagnostic)
		api.POST("/diagnostic/classify", s.classify)
		api.GET("/indicators", s.listIndicators)
		api.GET("/schedule/:key", s.scheduleRedirect)
		api.POST("/actions/:action", s.rateLimit(), s.triggerAction)
		api.GET("/notifications", s.listNotifications)
	}

	r.NoRoute(func(c *gin.Context) {
		s.respondError(c, apperr.ErrNotFound)
	})
	return r, nil
}

func (s *Server) respondError(c *gin.Context, err error) {
	appErr := apperr.FromError(err)
	fields := []zap.Field{zap.String("code", appErr.Code), zap.String("path", c.Request.URL.Path)}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		s.logger.Error("request_error", fields...)
	} else {
		s.logger.Debug("request_error", fields...)
	}

	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}

func (s *Server) dashboard(c *gin.Context) {
	r := s.Current()
	if r == nil {
		s.respondError(c, apperr.ErrUnavailable)
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := render.HTML(c.Writer, r, render.HTMLOptions{Live: true}); err != nil {
		s.logger.Error("rendering dashboard", zap.Error(err))
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"ready":   s.Current() != nil,
		"profile": s.opts.Profile.Name,
	})
}

func (s *Server) getDiagnostic(c *gin.Context) {
	r := s.Current()
	if r == nil {
		s.respondError(c, apperr.ErrUnavailable)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) classify(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		s.respondError(c, apperr.ErrBadRequest.WithError(err))
		return
	}
	set, err := scoreset.Parse(body)
	if err != nil {
		if !errors.Is(err, diagnosis.ErrInvalidInput) {
			err = fmt.Errorf("%w: %v", diagnosis.ErrInvalidInput, err)
		}
		metrics.InvalidInputs.WithLabelValues("api").Inc()
		s.respondError(c, err)
		return
	}
	r, err := s.build(set, "", scoreset.Hash(body), "api")
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) listIndicators(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"indicators": indicator.All()})
}

func (s *Server) scheduleRedirect(c *gin.Context) {
	key := c.Param("key")
	ind, ok := indicator.Lookup(key)
	if !ok {
		s.respondError(c, apperr.ErrIndicatorNotFound.WithDetails(map[string]any{"key": key}))
		return
	}
	metrics.ScheduleRedirects.WithLabelValues(key).Inc()
	c.Redirect(http.StatusFound, s.opts.Link.For(ind.FullName))
}

func (s *Server) triggerAction(c *gin.Context) {
	id := c.Param("action")
	act, ok := s.opts.Profile.Action(id)
	if !ok {
		s.respondError(c, apperr.ErrActionNotFound.WithDetails(map[string]any{"action": id}))
		return
	}
	n := notify.New(act.Message, notify.Kind(act.Kind), act.Duration())
	if err := s.notifier.Show(c.Request.Context(), n); err != nil {
		s.respondError(c, err)
		return
	}
	metrics.Actions.WithLabelValues(id).Inc()
	c.JSON(http.StatusOK, n)
}

func (s *Server) listNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": s.hub.Active()})
}
