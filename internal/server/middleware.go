package server

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/inovally/diagnostico/internal/apperr"
	"github.com/inovally/diagnostico/internal/metrics"
)

// maxTrackedClients caps the limiter's bucket map.
const maxTrackedClients = 10000

// ipLimiter keeps one token bucket per client IP. Idle buckets are swept
// on access, so no background goroutine is needed. When the map is full,
// unknown clients are refused until idle buckets expire.
type ipLimiter struct {
	mu         sync.Mutex
	limit      rate.Limit
	burst      int
	idle       time.Duration
	maxClients int
	lastSweep  time.Time
	clients    map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(limit rate.Limit, burst int, idle time.Duration, maxClients int) *ipLimiter {
	return &ipLimiter{
		limit:      limit,
		burst:      burst,
		idle:       idle,
		maxClients: maxClients,
		lastSweep:  time.Now(),
		clients:    make(map[string]*client),
	}
}

func (l *ipLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) > l.idle {
		l.sweep(now)
	}

	c, ok := l.clients[ip]
	if !ok {
		if len(l.clients) >= l.maxClients {
			l.sweep(now)
			if len(l.clients) >= l.maxClients {
				return false
			}
		}
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *ipLimiter) sweep(now time.Time) {
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) > l.idle {
			delete(l.clients, k)
		}
	}
	l.lastSweep = now
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			s.respondError(c, apperr.ErrRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}

// requestLogger logs each request and records its duration.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)
		metrics.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).
			Observe(elapsed.Seconds())

		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
