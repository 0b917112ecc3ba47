package middleware

import (
	"math"
	"net/http"
	"strconv"

	apperrors "github.com/kbukum/picoview/errors"
	"github.com/kbukum/picoview/logger"
	"github.com/kbukum/picoview/resilience"
)

// RateLimitConfig configures the server-wide token bucket. A zero
// RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"rps" mapstructure:"rps"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// Enabled reports whether limiting is configured.
func (c RateLimitConfig) Enabled() bool { return c.RequestsPerSecond > 0 }

// RateLimit refuses requests with 429 and a Retry-After header once the
// bucket is empty. /health and /ready are never limited.
func RateLimit(limiter *resilience.RateLimiter, log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] || limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			wait := limiter.RetryAfter()
			log.Debug("request rate limited", logger.Fields(
				logger.FieldMethod, r.Method,
				logger.FieldURL, r.URL.Path,
				"limiter", limiter.Name(),
			))
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			writeJSON(w, http.StatusTooManyRequests, apperrors.RateLimited(wait).ToResponse())
		})
	}
}
