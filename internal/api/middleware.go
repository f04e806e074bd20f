package api

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/beadfanatic/server/internal/errors"
	"github.com/beadfanatic/server/internal/http/response"
	"github.com/beadfanatic/server/internal/ratelimit"
)

// envelopeVersion is the wire version of the response envelope. Clients
// check it before parsing; bump only with a coordinated client release.
const envelopeVersion = 1

// EnvelopeTransformer wraps every huma response in the standard envelope:
// {v, success, data} on success, {v, success, error, ...} on failure.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return map[string]any{"v": envelopeVersion, "success": true}, nil
	case *APIError:
		out := map[string]any{
			"v":       envelopeVersion,
			"success": false,
			"error":   val.Message,
		}
		if val.Code != "" {
			out["code"] = val.Code
			out["message"] = val.Message
		}
		if val.Details != nil {
			out["details"] = val.Details
		}
		return out, nil
	case error:
		return map[string]any{"v": envelopeVersion, "success": false, "error": val.Error()}, nil
	default:
		return map[string]any{"v": envelopeVersion, "success": true, "data": v}, nil
	}
}

// RateLimitMiddleware limits requests per client IP.
// Returns 429 Too Many Requests when the limit is exceeded.
func RateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger interface{ Warn(msg string, args ...any) }) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := getClientIP(r)
			if !limiter.Allow(key) {
				logger.Warn("rate limit exceeded", "ip", key, "path", r.URL.Path)
				response.Fail(w, http.StatusTooManyRequests, "too many requests, please try again later", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// authorize verifies an admin bearer token from an Authorization header.
func (s *Server) authorize(header string) error {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return errors.Unauthorized("missing bearer token")
	}
	if _, err := s.tokens.Verify(strings.TrimPrefix(header, prefix)); err != nil {
		return errors.Unauthorized("invalid or expired token")
	}
	return nil
}

// getClientIP extracts the client IP from the request, preferring proxy
// headers over RemoteAddr.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if i := strings.LastIndexByte(ip, ':'); i >= 0 {
		return ip[:i]
	}
	return ip
}
