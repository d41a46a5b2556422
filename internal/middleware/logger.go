package middleware

import (
	"net/http"
	"strings"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"kalakrutiassociates.com/web/internal/observability"
)

// Logger attaches a request-scoped zap logger to the context and emits one
// structured access log per request.
func Logger(base *zap.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := NewResponseRecorder(w)

			ctx := r.Context()
			rid := chiMid.GetReqID(ctx)
			reqLog := base
			if rid != "" {
				ctx = WithRequestID(ctx, rid)
				reqLog = base.With(zap.String("request_id", rid))
			}
			ctx = observability.WithLogger(ctx, reqLog)
			r = r.WithContext(ctx)

			next.ServeHTTP(rw, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rw.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_ip", clientIP(r)),
				zap.Bool("htmx", IsHTMX(ctx)),
			}
			if IsCrawler(ctx) {
				fields = append(fields, zap.Bool("crawler", true))
			}
			switch {
			case rw.Status() >= http.StatusInternalServerError:
				reqLog.Error("request", fields...)
			case rw.Status() >= http.StatusBadRequest:
				reqLog.Warn("request", fields...)
			default:
				reqLog.Info("request", fields...)
			}
		})
	}
}

func clientIP(r *http.Request) string {
	// Trust X-Forwarded-For set by Cloud Run (last IP is client)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		p := strings.Split(xff, ",")
		return strings.TrimSpace(p[len(p)-1])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		return host[:i]
	}
	return host
}
