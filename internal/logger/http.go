package logger

import (
	"log/slog"
	"net/http"
	"slices"
	"time"
)

// responseRecorder captures what the wrapped handler sent
type responseRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.written += int64(n)
	return n, err
}

// accessLevel picks the record level for a served request. Requests for
// quiet paths stay at debug unless the handler failed.
func accessLevel(status int, quiet bool) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelWarn
	case quiet:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// AccessMiddleware writes one "http_access" record per request. Paths listed
// in quietPaths (the metrics scrape endpoint) are logged at debug level so
// periodic scrapes do not fill the log file at the default info level.
func AccessMiddleware(l *slog.Logger, quietPaths ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, req)

			level := accessLevel(rec.status, slices.Contains(quietPaths, req.URL.Path))
			l.Log(req.Context(), level, "http_access",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", rec.status),
				slog.Int64("bytes", rec.written),
				slog.Duration("elapsed", time.Since(start)),
				slog.String("remote", req.RemoteAddr),
			)
		})
	}
}
