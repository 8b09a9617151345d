package log

import (
	"time"
)

// HTTPLogEntry represents an HTTP request/response log entry
type HTTPLogEntry struct {
	RequestID  string
	Method     string
	Path       string
	Query      string
	Status     int
	Duration   time.Duration
	Size       int
	RemoteAddr string
	UserAgent  string
}

// LogHTTPRequest writes one structured line per request. Successful
// requests are logged at debug level.
func LogHTTPRequest(e HTTPLogEntry) {
	fields := []any{
		"request_id", e.RequestID,
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"duration_ms", e.Duration.Milliseconds(),
		"size", e.Size,
		"remote_addr", e.RemoteAddr,
	}
	if e.Query != "" {
		fields = append(fields, "query", e.Query)
	}
	if e.UserAgent != "" {
		fields = append(fields, "user_agent", e.UserAgent)
	}

	switch {
	case e.Status >= 500:
		Errorw("http request", fields...)
	case e.Status >= 400:
		Warnw("http request", fields...)
	default:
		Debugw("http request", fields...)
	}
}
