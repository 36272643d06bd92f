package logger

import (
	"log/slog"
	"time"
)

// Error records err under the key "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the name of the emitting component.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// MemberID records a member identifier. A nil id yields an empty Attr.
func MemberID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("member_id", id)
}

// Provider records the identity provider name, e.g. "kakao".
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Operation records the outbound operation being performed.
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

// StatusCode records an HTTP status code.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// RequestID records the request identifier. An empty id yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Duration records an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
