package resolver

import "log/slog"

// Observer receives diagnostic events from the resolver. The application
// owns where they go; the resolver never writes output itself.
type Observer interface {
	Debug(msg string, args ...any)
}

// NopObserver discards every event
type NopObserver struct{}

func (NopObserver) Debug(string, ...any) {}

// SlogObserver forwards events to a structured logger at debug level
type SlogObserver struct {
	Logger *slog.Logger
}

func (o SlogObserver) Debug(msg string, args ...any) {
	if o.Logger == nil {
		return
	}
	o.Logger.Debug(msg, args...)
}
