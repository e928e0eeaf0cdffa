package log

import (
	"context"
	"log/slog"
)

// SlogAdapter renders protocol events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("contextID", event.ContextID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.LocalRole != 0 {
		attrs = append(attrs, slog.String("role", event.LocalRole.String()))
	}
	if event.SystemID != "" {
		attrs = append(attrs, slog.String("systemID", event.SystemID))
	}

	switch {
	case event.APDU != nil:
		ap := event.APDU
		attrs = append(attrs,
			slog.Int("choice", int(ap.Choice)),
			slog.Int("size", ap.Size),
		)
		if ap.Truncated {
			attrs = append(attrs, slog.Bool("truncated", true))
		}
		if ap.InvokeID != nil {
			attrs = append(attrs, slog.Int("invokeID", int(*ap.InvokeID)))
		}
		if ap.MessageChoice != nil {
			attrs = append(attrs, slog.Int("message", int(*ap.MessageChoice)))
		}
		if ap.Handle != nil {
			attrs = append(attrs, slog.Int("handle", int(*ap.Handle)))
		}
		if ap.EventType != nil {
			attrs = append(attrs, slog.Int("eventType", int(*ap.EventType)))
		}
		if ap.ActionType != nil {
			attrs = append(attrs, slog.Int("actionType", int(*ap.ActionType)))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("oldState", event.StateChange.OldState),
			slog.String("newState", event.StateChange.NewState),
		)
		if event.StateChange.Trigger != "" {
			attrs = append(attrs, slog.String("trigger", event.StateChange.Trigger))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("errorLayer", event.Error.Layer.String()),
			slog.String("error", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("errorContext", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "protocol", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
