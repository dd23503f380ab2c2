package log

import (
	"context"
	"log/slog"
)

// SlogAdapter mirrors events onto an slog.Logger for the console.
// Errors and Failure responses log at Warn, gate resolutions at Info and
// everything else at Debug.
type SlogAdapter struct {
	logger *slog.Logger
}

func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

func (a *SlogAdapter) Log(event Event) {
	attrs := make([]slog.Attr, 0, 8)
	attrs = append(attrs,
		slog.String("layer", event.Layer.String()),
		slog.String("dir", event.Direction.String()),
	)
	if event.ConnectionID != "" {
		attrs = append(attrs, slog.String("conn_id", event.ConnectionID))
	}
	if event.DeviceID != "" {
		attrs = append(attrs, slog.String("device_id", event.DeviceID))
	}

	msg, level := "event", slog.LevelDebug
	switch {
	case event.Frame != nil:
		msg = "frame"
		attrs = append(attrs, slog.Int("size", event.Frame.Size))
		if event.Frame.Truncated {
			attrs = append(attrs, slog.Bool("truncated", true))
		}
	case event.Message != nil:
		msg = "message"
		attrs = append(attrs, slog.String("msg_type", event.Message.Type.String()))
		if event.Message.Failure != nil {
			attrs = append(attrs, slog.String("failure", event.Message.Failure.String()))
			level = slog.LevelWarn
		}
	case event.Gate != nil:
		msg = "gate"
		attrs = append(attrs, gateAttrs(event.Gate)...)
		if event.Gate.Phase == GateResolved {
			level = slog.LevelInfo
		}
	case event.StateChange != nil:
		msg = "state"
		sc := event.StateChange
		attrs = append(attrs,
			slog.String("entity", sc.Entity.String()),
			slog.String("from", sc.OldState),
			slog.String("to", sc.NewState),
		)
		if sc.Reason != "" {
			attrs = append(attrs, slog.String("reason", sc.Reason))
		}
	case event.Error != nil:
		msg, level = "error", slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("context", event.Error.Context))
		}
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("code", *event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

func gateAttrs(g *GateEvent) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("gate", g.Gate.String()),
		slog.String("phase", g.Phase.String()),
	}
	if g.Purpose != "" {
		attrs = append(attrs, slog.String("purpose", g.Purpose))
	}
	if g.Outcome != "" {
		attrs = append(attrs, slog.String("outcome", g.Outcome))
	}
	return attrs
}

var _ Logger = (*SlogAdapter)(nil)
