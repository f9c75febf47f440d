package eventlog

import (
	"context"
	"log/slog"
)

// SlogAdapter writes subscription events to an slog.Logger. Useful for
// development when you want to see protocol events in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.Uint64("subscription_id", uint64(event.SubscriptionID)),
		slog.String("kind", event.Kind.String()),
	}

	switch {
	case event.Notification != nil:
		attrs = append(attrs,
			slog.Uint64("sequence_number", uint64(event.Notification.SequenceNumber)),
			slog.Int("data_changes", event.Notification.DataChangeCount),
			slog.Int("events", event.Notification.EventCount),
			slog.Bool("more_notifications", event.Notification.MoreNotifications),
		)
	case event.KeepAlive != nil:
		attrs = append(attrs,
			slog.Uint64("future_sequence_number", uint64(event.KeepAlive.FutureSequenceNumber)),
		)
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Republish != nil:
		attrs = append(attrs,
			slog.Uint64("sequence_number", uint64(event.Republish.SequenceNumber)),
			slog.Bool("served", event.Republish.Served),
		)
	case event.Item != nil:
		attrs = append(attrs,
			slog.Uint64("monitored_item_id", uint64(event.Item.MonitoredItemID)),
			slog.String("node_id", event.Item.NodeID),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "subscription", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
