package eventlog

import (
	"time"
)

// Event is one subscription protocol event. CBOR encoding uses integer keys
// for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the owning session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// SubscriptionID identifies the subscription.
	SubscriptionID uint32 `cbor:"3,keyasint"`

	// Kind classifies the event.
	Kind Kind `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	Notification *NotificationEvent `cbor:"5,keyasint,omitempty"`
	KeepAlive    *KeepAliveEvent    `cbor:"6,keyasint,omitempty"`
	StateChange  *StateChangeEvent  `cbor:"7,keyasint,omitempty"`
	Republish    *RepublishEvent    `cbor:"8,keyasint,omitempty"`
	Item         *ItemEvent         `cbor:"9,keyasint,omitempty"`
}

// Kind classifies a subscription protocol event.
type Kind uint8

const (
	// KindNotificationSent marks a notification message handed to a
	// publish response.
	KindNotificationSent Kind = 0

	// KindKeepAliveSent marks an empty keep-alive response.
	KindKeepAliveSent Kind = 1

	// KindStateChange marks a lifecycle state transition.
	KindStateChange Kind = 2

	// KindRepublish marks a client-initiated retransmission.
	KindRepublish Kind = 3

	// KindItemCreated marks a monitored item registration.
	KindItemCreated Kind = 4

	// KindItemRemoved marks a monitored item removal.
	KindItemRemoved Kind = 5

	// KindTerminated marks the subscription reaching CLOSED.
	KindTerminated Kind = 6
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNotificationSent:
		return "NOTIFICATION"
	case KindKeepAliveSent:
		return "KEEPALIVE"
	case KindStateChange:
		return "STATE_CHANGE"
	case KindRepublish:
		return "REPUBLISH"
	case KindItemCreated:
		return "ITEM_CREATED"
	case KindItemRemoved:
		return "ITEM_REMOVED"
	case KindTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// NotificationEvent carries the details of a sent notification message.
type NotificationEvent struct {
	// SequenceNumber of the message.
	SequenceNumber uint32 `cbor:"1,keyasint"`

	// DataChangeCount is the number of value changes carried.
	DataChangeCount int `cbor:"2,keyasint,omitempty"`

	// EventCount is the number of event occurrences carried.
	EventCount int `cbor:"3,keyasint,omitempty"`

	// MoreNotifications is set when further messages were pending.
	MoreNotifications bool `cbor:"4,keyasint,omitempty"`
}

// KeepAliveEvent carries the sequence number announced by a keep-alive.
type KeepAliveEvent struct {
	// FutureSequenceNumber is the next number the subscription will issue.
	FutureSequenceNumber uint32 `cbor:"1,keyasint"`
}

// StateChangeEvent records a lifecycle transition.
type StateChangeEvent struct {
	// OldState is the state name before the transition.
	OldState string `cbor:"1,keyasint"`

	// NewState is the state name after the transition.
	NewState string `cbor:"2,keyasint"`

	// Reason describes what triggered the transition, if known.
	Reason string `cbor:"3,keyasint,omitempty"`
}

// RepublishEvent records a retransmission request.
type RepublishEvent struct {
	// SequenceNumber the client asked for.
	SequenceNumber uint32 `cbor:"1,keyasint"`

	// Served is true when the message was still retained.
	Served bool `cbor:"2,keyasint"`
}

// ItemEvent records a monitored-item registration or removal.
type ItemEvent struct {
	// MonitoredItemID is the server-assigned item id.
	MonitoredItemID uint32 `cbor:"1,keyasint"`

	// ClientHandle is the client-side correlation handle.
	ClientHandle uint32 `cbor:"2,keyasint,omitempty"`

	// NodeID is the monitored node in ns=<n>;i=<id> or ns=<n>;s=<id> form.
	NodeID string `cbor:"3,keyasint,omitempty"`
}
