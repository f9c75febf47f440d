package publish

import "github.com/uaserve/uaserve-go/pkg/ua"

// OutgoingMessage is one notification message handed to the publish engine
// together with the retransmission bookkeeping the client needs.
type OutgoingMessage struct {
	SubscriptionID           uint32
	Message                  ua.NotificationMessage
	AvailableSequenceNumbers []uint32
	MoreNotifications        bool
}

// Engine is the publish-request capability a subscription consumes. One
// engine is shared by all subscriptions of a session; implementations must
// return promptly and never block.
type Engine interface {
	// PendingPublishRequestCount returns the number of parked client
	// publish requests awaiting a subscription with something to say.
	PendingPublishRequestCount() int

	// SendNotificationMessage consumes one parked request and emits the
	// message. Callers must check PendingPublishRequestCount first.
	SendNotificationMessage(msg OutgoingMessage)

	// SendKeepAliveResponse consumes one parked request to emit a
	// keep-alive announcing the next sequence number. Returns false when no
	// request was available.
	SendKeepAliveResponse(subscriptionID uint32, futureSequenceNumber uint32) bool

	// OnTick is invoked at the start of each subscription publish cycle.
	OnTick()
}
