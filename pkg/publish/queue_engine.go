package publish

import (
	"sync"

	"github.com/uaserve/uaserve-go/pkg/ua"
)

// Response is one outbound publish response produced by a QueueEngine:
// either a notification message or a keep-alive.
type Response struct {
	SubscriptionID           uint32
	Message                  ua.NotificationMessage
	AvailableSequenceNumbers []uint32
	MoreNotifications        bool

	// KeepAlive marks an empty response; Message then carries only the
	// announced next sequence number.
	KeepAlive bool
}

// ResponseSink receives completed publish responses for delivery to the
// client. Implementations must not call back into the engine.
type ResponseSink func(Response)

// QueueEngine is an in-memory publish engine: a counter of parked client
// publish requests and a sink responses are pushed to. It is safe for
// concurrent use.
type QueueEngine struct {
	mu      sync.Mutex
	parked  int
	sink    ResponseSink
	history []Response

	keepHistory bool
}

// NewQueueEngine creates an engine delivering responses to sink. A nil sink
// records responses internally for later inspection, which the tests use.
func NewQueueEngine(sink ResponseSink) *QueueEngine {
	return &QueueEngine{sink: sink, keepHistory: sink == nil}
}

// ParkPublishRequest parks one client publish request.
func (e *QueueEngine) ParkPublishRequest() {
	e.mu.Lock()
	e.parked++
	e.mu.Unlock()
}

// PendingPublishRequestCount returns the number of parked requests.
func (e *QueueEngine) PendingPublishRequestCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.parked
}

// SendNotificationMessage consumes one parked request and emits the message.
// With no parked request the message is emitted anyway; subscriptions check
// PendingPublishRequestCount before calling.
func (e *QueueEngine) SendNotificationMessage(msg OutgoingMessage) {
	e.mu.Lock()
	if e.parked > 0 {
		e.parked--
	}
	resp := Response{
		SubscriptionID:           msg.SubscriptionID,
		Message:                  msg.Message,
		AvailableSequenceNumbers: msg.AvailableSequenceNumbers,
		MoreNotifications:        msg.MoreNotifications,
	}
	e.record(resp)
	sink := e.sink
	e.mu.Unlock()

	if sink != nil {
		sink(resp)
	}
}

// SendKeepAliveResponse consumes one parked request for a keep-alive.
// Returns false when no request was available.
func (e *QueueEngine) SendKeepAliveResponse(subscriptionID uint32, futureSequenceNumber uint32) bool {
	e.mu.Lock()
	if e.parked == 0 {
		e.mu.Unlock()
		return false
	}
	e.parked--
	resp := Response{
		SubscriptionID: subscriptionID,
		Message:        ua.NotificationMessage{SequenceNumber: futureSequenceNumber},
		KeepAlive:      true,
	}
	e.record(resp)
	sink := e.sink
	e.mu.Unlock()

	if sink != nil {
		sink(resp)
	}
	return true
}

// OnTick is a no-op for the in-memory engine.
func (e *QueueEngine) OnTick() {}

// Responses returns the recorded responses. Only populated when the engine
// was created with a nil sink.
func (e *QueueEngine) Responses() []Response {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Response, len(e.history))
	copy(out, e.history)
	return out
}

func (e *QueueEngine) record(resp Response) {
	if e.keepHistory {
		e.history = append(e.history, resp)
	}
}

// Compile-time interface satisfaction check.
var _ Engine = (*QueueEngine)(nil)
