package subscription

import (
	"time"

	"github.com/uaserve/uaserve-go/pkg/ua"
)

// NotificationRecord is one assembled notification message together with the
// bookkeeping needed for retransmission and aging.
type NotificationRecord struct {
	// SequenceNumber is unique within the subscription and strictly
	// increasing across records.
	SequenceNumber uint32

	// PublishTime is when the message was assembled.
	PublishTime time.Time

	// NotificationData holds one or two payload entries.
	NotificationData []ua.NotificationData

	// StartTick is the subscription's publish-interval count at enqueue
	// time, the logical clock used for aging.
	StartTick uint64
}

// Message returns the wire-level notification message for this record.
func (r *NotificationRecord) Message() ua.NotificationMessage {
	return ua.NotificationMessage{
		SequenceNumber:   r.SequenceNumber,
		PublishTime:      r.PublishTime,
		NotificationData: r.NotificationData,
	}
}

// agedAt reports whether the record has outlived maxKeepAliveCount publish
// cycles at the given tick.
func (r *NotificationRecord) agedAt(tick uint64, maxKeepAliveCount uint32) bool {
	return r.StartTick+uint64(maxKeepAliveCount) < tick
}
