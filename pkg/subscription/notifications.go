package subscription

import (
	"time"

	"github.com/uaserve/uaserve-go/pkg/monitor"
	"github.com/uaserve/uaserve-go/pkg/ua"
)

// collectNotificationDataLocked drains every monitored item in registration
// order, slices the combined stream into chunks of at most
// maxNotificationsPerPublish entries, and pushes one notification record per
// chunk onto the pending queue. Each chunk partitions by variant into at
// most one DataChangeNotification and at most one EventNotificationList.
// Lock held.
func (s *Subscription) collectNotificationDataLocked() {
	var stream []monitor.Extracted
	for _, id := range s.itemOrder {
		stream = append(stream, s.items[id].ExtractNotifications()...)
	}
	if len(stream) == 0 {
		return
	}

	chunkSize := int(s.maxNotificationsPerPublish)
	if chunkSize == 0 {
		chunkSize = len(stream)
	}

	now := time.Now()
	for start := 0; start < len(stream); start += chunkSize {
		end := start + chunkSize
		if end > len(stream) {
			end = len(stream)
		}
		data := partitionNotifications(stream[start:end])

		s.pending.push(&NotificationRecord{
			SequenceNumber:   s.seq.next(),
			PublishTime:      now,
			NotificationData: data,
			StartTick:        s.publishIntervalCount,
		})
	}
}

// partitionNotifications splits one chunk of extracted notifications by
// variant, preserving order within each variant.
func partitionNotifications(chunk []monitor.Extracted) []ua.NotificationData {
	var dataChanges []ua.MonitoredItemNotification
	var events []ua.EventFieldList

	for _, n := range chunk {
		switch {
		case n.DataChange != nil:
			dataChanges = append(dataChanges, *n.DataChange)
		case n.Event != nil:
			events = append(events, *n.Event)
		}
	}

	data := make([]ua.NotificationData, 0, 2)
	if len(dataChanges) > 0 {
		data = append(data, &ua.DataChangeNotification{MonitoredItems: dataChanges})
	}
	if len(events) > 0 {
		data = append(data, &ua.EventNotificationList{Events: events})
	}
	return data
}

// PendingNotificationCount returns the number of assembled messages not yet
// handed to a publish response.
func (s *Subscription) PendingNotificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.len()
}

// SentNotificationCount returns the number of messages retained for
// retransmission.
func (s *Subscription) SentNotificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent.len()
}
