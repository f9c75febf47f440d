package subscription

import (
	"time"

	"github.com/google/uuid"

	"github.com/uaserve/uaserve-go/pkg/ua"
)

// Diagnostics is a point-in-time snapshot of a subscription's settings and
// counters. Counters are written by the operations that produce the events
// they count; the snapshot claims no cross-field atomicity beyond being
// taken under the subscription's lock.
type Diagnostics struct {
	SessionID      uuid.UUID
	SubscriptionID uint32
	Priority       uint8

	PublishingInterval         time.Duration
	MaxLifetimeCount           uint32
	MaxKeepAliveCount          uint32
	MaxNotificationsPerPublish uint32
	PublishingEnabled          bool

	State                State
	PublishIntervalCount uint64
	KeepAliveCounter     uint32
	LifeTimeCounter      uint32

	MonitoredItemCount         uint32
	DisabledMonitoredItemCount uint32
	NextSequenceNumber         uint32

	ModifyCount                  uint32
	EnableCount                  uint32
	DisableCount                 uint32
	RepublishRequestCount        uint32
	RepublishMessageCount        uint32
	NotificationsCount           uint32
	PublishRequestCount          uint32
	DataChangeNotificationsCount uint32
	EventNotificationsCount      uint32
}

// Diagnostics returns a snapshot of the subscription's live counters.
func (s *Subscription) Diagnostics() Diagnostics {
	s.mu.Lock()
	defer s.mu.Unlock()

	var disabled uint32
	for _, item := range s.items {
		if item.MonitoringMode() == ua.MonitoringModeDisabled {
			disabled++
		}
	}

	return Diagnostics{
		SessionID:      s.sessionID,
		SubscriptionID: s.id,
		Priority:       s.priority,

		PublishingInterval:         s.publishingInterval,
		MaxLifetimeCount:           s.lifeTimeCount,
		MaxKeepAliveCount:          s.maxKeepAliveCount,
		MaxNotificationsPerPublish: s.maxNotificationsPerPublish,
		PublishingEnabled:          s.publishingEnabled,

		State:                s.state,
		PublishIntervalCount: s.publishIntervalCount,
		KeepAliveCounter:     s.keepAliveCounter,
		LifeTimeCounter:      s.lifeTimeCounter,

		MonitoredItemCount:         uint32(len(s.items)),
		DisabledMonitoredItemCount: disabled,
		NextSequenceNumber:         s.seq.future(),

		ModifyCount:                  s.modifyCount,
		EnableCount:                  s.enableCount,
		DisableCount:                 s.disableCount,
		RepublishRequestCount:        s.republishRequestCount,
		RepublishMessageCount:        s.republishMessageCount,
		NotificationsCount:           s.notificationsCount,
		PublishRequestCount:          s.publishRequestCount,
		DataChangeNotificationsCount: s.dataChangeNotificationsCount,
		EventNotificationsCount:      s.eventNotificationsCount,
	}
}
