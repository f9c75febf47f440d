package monitor

import (
	"sync/atomic"

	"github.com/uaserve/uaserve-go/pkg/address"
	"github.com/uaserve/uaserve-go/pkg/ua"
)

// Extracted is one notification drained from a monitored item. Exactly one
// of the two fields is set.
type Extracted struct {
	DataChange *ua.MonitoredItemNotification
	Event      *ua.EventFieldList
}

// Item is the monitored-item capability consumed by the subscription core.
type Item interface {
	// ID returns the server-assigned monitored-item id.
	ID() uint32

	// ClientHandle returns the client-side correlation handle.
	ClientHandle() uint32

	// SamplingInterval returns the revised sampling interval in milliseconds.
	SamplingInterval() float64

	// QueueSize returns the revised queue size.
	QueueSize() uint32

	// MonitoringMode returns the current monitoring mode.
	MonitoringMode() ua.MonitoringMode

	// SetMonitoringMode switches the monitoring mode. Disabling drops any
	// queued notifications.
	SetMonitoringMode(mode ua.MonitoringMode)

	// Node returns the monitored node.
	Node() address.Node

	// ExtractNotifications drains all queued notifications, oldest first.
	ExtractNotifications() []Extracted

	// Terminate releases the item. Further enqueues are discarded.
	Terminate()
}

// Queue sizing bounds applied during creation.
const (
	MinQueueSize = 1
	MaxQueueSize = 1024
)

// ReviseQueueSize clamps a requested queue size into the supported range.
// 0 means "server default" and revises to 1.
func ReviseQueueSize(requested uint32) uint32 {
	switch {
	case requested == 0:
		return MinQueueSize
	case requested > MaxQueueSize:
		return MaxQueueSize
	default:
		return requested
	}
}

// itemState is the shared behavior of data and event items.
type itemState struct {
	id             uint32
	clientHandle   uint32
	sampling       float64
	queueSize      uint32
	discardOldest  bool
	node           address.Node
	mode           atomic.Uint32
	terminated     atomic.Bool
}

func (s *itemState) ID() uint32                        { return s.id }
func (s *itemState) ClientHandle() uint32              { return s.clientHandle }
func (s *itemState) SamplingInterval() float64         { return s.sampling }
func (s *itemState) QueueSize() uint32                 { return s.queueSize }
func (s *itemState) Node() address.Node                { return s.node }
func (s *itemState) MonitoringMode() ua.MonitoringMode { return ua.MonitoringMode(s.mode.Load()) }
