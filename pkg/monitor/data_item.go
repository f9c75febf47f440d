package monitor

import (
	"sync"
	"time"

	"github.com/uaserve/uaserve-go/pkg/address"
	"github.com/uaserve/uaserve-go/pkg/ua"
)

// DataItem monitors the Value attribute of a variable node. Sampled values
// accumulate in a bounded queue until the owning subscription drains them.
// It is safe for concurrent use.
type DataItem struct {
	itemState

	timestamps ua.TimestampsToReturn

	mu       sync.Mutex
	queue    []ua.DataValue
	overflow bool
}

// DataItemConfig carries the revised parameters for a new data item.
type DataItemConfig struct {
	ID               uint32
	ClientHandle     uint32
	SamplingInterval float64
	QueueSize        uint32
	DiscardOldest    bool
	Timestamps       ua.TimestampsToReturn
	Node             address.Node
}

// NewDataItem creates a data item in Disabled mode. The owning subscription
// applies the requested monitoring mode after registration.
func NewDataItem(cfg DataItemConfig) *DataItem {
	item := &DataItem{
		itemState: itemState{
			id:            cfg.ID,
			clientHandle:  cfg.ClientHandle,
			sampling:      cfg.SamplingInterval,
			queueSize:     ReviseQueueSize(cfg.QueueSize),
			discardOldest: cfg.DiscardOldest,
			node:          cfg.Node,
		},
		timestamps: cfg.Timestamps,
	}
	item.mode.Store(uint32(ua.MonitoringModeDisabled))
	return item
}

// applyTimestamps strips the timestamps the client did not ask for.
func applyTimestamps(v ua.DataValue, policy ua.TimestampsToReturn) ua.DataValue {
	switch policy {
	case ua.TimestampsSource:
		v.ServerTimestamp = time.Time{}
	case ua.TimestampsServer:
		v.SourceTimestamp = time.Time{}
	case ua.TimestampsNeither:
		v.SourceTimestamp = time.Time{}
		v.ServerTimestamp = time.Time{}
	}
	return v
}

// Enqueue records a sampled value. Disabled items and terminated items drop
// the value. When the queue is full, either the oldest entry is discarded or
// the newest is replaced, per the item's discard policy, and Overflowed
// reports true until the next extraction.
func (d *DataItem) Enqueue(value ua.DataValue) {
	if d.terminated.Load() || d.MonitoringMode() == ua.MonitoringModeDisabled {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if uint32(len(d.queue)) >= d.queueSize {
		d.overflow = true
		if d.discardOldest {
			d.queue = d.queue[1:]
		} else {
			d.queue = d.queue[:len(d.queue)-1]
		}
	}
	d.queue = append(d.queue, applyTimestamps(value, d.timestamps))
}

// ExtractNotifications drains the queue. Items in Sampling mode keep
// sampling but report nothing, so extraction returns nil for them.
func (d *DataItem) ExtractNotifications() []Extracted {
	if d.MonitoringMode() != ua.MonitoringModeReporting {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.queue) == 0 {
		return nil
	}

	out := make([]Extracted, 0, len(d.queue))
	for _, v := range d.queue {
		out = append(out, Extracted{
			DataChange: &ua.MonitoredItemNotification{
				ClientHandle: d.clientHandle,
				Value:        v,
			},
		})
	}
	d.queue = d.queue[:0]
	d.overflow = false
	return out
}

// Overflowed reports whether the queue dropped values since the last drain.
func (d *DataItem) Overflowed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.overflow
}

// SetMonitoringMode switches the monitoring mode. Disabling clears the
// queue.
func (d *DataItem) SetMonitoringMode(mode ua.MonitoringMode) {
	d.mode.Store(uint32(mode))
	if mode == ua.MonitoringModeDisabled {
		d.mu.Lock()
		d.queue = nil
		d.overflow = false
		d.mu.Unlock()
	}
}

// Terminate releases the item and clears the queue.
func (d *DataItem) Terminate() {
	if d.terminated.Swap(true) {
		return
	}
	d.mu.Lock()
	d.queue = nil
	d.mu.Unlock()
}

// Compile-time interface satisfaction check.
var _ Item = (*DataItem)(nil)
