package monitor

import (
	"sync"

	"github.com/uaserve/uaserve-go/pkg/address"
	"github.com/uaserve/uaserve-go/pkg/ua"
)

// EventItem monitors the EventNotifier attribute of an object node. Event
// occurrences accumulate as the field lists passed to EnqueueEvent; the item
// applies no filter of its own.
// It is safe for concurrent use.
type EventItem struct {
	itemState

	mu    sync.Mutex
	queue []ua.EventFieldList
}

// EventItemConfig carries the revised parameters for a new event item.
type EventItemConfig struct {
	ID               uint32
	ClientHandle     uint32
	SamplingInterval float64
	QueueSize        uint32
	DiscardOldest    bool
	Node             address.Node
}

// NewEventItem creates an event item in Disabled mode.
func NewEventItem(cfg EventItemConfig) *EventItem {
	item := &EventItem{
		itemState: itemState{
			id:            cfg.ID,
			clientHandle:  cfg.ClientHandle,
			sampling:      cfg.SamplingInterval,
			queueSize:     ReviseQueueSize(cfg.QueueSize),
			discardOldest: cfg.DiscardOldest,
			node:          cfg.Node,
		},
	}
	item.mode.Store(uint32(ua.MonitoringModeDisabled))
	return item
}

// EnqueueEvent records one event occurrence.
func (e *EventItem) EnqueueEvent(fields []any) {
	if e.terminated.Load() || e.MonitoringMode() == ua.MonitoringModeDisabled {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if uint32(len(e.queue)) >= e.queueSize {
		if e.discardOldest {
			e.queue = e.queue[1:]
		} else {
			e.queue = e.queue[:len(e.queue)-1]
		}
	}
	e.queue = append(e.queue, ua.EventFieldList{
		ClientHandle: e.clientHandle,
		EventFields:  fields,
	})
}

// ExtractNotifications drains the queue, oldest first.
func (e *EventItem) ExtractNotifications() []Extracted {
	if e.MonitoringMode() != ua.MonitoringModeReporting {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.queue) == 0 {
		return nil
	}

	out := make([]Extracted, 0, len(e.queue))
	for i := range e.queue {
		ev := e.queue[i]
		out = append(out, Extracted{Event: &ev})
	}
	e.queue = e.queue[:0]
	return out
}

// SetMonitoringMode switches the monitoring mode. Disabling clears the
// queue.
func (e *EventItem) SetMonitoringMode(mode ua.MonitoringMode) {
	e.mode.Store(uint32(mode))
	if mode == ua.MonitoringModeDisabled {
		e.mu.Lock()
		e.queue = nil
		e.mu.Unlock()
	}
}

// Terminate releases the item and clears the queue.
func (e *EventItem) Terminate() {
	if e.terminated.Swap(true) {
		return
	}
	e.mu.Lock()
	e.queue = nil
	e.mu.Unlock()
}

// Compile-time interface satisfaction check.
var _ Item = (*EventItem)(nil)
