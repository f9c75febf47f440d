package subscription

import (
	"github.com/uaserve/uaserve-go/pkg/monitor"
	"github.com/uaserve/uaserve-go/pkg/ua"
)

// Hooks are the observable side-channel of a subscription. All fields are
// optional. Hooks are delivered edge-triggered, outside the subscription's
// lock; handlers may call back into the subscription but should not do so
// synchronously from time-critical paths.
type Hooks struct {
	// OnNotification fires when at least one assembled message is pending
	// and publishing is enabled. The receiver may drain via
	// PopNotificationToSend.
	OnNotification func()

	// OnKeepAlive fires when a keep-alive carrying the given future
	// sequence number has been handed to the publish engine.
	OnKeepAlive func(futureSequenceNumber uint32)

	// OnPerformUpdate fires at the start of every publish cycle, before
	// notification assembly, so owners can poke data sources.
	OnPerformUpdate func()

	// OnExpired fires when the life-time counter runs out, before
	// termination cleanup.
	OnExpired func()

	// OnTerminated fires once the subscription reaches CLOSED.
	OnTerminated func()

	// OnMonitoredItemCreated fires after a monitored item is registered
	// and before its requested monitoring mode is applied, so surrounding
	// code can wire sampling.
	OnMonitoredItemCreated func(item monitor.Item, itemToMonitor ua.ReadValueID)
}

// fireSet accumulates hook invocations during a locked section for delivery
// after the lock is released.
type fireSet struct {
	fns []func()
}

func (f *fireSet) add(fn func()) {
	if fn != nil {
		f.fns = append(f.fns, fn)
	}
}

func (f *fireSet) deliver() {
	for _, fn := range f.fns {
		fn()
	}
	f.fns = nil
}
