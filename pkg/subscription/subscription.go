package subscription

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/uaserve/uaserve-go/pkg/address"
	"github.com/uaserve/uaserve-go/pkg/monitor"
	"github.com/uaserve/uaserve-go/pkg/publish"
	"github.com/uaserve/uaserve-go/pkg/ua"
)

// Subscription errors.
var (
	ErrClosed         = errors.New("subscription closed")
	ErrAlreadyStarted = errors.New("subscription timer already armed")
)

// Parameter bounds applied on creation and modification.
const (
	MinPublishingInterval = 100 * time.Millisecond
	MaxPublishingInterval = 30 * 24 * time.Hour

	MinKeepAliveCount = 2
	MaxKeepAliveCount = 12000
)

// Parameters are the client-requested subscription settings. They are
// clamped into the supported ranges on application.
type Parameters struct {
	// PublishingInterval is the nominal publish cycle period.
	PublishingInterval time.Duration

	// MaxKeepAliveCount is the number of consecutive empty cycles after
	// which an empty keep-alive message is sent.
	MaxKeepAliveCount uint32

	// LifeTimeCount is the number of consecutive cycles without any
	// outbound response after which the subscription self-terminates. It
	// is raised to at least three times MaxKeepAliveCount.
	LifeTimeCount uint32

	// MaxNotificationsPerPublish caps the notifications carried by one
	// message. 0 means unlimited.
	MaxNotificationsPerPublish uint32

	// Priority orders subscriptions competing for publish requests.
	Priority uint8
}

// Config assembles a subscription's identity and collaborators.
type Config struct {
	// ID is the subscription id, assigned by the session layer.
	ID uint32

	// SessionID identifies the owning session in diagnostics.
	SessionID uuid.UUID

	// Parameters are the requested settings, clamped on construction.
	Parameters Parameters

	// PublishingEnabled is the initial publishing mode.
	PublishingEnabled bool

	// Engine is the shared publish-request capability. Required.
	Engine publish.Engine

	// Space is the address space monitored items are validated against.
	// Required for monitored-item creation.
	Space address.Space

	// Registry receives the subscription when its timer starts. Optional.
	Registry Registry

	// Hooks is the observable event surface. Optional.
	Hooks Hooks

	// Logger receives operational log records. Defaults to slog.Default.
	Logger *slog.Logger
}

// Subscription is the server-side state machine driving periodic publishing
// of notifications from monitored items to one client.
//
// Every public operation executes to completion under the subscription's
// lock; the publish timer callback is the only source of time-driven state
// transitions. Hooks are delivered after the lock is released.
type Subscription struct {
	mu sync.Mutex

	id        uint32
	sessionID uuid.UUID
	priority  uint8

	publishingInterval         time.Duration
	maxKeepAliveCount          uint32
	lifeTimeCount              uint32
	maxNotificationsPerPublish uint32
	publishingEnabled          bool

	state                State
	publishIntervalCount uint64
	keepAliveCounter     uint32
	lifeTimeCounter      uint32

	items         map[uint32]monitor.Item
	itemOrder     []uint32
	itemIDCounter uint32

	pending pendingQueue
	sent    retransmissionQueue
	seq     sequenceGenerator

	engine   publish.Engine
	space    address.Space
	registry Registry
	hooks    Hooks
	logger   *slog.Logger

	ticker *time.Ticker
	done   chan struct{}

	// Diagnostics counters, owned by the operations that produce the
	// events they count.
	modifyCount                  uint32
	enableCount                  uint32
	disableCount                 uint32
	republishRequestCount        uint32
	republishMessageCount        uint32
	notificationsCount           uint32
	publishRequestCount          uint32
	dataChangeNotificationsCount uint32
	eventNotificationsCount      uint32
}

// New creates a subscription in the CREATING state. Start arms the publish
// timer and moves it to NORMAL.
func New(cfg Config) *Subscription {
	if cfg.Engine == nil {
		panic("subscription: nil publish engine")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = nopRegistry{}
	}

	s := &Subscription{
		id:        cfg.ID,
		sessionID: cfg.SessionID,
		state:     StateCreating,

		publishingEnabled: cfg.PublishingEnabled,

		items:    make(map[uint32]monitor.Item),
		seq:      newSequenceGenerator(),
		engine:   cfg.Engine,
		space:    cfg.Space,
		registry: registry,
		hooks:    cfg.Hooks,
		logger:   logger,
	}
	s.applyParameters(cfg.Parameters)
	return s
}

// applyParameters clamps and installs the requested settings. Lock held (or
// construction).
func (s *Subscription) applyParameters(p Parameters) {
	s.publishingInterval = clampDuration(p.PublishingInterval, MinPublishingInterval, MaxPublishingInterval)

	s.maxKeepAliveCount = p.MaxKeepAliveCount
	if s.maxKeepAliveCount < MinKeepAliveCount {
		s.maxKeepAliveCount = MinKeepAliveCount
	}
	if s.maxKeepAliveCount > MaxKeepAliveCount {
		s.maxKeepAliveCount = MaxKeepAliveCount
	}

	s.lifeTimeCount = p.LifeTimeCount
	if min := 3 * s.maxKeepAliveCount; s.lifeTimeCount < min {
		s.lifeTimeCount = min
	}

	s.maxNotificationsPerPublish = p.MaxNotificationsPerPublish
	s.priority = p.Priority
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

// ID returns the subscription id.
func (s *Subscription) ID() uint32 {
	return s.id
}

// Priority returns the subscription priority.
func (s *Subscription) Priority() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.priority
}

// State returns the current lifecycle state.
func (s *Subscription) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PublishingInterval returns the effective publish cycle period.
func (s *Subscription) PublishingInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publishingInterval
}

// PublishingEnabled returns the current publishing mode.
func (s *Subscription) PublishingEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publishingEnabled
}

// TimeToExpiration returns the time remaining before life-time expiry at the
// current counter values.
func (s *Subscription) TimeToExpiration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	remaining := int64(s.lifeTimeCount) - int64(s.lifeTimeCounter)
	if remaining < 0 {
		remaining = 0
	}
	return time.Duration(remaining) * s.publishingInterval
}

// Start arms the publish timer, registers the subscription, and moves it to
// NORMAL. The keep-alive counter starts saturated so an otherwise empty
// first cycle announces the subscription with a keep-alive.
//
// Starting twice is a programming error and panics; starting a closed
// subscription returns ErrClosed.
func (s *Subscription) Start() error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.ticker != nil {
		s.mu.Unlock()
		panic(ErrAlreadyStarted)
	}

	s.state = StateNormal
	s.keepAliveCounter = s.maxKeepAliveCount
	s.lifeTimeCounter = 0
	s.armTimerLocked()
	s.mu.Unlock()

	s.registry.Register(s)
	s.logger.Debug("subscription started",
		"subscriptionId", s.id,
		"publishingInterval", s.publishingInterval)
	return nil
}

// armTimerLocked starts the ticker goroutine at the current publishing
// interval. Lock held.
func (s *Subscription) armTimerLocked() {
	s.ticker = time.NewTicker(s.publishingInterval)
	s.done = make(chan struct{})
	go s.run(s.ticker, s.done)
}

// stopTimerLocked signals the ticker goroutine to exit. Lock held. The
// goroutine may deliver one already-fired tick afterwards; Tick
// short-circuits on CLOSED and tolerates a stale cadence otherwise.
func (s *Subscription) stopTimerLocked() {
	if s.ticker == nil {
		return
	}
	close(s.done)
	s.ticker = nil
	s.done = nil
}

func (s *Subscription) run(ticker *time.Ticker, done chan struct{}) {
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick executes one publish cycle. It is normally driven by the internal
// timer; owners embedding the subscription in their own scheduler may drive
// it directly.
func (s *Subscription) Tick() {
	var fires fireSet

	s.mu.Lock()
	if s.state == StateClosed || s.state == StateCreating {
		s.mu.Unlock()
		return
	}

	s.publishIntervalCount++
	if s.lifeTimeCounter < s.lifeTimeCount {
		s.lifeTimeCounter++
	}

	s.engine.OnTick()
	fires.add(s.hooks.OnPerformUpdate)

	if s.lifeTimeCounter >= s.lifeTimeCount {
		fires.add(s.hooks.OnExpired)
		s.closeLocked(&fires)
		s.mu.Unlock()
		fires.deliver()
		return
	}

	// Assemble only when a publish request is parked, so no sequence
	// number is burned on a message nobody can receive.
	if s.engine.PendingPublishRequestCount() > 0 {
		s.collectNotificationDataLocked()
	}

	if s.publishingEnabled && s.pending.len() > 0 {
		fires.add(s.hooks.OnNotification)
		if s.engine.PendingPublishRequestCount() > 0 {
			for s.pending.len() > 0 && s.engine.PendingPublishRequestCount() > 0 {
				s.publishOneLocked()
			}
			s.state = StateNormal
		} else {
			s.state = StateLate
		}
	} else {
		s.keepAliveCycleLocked(&fires)
	}

	s.mu.Unlock()
	fires.deliver()
}

// keepAliveCycleLocked handles a cycle that produced no notification:
// advance the keep-alive counter and, once it saturates, try to emit a
// keep-alive. Lock held.
func (s *Subscription) keepAliveCycleLocked(fires *fireSet) {
	if s.keepAliveCounter < s.maxKeepAliveCount {
		s.keepAliveCounter++
	}
	if s.keepAliveCounter < s.maxKeepAliveCount {
		return
	}

	if s.sendKeepAliveLocked(fires) {
		s.state = StateKeepAlive
	} else {
		// No parked request for the keep-alive either: the client is
		// behind, wait for the next publish request.
		s.state = StateLate
	}
}

// sendKeepAliveLocked hands a keep-alive to the engine. On success both
// counters reset. Lock held.
func (s *Subscription) sendKeepAliveLocked(fires *fireSet) bool {
	future := s.seq.future()
	if !s.engine.SendKeepAliveResponse(s.id, future) {
		return false
	}

	s.keepAliveCounter = 0
	s.lifeTimeCounter = 0
	if fn := s.hooks.OnKeepAlive; fn != nil {
		fires.add(func() { fn(future) })
	}
	s.logger.Debug("keep-alive sent", "subscriptionId", s.id, "futureSequenceNumber", future)
	return true
}

// appendSentLocked retains a published record for retransmission. When the
// queue is at capacity, aged records go first; the size bound then evicts
// the oldest regardless of age. Lock held.
func (s *Subscription) appendSentLocked(rec *NotificationRecord) {
	if s.sent.len() >= maxRetransmissionQueueSize {
		s.sent.dropAged(s.publishIntervalCount, s.maxKeepAliveCount)
	}
	s.sent.append(rec)
}

// publishOneLocked pops the head pending record, moves it into the
// retransmission queue, resets both counters, and hands the message to the
// engine. Lock held; the caller checked a request is available.
func (s *Subscription) publishOneLocked() {
	rec := s.pending.pop()
	if rec == nil {
		return
	}
	s.appendSentLocked(rec)
	s.keepAliveCounter = 0
	s.lifeTimeCounter = 0
	s.publishRequestCount++
	s.notificationsCount++
	s.countNotificationDataLocked(rec)

	s.engine.SendNotificationMessage(publish.OutgoingMessage{
		SubscriptionID:           s.id,
		Message:                  rec.Message(),
		AvailableSequenceNumbers: s.availableSequenceNumbersLocked(),
		MoreNotifications:        s.pending.len() > 0,
	})
}

// countNotificationDataLocked bumps the per-variant diagnostics counters.
// A record may carry both a data-change and an event entry; each inner
// variant counts independently.
func (s *Subscription) countNotificationDataLocked(rec *NotificationRecord) {
	for _, data := range rec.NotificationData {
		switch data.(type) {
		case *ua.DataChangeNotification:
			s.dataChangeNotificationsCount++
		case *ua.EventNotificationList:
			s.eventNotificationsCount++
		case *ua.StatusChangeNotification:
			// Status changes are not client data.
		default:
			panic("subscription: unknown notification data variant")
		}
	}
}

// availableSequenceNumbersLocked returns the sequence numbers in the
// retransmission queue followed by those still pending. Lock held.
func (s *Subscription) availableSequenceNumbersLocked() []uint32 {
	return append(s.sent.sequenceNumbers(), s.pending.sequenceNumbers()...)
}

// AvailableSequenceNumbers returns the sequence numbers a client may still
// acknowledge or republish, retransmission queue first.
func (s *Subscription) AvailableSequenceNumbers() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.availableSequenceNumbersLocked()
}

// ProcessPublishRequest is called by the owner when a client publish request
// arrives for this subscription's session. A LATE subscription emits the
// response it owes, a notification when one is pending or a keep-alive
// otherwise, and returns to NORMAL.
func (s *Subscription) ProcessPublishRequest() {
	var fires fireSet

	s.mu.Lock()
	if s.state != StateLate {
		s.mu.Unlock()
		return
	}

	if s.publishingEnabled && s.pending.len() > 0 && s.engine.PendingPublishRequestCount() > 0 {
		s.publishOneLocked()
		s.state = StateNormal
	} else if s.sendKeepAliveLocked(&fires) {
		s.state = StateNormal
	}
	s.mu.Unlock()
	fires.deliver()
}

// PopNotificationToSend removes and returns the head pending record, moving
// it into the retransmission queue and resetting both counters. Returns nil
// when nothing is pending. Owners draining via the OnNotification hook use
// this instead of the engine path.
func (s *Subscription) PopNotificationToSend() *NotificationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.pending.pop()
	if rec == nil {
		return nil
	}
	s.appendSentLocked(rec)
	s.keepAliveCounter = 0
	s.lifeTimeCounter = 0
	s.notificationsCount++
	s.countNotificationDataLocked(rec)
	return rec
}

// Acknowledge removes the sent message with the given sequence number from
// the retransmission queue. A successful acknowledgement counts as client
// liveness and resets both counters. Unknown sequence numbers return
// BadSequenceNumberUnknown with no side effect.
func (s *Subscription) Acknowledge(sequenceNumber uint32) ua.StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sent.acknowledge(sequenceNumber) {
		return ua.BadSequenceNumberUnknown
	}
	s.keepAliveCounter = 0
	s.lifeTimeCounter = 0
	return ua.Good
}

// Republish returns the retained notification message with the given
// sequence number for retransmission. A successful lookup counts as client
// liveness and resets both counters.
func (s *Subscription) Republish(retransmitSequenceNumber uint32) (ua.NotificationMessage, ua.StatusCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.republishRequestCount++
	rec := s.sent.lookup(retransmitSequenceNumber)
	if rec == nil {
		return ua.NotificationMessage{}, ua.BadSequenceNumberUnknown
	}
	s.republishMessageCount++
	s.keepAliveCounter = 0
	s.lifeTimeCounter = 0
	return rec.Message(), ua.Good
}

// SetPublishingMode enables or disables publishing and bumps the
// corresponding diagnostics counter.
func (s *Subscription) SetPublishingMode(enabled bool) ua.StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.publishingEnabled = enabled
	if enabled {
		s.enableCount++
	} else {
		s.disableCount++
	}
	return ua.Good
}

// Modify clamps and applies new parameters, resets both counters, and
// restarts the publish timer at the new interval.
func (s *Subscription) Modify(p Parameters) ua.StatusCode {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ua.BadSubscriptionIdInvalid
	}

	s.applyParameters(p)
	s.keepAliveCounter = 0
	s.lifeTimeCounter = 0
	s.modifyCount++

	if s.ticker != nil {
		s.stopTimerLocked()
		s.armTimerLocked()
	}
	s.mu.Unlock()

	s.logger.Debug("subscription modified",
		"subscriptionId", s.id,
		"publishingInterval", s.publishingInterval,
		"maxKeepAliveCount", s.maxKeepAliveCount,
		"lifeTimeCount", s.lifeTimeCount)
	return ua.Good
}

// Terminate closes the subscription: the timer stops, every monitored item
// is terminated, and a final StatusChange(BadTimeout) record is enqueued
// best-effort for a parked publish request to pick up. Terminate is
// idempotent.
func (s *Subscription) Terminate() {
	var fires fireSet

	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.closeLocked(&fires)
	s.mu.Unlock()
	fires.deliver()
}

// closeLocked is the shared termination path for Terminate and life-time
// expiry. Lock held.
func (s *Subscription) closeLocked(fires *fireSet) {
	s.stopTimerLocked()

	// Final status change to the client. Best-effort: if no publish
	// request picks it up now, it is discarded with the subscription.
	rec := &NotificationRecord{
		SequenceNumber: s.seq.next(),
		PublishTime:    time.Now(),
		NotificationData: []ua.NotificationData{
			&ua.StatusChangeNotification{Status: ua.BadTimeout},
		},
		StartTick: s.publishIntervalCount,
	}
	s.pending.push(rec)
	if s.publishingEnabled && s.engine.PendingPublishRequestCount() > 0 {
		s.publishOneLocked()
	}

	for _, item := range s.items {
		item.Terminate()
	}
	s.items = make(map[uint32]monitor.Item)
	s.itemOrder = nil

	s.state = StateClosed
	fires.add(func() { s.registry.Unregister(s.id) })
	fires.add(s.hooks.OnTerminated)

	s.logger.Debug("subscription closed", "subscriptionId", s.id)
}
