package main

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/uaserve/uaserve-go/pkg/address"
	"github.com/uaserve/uaserve-go/pkg/eventlog"
	"github.com/uaserve/uaserve-go/pkg/monitor"
	"github.com/uaserve/uaserve-go/pkg/publish"
	"github.com/uaserve/uaserve-go/pkg/subscription"
	"github.com/uaserve/uaserve-go/pkg/ua"
)

// simulation owns the engine, the subscription, and the data feed.
type simulation struct {
	logger  *slog.Logger
	capture eventlog.Logger
	cfg     simConfig

	engine *publish.QueueEngine
	sub    *subscription.Subscription
	nodes  []*address.VariableNode

	mu    sync.Mutex
	items []*monitor.DataItem

	done chan struct{}
	wg   sync.WaitGroup
}

func newSimulation(logger *slog.Logger, capture eventlog.Logger, cfg simConfig) *simulation {
	sim := &simulation{
		logger:  logger,
		capture: capture,
		cfg:     cfg,
		done:    make(chan struct{}),
	}

	space, nodes := buildSpace()
	sim.nodes = nodes

	sim.engine = publish.NewQueueEngine(sim.onResponse)

	sim.sub = subscription.New(subscription.Config{
		ID:        1,
		SessionID: cfg.SessionID,
		Parameters: subscription.Parameters{
			PublishingInterval: cfg.PublishingInterval,
			MaxKeepAliveCount:  cfg.MaxKeepAliveCount,
			LifeTimeCount:      cfg.LifeTimeCount,
		},
		PublishingEnabled: true,
		Engine:            sim.engine,
		Space:             space,
		Registry:          subscription.NewMapRegistry(),
		Hooks: subscription.Hooks{
			OnMonitoredItemCreated: sim.onItemCreated,
			OnKeepAlive:            sim.onKeepAlive,
			OnExpired:              func() { logger.Warn("subscription life-time expired") },
			OnTerminated:           func() { logger.Info("subscription terminated") },
		},
		Logger: logger,
	})

	return sim
}

// start arms the subscription timer, registers one monitored item per
// simulated variable, and launches the data feed.
func (s *simulation) start() {
	if err := s.sub.Start(); err != nil {
		s.logger.Error("subscription start failed", "error", err)
		return
	}

	for i, node := range s.nodes {
		result := s.sub.CreateMonitoredItem(ua.TimestampsBoth, ua.MonitoredItemCreateRequest{
			ItemToMonitor:  ua.ReadValueID{NodeID: node.NodeID(), AttributeID: ua.AttributeValue},
			MonitoringMode: ua.MonitoringModeReporting,
			RequestedParameters: ua.MonitoringParameters{
				ClientHandle:     uint32(i + 1),
				SamplingInterval: 500,
				QueueSize:        20,
				DiscardOldest:    true,
			},
		})
		if result.StatusCode.IsBad() {
			s.logger.Error("monitored item creation failed",
				"nodeId", node.NodeID().Format(), "status", result.StatusCode)
		}
	}

	s.wg.Add(1)
	go s.feed()
}

func (s *simulation) stop() {
	close(s.done)
	s.wg.Wait()
	s.sub.Terminate()
}

// onItemCreated tracks data items so the feed can enqueue samples.
func (s *simulation) onItemCreated(item monitor.Item, itemToMonitor ua.ReadValueID) {
	dataItem, ok := item.(*monitor.DataItem)
	if !ok {
		return
	}
	s.mu.Lock()
	s.items = append(s.items, dataItem)
	s.mu.Unlock()

	s.capture.Log(eventlog.Event{
		Timestamp:      time.Now(),
		SessionID:      s.cfg.SessionID.String(),
		SubscriptionID: s.sub.ID(),
		Kind:           eventlog.KindItemCreated,
		Item: &eventlog.ItemEvent{
			MonitoredItemID: item.ID(),
			ClientHandle:    item.ClientHandle(),
			NodeID:          itemToMonitor.NodeID.Format(),
		},
	})
}

func (s *simulation) onKeepAlive(future uint32) {
	s.capture.Log(eventlog.Event{
		Timestamp:      time.Now(),
		SessionID:      s.cfg.SessionID.String(),
		SubscriptionID: s.sub.ID(),
		Kind:           eventlog.KindKeepAliveSent,
		KeepAlive:      &eventlog.KeepAliveEvent{FutureSequenceNumber: future},
	})
}

// onResponse receives completed publish responses from the engine.
func (s *simulation) onResponse(resp publish.Response) {
	if resp.KeepAlive {
		s.logger.Info("keep-alive",
			"subscriptionId", resp.SubscriptionID,
			"futureSequenceNumber", resp.Message.SequenceNumber)
		return
	}

	var dataChanges, events int
	for _, data := range resp.Message.NotificationData {
		switch payload := data.(type) {
		case *ua.DataChangeNotification:
			dataChanges = len(payload.MonitoredItems)
		case *ua.EventNotificationList:
			events = len(payload.Events)
		case *ua.StatusChangeNotification:
			s.logger.Warn("status change", "status", payload.Status)
		}
	}

	s.logger.Info("notification",
		"subscriptionId", resp.SubscriptionID,
		"sequenceNumber", resp.Message.SequenceNumber,
		"dataChanges", dataChanges,
		"events", events,
		"more", resp.MoreNotifications)

	s.capture.Log(eventlog.Event{
		Timestamp:      time.Now(),
		SessionID:      s.cfg.SessionID.String(),
		SubscriptionID: resp.SubscriptionID,
		Kind:           eventlog.KindNotificationSent,
		Notification: &eventlog.NotificationEvent{
			SequenceNumber:    resp.Message.SequenceNumber,
			DataChangeCount:   dataChanges,
			EventCount:        events,
			MoreNotifications: resp.MoreNotifications,
		},
	})
}

// feed drives the simulated process: sine waves with distinct phases per
// variable, sampled into both the address space and the monitored items.
func (s *simulation) feed() {
	defer s.wg.Done()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			elapsed := now.Sub(start).Seconds()

			s.mu.Lock()
			items := make([]*monitor.DataItem, len(s.items))
			copy(items, s.items)
			s.mu.Unlock()

			for i, node := range s.nodes {
				value := 50 + 25*math.Sin(elapsed/10+float64(i)*2)
				node.SetValue(value)
				if i < len(items) {
					items[i].Enqueue(node.Value())
				}
			}
		}
	}
}
