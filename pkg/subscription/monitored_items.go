package subscription

import (
	"github.com/uaserve/uaserve-go/pkg/address"
	"github.com/uaserve/uaserve-go/pkg/monitor"
	"github.com/uaserve/uaserve-go/pkg/ua"
)

// Sampling bounds supported by the server, in milliseconds.
const (
	minSamplingIntervalMS = 50.0
	maxSamplingIntervalMS = 60 * 1000.0
)

// Data encodings the server understands.
var supportedDataEncodings = map[string]bool{
	"Default Binary": true,
	"Default XML":    true,
}

// CreateMonitoredItem validates the request, negotiates sampling interval
// and queue size, constructs and registers the monitored item, and applies
// the requested monitoring mode. Validation failures are reported in the
// result's status code; the subscription stays healthy.
func (s *Subscription) CreateMonitoredItem(timestamps ua.TimestampsToReturn, req ua.MonitoredItemCreateRequest) ua.MonitoredItemCreateResult {
	var fires fireSet

	s.mu.Lock()
	result := s.createMonitoredItemLocked(&fires, timestamps, req)
	s.mu.Unlock()
	fires.deliver()

	// The monitoring mode is applied after the created hook so owners
	// observe the item before it starts reporting.
	if result.StatusCode.IsGood() {
		s.mu.Lock()
		item := s.items[result.MonitoredItemID]
		s.mu.Unlock()
		if item != nil {
			item.SetMonitoringMode(req.MonitoringMode)
		}
	}
	return result
}

func (s *Subscription) createMonitoredItemLocked(fires *fireSet, timestamps ua.TimestampsToReturn, req ua.MonitoredItemCreateRequest) ua.MonitoredItemCreateResult {
	if s.state == StateClosed {
		return ua.MonitoredItemCreateResult{StatusCode: ua.BadSubscriptionIdInvalid}
	}
	if s.space == nil {
		panic("subscription: monitored-item creation without an address space")
	}

	itemToMonitor := req.ItemToMonitor

	node := s.space.FindNode(itemToMonitor.NodeID)
	if node == nil {
		return ua.MonitoredItemCreateResult{StatusCode: ua.BadNodeIdUnknown}
	}
	if itemToMonitor.AttributeID == ua.AttributeValue && node.NodeClass() != ua.NodeClassVariable {
		return ua.MonitoredItemCreateResult{StatusCode: ua.BadAttributeIdInvalid}
	}
	if !itemToMonitor.AttributeID.IsValid() {
		return ua.MonitoredItemCreateResult{StatusCode: ua.BadAttributeIdInvalid}
	}
	if _, status := address.ParseNumericRange(itemToMonitor.IndexRange); status.IsBad() {
		return ua.MonitoredItemCreateResult{StatusCode: ua.BadIndexRangeInvalid}
	}
	if !itemToMonitor.DataEncoding.IsEmpty() {
		if itemToMonitor.AttributeID != ua.AttributeValue {
			return ua.MonitoredItemCreateResult{StatusCode: ua.BadDataEncodingInvalid}
		}
		if !supportedDataEncodings[itemToMonitor.DataEncoding.Name] {
			return ua.MonitoredItemCreateResult{StatusCode: ua.BadDataEncodingUnsupported}
		}
	}

	filterResult, status := s.validateFilterLocked(req.RequestedParameters.Filter, itemToMonitor, node)
	if status.IsBad() {
		return ua.MonitoredItemCreateResult{StatusCode: status}
	}

	s.itemIDCounter++
	id := s.itemIDCounter
	sampling := s.adjustSamplingIntervalLocked(req.RequestedParameters.SamplingInterval, node)

	var item monitor.Item
	if itemToMonitor.AttributeID == ua.AttributeEventNotifier {
		item = monitor.NewEventItem(monitor.EventItemConfig{
			ID:               id,
			ClientHandle:     req.RequestedParameters.ClientHandle,
			SamplingInterval: sampling,
			QueueSize:        req.RequestedParameters.QueueSize,
			DiscardOldest:    req.RequestedParameters.DiscardOldest,
			Node:             node,
		})
	} else {
		item = monitor.NewDataItem(monitor.DataItemConfig{
			ID:               id,
			ClientHandle:     req.RequestedParameters.ClientHandle,
			SamplingInterval: sampling,
			QueueSize:        req.RequestedParameters.QueueSize,
			DiscardOldest:    req.RequestedParameters.DiscardOldest,
			Timestamps:       timestamps,
			Node:             node,
		})
	}

	s.items[id] = item
	s.itemOrder = append(s.itemOrder, id)

	if fn := s.hooks.OnMonitoredItemCreated; fn != nil {
		fires.add(func() { fn(item, itemToMonitor) })
	}

	s.logger.Debug("monitored item created",
		"subscriptionId", s.id,
		"monitoredItemId", id,
		"nodeId", itemToMonitor.NodeID.Format(),
		"samplingInterval", sampling)

	return ua.MonitoredItemCreateResult{
		StatusCode:              ua.Good,
		MonitoredItemID:         id,
		RevisedSamplingInterval: sampling,
		RevisedQueueSize:        item.QueueSize(),
		FilterResult:            filterResult,
	}
}

// validateFilterLocked checks a monitoring filter against the target
// attribute and node, returning the filter result to echo to the client.
// An unknown filter variant is a programming error and panics.
func (s *Subscription) validateFilterLocked(filter ua.MonitoringFilter, itemToMonitor ua.ReadValueID, node address.Node) (ua.MonitoringFilterResult, ua.StatusCode) {
	if filter == nil {
		return nil, ua.Good
	}

	attr := itemToMonitor.AttributeID
	if attr != ua.AttributeValue && attr != ua.AttributeEventNotifier {
		return nil, ua.BadFilterNotAllowed
	}

	switch f := filter.(type) {
	case *ua.EventFilter:
		if attr != ua.AttributeEventNotifier {
			return nil, ua.BadFilterNotAllowed
		}
		results := make([]ua.StatusCode, len(f.SelectClauses))
		for i := range results {
			results[i] = ua.Good
		}
		return &ua.EventFilterResult{SelectClauseResults: results}, ua.Good

	case *ua.DataChangeFilter:
		if attr != ua.AttributeValue {
			return nil, ua.BadFilterNotAllowed
		}
		variable, ok := node.(address.Variable)
		if !ok {
			return nil, ua.BadNodeIdInvalid
		}
		dataType := s.space.FindDataType(variable.DataType())
		if dataType == nil || !dataType.IsSubtypeOf(address.DataTypeNumber) {
			return nil, ua.BadFilterNotAllowed
		}
		if f.DeadbandType == ua.DeadbandPercent {
			if f.DeadbandValue <= 0 || f.DeadbandValue >= 100 {
				return nil, ua.BadDeadbandFilterInvalid
			}
		}
		return nil, ua.Good

	case *ua.AggregateFilter:
		return &ua.AggregateFilterResult{}, ua.Good

	default:
		panic("subscription: unknown monitoring filter variant")
	}
}

// adjustSamplingIntervalLocked negotiates the revised sampling interval:
// negative requests adopt the publishing interval, zero requests adopt the
// node's MinimumSamplingInterval attribute, and the rest clamp into the
// supported range. The result is never faster than the node's own minimum.
func (s *Subscription) adjustSamplingIntervalLocked(requested float64, node address.Node) float64 {
	var interval float64
	switch {
	case requested < 0:
		interval = float64(s.publishingInterval.Milliseconds())
	case requested == 0:
		// 0 means exception-based reporting; the node's minimum decides
		// whether that is available.
		dv := node.ReadAttribute(ua.AttributeMinimumSamplingInterval)
		if dv.StatusCode.IsGood() {
			if v, ok := dv.Value.(float64); ok {
				interval = v
			}
		}
	case requested < minSamplingIntervalMS:
		interval = minSamplingIntervalMS
	case requested > maxSamplingIntervalMS:
		interval = maxSamplingIntervalMS
	default:
		interval = requested
	}

	if variable, ok := node.(address.Variable); ok {
		if nodeMin := variable.MinimumSamplingInterval(); nodeMin > interval {
			interval = nodeMin
		}
	}
	return interval
}

// RemoveMonitoredItem terminates and deletes a monitored item. The id
// counter is not rolled back.
func (s *Subscription) RemoveMonitoredItem(id uint32) ua.StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return ua.BadMonitoredItemIdInvalid
	}
	item.Terminate()
	delete(s.items, id)
	for i, ordered := range s.itemOrder {
		if ordered == id {
			s.itemOrder = append(s.itemOrder[:i], s.itemOrder[i+1:]...)
			break
		}
	}
	return ua.Good
}

// SetItemMonitoringMode switches the monitoring mode of one item.
func (s *Subscription) SetItemMonitoringMode(id uint32, mode ua.MonitoringMode) ua.StatusCode {
	if !mode.IsValid() {
		return ua.BadMonitoringModeInvalid
	}

	s.mu.Lock()
	item, ok := s.items[id]
	s.mu.Unlock()
	if !ok {
		return ua.BadMonitoredItemIdInvalid
	}
	item.SetMonitoringMode(mode)
	return ua.Good
}

// MonitoredItem returns a registered item by id, or nil.
func (s *Subscription) MonitoredItem(id uint32) monitor.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id]
}

// MonitoredItemCount returns the number of registered items.
func (s *Subscription) MonitoredItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// GetMonitoredItems returns the client and server handles of all registered
// items as parallel arrays, in registration order.
func (s *Subscription) GetMonitoredItems() (clientHandles, serverHandles []uint32, status ua.StatusCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clientHandles = make([]uint32, 0, len(s.itemOrder))
	serverHandles = make([]uint32, 0, len(s.itemOrder))
	for _, id := range s.itemOrder {
		item := s.items[id]
		clientHandles = append(clientHandles, item.ClientHandle())
		serverHandles = append(serverHandles, id)
	}
	return clientHandles, serverHandles, ua.Good
}
