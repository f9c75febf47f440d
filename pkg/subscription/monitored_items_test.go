package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uaserve/uaserve-go/pkg/address"
	"github.com/uaserve/uaserve-go/pkg/monitor"
	"github.com/uaserve/uaserve-go/pkg/ua"
)

func createRequest(nodeID ua.NodeID, attr ua.AttributeID) ua.MonitoredItemCreateRequest {
	return ua.MonitoredItemCreateRequest{
		ItemToMonitor:  ua.ReadValueID{NodeID: nodeID, AttributeID: attr},
		MonitoringMode: ua.MonitoringModeReporting,
		RequestedParameters: ua.MonitoringParameters{
			ClientHandle:     1,
			SamplingInterval: 100,
			QueueSize:        10,
			DiscardOldest:    true,
		},
	}
}

func TestCreateMonitoredItemValidation(t *testing.T) {
	tests := []struct {
		name string
		req  func() ua.MonitoredItemCreateRequest
		want ua.StatusCode
	}{
		{
			name: "unknown node",
			req: func() ua.MonitoredItemCreateRequest {
				return createRequest(ua.NewStringNodeID(1, "Missing"), ua.AttributeValue)
			},
			want: ua.BadNodeIdUnknown,
		},
		{
			name: "value attribute on non-variable",
			req: func() ua.MonitoredItemCreateRequest {
				return createRequest(deviceNodeID, ua.AttributeValue)
			},
			want: ua.BadAttributeIdInvalid,
		},
		{
			name: "invalid attribute id",
			req: func() ua.MonitoredItemCreateRequest {
				return createRequest(tempNodeID, ua.AttributeInvalid)
			},
			want: ua.BadAttributeIdInvalid,
		},
		{
			name: "malformed index range",
			req: func() ua.MonitoredItemCreateRequest {
				req := createRequest(tempNodeID, ua.AttributeValue)
				req.ItemToMonitor.IndexRange = "5:2"
				return req
			},
			want: ua.BadIndexRangeInvalid,
		},
		{
			name: "data encoding on non-value attribute",
			req: func() ua.MonitoredItemCreateRequest {
				req := createRequest(tempNodeID, ua.AttributeBrowseName)
				req.ItemToMonitor.DataEncoding = ua.QualifiedName{Name: "Default Binary"}
				return req
			},
			want: ua.BadDataEncodingInvalid,
		},
		{
			name: "unsupported data encoding",
			req: func() ua.MonitoredItemCreateRequest {
				req := createRequest(tempNodeID, ua.AttributeValue)
				req.ItemToMonitor.DataEncoding = ua.QualifiedName{Name: "Default JSON"}
				return req
			},
			want: ua.BadDataEncodingUnsupported,
		},
		{
			name: "valid value item",
			req: func() ua.MonitoredItemCreateRequest {
				return createRequest(tempNodeID, ua.AttributeValue)
			},
			want: ua.Good,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSubscription(t, Parameters{
				PublishingInterval: 100 * time.Millisecond,
				MaxKeepAliveCount:  3,
				LifeTimeCount:      9,
			}, true)

			result := s.CreateMonitoredItem(ua.TimestampsBoth, tt.req())
			assert.Equal(t, tt.want, result.StatusCode)
		})
	}
}

func TestFilterValidation(t *testing.T) {
	numberFilter := &ua.DataChangeFilter{
		Trigger:      ua.TriggerStatusValue,
		DeadbandType: ua.DeadbandAbsolute,
	}

	tests := []struct {
		name   string
		nodeID ua.NodeID
		attr   ua.AttributeID
		filter ua.MonitoringFilter
		want   ua.StatusCode
	}{
		{
			name:   "event filter on value attribute",
			nodeID: tempNodeID,
			attr:   ua.AttributeValue,
			filter: &ua.EventFilter{},
			want:   ua.BadFilterNotAllowed,
		},
		{
			name:   "data change filter on event notifier",
			nodeID: deviceNodeID,
			attr:   ua.AttributeEventNotifier,
			filter: numberFilter,
			want:   ua.BadFilterNotAllowed,
		},
		{
			name:   "filter on browse name attribute",
			nodeID: tempNodeID,
			attr:   ua.AttributeBrowseName,
			filter: numberFilter,
			want:   ua.BadFilterNotAllowed,
		},
		{
			name:   "data change filter on non-numeric variable",
			nodeID: labelNodeID,
			attr:   ua.AttributeValue,
			filter: numberFilter,
			want:   ua.BadFilterNotAllowed,
		},
		{
			name:   "percent deadband out of range",
			nodeID: tempNodeID,
			attr:   ua.AttributeValue,
			filter: &ua.DataChangeFilter{DeadbandType: ua.DeadbandPercent, DeadbandValue: 100},
			want:   ua.BadDeadbandFilterInvalid,
		},
		{
			name:   "percent deadband zero",
			nodeID: tempNodeID,
			attr:   ua.AttributeValue,
			filter: &ua.DataChangeFilter{DeadbandType: ua.DeadbandPercent, DeadbandValue: 0},
			want:   ua.BadDeadbandFilterInvalid,
		},
		{
			name:   "percent deadband valid",
			nodeID: tempNodeID,
			attr:   ua.AttributeValue,
			filter: &ua.DataChangeFilter{DeadbandType: ua.DeadbandPercent, DeadbandValue: 10},
			want:   ua.Good,
		},
		{
			name:   "event filter on event notifier",
			nodeID: deviceNodeID,
			attr:   ua.AttributeEventNotifier,
			filter: &ua.EventFilter{SelectClauses: make([]ua.SimpleAttributeOperand, 3)},
			want:   ua.Good,
		},
		{
			name:   "aggregate filter on value",
			nodeID: tempNodeID,
			attr:   ua.AttributeValue,
			filter: &ua.AggregateFilter{},
			want:   ua.Good,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSubscription(t, Parameters{
				PublishingInterval: 100 * time.Millisecond,
				MaxKeepAliveCount:  3,
				LifeTimeCount:      9,
			}, true)

			req := createRequest(tt.nodeID, tt.attr)
			req.RequestedParameters.Filter = tt.filter
			result := s.CreateMonitoredItem(ua.TimestampsBoth, req)
			assert.Equal(t, tt.want, result.StatusCode)
		})
	}
}

func TestEventFilterResultPerClause(t *testing.T) {
	s, _ := newTestSubscription(t, Parameters{
		PublishingInterval: 100 * time.Millisecond,
		MaxKeepAliveCount:  3,
		LifeTimeCount:      9,
	}, true)

	req := createRequest(deviceNodeID, ua.AttributeEventNotifier)
	req.RequestedParameters.Filter = &ua.EventFilter{
		SelectClauses: make([]ua.SimpleAttributeOperand, 2),
	}
	result := s.CreateMonitoredItem(ua.TimestampsBoth, req)
	require.Equal(t, ua.Good, result.StatusCode)

	filterResult, ok := result.FilterResult.(*ua.EventFilterResult)
	require.True(t, ok, "event filter yields an event filter result")
	require.Len(t, filterResult.SelectClauseResults, 2)
	for _, status := range filterResult.SelectClauseResults {
		assert.Equal(t, ua.Good, status)
	}

	item := s.MonitoredItem(result.MonitoredItemID)
	_, isEvent := item.(*monitor.EventItem)
	assert.True(t, isEvent, "event notifier attribute yields an event item")
}

func TestSamplingIntervalNegotiation(t *testing.T) {
	// A node that advertises a minimum sampling interval.
	slowNodeID := ua.NewStringNodeID(1, "Slow")

	tests := []struct {
		name      string
		requested float64
		nodeMin   float64
		want      float64
	}{
		{"negative adopts publishing interval", -1, -1, 200},
		{"zero adopts node minimum", 0, 500, 500},
		{"zero with exception-based node", 0, 0, 0},
		{"below supported floor", 10, -1, minSamplingIntervalMS},
		{"above supported ceiling", 10 * 60 * 1000, -1, maxSamplingIntervalMS},
		{"in range", 250, -1, 250},
		{"raised to node minimum", 100, 400, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSubscription(t, Parameters{
				PublishingInterval: 200 * time.Millisecond,
				MaxKeepAliveCount:  3,
				LifeTimeCount:      9,
			}, true)

			s.space.(*address.MemorySpace).AddNode(address.NewVariableNode(slowNodeID,
				ua.QualifiedName{NamespaceIndex: 1, Name: "Slow"}, address.DataTypeDouble, tt.nodeMin))

			req := createRequest(slowNodeID, ua.AttributeValue)
			req.RequestedParameters.SamplingInterval = tt.requested
			result := s.CreateMonitoredItem(ua.TimestampsBoth, req)
			require.Equal(t, ua.Good, result.StatusCode)
			assert.Equal(t, tt.want, result.RevisedSamplingInterval)
		})
	}
}

func TestCreateRemoveMonitoredItem(t *testing.T) {
	s, _ := newTestSubscription(t, Parameters{
		PublishingInterval: 100 * time.Millisecond,
		MaxKeepAliveCount:  3,
		LifeTimeCount:      9,
	}, true)

	result := s.CreateMonitoredItem(ua.TimestampsBoth, createRequest(tempNodeID, ua.AttributeValue))
	require.Equal(t, ua.Good, result.StatusCode)
	require.Equal(t, uint32(1), result.MonitoredItemID)
	require.Equal(t, 1, s.MonitoredItemCount())

	assert.Equal(t, ua.BadMonitoredItemIdInvalid, s.RemoveMonitoredItem(99))
	assert.Equal(t, ua.Good, s.RemoveMonitoredItem(1))
	assert.Equal(t, 0, s.MonitoredItemCount())

	// The id counter never rolls back.
	result = s.CreateMonitoredItem(ua.TimestampsBoth, createRequest(tempNodeID, ua.AttributeValue))
	require.Equal(t, ua.Good, result.StatusCode)
	assert.Equal(t, uint32(2), result.MonitoredItemID)
}

func TestMonitoredItemCreatedHookOrder(t *testing.T) {
	s, _ := newTestSubscription(t, Parameters{
		PublishingInterval: 100 * time.Millisecond,
		MaxKeepAliveCount:  3,
		LifeTimeCount:      9,
	}, true)

	var observedMode ua.MonitoringMode
	s.hooks.OnMonitoredItemCreated = func(item monitor.Item, itemToMonitor ua.ReadValueID) {
		// The hook sees the item before the requested mode is applied.
		observedMode = item.MonitoringMode()
	}

	result := s.CreateMonitoredItem(ua.TimestampsBoth, createRequest(tempNodeID, ua.AttributeValue))
	require.Equal(t, ua.Good, result.StatusCode)

	assert.Equal(t, ua.MonitoringModeDisabled, observedMode)
	assert.Equal(t, ua.MonitoringModeReporting, s.MonitoredItem(result.MonitoredItemID).MonitoringMode())
}

func TestGetMonitoredItems(t *testing.T) {
	s, _ := newTestSubscription(t, Parameters{
		PublishingInterval: 100 * time.Millisecond,
		MaxKeepAliveCount:  3,
		LifeTimeCount:      9,
	}, true)

	for i := uint32(1); i <= 3; i++ {
		req := createRequest(tempNodeID, ua.AttributeValue)
		req.RequestedParameters.ClientHandle = 100 + i
		result := s.CreateMonitoredItem(ua.TimestampsBoth, req)
		require.Equal(t, ua.Good, result.StatusCode)
	}

	clientHandles, serverHandles, status := s.GetMonitoredItems()
	require.Equal(t, ua.Good, status)
	assert.Equal(t, []uint32{101, 102, 103}, clientHandles)
	assert.Equal(t, []uint32{1, 2, 3}, serverHandles)
}

func TestSetItemMonitoringMode(t *testing.T) {
	s, _ := newTestSubscription(t, Parameters{
		PublishingInterval: 100 * time.Millisecond,
		MaxKeepAliveCount:  3,
		LifeTimeCount:      9,
	}, true)

	result := s.CreateMonitoredItem(ua.TimestampsBoth, createRequest(tempNodeID, ua.AttributeValue))
	require.Equal(t, ua.Good, result.StatusCode)

	assert.Equal(t, ua.BadMonitoredItemIdInvalid, s.SetItemMonitoringMode(99, ua.MonitoringModeSampling))
	assert.Equal(t, ua.BadMonitoringModeInvalid, s.SetItemMonitoringMode(result.MonitoredItemID, ua.MonitoringMode(7)))
	assert.Equal(t, ua.Good, s.SetItemMonitoringMode(result.MonitoredItemID, ua.MonitoringModeDisabled))

	diag := s.Diagnostics()
	assert.Equal(t, uint32(1), diag.DisabledMonitoredItemCount)
}
