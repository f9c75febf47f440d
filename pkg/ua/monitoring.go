package ua

// DeadbandType selects the deadband applied by a DataChangeFilter.
type DeadbandType uint32

// Deadband types.
const (
	DeadbandNone     DeadbandType = 0
	DeadbandAbsolute DeadbandType = 1
	DeadbandPercent  DeadbandType = 2
)

// String returns the deadband type name.
func (d DeadbandType) String() string {
	switch d {
	case DeadbandNone:
		return "None"
	case DeadbandAbsolute:
		return "Absolute"
	case DeadbandPercent:
		return "Percent"
	default:
		return "Unknown"
	}
}

// DataChangeTrigger selects which changes a DataChangeFilter reports.
type DataChangeTrigger uint32

// Data change triggers.
const (
	TriggerStatus               DataChangeTrigger = 0
	TriggerStatusValue          DataChangeTrigger = 1
	TriggerStatusValueTimestamp DataChangeTrigger = 2
)

// MonitoringFilter is implemented by the three filter variants accepted on
// monitored-item creation.
type MonitoringFilter interface {
	monitoringFilter()
}

// DataChangeFilter reports value changes subject to a trigger and deadband.
// Only valid on the Value attribute.
type DataChangeFilter struct {
	Trigger       DataChangeTrigger
	DeadbandType  DeadbandType
	DeadbandValue float64
}

func (*DataChangeFilter) monitoringFilter() {}

// SimpleAttributeOperand selects one event field in an EventFilter select
// clause.
type SimpleAttributeOperand struct {
	TypeDefinitionID NodeID
	BrowsePath       []QualifiedName
	AttributeID      AttributeID
	IndexRange       string
}

// EventFilter selects and filters event notifications. Only valid on the
// EventNotifier attribute.
type EventFilter struct {
	SelectClauses []SimpleAttributeOperand
}

func (*EventFilter) monitoringFilter() {}

// AggregateFilter requests server-side aggregation of sampled values.
type AggregateFilter struct {
	AggregateTypeID   NodeID
	ProcessingInterval float64
}

func (*AggregateFilter) monitoringFilter() {}

// MonitoringFilterResult is implemented by the filter result variants
// returned from monitored-item creation.
type MonitoringFilterResult interface {
	monitoringFilterResult()
}

// EventFilterResult carries per-select-clause validation results.
type EventFilterResult struct {
	SelectClauseResults []StatusCode
}

func (*EventFilterResult) monitoringFilterResult() {}

// AggregateFilterResult echoes the negotiated aggregate configuration.
type AggregateFilterResult struct {
	RevisedProcessingInterval float64
}

func (*AggregateFilterResult) monitoringFilterResult() {}

// MonitoringParameters are the client-requested monitoring settings.
type MonitoringParameters struct {
	ClientHandle     uint32
	SamplingInterval float64
	Filter           MonitoringFilter
	QueueSize        uint32
	DiscardOldest    bool
}

// MonitoredItemCreateRequest describes one monitored item to create.
type MonitoredItemCreateRequest struct {
	ItemToMonitor       ReadValueID
	MonitoringMode      MonitoringMode
	RequestedParameters MonitoringParameters
}

// MonitoredItemCreateResult is the per-item creation outcome.
type MonitoredItemCreateResult struct {
	StatusCode              StatusCode
	MonitoredItemID         uint32
	RevisedSamplingInterval float64
	RevisedQueueSize        uint32
	FilterResult            MonitoringFilterResult
}
