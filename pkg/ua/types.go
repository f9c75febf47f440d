package ua

import (
	"fmt"
	"time"
)

// NodeIDType is the identifier form carried by a NodeID.
type NodeIDType uint8

// NodeID identifier forms.
const (
	NodeIDTypeNumeric NodeIDType = iota
	NodeIDTypeString
)

// NodeID identifies a node in the address space.
type NodeID struct {
	Type      NodeIDType
	Namespace uint16
	Numeric   uint32
	String    string
}

// NewNumericNodeID creates a numeric NodeID.
func NewNumericNodeID(namespace uint16, id uint32) NodeID {
	return NodeID{Type: NodeIDTypeNumeric, Namespace: namespace, Numeric: id}
}

// NewStringNodeID creates a string NodeID.
func NewStringNodeID(namespace uint16, id string) NodeID {
	return NodeID{Type: NodeIDTypeString, Namespace: namespace, String: id}
}

// IsNull returns true for the zero NodeID.
func (n NodeID) IsNull() bool {
	return n == NodeID{}
}

// Format returns the ns=<n>;i=<id> or ns=<n>;s=<id> form.
func (n NodeID) Format() string {
	if n.Type == NodeIDTypeString {
		return fmt.Sprintf("ns=%d;s=%s", n.Namespace, n.String)
	}
	return fmt.Sprintf("ns=%d;i=%d", n.Namespace, n.Numeric)
}

// NodeClass identifies the class of a node.
type NodeClass uint32

// Node classes.
const (
	NodeClassUnspecified NodeClass = 0
	NodeClassObject      NodeClass = 1
	NodeClassVariable    NodeClass = 2
	NodeClassMethod      NodeClass = 4
	NodeClassObjectType  NodeClass = 8
	NodeClassVariableType NodeClass = 16
	NodeClassDataType    NodeClass = 64
	NodeClassView        NodeClass = 128
)

// String returns the node class name.
func (c NodeClass) String() string {
	switch c {
	case NodeClassObject:
		return "Object"
	case NodeClassVariable:
		return "Variable"
	case NodeClassMethod:
		return "Method"
	case NodeClassObjectType:
		return "ObjectType"
	case NodeClassVariableType:
		return "VariableType"
	case NodeClassDataType:
		return "DataType"
	case NodeClassView:
		return "View"
	default:
		return "Unspecified"
	}
}

// AttributeID identifies a node attribute.
type AttributeID uint32

// Attribute identifiers.
const (
	AttributeInvalid                 AttributeID = 0
	AttributeNodeID                  AttributeID = 1
	AttributeNodeClass               AttributeID = 2
	AttributeBrowseName              AttributeID = 3
	AttributeDisplayName             AttributeID = 4
	AttributeDescription             AttributeID = 5
	AttributeEventNotifier           AttributeID = 12
	AttributeValue                   AttributeID = 13
	AttributeDataType                AttributeID = 14
	AttributeValueRank               AttributeID = 15
	AttributeArrayDimensions         AttributeID = 16
	AttributeAccessLevel             AttributeID = 17
	AttributeUserAccessLevel         AttributeID = 18
	AttributeMinimumSamplingInterval AttributeID = 19
	AttributeHistorizing             AttributeID = 20
)

// IsValid returns true for attribute ids in the defined range.
func (a AttributeID) IsValid() bool {
	return a >= AttributeNodeID && a <= AttributeHistorizing
}

// QualifiedName is a namespace-qualified browse name.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

// IsEmpty returns true when no name is set.
func (q QualifiedName) IsEmpty() bool {
	return q.Name == ""
}

// TimestampsToReturn selects which timestamps accompany values.
type TimestampsToReturn uint32

// TimestampsToReturn values.
const (
	TimestampsSource  TimestampsToReturn = 0
	TimestampsServer  TimestampsToReturn = 1
	TimestampsBoth    TimestampsToReturn = 2
	TimestampsNeither TimestampsToReturn = 3
)

// DataValue is a value with its status and timestamps.
type DataValue struct {
	Value           any
	StatusCode      StatusCode
	SourceTimestamp time.Time
	ServerTimestamp time.Time
}

// ReadValueID selects a node attribute to read or monitor.
type ReadValueID struct {
	NodeID       NodeID
	AttributeID  AttributeID
	IndexRange   string
	DataEncoding QualifiedName
}

// MonitoringMode controls sampling and reporting of a monitored item.
type MonitoringMode uint32

// Monitoring modes.
const (
	MonitoringModeDisabled  MonitoringMode = 0
	MonitoringModeSampling  MonitoringMode = 1
	MonitoringModeReporting MonitoringMode = 2
)

// String returns the monitoring mode name.
func (m MonitoringMode) String() string {
	switch m {
	case MonitoringModeDisabled:
		return "Disabled"
	case MonitoringModeSampling:
		return "Sampling"
	case MonitoringModeReporting:
		return "Reporting"
	default:
		return "Unknown"
	}
}

// IsValid returns true for defined monitoring modes.
func (m MonitoringMode) IsValid() bool {
	return m <= MonitoringModeReporting
}
