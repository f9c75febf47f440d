package address

import (
	"github.com/uaserve/uaserve-go/pkg/ua"
)

// Space is the read-only address-space capability consumed by the
// subscription core. Implementations must return promptly; the core never
// blocks on address-space calls.
type Space interface {
	// FindNode resolves a node id, returning nil when unknown.
	FindNode(id ua.NodeID) Node

	// FindDataType resolves a data-type node, returning nil when unknown.
	FindDataType(id ua.NodeID) DataType
}

// Node is a node in the address space.
type Node interface {
	// NodeID returns the node's identifier.
	NodeID() ua.NodeID

	// NodeClass returns the node's class.
	NodeClass() ua.NodeClass

	// BrowseName returns the node's browse name.
	BrowseName() ua.QualifiedName

	// ReadAttribute reads one attribute. Unknown attributes carry
	// BadAttributeIdInvalid in the returned status.
	ReadAttribute(attr ua.AttributeID) ua.DataValue
}

// Variable is a node of class Variable.
type Variable interface {
	Node

	// DataType returns the node id of the variable's data type.
	DataType() ua.NodeID

	// MinimumSamplingInterval returns the fastest sampling the server
	// supports for this variable, in milliseconds. 0 means exception-based,
	// negative means unspecified.
	MinimumSamplingInterval() float64
}

// DataType is a node of class DataType with its place in the type hierarchy.
type DataType interface {
	// NodeID returns the data type's identifier.
	NodeID() ua.NodeID

	// IsSubtypeOf walks the supertype chain, including the type itself.
	IsSubtypeOf(id ua.NodeID) bool
}

// Well-known data-type node ids (namespace 0).
var (
	DataTypeNumber   = ua.NewNumericNodeID(0, 26)
	DataTypeInteger  = ua.NewNumericNodeID(0, 27)
	DataTypeUInteger = ua.NewNumericNodeID(0, 28)
	DataTypeBoolean  = ua.NewNumericNodeID(0, 1)
	DataTypeInt32    = ua.NewNumericNodeID(0, 6)
	DataTypeUInt32   = ua.NewNumericNodeID(0, 7)
	DataTypeFloat    = ua.NewNumericNodeID(0, 10)
	DataTypeDouble   = ua.NewNumericNodeID(0, 11)
	DataTypeString   = ua.NewNumericNodeID(0, 12)
	DataTypeBaseData = ua.NewNumericNodeID(0, 24)
)
