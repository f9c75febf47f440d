package address

import (
	"sync"
	"time"

	"github.com/uaserve/uaserve-go/pkg/ua"
)

// MemorySpace is an in-memory address space. It is safe for concurrent use.
type MemorySpace struct {
	mu        sync.RWMutex
	nodes     map[ua.NodeID]Node
	dataTypes map[ua.NodeID]*memoryDataType
}

// NewMemorySpace creates an empty address space with the base data-type
// hierarchy preloaded.
func NewMemorySpace() *MemorySpace {
	s := &MemorySpace{
		nodes:     make(map[ua.NodeID]Node),
		dataTypes: make(map[ua.NodeID]*memoryDataType),
	}

	// Base hierarchy: BaseDataType at the root, Number under it, the
	// numeric concrete types under Number.
	s.AddDataType(DataTypeBaseData, ua.NodeID{})
	s.AddDataType(DataTypeNumber, DataTypeBaseData)
	s.AddDataType(DataTypeInteger, DataTypeNumber)
	s.AddDataType(DataTypeUInteger, DataTypeNumber)
	s.AddDataType(DataTypeInt32, DataTypeInteger)
	s.AddDataType(DataTypeUInt32, DataTypeUInteger)
	s.AddDataType(DataTypeFloat, DataTypeNumber)
	s.AddDataType(DataTypeDouble, DataTypeNumber)
	s.AddDataType(DataTypeBoolean, DataTypeBaseData)
	s.AddDataType(DataTypeString, DataTypeBaseData)

	return s
}

// FindNode resolves a node id, returning nil when unknown.
func (s *MemorySpace) FindNode(id ua.NodeID) Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.nodes[id]
	if !ok {
		return nil
	}
	return node
}

// FindDataType resolves a data type, returning nil when unknown.
func (s *MemorySpace) FindDataType(id ua.NodeID) DataType {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dt, ok := s.dataTypes[id]
	if !ok {
		return nil
	}
	return dt
}

// AddNode registers a node. An existing node with the same id is replaced.
func (s *MemorySpace) AddNode(node Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[node.NodeID()] = node
}

// AddDataType registers a data type under the given supertype. A null
// supertype makes it a hierarchy root.
func (s *MemorySpace) AddDataType(id, supertype ua.NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataTypes[id] = &memoryDataType{id: id, supertype: supertype, space: s}
}

// Compile-time interface satisfaction check.
var _ Space = (*MemorySpace)(nil)

// memoryDataType resolves subtype relations by walking the supertype chain.
type memoryDataType struct {
	id        ua.NodeID
	supertype ua.NodeID
	space     *MemorySpace
}

func (d *memoryDataType) NodeID() ua.NodeID { return d.id }

func (d *memoryDataType) IsSubtypeOf(id ua.NodeID) bool {
	d.space.mu.RLock()
	defer d.space.mu.RUnlock()

	for cur := d; cur != nil; {
		if cur.id == id {
			return true
		}
		if cur.supertype.IsNull() {
			return false
		}
		cur = d.space.dataTypes[cur.supertype]
	}
	return false
}

// VariableNode is a Variable-class node holding a current value. It is safe
// for concurrent use.
type VariableNode struct {
	mu sync.RWMutex

	id          ua.NodeID
	browseName  ua.QualifiedName
	dataType    ua.NodeID
	minSampling float64
	value       ua.DataValue
}

// NewVariableNode creates a variable node. minSampling is the minimum
// sampling interval in milliseconds; 0 means exception-based, negative means
// unspecified.
func NewVariableNode(id ua.NodeID, browseName ua.QualifiedName, dataType ua.NodeID, minSampling float64) *VariableNode {
	return &VariableNode{
		id:          id,
		browseName:  browseName,
		dataType:    dataType,
		minSampling: minSampling,
	}
}

// NodeID returns the node's identifier.
func (n *VariableNode) NodeID() ua.NodeID { return n.id }

// NodeClass returns NodeClassVariable.
func (n *VariableNode) NodeClass() ua.NodeClass { return ua.NodeClassVariable }

// BrowseName returns the node's browse name.
func (n *VariableNode) BrowseName() ua.QualifiedName { return n.browseName }

// DataType returns the node id of the variable's data type.
func (n *VariableNode) DataType() ua.NodeID { return n.dataType }

// MinimumSamplingInterval returns the fastest supported sampling interval.
func (n *VariableNode) MinimumSamplingInterval() float64 { return n.minSampling }

// ReadAttribute reads one attribute of the variable.
func (n *VariableNode) ReadAttribute(attr ua.AttributeID) ua.DataValue {
	n.mu.RLock()
	defer n.mu.RUnlock()

	switch attr {
	case ua.AttributeNodeID:
		return ua.DataValue{Value: n.id, StatusCode: ua.Good}
	case ua.AttributeNodeClass:
		return ua.DataValue{Value: ua.NodeClassVariable, StatusCode: ua.Good}
	case ua.AttributeBrowseName:
		return ua.DataValue{Value: n.browseName, StatusCode: ua.Good}
	case ua.AttributeValue:
		return n.value
	case ua.AttributeDataType:
		return ua.DataValue{Value: n.dataType, StatusCode: ua.Good}
	case ua.AttributeMinimumSamplingInterval:
		return ua.DataValue{Value: n.minSampling, StatusCode: ua.Good}
	default:
		return ua.DataValue{StatusCode: ua.BadAttributeIdInvalid}
	}
}

// SetValue updates the current value, stamping the source timestamp.
func (n *VariableNode) SetValue(value any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.value = ua.DataValue{
		Value:           value,
		StatusCode:      ua.Good,
		SourceTimestamp: time.Now(),
	}
}

// Value returns the current value.
func (n *VariableNode) Value() ua.DataValue {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.value
}

// ObjectNode is a minimal Object-class node, usable as an event notifier
// target.
type ObjectNode struct {
	id            ua.NodeID
	browseName    ua.QualifiedName
	eventNotifier uint8
}

// NewObjectNode creates an object node. eventNotifier carries the
// SubscribeToEvents bit when the object emits events.
func NewObjectNode(id ua.NodeID, browseName ua.QualifiedName, eventNotifier uint8) *ObjectNode {
	return &ObjectNode{id: id, browseName: browseName, eventNotifier: eventNotifier}
}

// NodeID returns the node's identifier.
func (n *ObjectNode) NodeID() ua.NodeID { return n.id }

// NodeClass returns NodeClassObject.
func (n *ObjectNode) NodeClass() ua.NodeClass { return ua.NodeClassObject }

// BrowseName returns the node's browse name.
func (n *ObjectNode) BrowseName() ua.QualifiedName { return n.browseName }

// ReadAttribute reads one attribute of the object.
func (n *ObjectNode) ReadAttribute(attr ua.AttributeID) ua.DataValue {
	switch attr {
	case ua.AttributeNodeID:
		return ua.DataValue{Value: n.id, StatusCode: ua.Good}
	case ua.AttributeNodeClass:
		return ua.DataValue{Value: ua.NodeClassObject, StatusCode: ua.Good}
	case ua.AttributeBrowseName:
		return ua.DataValue{Value: n.browseName, StatusCode: ua.Good}
	case ua.AttributeEventNotifier:
		return ua.DataValue{Value: n.eventNotifier, StatusCode: ua.Good}
	default:
		return ua.DataValue{StatusCode: ua.BadAttributeIdInvalid}
	}
}
