// Package address provides the read-only address-space capability the
// subscription core validates monitored items against: node lookup, the
// data-type hierarchy, and index-range parsing.
//
// MemorySpace is a complete in-memory implementation used by the demo
// server and the tests. Production servers can supply their own Space.
package address
