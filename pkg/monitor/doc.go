// Package monitor implements monitored items: the per-node, per-attribute
// sampling queues whose contents a subscription drains into notification
// messages each publish cycle.
//
// DataItem covers value monitoring, EventItem covers event monitoring. Both
// start Disabled; the owning subscription applies the requested monitoring
// mode after registration.
package monitor
