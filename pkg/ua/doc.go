// Package ua defines the OPC UA types shared across the server: node
// identifiers, status codes, monitoring parameters and filters, and the
// notification payloads carried by publish responses.
//
// Only the subset of the OPC UA type system needed by the subscription
// service set is modeled here. Wire encoding lives elsewhere.
package ua
