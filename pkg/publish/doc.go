// Package publish defines the publish-request capability subscriptions
// consume, and an in-memory engine implementation.
//
// Clients park Publish requests with the server; a subscription with a
// notification or keep-alive to send consumes one parked request per
// response. The engine is shared by all subscriptions of a session.
package publish
