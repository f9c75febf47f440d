// Package discovery announces the server endpoint over mDNS using the
// _opcua._tcp service type, so local clients can find the server without a
// discovery server. The TXT records carry the endpoint path and the server
// capability list.
package discovery
