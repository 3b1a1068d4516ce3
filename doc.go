// Package gremlex is a client for Apache TinkerPop Gremlin servers. It builds
// Gremlin traversals programmatically, compiles them to Gremlin-Groovy source,
// and submits them over a persistent WebSocket connection managed by a small
// pool of long-lived workers.
package gremlex
