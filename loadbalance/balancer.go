// Package loadbalance picks one service endpoint out of the list discovery
// returned. The pick happens when a client is constructed — the client stays
// pinned to the chosen endpoint afterwards — so the strategies here spread
// load across endpoints at the granularity of client instances, not calls.
package loadbalance

import "fba-rpc/registry"

// Balancer selects one endpoint from the available list.
type Balancer interface {
	// Pick must be goroutine-safe; one balancer may serve many
	// constructions concurrently.
	Pick(endpoints []registry.ServiceEndpoint) (*registry.ServiceEndpoint, error)

	// Name returns the strategy name (for logging/debugging).
	Name() string
}
