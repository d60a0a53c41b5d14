package loadbalance

import (
	"fmt"
	"sync/atomic"

	"fba-rpc/registry"
)

// RoundRobinBalancer hands out endpoints evenly in order. Uses an atomic
// counter for lock-free, goroutine-safe operation.
//
// Best for: equal-capacity deployments.
type RoundRobinBalancer struct {
	counter int64 // Incremented on each Pick()
}

func (b *RoundRobinBalancer) Pick(endpoints []registry.ServiceEndpoint) (*registry.ServiceEndpoint, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints available")
	}
	index := atomic.AddInt64(&b.counter, 1) % int64(len(endpoints))
	return &endpoints[index], nil
}

func (b *RoundRobinBalancer) Name() string {
	return "RoundRobin"
}
