package loadbalance

import (
	"fmt"
	"math/rand"

	"fba-rpc/registry"
)

// WeightedRandomBalancer picks an endpoint at random, biased by weight.
// Endpoints registered without a weight count as weight 1, so an all-default
// list degrades to uniform selection.
//
// Best for: heterogeneous deployments (different CPU/memory).
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(endpoints []registry.ServiceEndpoint) (*registry.ServiceEndpoint, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints available")
	}

	totalWeight := 0
	for _, ep := range endpoints {
		totalWeight += effectiveWeight(ep)
	}

	r := rand.Intn(totalWeight)
	for i := range endpoints {
		r -= effectiveWeight(endpoints[i])
		if r < 0 {
			return &endpoints[i], nil
		}
	}

	return nil, fmt.Errorf("unexpected error in weighted random selection")
}

func effectiveWeight(ep registry.ServiceEndpoint) int {
	if ep.Weight <= 0 {
		return 1
	}
	return ep.Weight
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}
