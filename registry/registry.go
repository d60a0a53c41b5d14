// Package registry provides service-endpoint discovery: which URLs currently
// serve a given service. A client uses it once, at construction, to pick the
// endpoint it stays pinned to.
package registry

// ServiceEndpoint describes one registered deployment of a service.
type ServiceEndpoint struct {
	URL     string
	Weight  int // Weight for load balancing
	Version string
}

type Registry interface {
	Register(serviceName string, endpoint ServiceEndpoint, ttl int64) error
	Deregister(serviceName string, url string) error
	Discover(serviceName string) ([]ServiceEndpoint, error)
	Watch(serviceName string) <-chan []ServiceEndpoint
}
