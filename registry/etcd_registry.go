// etcd-based implementation of the Registry interface.
//
// Endpoints live under:
//
//	Key:   /fba-rpc/{ServiceName}/{URL}
//	Value: JSON-encoded ServiceEndpoint
//
// Registration uses TTL-based leases: if the registering process dies, the
// lease expires and the entry disappears on its own, so discovery never hands
// out a long-dead endpoint.
package registry

import (
	"context"
	"encoding/json"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const keyPrefix = "/fba-rpc/"

// EtcdRegistry implements Registry on etcd v3.
type EtcdRegistry struct {
	client *clientv3.Client // thread-safe, shared across goroutines
}

// NewEtcdRegistry connects to the given etcd endpoints.
func NewEtcdRegistry(endpoints []string) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints: endpoints,
	})
	if err != nil {
		return nil, err
	}
	return &EtcdRegistry{client: c}, nil
}

func serviceKey(serviceName, url string) string {
	return keyPrefix + serviceName + "/" + url
}

// Register stores the endpoint under a TTL lease and keeps the lease renewed
// in the background. The lease ID stays local so one EtcdRegistry can be
// shared by several registering processes without a data race.
func (r *EtcdRegistry) Register(serviceName string, endpoint ServiceEndpoint, ttl int64) error {
	ctx := context.TODO()

	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return err
	}

	val, err := json.Marshal(endpoint)
	if err != nil {
		return err
	}

	_, err = r.client.Put(ctx, serviceKey(serviceName, endpoint.URL), string(val), clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	// KeepAlive renews the lease; the responses must be drained or the
	// channel fills up and renewal stops.
	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}
	go func() {
		for range ch {
		}
	}()
	return nil
}

// Deregister removes an endpoint, typically during graceful shutdown.
func (r *EtcdRegistry) Deregister(serviceName string, url string) error {
	_, err := r.client.Delete(context.TODO(), serviceKey(serviceName, url))
	return err
}

// Discover returns every endpoint currently registered for the service.
func (r *EtcdRegistry) Discover(serviceName string) ([]ServiceEndpoint, error) {
	resp, err := r.client.Get(context.TODO(), keyPrefix+serviceName+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	endpoints := make([]ServiceEndpoint, 0)
	for _, kv := range resp.Kvs {
		var ep ServiceEndpoint
		if err := json.Unmarshal(kv.Value, &ep); err != nil {
			continue // Skip malformed entries
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints, nil
}

// Watch emits the full endpoint list whenever anything under the service
// prefix changes (registration, deregistration, lease expiry). Re-fetching
// the list on each event is simpler than folding individual watch events.
func (r *EtcdRegistry) Watch(serviceName string) <-chan []ServiceEndpoint {
	ch := make(chan []ServiceEndpoint, 1)
	go func() {
		watchChan := r.client.Watch(context.TODO(), keyPrefix+serviceName+"/", clientv3.WithPrefix())
		for range watchChan {
			endpoints, _ := r.Discover(serviceName)
			ch <- endpoints
		}
	}()
	return ch
}
