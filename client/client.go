// Package client is the Go binding for the fbaModelServices JSON-RPC 1.1
// service. Every public method is one row of the procedure table bound to the
// generic invoke path: build the envelope, POST it, decode the reply, unwrap
// the result.
//
// A Client is stateless apart from its configuration: it is safe for
// concurrent use, each call is an independent blocking round trip, and
// nothing is retried or cached unless middleware is installed.
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"fba-rpc/codec"
	"fba-rpc/loadbalance"
	"fba-rpc/middleware"
	"fba-rpc/protocol"
	"fba-rpc/registry"
	"fba-rpc/transport"
)

// ServiceName qualifies every procedure on the wire:
// "fbaModelServices.<procedure>".
const ServiceName = "fbaModelServices"

// Client is bound to one service endpoint for its whole lifetime.
type Client struct {
	url          string
	codec        codec.Codec
	tr           transport.Transport
	handler      middleware.HandlerFunc // roundTrip wrapped in any installed middleware
	mws          []middleware.Middleware
	remoteErrors bool
}

type Option func(*Client)

// WithCodec replaces the default JSON codec.
func WithCodec(c codec.Codec) Option {
	return func(cl *Client) { cl.codec = c }
}

// WithTransport replaces the default HTTP transport.
func WithTransport(t transport.Transport) Option {
	return func(cl *Client) { cl.tr = t }
}

// WithMiddleware wraps the invoke path, outermost first. The core path with
// no middleware installed performs exactly one exchange per call.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(cl *Client) { cl.mws = append(cl.mws, mws...) }
}

// WithRemoteErrors makes a response carrying an explicit error object surface
// as a *protocol.RemoteError. Without it, such a response is treated the same
// as an absent result, matching the service's original client bindings.
func WithRemoteErrors() Option {
	return func(cl *Client) { cl.remoteErrors = true }
}

// New creates a client bound to the given endpoint URL. The endpoint is not
// probed; an unreachable service surfaces on the first call.
func New(url string, opts ...Option) (*Client, error) {
	if url == "" {
		return nil, &ConfigurationError{Reason: "service URL is required"}
	}
	c := &Client{
		url:   url,
		codec: codec.Default(),
		tr:    transport.NewHTTPTransport(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.handler = c.roundTrip
	if len(c.mws) > 0 {
		c.handler = middleware.Chain(c.mws...)(c.handler)
	}
	return c, nil
}

// NewFromRegistry discovers the registered service endpoints, picks one with
// the balancer, and returns a client pinned to it. The pick happens once:
// every call on the returned client uses that endpoint.
func NewFromRegistry(reg registry.Registry, bal loadbalance.Balancer, opts ...Option) (*Client, error) {
	endpoints, err := reg.Discover(ServiceName)
	if err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("discover %s: %v", ServiceName, err)}
	}
	ep, err := bal.Pick(endpoints)
	if err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("no usable %s endpoint: %v", ServiceName, err)}
	}
	return New(ep.URL, opts...)
}

// URL returns the endpoint this client is bound to.
func (c *Client) URL() string {
	return c.url
}

// roundTrip is the innermost handler: serialize, POST, decode. Middleware
// wraps this.
func (c *Client) roundTrip(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	body, err := protocol.EncodeRequest(c.codec, req)
	if err != nil {
		return nil, err
	}
	respBody, err := c.tr.RoundTrip(ctx, c.url, c.codec.ContentType(), body)
	if err != nil {
		return nil, err
	}
	return protocol.DecodeResponse(c.codec, respBody)
}

// do validates the procedure against the table, runs the exchange, and
// applies the remote-error policy. The unwrap policy is applied by Invoke and
// invokeList on top of the returned envelope.
func (c *Client) do(ctx context.Context, name string, args []any) (*protocol.Response, procedure, error) {
	p, ok := procedures[name]
	if !ok {
		return nil, p, fmt.Errorf("unknown procedure %q", name)
	}
	if len(args) != p.arity {
		return nil, p, fmt.Errorf("%s takes %d argument(s), got %d", name, p.arity, len(args))
	}
	resp, err := c.handler(ctx, protocol.NewRequest(ServiceName, name, args...))
	if err != nil {
		return nil, p, err
	}
	if c.remoteErrors {
		if rerr := resp.RemoteError(); rerr != nil {
			return nil, p, rerr
		}
	}
	return resp, p, nil
}

// Invoke performs one call to the named procedure. The returned RawMessage is
// the result unwrapped per the procedure's policy: the first result element
// for single-value procedures, the raw result array for the integrate
// procedures. A nil RawMessage with a nil error is the absence marker — the
// response carried no result.
func (c *Client) Invoke(ctx context.Context, name string, args ...any) (json.RawMessage, error) {
	resp, p, err := c.do(ctx, name, args)
	if err != nil {
		return nil, err
	}
	if !resp.HasResult() {
		return nil, nil
	}
	if p.passthrough {
		// Validate the shape even though the raw array is returned as-is
		if _, err := resp.Values(); err != nil {
			return nil, err
		}
		return resp.Result, nil
	}
	return resp.First()
}

// invokeList is the list-passthrough path used by the integrate wrappers:
// the whole result sequence, element by element.
func (c *Client) invokeList(ctx context.Context, name string, args ...any) ([]json.RawMessage, error) {
	resp, _, err := c.do(ctx, name, args)
	if err != nil {
		return nil, err
	}
	return resp.Values()
}

// ConfigurationError reports an unusable client configuration, detected at
// construction rather than on first use.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "client configuration: " + e.Reason
}
