// Package middleware is the optional outer layer around the client's invoke
// path. The core client performs exactly one blocking exchange per call;
// timeout, retry, and rate limiting live here so the core stays simple and
// deterministic.
package middleware

import (
	"context"

	"fba-rpc/protocol"
)

// HandlerFunc is one step of the invoke path: request envelope in, response
// envelope or error out.
type HandlerFunc func(ctx context.Context, req *protocol.Request) (*protocol.Response, error)

type Middleware func(next HandlerFunc) HandlerFunc

// Chain combines multiple middlewares into one, outermost first.
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
