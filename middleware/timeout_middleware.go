package middleware

import (
	"context"
	"time"

	"fba-rpc/protocol"
	"fba-rpc/transport"
)

// TimeoutMiddleware bounds each call. The deadline reaches the HTTP request
// through ctx; the select also guards against a next that ignores ctx.
// A timed-out call surfaces as a *transport.TransportError so the retry
// middleware treats it like any other transport failure.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			type result struct {
				resp *protocol.Response
				err  error
			}
			done := make(chan result, 1)
			go func() {
				resp, err := next(ctx, req)
				done <- result{resp, err}
			}()

			select {
			case r := <-done:
				return r.resp, r.err
			case <-ctx.Done():
				return nil, &transport.TransportError{Err: ctx.Err()}
			}
		}
	}
}
