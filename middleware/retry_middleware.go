package middleware

import (
	"context"
	"errors"
	"log"
	"time"

	"fba-rpc/protocol"
	"fba-rpc/transport"
)

// RetryMiddleware retries transport-level failures with exponential backoff.
// Only *transport.TransportError is retryable: a protocol error or remote
// error means the service answered, and repeating the call won't change that.
func RetryMiddleware(maxRetries int, baseDelay time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			resp, err := next(ctx, req)
			for i := 0; i < maxRetries; i++ {
				if err == nil {
					return resp, nil // Success, return response
				}
				var terr *transport.TransportError
				if !errors.As(err, &terr) {
					return resp, err // Non-retryable error, return immediately
				}
				log.Printf("Retry attempt %d for %s due to error: %v", i+1, req.Method, err)
				select {
				case <-time.After(baseDelay * time.Duration(1<<i)): // Exponential backoff
				case <-ctx.Done():
					return nil, &transport.TransportError{Err: ctx.Err()}
				}
				resp, err = next(ctx, req) // Retry the request
			}
			return resp, err // Return last result after retries
		}
	}
}
