package middleware

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"fba-rpc/protocol"
)

// RateLimitMiddleware rejects calls that exceed a token-bucket limit of
// r calls per second with the given burst.
func RateLimitMiddleware(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			if !limiter.Allow() {
				return nil, fmt.Errorf("rate limit exceeded")
			}
			return next(ctx, req)
		}
	}
}
