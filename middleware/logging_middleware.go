package middleware

import (
	"context"
	"log"
	"time"

	"fba-rpc/protocol"
)

func LoggingMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			// Print the method and the time taken to process the request and error if any
			duration := time.Since(start)
			log.Printf("Method: %s, Duration: %s", req.Method, duration)
			if err != nil {
				log.Printf("Error: %v", err)
			}
			return resp, err
		}
	}
}
