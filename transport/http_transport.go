// Package transport performs the blocking HTTP exchange for a single RPC
// call: POST the serialized request envelope, read the full response body,
// return its bytes. One call, one round trip — multiplexing, pooling, and
// keep-alive are net/http's business, not this layer's.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Transport sends one request body to a URL and returns the response body.
// The call blocks the caller for the full round trip; ctx is the only way to
// bound it.
type Transport interface {
	RoundTrip(ctx context.Context, url, contentType string, body []byte) ([]byte, error)
}

// HTTPTransport is the production Transport, backed by a net/http client.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport using the given HTTP client.
// Pass nil to use http.DefaultClient.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{client: client}
}

// RoundTrip POSTs body to url and reads the complete response body before
// returning. Every failure mode — dial, write, non-2xx status, truncated
// body — surfaces as a *TransportError; nothing is retried here.
func (t *HTTPTransport) RoundTrip(ctx context.Context, url, contentType string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	return data, nil
}

// TransportError reports a network or HTTP-level failure during a call.
// It propagates to the caller as-is; the core never retries.
type TransportError struct {
	URL string // Empty when the failure happened before a target was known
	Err error
}

func (e *TransportError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("transport: %v", e.Err)
	}
	return fmt.Sprintf("transport: POST %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
