package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fba-rpc/loadbalance"
	"fba-rpc/middleware"
	"fba-rpc/protocol"
	"fba-rpc/registry"
	"fba-rpc/transport"
)

// fakeTransport counts calls and returns a canned response or error.
type fakeTransport struct {
	calls    int
	lastURL  string
	lastBody []byte
	resp     []byte
	err      error
}

func (f *fakeTransport) RoundTrip(ctx context.Context, url, contentType string, body []byte) ([]byte, error) {
	f.calls++
	f.lastURL = url
	f.lastBody = body
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func TestNewEmptyURL(t *testing.T) {
	_, err := New("")
	if err == nil {
		t.Fatal("expect error for empty URL")
	}
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expect *ConfigurationError, got %T: %v", err, err)
	}
}

func TestGetModelsEndToEnd(t *testing.T) {
	var gotBody string
	svc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"result":[{"id":"model1","name":"E. coli core"}]}`))
	}))
	defer svc.Close()

	c, err := New(svc.URL)
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.GetModels(context.Background(), map[string]any{"ids": []string{"model1"}})
	if err != nil {
		t.Fatalf("GetModels failed: %v", err)
	}

	wantBody := `{"method":"fbaModelServices.get_models","params":[{"ids":["model1"]}],"version":"1.1"}`
	if gotBody != wantBody {
		t.Errorf("request body mismatch:\n got  %s\n want %s", gotBody, wantBody)
	}
	if string(res) != `{"id":"model1","name":"E. coli core"}` {
		t.Errorf("unexpected result: %s", res)
	}
}

func TestSingleValueUnwrap(t *testing.T) {
	tr := &fakeTransport{resp: []byte(`{"result":[42,"x"]}`)}
	c, err := New("http://svc.example/fba", WithTransport(tr))
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.RunFBA(context.Background(), map[string]any{"model": "m1"})
	if err != nil {
		t.Fatalf("RunFBA failed: %v", err)
	}
	if string(res) != "42" {
		t.Fatalf("expect first element 42, got %s", res)
	}
}

func TestGapfillIntegratePassthrough(t *testing.T) {
	tr := &fakeTransport{resp: []byte(`{"result":["gapfillA","modelB"]}`)}
	c, err := New("http://svc.example/fba", WithTransport(tr))
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.GapfillIntegrate(context.Background(), "gf1", "m1")
	if err != nil {
		t.Fatalf("GapfillIntegrate failed: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("expect the full two-element sequence, got %d elements", len(res))
	}
	if string(res[0]) != `"gapfillA"` || string(res[1]) != `"modelB"` {
		t.Fatalf("unexpected sequence: %v", res)
	}
}

func TestInvokePassthroughRawArray(t *testing.T) {
	tr := &fakeTransport{resp: []byte(`{"result":[42,"x"]}`)}
	c, err := New("http://svc.example/fba", WithTransport(tr))
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.Invoke(context.Background(), "gapgen_integrate", "gg1", "m1")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if string(res) != `[42,"x"]` {
		t.Fatalf("expect the whole result array, got %s", res)
	}
}

func TestErrorResponseIsAbsence(t *testing.T) {
	tr := &fakeTransport{resp: []byte(`{"error":{"code":500,"message":"fail"}}`)}
	c, err := New("http://svc.example/fba", WithTransport(tr))
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.CheckFBA(context.Background(), "fba1")
	if err != nil {
		t.Fatalf("expect no error under the default policy, got %v", err)
	}
	if res != nil {
		t.Fatalf("expect the absence marker, got %s", res)
	}
}

func TestWithRemoteErrors(t *testing.T) {
	tr := &fakeTransport{resp: []byte(`{"error":{"code":-32601,"message":"method not found"}}`)}
	c, err := New("http://svc.example/fba", WithTransport(tr), WithRemoteErrors())
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.CheckFBA(context.Background(), "fba1")
	var rerr *protocol.RemoteError
	if !errors.As(err, &rerr) {
		t.Fatalf("expect *protocol.RemoteError, got %T: %v", err, err)
	}
	if rerr.Code != -32601 || rerr.Message != "method not found" {
		t.Fatalf("unexpected remote error: %+v", rerr)
	}
}

func TestAbsentResultIsNotRemoteError(t *testing.T) {
	// With remote errors enabled, a plain empty response is still absence
	tr := &fakeTransport{resp: []byte(`{}`)}
	c, err := New("http://svc.example/fba", WithTransport(tr), WithRemoteErrors())
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.GetMedia(context.Background(), "media1")
	if err != nil {
		t.Fatalf("expect no error, got %v", err)
	}
	if res != nil {
		t.Fatalf("expect the absence marker, got %s", res)
	}
}

func TestTransportErrorPropagatesOnce(t *testing.T) {
	tr := &fakeTransport{err: &transport.TransportError{URL: "http://svc.example/fba", Err: fmt.Errorf("connection refused")}}
	c, err := New("http://svc.example/fba", WithTransport(tr))
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.ExportFBA(context.Background(), "fba1")
	var terr *transport.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expect *transport.TransportError, got %T: %v", err, err)
	}
	if tr.calls != 1 {
		t.Fatalf("expect exactly 1 transport call, got %d", tr.calls)
	}
}

func TestMalformedResponse(t *testing.T) {
	tr := &fakeTransport{resp: []byte(`<html>gateway error</html>`)}
	c, err := New("http://svc.example/fba", WithTransport(tr))
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.GetBiochemistry(context.Background(), "default")
	var perr *protocol.ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expect *protocol.ProtocolError, got %T: %v", err, err)
	}
}

func TestUnknownProcedure(t *testing.T) {
	tr := &fakeTransport{resp: []byte(`{"result":[1]}`)}
	c, err := New("http://svc.example/fba", WithTransport(tr))
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Invoke(context.Background(), "delete_everything", "x")
	if err == nil {
		t.Fatal("expect error for unknown procedure")
	}
	if tr.calls != 0 {
		t.Fatalf("unknown procedure must not reach the wire, got %d calls", tr.calls)
	}
}

func TestArityMismatch(t *testing.T) {
	tr := &fakeTransport{resp: []byte(`{"result":[1]}`)}
	c, err := New("http://svc.example/fba", WithTransport(tr))
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Invoke(context.Background(), "gapfill_model", "only-one-arg")
	if err == nil {
		t.Fatal("expect error for wrong argument count")
	}
	if tr.calls != 0 {
		t.Fatalf("arity mismatch must not reach the wire, got %d calls", tr.calls)
	}
}

func TestWithMiddleware(t *testing.T) {
	tr := &fakeTransport{resp: []byte(`{"result":["ok"]}`)}
	seen := 0
	counting := func(next middleware.HandlerFunc) middleware.HandlerFunc {
		return func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			seen++
			return next(ctx, req)
		}
	}

	c, err := New("http://svc.example/fba", WithTransport(tr), WithMiddleware(counting))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.GetReactions(context.Background(), "rxn1"); err != nil {
		t.Fatal(err)
	}
	if seen != 1 {
		t.Fatalf("expect middleware to run once, ran %d times", seen)
	}
	if tr.calls != 1 {
		t.Fatalf("expect 1 transport call, got %d", tr.calls)
	}
}

// fakeRegistry serves a fixed endpoint list.
type fakeRegistry struct {
	endpoints []registry.ServiceEndpoint
	err       error
}

func (f *fakeRegistry) Register(string, registry.ServiceEndpoint, int64) error { return nil }
func (f *fakeRegistry) Deregister(string, string) error                        { return nil }
func (f *fakeRegistry) Discover(string) ([]registry.ServiceEndpoint, error) {
	return f.endpoints, f.err
}
func (f *fakeRegistry) Watch(string) <-chan []registry.ServiceEndpoint { return nil }

func TestNewFromRegistry(t *testing.T) {
	reg := &fakeRegistry{endpoints: []registry.ServiceEndpoint{
		{URL: "http://fba-1.example/services", Weight: 10},
		{URL: "http://fba-2.example/services", Weight: 10},
	}}

	c, err := NewFromRegistry(reg, &loadbalance.RoundRobinBalancer{})
	if err != nil {
		t.Fatalf("NewFromRegistry failed: %v", err)
	}
	if c.URL() != reg.endpoints[0].URL && c.URL() != reg.endpoints[1].URL {
		t.Fatalf("client pinned to unknown endpoint: %s", c.URL())
	}
}

func TestNewFromRegistryNoEndpoints(t *testing.T) {
	reg := &fakeRegistry{}
	_, err := NewFromRegistry(reg, &loadbalance.RoundRobinBalancer{})
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expect *ConfigurationError, got %T: %v", err, err)
	}
}
