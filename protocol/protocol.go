// Package protocol defines the JSON-RPC 1.1 envelopes exchanged with
// fbaModelServices over HTTP.
//
// Every call is one request object and one response object:
//
//	request:  {"method": "fbaModelServices.get_models", "params": [<args>], "version": "1.1"}
//	response: {"result": [<values>]}            on success
//	          {"error": {...}} or {}            when the call produced no result
//
// Params are positional; the protocol has no named parameters. The result is
// always a JSON array — how it unwraps (first element vs. whole array) is the
// caller's policy, not the envelope's.
package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"fba-rpc/codec"
)

// Version is the fixed protocol version carried in every request.
const Version = "1.1"

// Request is the JSON-RPC 1.1 call envelope. Construct it with NewRequest so
// the version field is never left empty.
type Request struct {
	Method  string `json:"method"`  // Format: "ServiceName.procedure_name"
	Params  []any  `json:"params"`  // Positional arguments, order is significant
	Version string `json:"version"` // Always "1.1"
}

// NewRequest builds a request for service.procedure with the given positional
// arguments. A nil args yields "params":[] rather than "params":null.
func NewRequest(service, procedure string, args ...any) *Request {
	if args == nil {
		args = []any{}
	}
	return &Request{
		Method:  service + "." + procedure,
		Params:  args,
		Version: Version,
	}
}

// Response is the JSON-RPC 1.1 reply envelope. Exactly one of Result and Err
// is normally populated; a response with neither is a valid "no result" reply.
//
// Result keeps the raw bytes of the result array so list-passthrough callers
// get the sequence exactly as the server sent it.
type Response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Err    json.RawMessage `json:"error,omitempty"`
}

var jsonNull = []byte("null")

// HasResult reports whether the response carried a result field.
// A literal "result": null counts as absent.
func (r *Response) HasResult() bool {
	return len(r.Result) > 0 && !bytes.Equal(r.Result, jsonNull)
}

// Values decodes the result array into its raw elements.
// Returns nil with no error when the result is absent.
func (r *Response) Values() ([]json.RawMessage, error) {
	if !r.HasResult() {
		return nil, nil
	}
	var values []json.RawMessage
	if err := json.Unmarshal(r.Result, &values); err != nil {
		return nil, &ProtocolError{Reason: "result is not an array", Err: err}
	}
	return values, nil
}

// First returns the first element of the result array, or nil when the result
// is absent or empty.
func (r *Response) First() (json.RawMessage, error) {
	values, err := r.Values()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values[0], nil
}

// RemoteError decodes the error field, if any, into a *RemoteError.
// Returns nil when the response carries no error object.
func (r *Response) RemoteError() *RemoteError {
	if len(r.Err) == 0 || bytes.Equal(r.Err, jsonNull) {
		return nil
	}
	rerr := &RemoteError{Payload: r.Err}
	// Best effort: JSON-RPC 1.1 error objects carry name/code/message, but
	// the payload is surfaced verbatim even when it decodes to none of them.
	var fields struct {
		Name    string `json:"name"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(r.Err, &fields); err == nil {
		rerr.Name = fields.Name
		rerr.Code = fields.Code
		rerr.Message = fields.Message
	}
	return rerr
}

// EncodeRequest serializes the request envelope with the given codec.
func EncodeRequest(c codec.Codec, req *Request) ([]byte, error) {
	body, err := c.Encode(req)
	if err != nil {
		return nil, fmt.Errorf("encode request %s: %w", req.Method, err)
	}
	return body, nil
}

// DecodeResponse parses a response body into the envelope.
// A body that does not decode into the envelope shape is a *ProtocolError.
func DecodeResponse(c codec.Codec, body []byte) (*Response, error) {
	resp := &Response{}
	if err := c.Decode(body, resp); err != nil {
		return nil, &ProtocolError{Reason: "malformed response body", Err: err}
	}
	return resp, nil
}

// ProtocolError reports a response body that cannot be interpreted as a
// JSON-RPC 1.1 envelope.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol: %s: %v", e.Reason, e.Err)
	}
	return "protocol: " + e.Reason
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// RemoteError is an explicit error object returned by the service. The core
// client only surfaces it when remote-error reporting is enabled; otherwise an
// error-only response is treated as an absent result.
type RemoteError struct {
	Name    string
	Code    int
	Message string
	Payload json.RawMessage // Raw error object as sent by the server
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote error %d: %s", e.Code, e.Message)
	}
	return "remote error: " + string(e.Payload)
}
