// Package codec abstracts the serialization capability used by the protocol
// layer: serialize(value) -> bytes and deserialize(bytes) -> value.
//
// fbaModelServices speaks UTF-8 JSON text on the wire, so JSONCodec is the
// only production codec; the interface exists so tests and callers can
// substitute their own implementation.
package codec

type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	// ContentType is the MIME type the transport declares for bodies
	// produced by Encode.
	ContentType() string
}

// Default returns the codec used when the caller does not supply one.
func Default() Codec {
	return &JSONCodec{}
}
