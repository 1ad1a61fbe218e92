package arbor

// Codec marshals a finished tree into a wire format.
//
// Marshal receives the value returned by Node.Interface: a *Map, a Seq or a
// leaf value. Codecs must preserve the insertion order of *Map keys.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)
}
