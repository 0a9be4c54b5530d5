// File: api/codec.go
//
// Serialization codec contract. The proxy layer depends only on this
// marshal/unmarshal pair, not on any particular encoding.

package api

// Codec converts construct-args structures and call argument/result tuples
// to and from their wire representation.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}
