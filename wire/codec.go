// File: wire/codec.go
//
// CBOR implementation of the api.Codec contract used for argument and
// construct-args serialization.

package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Codec is the canonical CBOR codec. The zero value is ready to use.
type Codec struct{}

// Marshal encodes v as canonical CBOR.
func (Codec) Marshal(v any) ([]byte, error) {
	data, err := cborEncMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal decodes CBOR bytes into v.
func (Codec) Unmarshal(data []byte, v any) error {
	if err := cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("wire: unmarshal into %T: %w", v, err)
	}
	return nil
}
