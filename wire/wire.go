// File: wire/wire.go
// Package wire implements the serialized message shapes exchanged over the
// bridge channel and their CBOR encoding.
//
// Encoding uses canonical CBOR so that serialize -> deserialize ->
// re-serialize is byte-identical for every valid value. Construct-args
// snapshots rely on this to stay stable across the session.

package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/Javier97sm/yabridge/api"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// CallRequest is one outbound interface-method invocation. The argument
// tuple is pre-encoded so the envelope codec never needs to know the
// per-method argument shapes.
type CallRequest struct {
	Instance  api.InstanceID  `cbor:"1,keyasint"`
	Interface api.InterfaceID `cbor:"2,keyasint"`
	Method    api.MethodID    `cbor:"3,keyasint"`
	Args      cbor.RawMessage `cbor:"4,keyasint,omitempty"`
}

// CallResponse carries the interface-native result code and the encoded
// return/output values of one call.
type CallResponse struct {
	Result  api.Result      `cbor:"1,keyasint"`
	Payload cbor.RawMessage `cbor:"2,keyasint,omitempty"`
}

// MarshalRequest serializes a CallRequest to CBOR bytes.
func MarshalRequest(r *CallRequest) ([]byte, error) {
	return cborEncMode.Marshal(r)
}

// UnmarshalRequest deserializes a CallRequest from CBOR bytes.
func UnmarshalRequest(data []byte) (*CallRequest, error) {
	var r CallRequest
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("wire: unmarshal call request: %w", err)
	}
	return &r, nil
}

// MarshalResponse serializes a CallResponse to CBOR bytes.
func MarshalResponse(r *CallResponse) ([]byte, error) {
	return cborEncMode.Marshal(r)
}

// UnmarshalResponse deserializes a CallResponse from CBOR bytes.
func UnmarshalResponse(data []byte) (*CallResponse, error) {
	var r CallResponse
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("wire: unmarshal call response: %w", err)
	}
	return &r, nil
}
