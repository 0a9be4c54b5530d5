// File: api/channel.go
//
// Defines the bidirectional message channel abstraction connecting the two
// halves of the bridge. The physical transport behind it is out of scope;
// the proxy and event-loop layers only assume it is reliable and ordered
// per direction, with request/response correlation handled by the channel.

package api

// Channel is a bidirectional, message-oriented transport between the native
// host side and the plugin helper side.
type Channel interface {
	// Send transmits one serialized request and blocks until the matching
	// response arrives. Correlation is the channel's responsibility; the
	// caller treats this as synchronous RPC.
	Send(payload []byte) ([]byte, error)

	// Next blocks until the remote side initiates a call, returning the
	// inbound request. Returns ErrChannelClosed once the channel is torn
	// down.
	Next() (Inbound, error)

	// Close tears down the channel. Pending Send calls fail with
	// ErrChannelClosed.
	Close() error

	// Done is closed when the channel becomes unusable, whichever side
	// initiated the teardown.
	Done() <-chan struct{}
}

// Inbound is a single remote-initiated call awaiting a reply.
type Inbound interface {
	// Payload returns the serialized request body.
	Payload() []byte

	// Reply sends the serialized response for this call back to the remote
	// side. Must be called exactly once.
	Reply(payload []byte) error
}
