// File: api/result.go
// Package api defines the interface-native result codes relayed across the
// bridge. These mirror the non-COM tresult values of the bridged plugin ABI
// so that a remote-side failure is indistinguishable from a local one.

package api

// Result is the status code returned by every bridged interface method.
type Result int32

const (
	ResultOk              Result = 0
	ResultTrue            Result = 0
	ResultFalse           Result = 1
	ResultInvalidArgument Result = 2
	ResultNotImplemented  Result = 3
	ResultInternalError   Result = 4
	ResultNotInitialized  Result = 5
	ResultOutOfMemory     Result = 6
)

// Ok reports whether the result indicates success.
func (r Result) Ok() bool {
	return r == ResultOk
}

// String returns a human-readable name for the result code.
func (r Result) String() string {
	switch r {
	case ResultOk:
		return "ok"
	case ResultFalse:
		return "false"
	case ResultInvalidArgument:
		return "invalid argument"
	case ResultNotImplemented:
		return "not implemented"
	case ResultInternalError:
		return "internal error"
	case ResultNotInitialized:
		return "not initialized"
	case ResultOutOfMemory:
		return "out of memory"
	default:
		return "unknown"
	}
}

// ResultFromError maps a transport or dispatch error onto the interface's
// standard failure code. A broken channel mid-call must look like a normal
// failed call to the caller, never like a crash.
func ResultFromError(err error) Result {
	if err == nil {
		return ResultOk
	}
	return ResultInternalError
}
