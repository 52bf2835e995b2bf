package slapi

import (
	"errors"
	"fmt"
)

// NetworkError indicates that the request never produced an HTTP response:
// the host was unreachable, the connection timed out, TLS failed, or the
// context was cancelled mid-flight.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error on %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err (or any error in its chain) is a
// NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// APIError is a non-2xx response from the service. Message carries the
// server-provided error string when the body contained one, otherwise a
// generic description of the status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err into an APIError if one is in its chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// DecodeError indicates a 2xx response whose body did not match the
// operation's declared shape. The body arrived; the contract didn't hold.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidURLError indicates that the base URL and endpoint path could not
// be composed into a request URL. Unreachable with a validated base URL.
type InvalidURLError struct {
	Base string
	Path string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("cannot build request URL from base %q and path %q", e.Base, e.Path)
}

// ProtocolInvariantError indicates the server violated its own contract,
// e.g. a login response claiming MFA is enabled without supplying the MFA
// key needed to complete it.
type ProtocolInvariantError struct {
	Message string
}

func (e *ProtocolInvariantError) Error() string {
	return "protocol invariant violated: " + e.Message
}
