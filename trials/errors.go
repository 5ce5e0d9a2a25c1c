package trials

import "errors"

var (
	// ErrInvalidQuery is returned when a query has no usable search terms.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUpstreamUnavailable wraps transport failures and non-2xx registry responses.
	ErrUpstreamUnavailable = errors.New("registry unavailable")

	// ErrMalformedUpstreamResponse is returned when the registry body is not JSON or has no studies array.
	ErrMalformedUpstreamResponse = errors.New("malformed registry response")
)
