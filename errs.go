package tap

import "errors"

var (
	// ErrMalformedHeader is returned when the first line of a stream is
	// not the exact "TAP Version 14" header.
	ErrMalformedHeader = errors.New("malformed TAP header")

	// ErrTruncated is returned when the source ends while a unit is
	// still missing its terminator or closing marker.
	ErrTruncated = errors.New("truncated TAP stream")
)
