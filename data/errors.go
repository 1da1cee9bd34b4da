package data

import "errors"

// Validation failures surfaced by this package. All are returned wrapped with
// the offending shape, label or value so callers can match with errors.Is.
var (
	ErrShapeMismatch     = errors.New("data shape does not match model output")
	ErrMissingColumns    = errors.New("data columns do not match observed state names")
	ErrUnsupportedIndex  = errors.New("hierarchical index is not supported")
	ErrMalformedIndex    = errors.New("index is not a consecutive integer range")
	ErrSentinelCollision = errors.New("missing value marker collides with data")
	ErrNoData            = errors.New("no data container provided")
)
