package merkle

import "errors"

var (
	// ErrRootMismatch is returned when a recomputed root does not match
	// the committed root.
	ErrRootMismatch = errors.New("merkle: recomputed root does not match committed root")
	// ErrWitnessTooShort is returned when a decommitment is missing
	// sibling hashes needed to recompute the root.
	ErrWitnessTooShort = errors.New("merkle: decommitment witness too short")
	// ErrWitnessTooLong is returned when a decommitment carries unused
	// sibling hashes.
	ErrWitnessTooLong = errors.New("merkle: decommitment witness too long")
	// ErrMissingQueriedValues is returned when a query's column values are
	// absent from the decommitment.
	ErrMissingQueriedValues = errors.New("merkle: missing queried column values")
	// ErrNoColumns is returned when Commit is called with no columns.
	ErrNoColumns = errors.New("merkle: cannot commit with no columns")
)
