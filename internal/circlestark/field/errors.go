package field

import "errors"

// ErrDivisionByZero is returned by BatchInverse when an input element is
// zero. Single-element Inv panics instead: a zero passed directly to Inv
// is a programmer error, not recoverable input data.
var ErrDivisionByZero = errors.New("field: division by zero in batch inverse")
