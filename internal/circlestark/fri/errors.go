package fri

import "errors"

var (
	// ErrNoColumns is returned when no input evaluation is supplied.
	ErrNoColumns = errors.New("fri: no input evaluation supplied")
	// ErrInvalidNumLayers is returned when a proof's inner layer count
	// does not match the expected fold schedule.
	ErrInvalidNumLayers = errors.New("fri: invalid number of fri layers")
	// ErrFirstLayerCommitmentInvalid is returned when the first folded
	// layer's Merkle opening fails to verify.
	ErrFirstLayerCommitmentInvalid = errors.New("fri: first layer commitment invalid")
	// ErrInnerLayerCommitmentInvalid is returned when an inner layer's
	// Merkle opening fails to verify.
	ErrInnerLayerCommitmentInvalid = errors.New("fri: inner layer commitment invalid")
	// ErrInnerLayerEvaluationsInvalid is returned when a layer's decommitted
	// values do not fold consistently into the next layer's claimed value.
	ErrInnerLayerEvaluationsInvalid = errors.New("fri: inner layer evaluations invalid")
	// ErrLastLayerDegreeInvalid is returned when the disclosed last layer
	// polynomial's coefficient count is not exactly 2^LogLastLayerDegreeBound.
	ErrLastLayerDegreeInvalid = errors.New("fri: last layer degree invalid")
	// ErrLastLayerEvaluationsInvalid is returned when a query's folded
	// value disagrees with the last layer polynomial evaluated at the
	// matching point.
	ErrLastLayerEvaluationsInvalid = errors.New("fri: last layer evaluations invalid")
)
