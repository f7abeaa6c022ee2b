// Package fri implements the FRI low-degree test: committing to a chain of
// progressively-folded evaluations down to a fully-disclosed last layer,
// and the query-consistency check that verifies them, per §4.F.
package fri

import "fmt"

const (
	minLogBlowupFactor         = 1
	maxLogBlowupFactor         = 16
	minLogLastLayerDegreeBound = 0
	maxLogLastLayerDegreeBound = 10
)

// Config bounds a FRI instance's soundness parameters, matching the ranges
// the real protocol enforces so a misconfigured blowup or query count is
// caught before any proof is built (§4.F).
type Config struct {
	LogBlowupFactor         uint32
	LogLastLayerDegreeBound uint32
	NQueries                int
}

// NewConfig validates and returns a FRI configuration.
func NewConfig(logBlowupFactor, logLastLayerDegreeBound uint32, nQueries int) (Config, error) {
	if logBlowupFactor < minLogBlowupFactor || logBlowupFactor > maxLogBlowupFactor {
		return Config{}, fmt.Errorf("fri: log_blowup_factor %d out of range [%d,%d]", logBlowupFactor, minLogBlowupFactor, maxLogBlowupFactor)
	}
	if logLastLayerDegreeBound < minLogLastLayerDegreeBound || logLastLayerDegreeBound > maxLogLastLayerDegreeBound {
		return Config{}, fmt.Errorf("fri: log_last_layer_degree_bound %d out of range [%d,%d]", logLastLayerDegreeBound, minLogLastLayerDegreeBound, maxLogLastLayerDegreeBound)
	}
	if nQueries <= 0 {
		return Config{}, fmt.Errorf("fri: n_queries must be positive, got %d", nQueries)
	}
	return Config{LogBlowupFactor: logBlowupFactor, LogLastLayerDegreeBound: logLastLayerDegreeBound, NQueries: nQueries}, nil
}

// SecurityBits returns the configuration's query-phase soundness bound.
func (c Config) SecurityBits() uint32 {
	return c.LogBlowupFactor * uint32(c.NQueries)
}

// LastLayerDomainSize returns the evaluation domain size at which folding
// stops and the last layer polynomial is disclosed in full.
func (c Config) LastLayerDomainSize() int {
	return 1 << (c.LogLastLayerDegreeBound + c.LogBlowupFactor)
}
