package stark

import (
	"github.com/vybium/circle-stark/internal/circlestark/air"
	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
	"github.com/vybium/circle-stark/internal/circlestark/poly"
)

// lde interpolates values (defined over small) into a CirclePoly and
// re-evaluates it over big, the low-degree extension every trace and
// preprocessed column needs before it can be committed at the blown-up
// size FRI requires (§4.I step 4, §9 REDESIGN "trace committed at its
// blown-up evaluation").
func lde(values []field.M31, small, big circle.CircleDomain) ([]field.M31, error) {
	ev, err := poly.NewCircleEvaluation(values, small)
	if err != nil {
		return nil, err
	}
	return ev.Interpolate().Evaluate(big).Values, nil
}

// vanishingInvOverDomain computes 1/V(p) for every point p of domain,
// where V is the canonic vanishing polynomial of the trace domain
// (logTraceSize), via air.VanishingAtM31 plus a single batched inversion
// (§4.C, §4.A).
func vanishingInvOverDomain(logTraceSize uint32, domain circle.CircleDomain) ([]field.M31, error) {
	logSize := domain.LogSize()
	denom := make([]field.M31, domain.Size())
	for i := range denom {
		p := domain.At(circle.BitReverseIndex(i, logSize))
		denom[i] = air.VanishingAtM31(logTraceSize, p.X)
	}
	return field.BatchInverse(denom)
}

func ceilLog2(n int) uint32 {
	log := uint32(0)
	for 1<<log < n {
		log++
	}
	return log
}
