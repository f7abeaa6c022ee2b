// Package pcs implements the polynomial commitment scheme's DEEP/quotient
// layer: combining out-of-domain mask samples into low-degree quotient
// evaluations that FRI can check, per §4.G.
package pcs

import (
	"sort"

	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// PointSample is one column's claimed value at one out-of-domain sample
// point, the basic unit DEEP quotients are built from (§4.G).
type PointSample struct {
	Point circle.SecurePoint
	Value field.QM31
}

// ColumnSampleBatch groups every column sampled at the same point, so a
// single pair of complex-conjugate line coefficients can serve the whole
// batch (§4.G). Columns carries each column's index into the caller's
// evaluation slice; Values carries the matching claimed value.
type ColumnSampleBatch struct {
	Point   circle.SecurePoint
	Columns []int
	Values  []field.QM31
}

// NewColumnSampleBatches groups per-column point samples by point, in
// first-occurrence order, mirroring ColumnSampleBatch::new_vec.
func NewColumnSampleBatches(samples map[int][]PointSample) []ColumnSampleBatch {
	order := make([]int, 0, len(samples))
	for col := range samples {
		order = append(order, col)
	}
	sort.Ints(order)

	index := make(map[circle.SecurePoint]int)
	var batches []ColumnSampleBatch
	for _, col := range order {
		for _, s := range samples[col] {
			i, ok := index[s.Point]
			if !ok {
				i = len(batches)
				index[s.Point] = i
				batches = append(batches, ColumnSampleBatch{Point: s.Point})
			}
			batches[i].Columns = append(batches[i].Columns, col)
			batches[i].Values = append(batches[i].Values, s.Value)
		}
	}
	return batches
}

// ColumnEvaluations supplies each column's full evaluation over a shared
// circle domain, keyed by the column index used in ColumnSampleBatch.
type ColumnEvaluations map[int][]field.M31

// QuotientEvaluation combines every batch's DEEP quotient into one running
// secure-field evaluation over domain, so the whole mask opening collapses
// into a single codeword for FRI to check (§4.G). Batch contributions are
// summed as they are: each batch weights its own columns alpha, alpha^2,
// ..., and no further power of alpha separates one batch from the next.
func QuotientEvaluation(batches []ColumnSampleBatch, values ColumnEvaluations, domain circle.CircleDomain, alpha field.QM31) []field.QM31 {
	dst := make([]field.QM31, domain.Size())
	for _, batch := range batches {
		AccumulateBatchQuotient(dst, batch, values, domain, alpha)
	}
	return dst
}
