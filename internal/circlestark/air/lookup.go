package air

import (
	"fmt"

	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// InteractionCollector drives one component's Evaluate for a single row
// purely to record the RelationEntry values it declares via
// add_to_relation, so a caller can batch them across every row into
// BuildLogupColumn afterwards (§4.H "add_to_relation" / "finalize_logup").
// It otherwise reads trace and preprocessed values exactly like
// DomainEvaluator; a logup-only component adds no polynomial
// constraints of its own, so AddConstraint is intentionally a no-op here
// rather than folding into a composition accumulator.
type InteractionCollector struct {
	Row              int
	TraceColumns     [][]field.M31
	PreprocessedCols map[string][]field.M31

	traceIdx int
	Entries  []RelationEntry
}

// NewInteractionCollector builds a collector bound to one row.
func NewInteractionCollector(row int, traceColumns [][]field.M31, preprocessedCols map[string][]field.M31) *InteractionCollector {
	return &InteractionCollector{Row: row, TraceColumns: traceColumns, PreprocessedCols: preprocessedCols}
}

func (e *InteractionCollector) NextTraceMask() field.QM31 {
	v := field.FromM31(e.TraceColumns[e.traceIdx][e.Row])
	e.traceIdx++
	return v
}

func (e *InteractionCollector) NextInteractionMask(tree int, offsets []int) []field.QM31 {
	out := make([]field.QM31, len(offsets))
	for i := range offsets {
		out[i] = e.NextTraceMask()
	}
	return out
}

func (e *InteractionCollector) NextExtensionInteractionMask(tree int, offsets []int) field.QM31 {
	return e.NextTraceMask()
}

func (e *InteractionCollector) GetPreprocessedColumn(id string) field.QM31 {
	return field.FromM31(e.PreprocessedCols[id][e.Row])
}

func (e *InteractionCollector) AddConstraint(field.QM31) {}

func (e *InteractionCollector) AddToRelation(entry RelationEntry) {
	e.Entries = append(e.Entries, entry)
}

func (e *InteractionCollector) FinalizeLogup() {}

func (e *InteractionCollector) CombineEF(v [4]field.M31) field.QM31 { return combineEF(v) }

var _ EvalAtRow = (*InteractionCollector)(nil)

// LookupSide is which half of a matched logup pair a LookupPair
// component plays: the Consumer looks a value up (positive
// multiplicity), the Provider supplies it (the equal and opposite
// negative multiplicity), per §8 E5 "two components, each declaring two
// add_to_relation entries with equal-and-opposite multiplicities".
type LookupSide int

const (
	Consumer LookupSide = iota
	Provider
)

// LookupPair is a concrete component whose sole job is declaring
// add_to_relation entries: Values holds the looked-up key at each row
// and Mult its multiplicity there. A Consumer/Provider pair built from
// the same Values with the same Mult magnitude closes (their combined
// claimed sum is zero) iff their multiplicities are exact negatives of
// one another row for row, which is what §8 property 12 and scenario E5
// check (§4.H).
type LookupPair struct {
	Relation string
	Side     LookupSide
	Values   []field.M31
	Mult     []field.M31
}

// NewLookupPair validates that Values and Mult are the same length and
// wraps them as one component.
func NewLookupPair(relation string, side LookupSide, values, mult []field.M31) (*LookupPair, error) {
	if len(values) != len(mult) {
		return nil, errLookupLenMismatch
	}
	return &LookupPair{Relation: relation, Side: side, Values: values, Mult: mult}, nil
}

var errLookupLenMismatch = fmt.Errorf("air: lookup pair values and multiplicities must have equal length")

// LogSize returns the log2 of the padded row count.
func (l *LookupPair) LogSize() uint32 {
	n := len(l.Values)
	log := uint32(0)
	for 1<<log < n {
		log++
	}
	return log
}

// Trace returns the component's two main-trace columns (value, raw
// multiplicity), padded with zero rows, which trivially contribute
// nothing to the relation since a zero multiplicity's fraction is zero.
func (l *LookupPair) Trace() (values, mult []field.M31) {
	size := 1 << l.LogSize()
	values = make([]field.M31, size)
	mult = make([]field.M31, size)
	copy(values, l.Values)
	copy(mult, l.Mult)
	return values, mult
}

// Evaluate is the single declaration shared by InfoEvaluator (layout
// counting) and InteractionCollector (interaction-trace construction),
// exactly like air.Component.Evaluate: it reads the value and raw
// multiplicity columns via two NextTraceMask calls, applies the
// Provider side's sign flip, and declares one add_to_relation entry,
// matching §4.H's `multiplicity / (z - sum(alpha^i * values_i))` with a
// single value and no batching power needed.
func (l *LookupPair) Evaluate(ev EvalAtRow) {
	value := ev.NextTraceMask()
	mult := ev.NextTraceMask()
	if l.Side == Provider {
		mult = mult.Neg()
	}
	ev.AddToRelation(RelationEntry{
		Relation:     l.Relation,
		Multiplicity: mult,
		Values:       []field.QM31{value},
	})
}

// BuildInteractionTrace runs Evaluate over every row through an
// InteractionCollector, converts the declared entries into
// LogupFractions against challenge z (denominator z - values[0] for a
// single-value entry, per §4.H), and batches them through
// BuildLogupColumn into this relation's prefix-sum column and claimed
// sum (§4.H "finalize_logup").
func (l *LookupPair) BuildInteractionTrace(z field.QM31) (col []field.QM31, claimedSum field.QM31) {
	values, mult := l.Trace()
	n := len(values)
	rows := make([][]LogupFraction, n)
	for row := 0; row < n; row++ {
		collector := NewInteractionCollector(row, [][]field.M31{values, mult}, nil)
		l.Evaluate(collector)
		fracs := make([]LogupFraction, len(collector.Entries))
		for i, entry := range collector.Entries {
			fracs[i] = LogupFraction{
				Multiplicity: entry.Multiplicity,
				Denom:        z.Sub(entry.Values[0]),
			}
		}
		rows[row] = fracs
	}
	return BuildLogupColumn(rows)
}
