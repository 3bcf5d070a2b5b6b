// Package field computes the electric field vector and scalar potential of a
// point-charge configuration. All degenerate geometry resolves to documented
// sentinel values (zero vector, zero potential, signed infinities); nothing in
// this package panics or returns NaN.
package field

import (
	"math"

	"github.com/zijianstudio/fieldline/charge"
	"github.com/zijianstudio/fieldline/geom"
)

// Config holds the externally tunable physics constants. Unit scaling is the
// caller's business: tests run with K=1, the sandbox with the SI prefactor.
type Config struct {
	// K is the Coulomb prefactor in the chosen unit system.
	K float64

	// MinDistanceScale is the squared-distance floor below which a charge is
	// treated as coincident with the query point for field evaluation and for
	// pair-cancellation classification.
	MinDistanceScale float64

	// MaxFieldMagnitude is the display clamp for field magnitude. A charge
	// coincident with the query point contributes a fixed vector of magnitude
	// 10x this value along +x instead of blowing up.
	MaxFieldMagnitude float64
}

// FieldSample is the result of a field query. A zero vector is a valid value.
type FieldSample struct {
	Vector geom.Vector2
}

// PotentialSample is the result of a potential query. Value may be ±Inf when
// the query point coincides exactly with uniformly-signed charges; it is
// never NaN.
type PotentialSample struct {
	Value float64
}

// Infinite reports whether the sample sits exactly on net charge.
func (p PotentialSample) Infinite() bool {
	return math.IsInf(p.Value, 0)
}

// Evaluator answers field and potential queries against one immutable charge
// set snapshot. Evaluators are cheap; build a fresh one per snapshot. An
// evaluator never mutates its set, so independent evaluators can run on
// separate goroutines without locking.
type Evaluator struct {
	cfg     Config
	set     *charge.Set
	present bool
}

func NewEvaluator(cfg Config, set *charge.Set) *Evaluator {
	return &Evaluator{
		cfg:     cfg,
		set:     set,
		present: charge.FieldPresent(set, cfg.MinDistanceScale),
	}
}

// FieldPresent reports the classifier verdict for this evaluator's set.
func (e *Evaluator) FieldPresent() bool {
	return e.present
}

// Config returns the constants this evaluator was built with.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// Field returns the superposed electric field at p:
//
//	E(p) = Σ K · signᵢ · (p - pᵢ) / |p - pᵢ|³
//
// A charge within MinDistanceScale (squared distance) of p contributes the
// fixed clamp vector (10·MaxFieldMagnitude, 0) instead; the remaining charges
// still accumulate normally. The clamp is a numerical-stability device, not an
// exact value.
func (e *Evaluator) Field(p geom.Vector2) FieldSample {
	return FieldSample{Vector: e.fieldVector(p)}
}

func (e *Evaluator) fieldVector(p geom.Vector2) geom.Vector2 {
	var sum geom.Vector2
	for _, c := range e.set.All() {
		delta := p.Sub(c.Position)
		distSq := delta.MagnitudeSq()
		if distSq < e.cfg.MinDistanceScale {
			sum = sum.Add(geom.Vector2{X: 10 * e.cfg.MaxFieldMagnitude})
			continue
		}
		dist := math.Sqrt(distSq)
		sum = sum.Add(delta.Scale(e.cfg.K * float64(c.Sign) / (distSq * dist)))
	}
	return sum
}

// Direction returns the unit field direction at p, zero-safe. Renderers use it
// for sensor arrows; the tracer derives its equipotential tangent from it.
func (e *Evaluator) Direction(p geom.Vector2) geom.Vector2 {
	return e.fieldVector(p).Normalized()
}

// Potential returns the scalar potential at p:
//
//	V(p) = Σ K · signᵢ / |p - pᵢ|
//
// If the classifier sees no field anywhere, the result is 0. Charges located
// exactly at p (exact equality, no tolerance) are summed separately: a nonzero
// co-located net charge yields the matching signed infinity, a zero one is
// simply skipped. Skipping rather than clamping differs on purpose from the
// field computation.
func (e *Evaluator) Potential(p geom.Vector2) PotentialSample {
	return PotentialSample{Value: e.potentialValue(p)}
}

func (e *Evaluator) potentialValue(p geom.Vector2) float64 {
	if !e.present {
		return 0
	}

	colocated := 0
	for _, c := range e.set.All() {
		if c.Position == p {
			colocated += int(c.Sign)
		}
	}
	if colocated > 0 {
		return math.Inf(1)
	}
	if colocated < 0 {
		return math.Inf(-1)
	}

	v := 0.0
	for _, c := range e.set.All() {
		dist := p.Distance(c.Position)
		if dist == 0 {
			continue
		}
		v += e.cfg.K * float64(c.Sign) / dist
	}
	return v
}
