package trace

import (
	"math"

	"github.com/zijianstudio/fieldline/geom"
)

// StepMethod tags which stepping tier produced a position, kept as data so
// step decisions stay auditable in stats and tests.
type StepMethod uint8

const (
	// StepCorrection is the primary tier: midpoint along the equipotential
	// tangent plus a first-order Newton correction toward the target
	// potential. Cheap, and free of long-run potential drift.
	StepCorrection StepMethod = iota

	// StepRK4 is the fallback tier: classical 4th-order Runge-Kutta over the
	// rotated unit field. Bounded even near sharp curvature, used only when
	// the linear correction is unreliable.
	StepRK4
)

// tangent returns the unit equipotential direction at p: the normalized field
// rotated 90° clockwise. A signed step length applied to it selects the travel
// direction for each cursor. Zero-safe.
func (t *Tracer) tangent(p geom.Vector2) geom.Vector2 {
	return t.ev.Direction(p).Perpendicular()
}

// nextPosition advances one cursor by the signed stepLength and reports which
// tier produced the result.
//
// The primary tier displaces along the local tangent, then corrects by
//
//	E(mid) · ΔV / |E(mid)|²
//
// which is a Newton step toward the target potential (V decreases along E, so
// a positive ΔV moves with the field). When that correction comes out longer
// than the step itself the local linearization is not to be trusted, likely
// high curvature, and the whole step is redone with RK4.
func (t *Tracer) nextPosition(pos geom.Vector2, targetPotential, stepLength float64) (geom.Vector2, StepMethod) {
	mid := pos.Add(t.tangent(pos).Scale(stepLength))

	fieldAtMid := t.ev.Field(mid).Vector
	magSq := fieldAtMid.MagnitudeSq()
	if magSq == 0 {
		// No gradient to correct against, e.g. the midpoint landed on a
		// saddle; RK4 still integrates through it
		return t.rk4Position(pos, stepLength), StepRK4
	}

	deltaV := t.ev.Potential(mid).Value - targetPotential
	if math.IsInf(deltaV, 0) || math.IsNaN(deltaV) {
		// Seed or midpoint sits on a charge; there is no finite potential
		// to correct toward, but RK4 still follows the field geometry
		return t.rk4Position(pos, stepLength), StepRK4
	}
	correction := fieldAtMid.Scale(deltaV / magSq)
	if correction.Magnitude() > math.Abs(stepLength) {
		return t.rk4Position(pos, stepLength), StepRK4
	}

	return mid.Add(correction), StepCorrection
}

// rk4Position integrates the rotated unit field over the full signed step
// with the classical 1-2-2-1 weights.
func (t *Tracer) rk4Position(pos geom.Vector2, stepLength float64) geom.Vector2 {
	k1 := t.tangent(pos)
	k2 := t.tangent(pos.Add(k1.Scale(stepLength / 2)))
	k3 := t.tangent(pos.Add(k2.Scale(stepLength / 2)))
	k4 := t.tangent(pos.Add(k3.Scale(stepLength)))

	combined := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return pos.Add(combined.Scale(stepLength / 6))
}
