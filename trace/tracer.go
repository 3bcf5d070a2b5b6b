// Package trace grows equipotential polylines from a seed point by stepping
// perpendicular to the local electric field in both rotational directions at
// once, with curvature-adapted step lengths and an RK4 fallback near sharp
// turns. A trace owns no shared state beyond its own trails, so independent
// traces may run concurrently as long as each evaluator wraps its own charge
// set snapshot.
package trace

import (
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zijianstudio/fieldline/field"
	"github.com/zijianstudio/fieldline/geom"
)

// Settings bounds a trace. All values are externally configurable; the
// parameter package assembles the defaults.
type Settings struct {
	// MaxSteps is the absolute per-direction step budget, the implicit
	// computational timeout of a trace.
	MaxSteps int

	// MinSteps is the step count below which tracing continues regardless of
	// bounds, so lines that exit and re-enter are not cut short.
	MinSteps int

	// MinEpsilon and MaxEpsilon bound the adaptive step length.
	MinEpsilon float64
	MaxEpsilon float64

	// Bounds is the enlarged trace region, larger than the visible play area.
	Bounds geom.Bounds

	// SeedRetryOffset displaces the seed for the single retry taken when a
	// trace exhausts its budget without closing while still in bounds.
	SeedRetryOffset geom.Vector2

	// AngleCalibration is the turning angle (radians) that leaves the step
	// unchanged during adaptation. Zero selects the 1° default.
	AngleCalibration float64
}

// Tracer traces equipotential curves against one field evaluator.
type Tracer struct {
	ev  *field.Evaluator
	st  Settings
	log *zap.Logger
}

// New builds a tracer. logger may be nil for silent operation.
func New(ev *field.Evaluator, st Settings, logger *zap.Logger) *Tracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if st.AngleCalibration == 0 {
		st.AngleCalibration = math.Pi / 180
	}
	return &Tracer{ev: ev, st: st, log: logger}
}

// cursor is one tracing front. trail[0] is the seed; step is signed, the sign
// selecting the rotational direction of travel.
type cursor struct {
	trail []geom.Vector2
	step  float64
}

func (c *cursor) pos() geom.Vector2 {
	return c.trail[len(c.trail)-1]
}

// Trace grows the equipotential curve through seed. Rejected seeds (no field
// anywhere, or zero field magnitude at the seed, both programmer errors
// upstream) short-circuit to an empty curve rather than failing.
func (t *Tracer) Trace(seed geom.Vector2) Curve {
	log := t.log.With(zap.String("trace_id", uuid.NewString()))
	curve := t.trace(log, seed, false)
	if !curve.Empty() {
		log.Debug("trace complete",
			zap.Int("points", len(curve.Points)),
			zap.Bool("closed", curve.IsClosed),
			zap.Bool("inside_bounds", curve.TerminatedInsideBounds),
			zap.Float64("potential", curve.Potential),
			zap.Int("corrections", curve.Stats.AcceptedCorrections),
			zap.Int("rk4_fallbacks", curve.Stats.RK4Fallbacks),
			zap.Bool("retried", curve.Stats.Retried),
		)
	}
	return curve
}

func (t *Tracer) trace(log *zap.Logger, seed geom.Vector2, retried bool) Curve {
	if !t.ev.FieldPresent() {
		log.Warn("trace rejected: configuration produces no field")
		return Curve{}
	}
	if t.ev.Field(seed).Vector.IsZero() {
		log.Warn("trace rejected: zero field at seed",
			zap.Float64("x", seed.X), zap.Float64("y", seed.Y))
		return Curve{}
	}

	targetPotential := t.ev.Potential(seed).Value
	clockwise := &cursor{trail: []geom.Vector2{seed}, step: t.st.MinEpsilon}
	counter := &cursor{trail: []geom.Vector2{seed}, step: -t.st.MinEpsilon}

	var stats Stats
	closed := false
	steps := 0

	for steps < t.st.MaxSteps {
		t.advance(clockwise, targetPotential, &stats)
		t.advance(counter, targetPotential, &stats)
		steps++

		if steps >= 4 {
			clockwise.step = t.adaptedStep(clockwise)
			counter.step = t.adaptedStep(counter)

			// Closure: when the fronts approach within one combined step,
			// slow both down to a third of the gap so neither overshoots,
			// then declare the curve closed once the gap is negligible.
			approach := clockwise.pos().Distance(counter.pos())
			if approach < math.Abs(clockwise.step)+math.Abs(counter.step) {
				clockwise.step = approach / 3
				counter.step = -approach / 3
				if approach < 2*t.st.MinEpsilon {
					closed = true
					break
				}
			}
		}

		if steps >= t.st.MinSteps && !t.anyInBounds(clockwise, counter) {
			break
		}
	}

	inside := t.anyInBounds(clockwise, counter)

	// Degenerate seeds (pure quadrupole symmetry, mostly) can wander in
	// bounds without ever closing. One deterministic nudge, never more.
	if !closed && steps >= t.st.MaxSteps && inside && !retried {
		log.Debug("step budget exhausted in bounds, retrying from offset seed")
		curve := t.trace(log, seed.Add(t.st.SeedRetryOffset), true)
		curve.Stats.Retried = true
		return curve
	}

	return Curve{
		Points:                 assemble(clockwise.trail, counter.trail),
		IsClosed:               closed,
		TerminatedInsideBounds: inside,
		Potential:              targetPotential,
		Stats:                  stats,
	}
}

func (t *Tracer) advance(c *cursor, targetPotential float64, stats *Stats) {
	next, method := t.nextPosition(c.pos(), targetPotential, c.step)
	c.trail = append(c.trail, next)
	if method == StepRK4 {
		stats.RK4Fallbacks++
	} else {
		stats.AcceptedCorrections++
	}
}

// adaptedStep rescales a cursor's step from the turning angle between its two
// most recent displacements: a zero angle opens the step fully, anything else
// scales it inversely to the angle, calibrated so a one-degree turn leaves it
// unchanged (≈360 points around a full circle). The result is clamped into
// [MinEpsilon, MaxEpsilon] with the cursor's travel sign preserved.
func (t *Tracer) adaptedStep(c *cursor) float64 {
	n := len(c.trail)
	prev := c.trail[n-2].Sub(c.trail[n-3])
	last := c.trail[n-1].Sub(c.trail[n-2])
	angle := prev.AngleBetween(last)

	magnitude := math.Abs(c.step)
	if angle == 0 {
		magnitude = t.st.MaxEpsilon
	} else {
		magnitude *= t.st.AngleCalibration / angle
	}
	if magnitude < t.st.MinEpsilon {
		magnitude = t.st.MinEpsilon
	} else if magnitude > t.st.MaxEpsilon {
		magnitude = t.st.MaxEpsilon
	}

	return math.Copysign(magnitude, c.step)
}

func (t *Tracer) anyInBounds(a, b *cursor) bool {
	return t.st.Bounds.Contains(a.pos()) || t.st.Bounds.Contains(b.pos())
}

// assemble orders the output as reversed clockwise trail, seed, then the
// counter-clockwise trail, which yields the winding contract of Curve.
func assemble(clockwise, counter []geom.Vector2) []geom.Vector2 {
	points := make([]geom.Vector2, 0, len(clockwise)+len(counter)-1)
	for i := len(clockwise) - 1; i >= 1; i-- {
		points = append(points, clockwise[i])
	}
	points = append(points, clockwise[0])
	points = append(points, counter[1:]...)
	return points
}
