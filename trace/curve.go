package trace

import (
	"github.com/zijianstudio/fieldline/geom"
	"github.com/zijianstudio/fieldline/simplify"
)

// Curve is one traced equipotential polyline. It is built fresh per trace,
// owned by the caller and never mutated after being returned.
//
// Points are ordered so that walking them in sequence keeps the electric
// field on a consistent clockwise rotational sense relative to the tangent;
// renderers rely on that winding.
type Curve struct {
	Points []geom.Vector2

	// IsClosed is set when the two tracing cursors met again.
	IsClosed bool

	// TerminatedInsideBounds is set when at least one cursor still sat inside
	// the enlarged trace region when tracing stopped.
	TerminatedInsideBounds bool

	// Potential is the target potential the curve was traced at, recorded so
	// renderers can label the contour without re-evaluating.
	Potential float64

	Stats Stats
}

// Stats records how a trace was produced, one counter per stepping tier.
type Stats struct {
	// AcceptedCorrections counts cheap midpoint-plus-Newton-correction steps.
	AcceptedCorrections int

	// RK4Fallbacks counts steps that fell back to the Runge-Kutta integrator
	// because the linear correction was unreliable.
	RK4Fallbacks int

	// Retried is set when the trace restarted once from the deterministic
	// seed offset after exhausting its step budget in bounds.
	Retried bool
}

// Empty reports a rejected trace (no field, or no direction at the seed).
func (c Curve) Empty() bool {
	return len(c.Points) == 0
}

// Simplified returns the render-ready pruned copy of the polyline.
func (c Curve) Simplified(maxOffset float64) []geom.Vector2 {
	return simplify.Polyline(c.Points, maxOffset)
}

// TotalLength returns the summed segment length of the polyline.
func (c Curve) TotalLength() float64 {
	total := 0.0
	for i := 1; i < len(c.Points); i++ {
		total += c.Points[i].Distance(c.Points[i-1])
	}
	return total
}

// Bounds returns the tight axis-aligned bounds of the polyline, useful for
// renderer fit-to-view. Returns zero bounds for an empty curve.
func (c Curve) Bounds() geom.Bounds {
	if len(c.Points) == 0 {
		return geom.Bounds{}
	}
	b := geom.Bounds{
		MinX: c.Points[0].X, MinY: c.Points[0].Y,
		MaxX: c.Points[0].X, MaxY: c.Points[0].Y,
	}
	for _, p := range c.Points[1:] {
		b = b.Union(geom.Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y})
	}
	return b
}
