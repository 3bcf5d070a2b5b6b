package trace

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zijianstudio/fieldline/charge"
	"github.com/zijianstudio/fieldline/field"
	"github.com/zijianstudio/fieldline/geom"
)

var unitFieldConfig = field.Config{
	K:                 1,
	MinDistanceScale:  1e-9,
	MaxFieldMagnitude: 1e6,
}

func testSettings() Settings {
	return Settings{
		MaxSteps:        5000,
		MinSteps:        1000,
		MinEpsilon:      0.01,
		MaxEpsilon:      0.05,
		Bounds:          geom.NewBoundsCentered(20, 20),
		SeedRetryOffset: geom.Vector2{X: 3.1415e-4, Y: 2.7182e-4},
	}
}

func pc(sign charge.Sign, x, y float64) charge.PointCharge {
	return charge.PointCharge{Position: geom.Vector2{X: x, Y: y}, Sign: sign}
}

func newTracer(st Settings, charges ...charge.PointCharge) *Tracer {
	ev := field.NewEvaluator(unitFieldConfig, charge.NewSet(charges...))
	return New(ev, st, nil)
}

func TestTraceRejectsNoFieldConfigurations(t *testing.T) {
	// Empty set
	curve := newTracer(testSettings()).Trace(geom.Vector2{X: 1, Y: 1})
	require.True(t, curve.Empty())

	// Cancelled pair
	curve = newTracer(testSettings(),
		pc(charge.Positive, 0, 0), pc(charge.Negative, 0, 0),
	).Trace(geom.Vector2{X: 1, Y: 1})
	require.True(t, curve.Empty())
}

func TestTraceRejectsZeroFieldSeed(t *testing.T) {
	// Two equal positive charges: the field cancels exactly at the midpoint,
	// so there is no direction to trace from
	tr := newTracer(testSettings(),
		pc(charge.Positive, -1, 0), pc(charge.Positive, 1, 0))
	curve := tr.Trace(geom.Vector2{})
	require.True(t, curve.Empty())
}

func TestTraceSingleChargeCircleCloses(t *testing.T) {
	tr := newTracer(testSettings(), pc(charge.Positive, 0, 0))
	curve := tr.Trace(geom.Vector2{X: 1, Y: 0})

	require.False(t, curve.Empty())
	require.True(t, curve.IsClosed)
	require.True(t, curve.TerminatedInsideBounds)
	require.InDelta(t, 1.0, curve.Potential, 1e-12)

	// The equipotential through (1, 0) is the unit circle; the corrected
	// stepping must hold every point close to radius 1
	for _, p := range curve.Points {
		require.InDelta(t, 1.0, p.Magnitude(), 0.02,
			"point (%v, %v) strayed off the unit circle", p.X, p.Y)
	}

	// Closed within the budget, with roughly one point per degree
	require.Less(t, len(curve.Points), 1000)
	require.Greater(t, len(curve.Points), 180)
	require.InDelta(t, 2*math.Pi, curve.TotalLength(), 0.2)
}

func TestTraceWindingAndAssemblyOrder(t *testing.T) {
	st := testSettings()
	st.MinSteps = 2
	// Bounds so tight that both cursors are outside after two steps, giving
	// a minimal five-point curve to inspect
	st.Bounds = geom.Bounds{MinX: 0.995, MinY: -0.005, MaxX: 1.005, MaxY: 0.005}
	tr := newTracer(st, pc(charge.Positive, 0, 0))

	curve := tr.Trace(geom.Vector2{X: 1, Y: 0})
	require.Len(t, curve.Points, 5)

	// Middle point is the seed; the reversed clockwise trail (which travels
	// toward -y for an outward field at (1,0)) comes first
	require.Equal(t, geom.Vector2{X: 1, Y: 0}, curve.Points[2])
	require.Negative(t, curve.Points[0].Y)
	require.Positive(t, curve.Points[4].Y)
}

func TestTraceDipoleBisectorExitsBounds(t *testing.T) {
	st := testSettings()
	st.MinSteps = 8
	tr := newTracer(st,
		pc(charge.Positive, -1, 0), pc(charge.Negative, 1, 0))

	// The zero-potential equipotential of a dipole is the perpendicular
	// bisector: an unbounded straight line, so the trace must leave the
	// region open rather than close it
	curve := tr.Trace(geom.Vector2{X: 0, Y: 0.5})

	require.False(t, curve.Empty())
	require.False(t, curve.IsClosed)
	require.False(t, curve.TerminatedInsideBounds)
	require.InDelta(t, 0.0, curve.Potential, 1e-12)

	for _, p := range curve.Points {
		require.InDelta(t, 0.0, p.X, 0.01,
			"point (%v, %v) strayed off the bisector", p.X, p.Y)
	}
}

func TestTraceBoundaryTerminationSmallBounds(t *testing.T) {
	st := testSettings()
	st.MinSteps = 8
	st.Bounds = geom.Bounds{MinX: 0.8, MinY: -0.2, MaxX: 1.2, MaxY: 0.2}
	tr := newTracer(st, pc(charge.Positive, 0, 0))

	curve := tr.Trace(geom.Vector2{X: 1, Y: 0})

	require.False(t, curve.Empty())
	require.False(t, curve.IsClosed)
	require.False(t, curve.TerminatedInsideBounds)
	// The unit circle leaves the shrunken region within a few dozen steps
	require.Less(t, len(curve.Points), 200)
}

func TestTraceStepBudgetAndStuckSeedRetry(t *testing.T) {
	st := testSettings()
	st.MaxSteps = 50
	st.MinSteps = 10
	// Radius-2 circle: ~180 steps per direction to close, so a 50-step
	// budget exhausts in bounds and triggers the single offset retry
	tr := newTracer(st, pc(charge.Positive, 0, 0))
	curve := tr.Trace(geom.Vector2{X: 2, Y: 0})

	require.False(t, curve.Empty())
	require.False(t, curve.IsClosed)
	require.True(t, curve.TerminatedInsideBounds)
	require.True(t, curve.Stats.Retried)

	// Never more than MaxSteps points per direction, plus the seed
	require.Len(t, curve.Points, 2*st.MaxSteps+1)
}

func TestTraceStatsAccountForEveryStep(t *testing.T) {
	tr := newTracer(testSettings(), pc(charge.Positive, 0, 0))
	curve := tr.Trace(geom.Vector2{X: 1, Y: 0})

	total := curve.Stats.AcceptedCorrections + curve.Stats.RK4Fallbacks
	require.Equal(t, len(curve.Points)-1, total)

	// A smooth circle never needs the fallback
	require.Zero(t, curve.Stats.RK4Fallbacks)
	require.Positive(t, curve.Stats.AcceptedCorrections)
}

func TestNextPositionFallsBackNearSharpCurvature(t *testing.T) {
	tr := newTracer(testSettings(), pc(charge.Positive, 0, 0))

	// A half-unit step from radius 0.1 makes the linear correction longer
	// than the step itself: the tracer must switch tiers
	pos := geom.Vector2{X: 0.1, Y: 0}
	target := tr.ev.Potential(pos).Value
	_, method := tr.nextPosition(pos, target, 0.5)
	require.Equal(t, StepRK4, method)

	// A small step on gentle curvature stays on the cheap tier
	pos = geom.Vector2{X: 1, Y: 0}
	target = tr.ev.Potential(pos).Value
	next, method := tr.nextPosition(pos, target, 0.01)
	require.Equal(t, StepCorrection, method)
	require.InDelta(t, 1.0, next.Magnitude(), 1e-3)
}

func TestRK4StaysOnCircle(t *testing.T) {
	tr := newTracer(testSettings(), pc(charge.Positive, 0, 0))

	// One large RK4 step around the unit circle keeps the radius within
	// fourth-order error
	next := tr.rk4Position(geom.Vector2{X: 1, Y: 0}, 0.05)
	require.InDelta(t, 1.0, next.Magnitude(), 1e-5)
	require.Negative(t, next.Y) // positive step travels clockwise
}

func TestConcurrentTracesShareNothing(t *testing.T) {
	set := charge.NewSet(
		pc(charge.Positive, -1, 0), pc(charge.Negative, 1, 0))

	seeds := []geom.Vector2{
		{X: 0, Y: 0.5}, {X: 0, Y: 1}, {X: 0, Y: 1.5}, {X: 0, Y: 2},
	}

	var wg sync.WaitGroup
	curves := make([]Curve, len(seeds))
	for i, seed := range seeds {
		wg.Add(1)
		go func(i int, seed geom.Vector2) {
			defer wg.Done()
			ev := field.NewEvaluator(unitFieldConfig, set.Snapshot())
			curves[i] = New(ev, testSettings(), nil).Trace(seed)
		}(i, seed)
	}
	wg.Wait()

	for i, curve := range curves {
		require.False(t, curve.Empty(), "trace %d came back empty", i)
	}
}
