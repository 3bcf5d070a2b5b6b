package constant

// Raw default physics and tracing constants. Everything here is a default:
// callers tune the assembled values through the parameter package, never by
// editing this file.

// Field evaluation
const (
	// CoulombConstant is the SI prefactor k = 1/(4πε₀) in N·m²/C².
	CoulombConstant = 8.9875517873681764e9

	// MinDistanceScale is the squared-distance floor (m²) below which a charge
	// counts as coincident with a query point.
	MinDistanceScale = 1e-9

	// MaxFieldMagnitude caps displayed field magnitude (V/m); coincident
	// charges contribute 10x this value along +x.
	MaxFieldMagnitude = 1e6
)

// Equipotential tracing
const (
	TraceMaxSteps = 5000
	TraceMinSteps = 1000

	// Adaptive step length bounds in model units
	MaxEpsilonDistance = 0.05
	MinEpsilonDistance = 0.01

	// StepAngleCalibration is the turning angle (radians) at which the
	// adaptive step stays unchanged: 1°, so ~360 points trace a full circle.
	StepAngleCalibration = 0.017453292519943295
)

// Play area and trace region
const (
	PlayAreaWidth  = 8.0
	PlayAreaHeight = 5.0

	// TraceBoundsMargin enlarges the play area for tracing so lines that exit
	// and re-enter the visible region are still followed.
	TraceBoundsMargin = 2.0
)

// Seed retry offset applied when a trace exhausts its budget without closing
// while still in bounds (pure-quadrupole style degeneracy). Deterministic and
// deliberately incommensurate with any grid.
const (
	SeedRetryOffsetX = 3.1415e-4
	SeedRetryOffsetY = 2.7182e-4
)

// Polyline simplification
const (
	// SimplifyMaxOffset is the perpendicular-distance visual tolerance in
	// model units below which intermediate points are pruned.
	SimplifyMaxOffset = 0.005
)
