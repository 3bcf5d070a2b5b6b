package parameter

import (
	"github.com/zijianstudio/fieldline/constant"
	"github.com/zijianstudio/fieldline/field"
	"github.com/zijianstudio/fieldline/geom"
	"github.com/zijianstudio/fieldline/trace"
)

// Assembled default configuration, built once from the raw constants and used
// anywhere a caller does not supply its own tuning.

var (
	// DefaultFieldConfig carries the SI unit system defaults.
	DefaultFieldConfig = field.Config{
		K:                 constant.CoulombConstant,
		MinDistanceScale:  constant.MinDistanceScale,
		MaxFieldMagnitude: constant.MaxFieldMagnitude,
	}

	// PlayAreaBounds is the visible region charges live in.
	PlayAreaBounds = geom.NewBoundsCentered(constant.PlayAreaWidth, constant.PlayAreaHeight)

	// DefaultTraceSettings traces inside the play area enlarged by the
	// configured margin, so lines that exit and re-enter are followed.
	DefaultTraceSettings = trace.Settings{
		MaxSteps:   constant.TraceMaxSteps,
		MinSteps:   constant.TraceMinSteps,
		MinEpsilon: constant.MinEpsilonDistance,
		MaxEpsilon: constant.MaxEpsilonDistance,
		Bounds:     PlayAreaBounds.Dilated(constant.TraceBoundsMargin),
		SeedRetryOffset: geom.Vector2{
			X: constant.SeedRetryOffsetX,
			Y: constant.SeedRetryOffsetY,
		},
		AngleCalibration: constant.StepAngleCalibration,
	}
)

// Tuning bundles every externally configurable value of the core.
type Tuning struct {
	Field          field.Config
	Trace          trace.Settings
	SimplifyOffset float64
}

// DefaultTuning returns a fresh copy of the assembled defaults.
func DefaultTuning() Tuning {
	return Tuning{
		Field:          DefaultFieldConfig,
		Trace:          DefaultTraceSettings,
		SimplifyOffset: constant.SimplifyMaxOffset,
	}
}
