package parameter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zijianstudio/fieldline/geom"
)

// overrides is the YAML schema for tuning files. Every field is optional;
// absent values keep their defaults, which is why everything is a pointer.
type overrides struct {
	K                 *float64 `yaml:"k"`
	MinDistanceScale  *float64 `yaml:"min_distance_scale"`
	MaxFieldMagnitude *float64 `yaml:"max_field_magnitude"`

	MaxSteps   *int     `yaml:"max_steps"`
	MinSteps   *int     `yaml:"min_steps"`
	MinEpsilon *float64 `yaml:"min_epsilon"`
	MaxEpsilon *float64 `yaml:"max_epsilon"`

	Bounds *struct {
		MinX float64 `yaml:"min_x"`
		MinY float64 `yaml:"min_y"`
		MaxX float64 `yaml:"max_x"`
		MaxY float64 `yaml:"max_y"`
	} `yaml:"bounds"`

	SimplifyOffset *float64 `yaml:"simplify_offset"`
}

// Load reads YAML tuning overrides from r and applies them on top of the
// defaults. An empty document yields the defaults unchanged.
func Load(r io.Reader) (Tuning, error) {
	tuning := DefaultTuning()

	var o overrides
	if err := yaml.NewDecoder(r).Decode(&o); err != nil {
		if errors.Is(err, io.EOF) {
			return tuning, nil
		}
		return tuning, fmt.Errorf("decode tuning overrides: %w", err)
	}

	if o.K != nil {
		tuning.Field.K = *o.K
	}
	if o.MinDistanceScale != nil {
		tuning.Field.MinDistanceScale = *o.MinDistanceScale
	}
	if o.MaxFieldMagnitude != nil {
		tuning.Field.MaxFieldMagnitude = *o.MaxFieldMagnitude
	}
	if o.MaxSteps != nil {
		tuning.Trace.MaxSteps = *o.MaxSteps
	}
	if o.MinSteps != nil {
		tuning.Trace.MinSteps = *o.MinSteps
	}
	if o.MinEpsilon != nil {
		tuning.Trace.MinEpsilon = *o.MinEpsilon
	}
	if o.MaxEpsilon != nil {
		tuning.Trace.MaxEpsilon = *o.MaxEpsilon
	}
	if o.Bounds != nil {
		tuning.Trace.Bounds = geom.Bounds{
			MinX: o.Bounds.MinX, MinY: o.Bounds.MinY,
			MaxX: o.Bounds.MaxX, MaxY: o.Bounds.MaxY,
		}
	}
	if o.SimplifyOffset != nil {
		tuning.SimplifyOffset = *o.SimplifyOffset
	}

	return tuning, nil
}

// LoadFile loads tuning overrides from path, or the plain defaults when path
// is empty.
func LoadFile(path string) (Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return DefaultTuning(), fmt.Errorf("open tuning file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
