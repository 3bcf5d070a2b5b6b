package geom

import "math"

// Vector2 is a 2D float64 vector. The zero value is the origin / null vector.
type Vector2 struct {
	X, Y float64
}

// Zero is the null vector, a valid field sample (e.g. cancelling charges).
var Zero = Vector2{}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// Scale multiplies both components by factor.
func (v Vector2) Scale(factor float64) Vector2 {
	return Vector2{v.X * factor, v.Y * factor}
}

func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the scalar z-component of the 3D cross product.
func (v Vector2) Cross(o Vector2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// MagnitudeSq returns squared magnitude without the sqrt
func (v Vector2) MagnitudeSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns the unit vector in the same direction, zero-safe.
func (v Vector2) Normalized() Vector2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vector2{}
	}
	return Vector2{v.X / mag, v.Y / mag}
}

// Perpendicular returns the vector rotated 90° clockwise (y-up convention).
// Stepping along the perpendicular of the local field keeps potential constant.
func (v Vector2) Perpendicular() Vector2 {
	return Vector2{v.Y, -v.X}
}

// Rotated returns the vector rotated by angle radians counter-clockwise.
func (v Vector2) Rotated(angle float64) Vector2 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

func (v Vector2) Distance(o Vector2) float64 {
	return v.Sub(o).Magnitude()
}

// DistanceSq returns squared distance without the sqrt
func (v Vector2) DistanceSq(o Vector2) float64 {
	return v.Sub(o).MagnitudeSq()
}

// AngleBetween returns the unsigned angle between v and o in [0, π].
// Returns 0 when either vector is null.
func (v Vector2) AngleBetween(o Vector2) float64 {
	mags := v.Magnitude() * o.Magnitude()
	if mags == 0 {
		return 0
	}
	cos := v.Dot(o) / mags
	// Floating error can push cos fractionally outside [-1, 1]
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
