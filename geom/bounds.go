package geom

// Bounds is an axis-aligned rectangle in model coordinates.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBoundsCentered returns bounds of the given width/height centered on the origin.
func NewBoundsCentered(width, height float64) Bounds {
	return Bounds{
		MinX: -width / 2,
		MinY: -height / 2,
		MaxX: width / 2,
		MaxY: height / 2,
	}
}

// Contains checks if point is within bounds (max edges inclusive).
func (b Bounds) Contains(p Vector2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Dilated returns bounds grown by amount on every side.
// Negative amounts shrink; the caller is responsible for keeping the result valid.
func (b Bounds) Dilated(amount float64) Bounds {
	return Bounds{
		MinX: b.MinX - amount,
		MinY: b.MinY - amount,
		MaxX: b.MaxX + amount,
		MaxY: b.MaxY + amount,
	}
}

func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// Center returns the center point of the bounds
func (b Bounds) Center() Vector2 {
	return Vector2{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

// Union returns the smallest bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	r := b
	if o.MinX < r.MinX {
		r.MinX = o.MinX
	}
	if o.MinY < r.MinY {
		r.MinY = o.MinY
	}
	if o.MaxX > r.MaxX {
		r.MaxX = o.MaxX
	}
	if o.MaxY > r.MaxY {
		r.MaxY = o.MaxY
	}
	return r
}
