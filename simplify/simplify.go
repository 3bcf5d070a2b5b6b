// Package simplify prunes traced polylines to a visually equivalent reduced
// point set before they are handed to a renderer.
package simplify

import "github.com/zijianstudio/fieldline/geom"

// Polyline prunes points whose removal keeps the drawn curve within maxOffset
// of the original. First and last points are always kept.
//
// Greedy single sweep: a point is kept as soon as the chord from the last
// kept point to the point after it leaves some intermediate point more than
// maxOffset away, then the window restarts from the kept point. This is a
// fast rendering heuristic, not Douglas-Peucker, and is not topologically
// safe for every curve shape; renderers tolerate that in exchange for one
// cheap pass over polylines that run to thousands of points.
func Polyline(points []geom.Vector2, maxOffset float64) []geom.Vector2 {
	n := len(points)
	if n <= 2 {
		out := make([]geom.Vector2, n)
		copy(out, points)
		return out
	}

	kept := make([]geom.Vector2, 0, n/2+2)
	kept = append(kept, points[0])
	anchorIndex := 0

	for i := 1; i < n-1; i++ {
		anchor := kept[len(kept)-1]
		for j := anchorIndex; j < i+1; j++ {
			if DistanceFromLine(points[j+1], anchor, points[i+1]) > maxOffset {
				kept = append(kept, points[i])
				anchorIndex = i
				break
			}
		}
	}

	return append(kept, points[n-1])
}

// DistanceFromLine returns the perpendicular distance from p to the infinite
// line through a and b, using the exact cross-product form normalized by the
// segment length. Degenerates to point distance when a == b.
func DistanceFromLine(p, a, b geom.Vector2) float64 {
	ab := b.Sub(a)
	length := ab.Magnitude()
	if length == 0 {
		return p.Distance(a)
	}
	cross := ab.Cross(p.Sub(a))
	if cross < 0 {
		cross = -cross
	}
	return cross / length
}
