// Package systems provides the pure per-agent update helpers: steering,
// spawn search, animation, and movement integration. Everything here is
// stateless given its inputs; orchestration lives in the game package.
package systems

import "math"

// distanceSq returns the squared planar distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// distance returns the planar Euclidean distance between two points.
func distance(x1, y1, x2, y2 float32) float32 {
	return float32(math.Sqrt(float64(distanceSq(x1, y1, x2, y2))))
}

// magnitude returns the length of a planar vector.
func magnitude(x, y float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y)))
}

// normalize scales a planar vector to unit length. Returns ok=false when the
// vector is too short to have a meaningful direction.
func normalize(x, y float32) (nx, ny float32, ok bool) {
	m := magnitude(x, y)
	if m < 1e-3 {
		return 0, 0, false
	}
	return x / m, y / m, true
}
