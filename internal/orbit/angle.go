// Package orbit implements the radial navigation dial: angle math, the
// navigation state machine and the translators that turn wheel, drag, touch
// and key input into rotations.
package orbit

import "math"

const fullTurn = 360.0

// NormalizeAngle maps a into [0, 360). NaN and ±Inf come back as NaN.
func NormalizeAngle(a float64) float64 {
	n := math.Mod(a, fullTurn)
	if n < 0 {
		n += fullTurn
	}
	// -1e-15 + 360 rounds to 360.
	if n >= fullTurn {
		n -= fullTurn
	}
	return n
}

// AngularDistance returns the signed shortest rotation from a1 to a2 in
// degrees, in the range (-180, 180]. A half turn is reported as +180.
func AngularDistance(a1, a2 float64) float64 {
	d := NormalizeAngle(a2-a1+fullTurn/2) - fullTurn/2
	if d == -fullTurn/2 {
		return fullTurn / 2
	}
	return d
}

// SnapAngle rounds a to the nearest multiple of step. Exact halves round away
// from zero, so SnapAngle(45, 90) == 90 and SnapAngle(-45, 90) == -90.
// A non-positive or non-finite step returns a unchanged.
func SnapAngle(a, step float64) float64 {
	if step <= 0 || !isFinite(step) {
		return a
	}
	return math.Round(a/step) * step
}

// FindClosestNode returns the node nearest to angle along the circle. Exact
// ties go to the node that comes first in nodes. ok is false when nodes is empty.
func FindClosestNode(angle float64, nodes []Node) (closest Node, ok bool) {
	if len(nodes) == 0 {
		return Node{}, false
	}
	closest = nodes[0]
	best := math.Abs(AngularDistance(angle, nodes[0].Angle))
	for _, n := range nodes[1:] {
		if d := math.Abs(AngularDistance(angle, n.Angle)); d < best {
			best = d
			closest = n
		}
	}
	return closest, true
}

// NodePosition places angle on a circle of the given radius around (cx, cy).
// 0° points along +x and angles grow toward +y.
func NodePosition(angle, radius, cx, cy float64) (x, y float64) {
	rad := angle * math.Pi / (fullTurn / 2)
	return cx + radius*math.Cos(rad), cy + radius*math.Sin(rad)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
