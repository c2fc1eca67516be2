package trajectory

import "github.com/jakecoffman/cp"

// Preview arc defaults used by thrown abilities.
const (
	DefaultArcSteps    = 32
	DefaultArcDuration = 1.0
)

// SampleArc samples steps points of the solution's parabola spread evenly
// over duration seconds, starting at the launch point. The result is
// appended to dst so callers can reuse a buffer every frame.
func SampleArc(dst []cp.Vector, s Solution, gravityY float64, steps int, duration float64) []cp.Vector {
	if steps <= 0 {
		return dst[:0]
	}
	dst = dst[:0]
	step := duration / float64(steps)
	for i := 0; i < steps; i++ {
		dst = append(dst, PositionAt(s, gravityY, step*float64(i)))
	}
	return dst
}
