package common

// Gravity is the default downward acceleration in world units per second
// squared. Screen coordinates grow downward, so gravity is positive Y.
const Gravity = 1000.0

// TickSeconds is the fixed simulation step at 60 ticks per second.
const TickSeconds = 1.0 / 60.0

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Saturate clamps v into [0, 1].
func Saturate(v float64) float64 {
	return Clamp(v, 0, 1)
}
