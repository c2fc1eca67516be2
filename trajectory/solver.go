// Package trajectory computes launch parameters for projectiles flying a
// parabola under constant gravity. Every function is pure: the preview arc
// drawn while aiming and the impulse applied at release come from the same
// inputs and therefore describe the same curve.
package trajectory

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/common"
)

// FlightTime is the pair of flight durations interpolated by range percent.
// Close targets use Min (fast, flat throws), targets at max range use Max
// (slow, lobbed throws).
type FlightTime struct {
	Min float64
	Max float64
}

// Common flight time pairs.
var (
	BombFlight = FlightTime{Min: 0.1, Max: 1.2}
	FoodFlight = FlightTime{Min: 0.05, Max: 0.6}
)

// At returns the flight time for a range percent in [0, 1].
func (f FlightTime) At(rangePercent float64) float64 {
	return common.Lerp(f.Min, f.Max, common.Saturate(rangePercent))
}

func (f FlightTime) validate() error {
	if !(f.Min > 0) {
		return fmt.Errorf("trajectory: flight time min %v must be positive", f.Min)
	}
	if f.Max < f.Min {
		return fmt.Errorf("trajectory: flight time max %v below min %v", f.Max, f.Min)
	}
	return nil
}

// Solution is the launch state for one throw.
type Solution struct {
	Launch       cp.Vector
	Target       cp.Vector // range-clamped target
	Velocity     cp.Vector
	Impulse      cp.Vector
	FlightTime   float64
	RangePercent float64
}

// AdjustAim clamps target onto the circle of radius maxRange around launch,
// keeping the bearing, and reports how much of the range is used.
func AdjustAim(launch, target cp.Vector, maxRange float64) (cp.Vector, float64) {
	dist := launch.Distance(target)
	if dist > maxRange {
		dir := target.Sub(launch).Normalize()
		return launch.Add(dir.Mult(maxRange)), 1
	}
	return target, common.Saturate(dist / maxRange)
}

// Solve returns the velocity and impulse that carry a body of the given mass
// from launch to target (clamped to maxRange) under gravityY.
//
// A non-positive maxRange or an invalid flight time pair is a programming
// error and panics.
func Solve(launch, target cp.Vector, maxRange, gravityY, mass float64, flight FlightTime) Solution {
	if !(maxRange > 0) {
		panic(fmt.Sprintf("trajectory: max range %v must be positive", maxRange))
	}
	if err := flight.validate(); err != nil {
		panic(err.Error())
	}

	adjusted, rangePercent := AdjustAim(launch, target, maxRange)
	t := flight.At(rangePercent)
	d := adjusted.Sub(launch)

	vel := cp.Vector{
		X: d.X / t,
		Y: (2*d.Y - gravityY*t*t) / (2 * t),
	}

	return Solution{
		Launch:       launch,
		Target:       adjusted,
		Velocity:     vel,
		Impulse:      vel.Mult(mass),
		FlightTime:   t,
		RangePercent: rangePercent,
	}
}

// PositionAt evaluates the parabola of s at time t after launch.
func PositionAt(s Solution, gravityY, t float64) cp.Vector {
	return cp.Vector{
		X: s.Launch.X + s.Velocity.X*t,
		Y: s.Launch.Y + s.Velocity.Y*t + 0.5*gravityY*t*t,
	}
}

// Landing reports whether p is within eps of the solution target.
func Landing(s Solution, gravityY, eps float64) bool {
	p := PositionAt(s, gravityY, s.FlightTime)
	return math.Abs(p.X-s.Target.X) <= eps && math.Abs(p.Y-s.Target.Y) <= eps
}
