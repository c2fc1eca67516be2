package component

import "github.com/jakecoffman/cp"

// Mover walks an actor toward Target while Moving.
type Mover struct {
	Speed  float64
	Target cp.Vector
	Moving bool
	// Reach limits how far a single move order may go; zero is unlimited.
	Reach           float64
	SpeedMultiplier float64
	// Knockback is a velocity that decays each tick. Its vertical part
	// launches a hop that gravity brings back to the starting height.
	Knockback cp.Vector
	HopOffset float64
	HopSpeed  float64
}

var MoverComponent = NewComponent[Mover]()
