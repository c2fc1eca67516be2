package component

import "github.com/jakecoffman/cp"

// AbilityInput stores per-frame ability input for an actor. Confirm and
// Cancel are edge triggered and cleared once consumed.
type AbilityInput struct {
	MoveX   float64
	Slot    int
	Aim     cp.Vector
	Aiming  bool
	Confirm bool
	Cancel  bool
}

var AbilityInputComponent = NewComponent[AbilityInput]()
