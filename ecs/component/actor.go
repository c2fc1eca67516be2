package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/ability"
)

// Actor holds the animation timings and attachment state an ability owner
// exposes.
type Actor struct {
	Width  float64
	Height float64
	// Hand is the throw origin relative to the center, facing right.
	Hand   cp.Vector
	Facing float64

	Throw ability.Timing
	Drop  ability.DropTiming
	Slam  ability.Timing

	Attached map[string]ability.Handle
}

var ActorComponent = NewComponent[Actor]()
