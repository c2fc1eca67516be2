package component

import "github.com/milk9111/abilitykit/ability"

// Fuse explodes its entity when Remaining reaches zero.
type Fuse struct {
	Remaining float64
	Radius    float64
	Damage    float64
	Owner     ability.EntityID
}

var FuseComponent = NewComponent[Fuse]()
