package component

import "github.com/milk9111/abilitykit/ability"

// Payload heals Target when its entity comes within Reach of it.
type Payload struct {
	Target ability.EntityID
	Heal   float64
	Reach  float64
	Owner  ability.EntityID
}

var PayloadComponent = NewComponent[Payload]()
