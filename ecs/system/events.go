package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/ability"
	"github.com/milk9111/abilitykit/ecs"
)

// World event types.
const (
	EventAbilityExecuted = "ability_executed"
	EventAbilityState    = "ability_state"
	EventSpawned         = "spawned"
	EventDamaged         = "damaged"
	EventExploded        = "exploded"
	EventHealed          = "healed"
	EventDestroyed       = "destroyed"
)

type AbilityExecuted struct {
	Entity ecs.Entity
	Action ability.Action
}

type AbilityStateChanged struct {
	Entity ecs.Entity
	Key    string
	From   ability.State
	To     ability.State
}

type Spawned struct {
	Entity ecs.Entity
	Prefab string
	Owner  ability.EntityID
}

type Damaged struct {
	Entity ecs.Entity
	Amount float64
	From   ability.EntityID
}

type Exploded struct {
	At     cp.Vector
	Radius float64
	Hits   int
}

type Healed struct {
	Entity ecs.Entity
	Amount float64
}

func push(w *ecs.World, typ string, data any) {
	w.Events().Push(ecs.Event{Type: typ, Data: data})
}
