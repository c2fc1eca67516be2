package system

import (
	"github.com/milk9111/abilitykit/common"
	"github.com/milk9111/abilitykit/ecs"
)

// Simulation is an ECS world with the ability pipeline installed.
type Simulation struct {
	World     *ecs.World
	Physics   *PhysicsSystem
	Abilities *AbilityWorld
}

// NewSimulation registers the systems in update order: input and ability
// ticks first, then movement and buffs, physics, and the consequences of
// the step.
func NewSimulation(dt float64) *Simulation {
	if dt <= 0 {
		dt = common.TickSeconds
	}
	w := ecs.NewWorld()
	physics := NewPhysicsSystem(dt)
	aw := NewAbilityWorld(w, physics)

	w.AddSystem(NewAbilitySystem(dt))
	w.AddSystem(NewMovementSystem(dt))
	w.AddSystem(NewBuffSystem(dt))
	w.AddSystem(physics)
	w.AddSystem(NewFuseSystem(dt, aw))
	w.AddSystem(NewPayloadSystem())
	w.AddSystem(NewHealthSystem())
	w.AddSystem(NewTTLSystem(dt))

	return &Simulation{World: w, Physics: physics, Abilities: aw}
}

// Step runs every system once.
func (s *Simulation) Step() {
	if s == nil {
		return
	}
	s.World.Update()
}
