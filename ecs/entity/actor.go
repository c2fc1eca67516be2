package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/ability"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
	"github.com/milk9111/abilitykit/prefabs"
)

// BuildActor builds an ability owner from a spec with an actor section.
// Its body is kinematic and never counts as walkable ground.
func BuildActor(w *ecs.World, spec prefabs.EntitySpec, at cp.Vector) (ecs.Entity, error) {
	if spec.Actor == nil {
		return 0, fmt.Errorf("build actor: %s: missing actor section", spec.Name)
	}
	e, err := BuildProp(w, spec, at)
	if err != nil {
		return 0, err
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	body.Kinematic = true
	body.Static = false

	a := spec.Actor
	if err := ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{
		Width:    spec.Collider.Width,
		Height:   spec.Collider.Height,
		Hand:     cp.Vector{X: a.HandX, Y: a.HandY},
		Facing:   1,
		Throw:    ability.Timing{Release: a.Throw.Release, Total: a.Throw.Total},
		Drop:     ability.DropTiming{Spawn: a.Drop.Spawn, Drop: a.Drop.Drop, Total: a.Drop.Total},
		Slam:     ability.Timing{Release: a.Slam.Release, Total: a.Slam.Total},
		Attached: make(map[string]ability.Handle),
	}); err != nil {
		return discard(w, e, spec.Name, "actor", err)
	}
	if err := ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{
		Speed:           a.Speed,
		Reach:           a.Reach,
		SpeedMultiplier: 1,
	}); err != nil {
		return discard(w, e, spec.Name, "mover", err)
	}
	if err := ecs.Add(w, e, component.ResourcesComponent.Kind(), &component.Resources{
		Amount: a.Resources,
		Max:    a.Resources,
		Regen:  a.Regen,
	}); err != nil {
		return discard(w, e, spec.Name, "resources", err)
	}
	if err := ecs.Add(w, e, component.AbilityInputComponent.Kind(), &component.AbilityInput{}); err != nil {
		return discard(w, e, spec.Name, "input", err)
	}
	if err := ecs.Add(w, e, component.AbilitySlotsComponent.Kind(), &component.AbilitySlots{}); err != nil {
		return discard(w, e, spec.Name, "ability slots", err)
	}
	// Actors are cleaned up by their owner, not by a lifetime.
	ecs.Remove(w, e, component.TTLComponent.Kind())
	return e, nil
}

// NewActor loads entities/<name>.yaml and builds an actor at at.
func NewActor(w *ecs.World, name string, at cp.Vector) (ecs.Entity, error) {
	spec, err := prefabs.LoadEntitySpec(name)
	if err != nil {
		return 0, fmt.Errorf("build actor: load %q: %w", name, err)
	}
	return BuildActor(w, spec, at)
}

// Equip replaces the actor's slots with new instances of keys. When any
// key fails nothing is equipped.
func Equip(w *ecs.World, e ecs.Entity, catalog *ability.Catalog, world ability.World, content ability.Content, keys []string) error {
	slots, ok := ecs.Get(w, e, component.AbilitySlotsComponent.Kind())
	if !ok {
		return fmt.Errorf("equip: entity %d has no ability slots", e)
	}
	owner := NewActorOwner(w, e)
	next := make([]*ability.Instance, 0, len(keys))
	for _, key := range keys {
		in, err := catalog.New(key, owner, world)
		if err == nil {
			err = in.Equip(content)
		}
		if err != nil {
			for _, got := range next {
				got.Unequip()
			}
			return fmt.Errorf("equip: entity %d: %w", e, err)
		}
		next = append(next, in)
	}
	Unequip(w, e)
	slots.Slots = next
	slots.Active = 0
	return nil
}

// Unequip releases every slot of the actor.
func Unequip(w *ecs.World, e ecs.Entity) {
	slots, ok := ecs.Get(w, e, component.AbilitySlotsComponent.Kind())
	if !ok {
		return
	}
	for _, in := range slots.Slots {
		in.Unequip()
	}
	slots.Slots = nil
	slots.Active = 0
}
