package system

import (
	"fmt"
	"log"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/ability"
	"github.com/milk9111/abilitykit/common"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
	"github.com/milk9111/abilitykit/ecs/entity"
	"github.com/milk9111/abilitykit/placement"
	"github.com/milk9111/abilitykit/prefabs"
)

const defaultPayloadReach = 40.0

// AbilityWorld is the simulation surface ability instances act on, backed
// by the ECS world and the physics space.
type AbilityWorld struct {
	w       *ecs.World
	physics *PhysicsSystem
	specs   map[string]prefabs.EntitySpec
}

var _ ability.World = (*AbilityWorld)(nil)

func NewAbilityWorld(w *ecs.World, physics *PhysicsSystem) *AbilityWorld {
	return &AbilityWorld{w: w, physics: physics, specs: make(map[string]prefabs.EntitySpec)}
}

// ResetSpecs drops cached entity specs so the next spawn reloads them.
func (aw *AbilityWorld) ResetSpecs() {
	if aw == nil {
		return
	}
	aw.specs = make(map[string]prefabs.EntitySpec)
}

func (aw *AbilityWorld) spec(prefab string) (prefabs.EntitySpec, error) {
	if s, ok := aw.specs[prefab]; ok {
		return s, nil
	}
	s, err := prefabs.LoadEntitySpec(prefab)
	if err != nil {
		return prefabs.EntitySpec{}, err
	}
	aw.specs[prefab] = s
	return s, nil
}

func (aw *AbilityWorld) Gravity() cp.Vector {
	if aw == nil || aw.physics.Space() == nil {
		return cp.Vector{Y: common.Gravity}
	}
	return aw.physics.Space().Gravity()
}

func (aw *AbilityWorld) Terrain() placement.Terrain {
	if aw == nil || aw.physics == nil {
		return nil
	}
	return aw.physics.Terrain()
}

// Spawn builds prefab at at and attaches the fuse, payload, and health the
// constructor carries. The body exists when Spawn returns.
func (aw *AbilityWorld) Spawn(at cp.Vector, ctor ability.Constructor) (ability.EntityID, error) {
	if aw == nil || aw.w == nil {
		return 0, fmt.Errorf("ability world: spawn %s: no world", ctor.Prefab)
	}
	spec, err := aw.spec(ctor.Prefab)
	if err != nil {
		return 0, fmt.Errorf("ability world: spawn %s: %w", ctor.Prefab, err)
	}
	e, err := entity.BuildProp(aw.w, spec, at)
	if err != nil {
		return 0, fmt.Errorf("ability world: spawn %s: %w", ctor.Prefab, err)
	}

	if err := aw.decorate(e, ctor); err != nil {
		ecs.DestroyEntity(aw.w, e)
		return 0, fmt.Errorf("ability world: spawn %s: %w", ctor.Prefab, err)
	}
	aw.physics.Ensure(aw.w, e)

	push(aw.w, EventSpawned, Spawned{Entity: e, Prefab: ctor.Prefab, Owner: ctor.Owner})
	return ability.EntityID(e), nil
}

// decorate adds what the constructor carries beyond the prefab itself.
func (aw *AbilityWorld) decorate(e ecs.Entity, ctor ability.Constructor) error {
	if ctor.Health > 0 {
		if err := ecs.Add(aw.w, e, component.HealthComponent.Kind(), &component.Health{Current: ctor.Health, Max: ctor.Health}); err != nil {
			return err
		}
	}
	if ctor.Fuse > 0 {
		if err := ecs.Add(aw.w, e, component.FuseComponent.Kind(), &component.Fuse{
			Remaining: ctor.Fuse,
			Radius:    ctor.Radius,
			Damage:    ctor.Damage,
			Owner:     ctor.Owner,
		}); err != nil {
			return err
		}
	}
	if ctor.Heal > 0 && ctor.Target != 0 {
		if err := ecs.Add(aw.w, e, component.PayloadComponent.Kind(), &component.Payload{
			Target: ctor.Target,
			Heal:   ctor.Heal,
			Reach:  defaultPayloadReach,
			Owner:  ctor.Owner,
		}); err != nil {
			return err
		}
	}
	return nil
}

// ApplyImpulse pushes a dynamic body. Kinematic actors take it as a
// knockback velocity instead.
func (aw *AbilityWorld) ApplyImpulse(id ability.EntityID, impulse cp.Vector) {
	if aw == nil {
		return
	}
	e := ecs.Entity(id)
	bodyComp, ok := ecs.Get(aw.w, e, component.PhysicsBodyComponent.Kind())
	if !ok || bodyComp.Static {
		return
	}
	if bodyComp.Kinematic {
		mover, ok := ecs.Get(aw.w, e, component.MoverComponent.Kind())
		if !ok {
			return
		}
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		mover.Knockback = mover.Knockback.Add(cp.Vector{X: impulse.X / mass, Y: impulse.Y / mass})
		return
	}
	body, ok := aw.physics.Ensure(aw.w, e)
	if !ok {
		return
	}
	body.ApplyImpulseAtWorldPoint(impulse, body.Position())
}

func (aw *AbilityWorld) Mass(prefab string) float64 {
	if aw == nil {
		return 0
	}
	spec, err := aw.spec(prefab)
	if err != nil {
		return 0
	}
	if spec.Mass <= 0 {
		return 1
	}
	return spec.Mass
}

func (aw *AbilityWorld) EntityMass(id ability.EntityID) float64 {
	if aw == nil {
		return 0
	}
	bodyComp, ok := ecs.Get(aw.w, ecs.Entity(id), component.PhysicsBodyComponent.Kind())
	if !ok || bodyComp.Static {
		return 0
	}
	if bodyComp.Body != nil && !bodyComp.Kinematic {
		return bodyComp.Body.Mass()
	}
	return bodyComp.Mass
}

func (aw *AbilityWorld) EntityPosition(id ability.EntityID) (cp.Vector, bool) {
	if aw == nil {
		return cp.Vector{}, false
	}
	t, ok := ecs.Get(aw.w, ecs.Entity(id), component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return t.Vec(), true
}

// EntitiesNear returns the entities with health whose center lies within
// radius of p, in ascending id order.
func (aw *AbilityWorld) EntitiesNear(p cp.Vector, radius float64) []ability.EntityID {
	if aw == nil || radius <= 0 {
		return nil
	}
	var out []ability.EntityID
	ecs.ForEach2(aw.w, component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Health, t *component.Transform) {
		if t.Vec().Distance(p) <= radius {
			out = append(out, ability.EntityID(e))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (aw *AbilityWorld) Damage(id ability.EntityID, amount float64, from ability.EntityID) {
	if aw == nil || amount <= 0 {
		return
	}
	e := ecs.Entity(id)
	h, ok := ecs.Get(aw.w, e, component.HealthComponent.Kind())
	if !ok {
		return
	}
	h.Current -= amount
	log.Printf("ability world: entity=%d damage=%.2f from=%d health=%.2f", id, amount, from, h.Current)
	push(aw.w, EventDamaged, Damaged{Entity: e, Amount: amount, From: from})
}

func (aw *AbilityWorld) ApplyBuff(id ability.EntityID, b ability.Buff) {
	if aw == nil {
		return
	}
	e := ecs.Entity(id)
	if !aw.w.IsAlive(e) {
		return
	}
	buffs, ok := ecs.Get(aw.w, e, component.BuffsComponent.Kind())
	if !ok {
		buffs = &component.Buffs{}
		if err := ecs.Add(aw.w, e, component.BuffsComponent.Kind(), buffs); err != nil {
			log.Printf("ability world: entity=%d buff %s: %v", e, b.Name, err)
			return
		}
	}
	buffs.Apply(b)
}
