package system

import (
	"log"

	"github.com/milk9111/abilitykit/ability"
	"github.com/milk9111/abilitykit/common"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
)

// explosionImpulse is the outward impulse per unit mass at the center of
// a blast.
const explosionImpulse = 600.0

// FuseSystem counts fuses down and detonates them. Damage and impulse fall
// off linearly with distance from the blast.
type FuseSystem struct {
	dt    float64
	world *AbilityWorld
}

func NewFuseSystem(dt float64, world *AbilityWorld) *FuseSystem {
	if dt <= 0 {
		dt = common.TickSeconds
	}
	return &FuseSystem{dt: dt, world: world}
}

func (s *FuseSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.world == nil {
		return
	}
	ecs.ForEach2(w, component.FuseComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, fuse *component.Fuse, t *component.Transform) {
		fuse.Remaining -= s.dt
		if fuse.Remaining > 0 {
			return
		}
		s.detonate(w, e, fuse, t)
	})
}

func (s *FuseSystem) detonate(w *ecs.World, e ecs.Entity, fuse *component.Fuse, t *component.Transform) {
	at := t.Vec()
	hits := 0
	for _, id := range s.world.EntitiesNear(at, fuse.Radius) {
		if ecs.Entity(id) == e {
			continue
		}
		pos, ok := s.world.EntityPosition(id)
		if !ok {
			continue
		}
		f := ability.Falloff(pos.Distance(at), fuse.Radius)
		if f <= 0 {
			continue
		}
		hits++
		s.world.Damage(id, fuse.Damage*f, fuse.Owner)
		dir := pos.Sub(at)
		if dir.Length() == 0 {
			dir.Y = -1
		}
		s.world.ApplyImpulse(id, dir.Normalize().Mult(f*explosionImpulse*s.world.EntityMass(id)))
	}
	log.Printf("fuse: entity=%d exploded at (%.1f, %.1f) hits=%d", e, at.X, at.Y, hits)
	push(w, EventExploded, Exploded{At: at, Radius: fuse.Radius, Hits: hits})
	ecs.DestroyEntity(w, e)
}
