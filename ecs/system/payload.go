package system

import (
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
)

// PayloadSystem delivers heals when a payload reaches its target. A
// payload whose target is gone keeps falling until its TTL runs out.
type PayloadSystem struct{}

func NewPayloadSystem() *PayloadSystem {
	return &PayloadSystem{}
}

func (s *PayloadSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.PayloadComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Payload, t *component.Transform) {
		target := ecs.Entity(p.Target)
		tt, ok := ecs.Get(w, target, component.TransformComponent.Kind())
		if !ok {
			return
		}
		if tt.Vec().Distance(t.Vec()) > p.Reach {
			return
		}
		if h, ok := ecs.Get(w, target, component.HealthComponent.Kind()); ok {
			h.Heal(p.Heal)
			push(w, EventHealed, Healed{Entity: target, Amount: p.Heal})
		}
		ecs.DestroyEntity(w, e)
	})
}
