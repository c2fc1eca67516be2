package system

import (
	"log"

	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
)

// HealthSystem destroys props whose health ran out. Actors stay at zero
// health so their abilities can be inspected.
type HealthSystem struct{}

func NewHealthSystem() *HealthSystem {
	return &HealthSystem{}
}

func (s *HealthSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.HealthComponent.Kind(), func(e ecs.Entity, h *component.Health) {
		if h.Current > 0 {
			return
		}
		if ecs.Has(w, e, component.ActorComponent.Kind()) {
			h.Current = 0
			return
		}
		log.Printf("health: entity=%d destroyed", e)
		push(w, EventDestroyed, e)
		ecs.DestroyEntity(w, e)
	})
}
