package system

import (
	"github.com/milk9111/abilitykit/common"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
)

// TTLSystem counts lifetimes down and destroys entities when they run out.
type TTLSystem struct {
	dt float64
}

func NewTTLSystem(dt float64) *TTLSystem {
	if dt <= 0 {
		dt = common.TickSeconds
	}
	return &TTLSystem{dt: dt}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= s.dt
		if ttl.Seconds > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
	})
}
