package system

import (
	"github.com/milk9111/abilitykit/common"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
)

// BuffSystem counts buffs down and applies their speed multiplier to the
// entity's mover. The component is removed once every buff has expired.
type BuffSystem struct {
	dt float64
}

func NewBuffSystem(dt float64) *BuffSystem {
	if dt <= 0 {
		dt = common.TickSeconds
	}
	return &BuffSystem{dt: dt}
}

func (s *BuffSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.BuffsComponent.Kind(), func(e ecs.Entity, buffs *component.Buffs) {
		kept := buffs.Active[:0]
		for _, b := range buffs.Active {
			b.Remaining -= s.dt
			if b.Remaining > 0 {
				kept = append(kept, b)
			}
		}
		buffs.Active = kept

		if m, ok := ecs.Get(w, e, component.MoverComponent.Kind()); ok {
			m.SpeedMultiplier = buffs.SpeedMultiplier()
		}
		if len(buffs.Active) == 0 {
			_ = ecs.Remove(w, e, component.BuffsComponent.Kind())
		}
	})
}
