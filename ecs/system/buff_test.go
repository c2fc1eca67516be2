package system

import (
	"testing"

	"github.com/milk9111/abilitykit/ability"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
)

func TestBuffSystemAppliesAndExpires(t *testing.T) {
	w := ecs.NewWorld()
	e, m, _ := newMover(w, component.Mover{Speed: 240, SpeedMultiplier: 1})
	buffs := &component.Buffs{}
	buffs.Apply(ability.Buff{Name: "sprint", Duration: 0.5, SpeedMultiplier: 1.5})
	buffs.Apply(ability.Buff{Name: "haste", Duration: 0.25, SpeedMultiplier: 2})
	_ = ecs.Add(w, e, component.BuffsComponent.Kind(), buffs)

	s := NewBuffSystem(dt)
	s.Update(w)
	if m.SpeedMultiplier != 3 {
		t.Fatalf("multiplier = %v, want 3", m.SpeedMultiplier)
	}

	for i := 0; i < 20; i++ {
		s.Update(w)
	}
	if m.SpeedMultiplier != 1.5 {
		t.Fatalf("multiplier after haste = %v, want 1.5", m.SpeedMultiplier)
	}

	for i := 0; i < 20; i++ {
		s.Update(w)
	}
	if m.SpeedMultiplier != 1 {
		t.Fatalf("multiplier after expiry = %v, want 1", m.SpeedMultiplier)
	}
	if ecs.Has(w, e, component.BuffsComponent.Kind()) {
		t.Fatalf("buffs component kept after every buff expired")
	}
}
