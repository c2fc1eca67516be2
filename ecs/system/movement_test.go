package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
)

func newMover(w *ecs.World, m component.Mover) (ecs.Entity, *component.Mover, *component.Transform) {
	e := ecs.CreateEntity(w)
	tr := &component.Transform{X: 0, Y: -48}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), tr)
	_ = ecs.Add(w, e, component.MoverComponent.Kind(), &m)
	mp, _ := ecs.Get(w, e, component.MoverComponent.Kind())
	return e, mp, tr
}

func TestMovementArrives(t *testing.T) {
	cases := []struct {
		name   string
		target float64
		mult   float64
		ticks  int
	}{
		{"right", 100, 1, 30},
		{"left", -100, 1, 30},
		{"boosted", 150, 1.5, 30},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, m, tr := newMover(w, component.Mover{Speed: 240, SpeedMultiplier: c.mult, Target: cp.Vector{X: c.target}, Moving: true})
			s := NewMovementSystem(dt)
			for i := 0; i < c.ticks; i++ {
				s.Update(w)
			}
			if m.Moving {
				t.Fatalf("still moving at x=%v", tr.X)
			}
			if tr.X != c.target || tr.Y != -48 {
				t.Fatalf("at (%v, %v), want (%v, -48)", tr.X, tr.Y, c.target)
			}
		})
	}
}

func TestMovementFollowsInputWhenIdle(t *testing.T) {
	w := ecs.NewWorld()
	e, _, tr := newMover(w, component.Mover{Speed: 240, SpeedMultiplier: 1})
	_ = ecs.Add(w, e, component.AbilityInputComponent.Kind(), &component.AbilityInput{MoveX: -1})

	s := NewMovementSystem(dt)
	for i := 0; i < 10; i++ {
		s.Update(w)
	}
	if !almostEqual(tr.X, -40, 1e-9) {
		t.Fatalf("x = %v, want -40", tr.X)
	}
}

func TestMovementHopReturnsToStart(t *testing.T) {
	w := ecs.NewWorld()
	_, m, tr := newMover(w, component.Mover{Speed: 240, SpeedMultiplier: 1})
	m.Knockback = cp.Vector{X: 0, Y: -300}

	s := NewMovementSystem(dt)
	s.Update(w)
	if tr.Y >= -48 {
		t.Fatalf("hop did not lift the mover: y=%v", tr.Y)
	}
	for i := 0; i < 120; i++ {
		s.Update(w)
	}
	if !almostEqual(tr.Y, -48, 1e-9) || m.HopOffset != 0 || m.HopSpeed != 0 {
		t.Fatalf("after hop y=%v offset=%v speed=%v", tr.Y, m.HopOffset, m.HopSpeed)
	}
}
