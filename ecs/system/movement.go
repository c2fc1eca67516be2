package system

import (
	"math"

	"github.com/milk9111/abilitykit/common"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
)

const knockbackDamping = 0.85

// MovementSystem walks movers toward their target, or along the input axis
// when no move order is active.
type MovementSystem struct {
	dt float64
}

func NewMovementSystem(dt float64) *MovementSystem {
	if dt <= 0 {
		dt = common.TickSeconds
	}
	return &MovementSystem{dt: dt}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.MoverComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Mover, t *component.Transform) {
		mult := m.SpeedMultiplier
		if mult <= 0 {
			mult = 1
		}
		step := m.Speed * mult * s.dt

		if m.Moving {
			dx := m.Target.X - t.X
			if math.Abs(dx) <= step {
				t.X = m.Target.X
				m.Moving = false
			} else {
				t.X += math.Copysign(step, dx)
			}
			face(w, e, dx)
		} else if in, ok := ecs.Get(w, e, component.AbilityInputComponent.Kind()); ok && in.MoveX != 0 && !executing(w, e) {
			t.X += common.Clamp(in.MoveX, -1, 1) * step
			face(w, e, in.MoveX)
		}

		if m.Knockback.Y != 0 {
			m.HopSpeed += m.Knockback.Y
			m.Knockback.Y = 0
		}
		if math.Abs(m.Knockback.X) > 0.01 {
			t.X += m.Knockback.X * s.dt
			m.Knockback.X *= knockbackDamping
		} else {
			m.Knockback.X = 0
		}
		s.hop(m, t)
	})
}

func face(w *ecs.World, e ecs.Entity, dx float64) {
	a, ok := ecs.Get(w, e, component.ActorComponent.Kind())
	if !ok {
		return
	}
	switch {
	case dx > 0:
		a.Facing = 1
	case dx < 0:
		a.Facing = -1
	}
}

// executing reports whether any of e's abilities is mid-action.
func executing(w *ecs.World, e ecs.Entity) bool {
	slots, ok := ecs.Get(w, e, component.AbilitySlotsComponent.Kind())
	if !ok {
		return false
	}
	for _, in := range slots.Slots {
		if in.IsExecutingAction() {
			return true
		}
	}
	return false
}

// hop integrates the vertical knockback under gravity until the mover is
// back at the height it left from.
func (s *MovementSystem) hop(m *component.Mover, t *component.Transform) {
	if m.HopSpeed == 0 && m.HopOffset == 0 {
		return
	}
	next := m.HopOffset + m.HopSpeed*s.dt
	m.HopSpeed += common.Gravity * s.dt
	if next >= 0 {
		next = 0
		m.HopSpeed = 0
	}
	t.Y += next - m.HopOffset
	m.HopOffset = next
}
