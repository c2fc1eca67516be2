package system

import (
	"errors"
	"log"

	"github.com/milk9111/abilitykit/ability"
	"github.com/milk9111/abilitykit/common"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
)

// AbilitySystem feeds actor input into the active ability slot and ticks
// every slot once per update.
type AbilitySystem struct {
	dt     float64
	states []ability.State
}

func NewAbilitySystem(dt float64) *AbilitySystem {
	if dt <= 0 {
		dt = common.TickSeconds
	}
	return &AbilitySystem{dt: dt}
}

func (s *AbilitySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.AbilitySlotsComponent.Kind(), func(e ecs.Entity, slots *component.AbilitySlots) {
		s.states = s.states[:0]
		for _, in := range slots.Slots {
			s.states = append(s.states, in.State())
		}

		res, _ := ecs.Get(w, e, component.ResourcesComponent.Kind())
		if input, ok := ecs.Get(w, e, component.AbilityInputComponent.Kind()); ok {
			s.handleInput(w, e, slots, input, res)
		}

		res.Restore(s.dt)
		for i, in := range slots.Slots {
			in.Update(s.dt)
			if to := in.State(); to != s.states[i] {
				push(w, EventAbilityState, AbilityStateChanged{Entity: e, Key: in.Key(), From: s.states[i], To: to})
			}
		}
	})
}

func (s *AbilitySystem) handleInput(w *ecs.World, e ecs.Entity, slots *component.AbilitySlots, input *component.AbilityInput, res *component.Resources) {
	if input.Slot != slots.Active && input.Slot >= 0 && input.Slot < len(slots.Slots) {
		if cur := slots.Current(); cur != nil && cur.State() == ability.Targeting {
			cur.CancelAction()
		}
		slots.Active = input.Slot
	}
	input.Slot = slots.Active

	cur := slots.Current()
	if cur == nil {
		input.Confirm = false
		input.Cancel = false
		return
	}

	if input.Cancel {
		input.Cancel = false
		input.Confirm = false
		cur.CancelAction()
		return
	}

	state := cur.State()
	if (input.Aiming || input.Confirm) && (state == ability.Idle || state == ability.Targeting) {
		if cur.Gate().CanActivate(res) {
			cur.SetPrimaryTarget(input.Aim)
		} else if state == ability.Targeting {
			cur.CancelAction()
		}
	}

	if input.Confirm {
		input.Confirm = false
		s.execute(w, e, cur, res)
		return
	}

	if !input.Aiming && cur.State() == ability.Targeting {
		cur.CancelAction()
	}
}

func (s *AbilitySystem) execute(w *ecs.World, e ecs.Entity, in *ability.Instance, res *component.Resources) {
	a := in.GenerateAction()
	if a.IsEmpty() {
		in.CancelAction()
		return
	}
	if !in.Gate().CanActivate(res) {
		in.CancelAction()
		return
	}
	if err := in.ExecuteAction(a); err != nil {
		// Nothing was applied, so nothing is spent.
		if !errors.Is(err, ability.ErrCoolingDown) {
			log.Printf("ability: entity=%d key=%s execute: %v", e, in.Key(), err)
		}
		return
	}
	res.Consume(in.ResourceCost())
	log.Printf("ability: entity=%d execute %s", e, a)
	push(w, EventAbilityExecuted, AbilityExecuted{Entity: e, Action: a})
}
