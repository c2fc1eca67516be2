package component

import "github.com/milk9111/abilitykit/ability"

// AbilitySlots holds the equipped ability instances of an actor. Only the
// active slot receives targeting input; every slot is ticked.
type AbilitySlots struct {
	Slots  []*ability.Instance
	Active int
}

func (s *AbilitySlots) Current() *ability.Instance {
	if s == nil || s.Active < 0 || s.Active >= len(s.Slots) {
		return nil
	}
	return s.Slots[s.Active]
}

var AbilitySlotsComponent = NewComponent[AbilitySlots]()
