package component

import "github.com/milk9111/abilitykit/ability"

type ActiveBuff struct {
	Buff      ability.Buff
	Remaining float64
}

// Buffs are timed modifiers. A buff with the same name refreshes instead
// of stacking.
type Buffs struct {
	Active []ActiveBuff
}

func (b *Buffs) Apply(buff ability.Buff) {
	if b == nil || buff.Duration <= 0 {
		return
	}
	for i := range b.Active {
		if b.Active[i].Buff.Name == buff.Name {
			b.Active[i] = ActiveBuff{Buff: buff, Remaining: buff.Duration}
			return
		}
	}
	b.Active = append(b.Active, ActiveBuff{Buff: buff, Remaining: buff.Duration})
}

// SpeedMultiplier is the product of every active multiplier.
func (b *Buffs) SpeedMultiplier() float64 {
	m := 1.0
	if b == nil {
		return m
	}
	for _, a := range b.Active {
		if a.Buff.SpeedMultiplier > 0 {
			m *= a.Buff.SpeedMultiplier
		}
	}
	return m
}

var BuffsComponent = NewComponent[Buffs]()
