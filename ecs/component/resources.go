package component

// Resources is the pool abilities spend their cost from.
type Resources struct {
	Amount int
	Max    int
	// Regen is units restored per second.
	Regen float64
	carry float64
}

func (r *Resources) CanAfford(amount int) bool {
	if r == nil {
		return amount <= 0
	}
	return amount <= 0 || r.Amount >= amount
}

func (r *Resources) Consume(amount int) bool {
	if !r.CanAfford(amount) {
		return false
	}
	if r != nil && amount > 0 {
		r.Amount -= amount
	}
	return true
}

// Restore regenerates for dt seconds.
func (r *Resources) Restore(dt float64) {
	if r == nil || r.Regen <= 0 || dt <= 0 {
		return
	}
	if r.Max > 0 && r.Amount >= r.Max {
		r.carry = 0
		return
	}
	r.carry += r.Regen * dt
	whole := int(r.carry)
	r.carry -= float64(whole)
	r.Amount += whole
	if r.Max > 0 && r.Amount > r.Max {
		r.Amount = r.Max
	}
}

var ResourcesComponent = NewComponent[Resources]()
