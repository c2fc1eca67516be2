package component

type Health struct {
	Current float64
	Max     float64
}

// Heal adds amount without exceeding Max.
func (h *Health) Heal(amount float64) {
	if h == nil || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Max > 0 && h.Current > h.Max {
		h.Current = h.Max
	}
}

var HealthComponent = NewComponent[Health]()
