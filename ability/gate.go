package ability

// ResourcePool is the external resource check consulted before an ability
// leaves Idle.
type ResourcePool interface {
	CanAfford(amount int) bool
	Consume(amount int) bool
}

// Gate tracks the cooldown and resource cost of one ability. Remaining
// never reads below zero.
type Gate struct {
	duration  float64
	remaining float64
	cost      int
}

func NewGate(duration float64, cost int) Gate {
	g := Gate{cost: cost}
	g.SetDuration(duration)
	return g
}

// SetDuration changes the cooldown length. Negative durations clamp to 0.
func (g *Gate) SetDuration(d float64) {
	if g == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	g.duration = d
}

// StartCooldown sets the remaining time to the full duration. It refuses
// while a previous cooldown is still counting down.
func (g *Gate) StartCooldown() bool {
	if g == nil || g.remaining > 0 {
		return false
	}
	g.remaining = g.duration
	return true
}

// Tick counts the cooldown down by dt, flooring at 0.
func (g *Gate) Tick(dt float64) {
	if g == nil || dt <= 0 || g.remaining <= 0 {
		return
	}
	g.remaining -= dt
	if g.remaining < 0 {
		g.remaining = 0
	}
}

// Reset clears any running cooldown.
func (g *Gate) Reset() {
	if g == nil {
		return
	}
	g.remaining = 0
}

func (g *Gate) Remaining() float64 {
	if g == nil || g.remaining < 0 {
		return 0
	}
	return g.remaining
}

func (g *Gate) Duration() float64 {
	if g == nil {
		return 0
	}
	return g.duration
}

func (g *Gate) Cost() int {
	if g == nil {
		return 0
	}
	return g.cost
}

func (g *Gate) Ready() bool {
	return g.Remaining() <= 0
}

// CanActivate reports whether the cooldown has expired and pool can pay the
// cost. A nil pool only passes free abilities.
func (g *Gate) CanActivate(pool ResourcePool) bool {
	if !g.Ready() {
		return false
	}
	if g.Cost() <= 0 {
		return true
	}
	return pool != nil && pool.CanAfford(g.Cost())
}
