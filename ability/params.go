package ability

import (
	"fmt"

	"github.com/milk9111/abilitykit/placement"
	"github.com/milk9111/abilitykit/trajectory"
)

// Params are the per-ability constants. They are read-only once an
// instance is built.
type Params struct {
	Key      string
	Name     string
	Kind     string
	Cooldown float64
	Cost     int

	// Targeting
	Range      float64
	SnapRadius float64
	Flight     trajectory.FlightTime
	Preview    placement.PreviewBounds

	// Spawned object
	Prefab string
	Fuse   float64
	Radius float64
	Damage float64
	Heal   float64
	Health float64

	ImpulseScale    float64
	Duration        float64
	SpeedMultiplier float64

	// Held visual shown on AttachPoint while the action winds up.
	AttachPoint string
	Held        string
	Content     []string

	ArcSteps    int
	ArcDuration float64

	// Immediate place kinds spawn on arrival without a drop animation.
	Immediate bool
	// Instant self kinds resolve inside ExecuteAction.
	Instant bool

	OnResolve Effect
}

// WithDefaults fills unset sampling values.
func (p Params) WithDefaults() Params {
	if p.Name == "" {
		p.Name = p.Key
	}
	if p.ArcSteps <= 0 {
		p.ArcSteps = trajectory.DefaultArcSteps
	}
	if p.ArcDuration <= 0 {
		p.ArcDuration = trajectory.DefaultArcDuration
	}
	if p.Flight == (trajectory.FlightTime{}) {
		p.Flight = trajectory.BombFlight
	}
	return p
}

// Preloads lists every content path an instance acquires on equip.
func (p Params) Preloads() []string {
	out := make([]string, 0, len(p.Content)+1)
	seen := make(map[string]bool, len(p.Content)+1)
	add := func(path string) {
		if path == "" || seen[path] {
			return
		}
		seen[path] = true
		out = append(out, path)
	}
	add(p.Held)
	for _, c := range p.Content {
		add(c)
	}
	return out
}

func (p Params) validate() error {
	switch {
	case p.Key == "":
		return fmt.Errorf("%w: empty key", ErrInvalidParams)
	case p.Cooldown < 0:
		return fmt.Errorf("%w: %s: negative cooldown", ErrInvalidParams, p.Key)
	case p.Cost < 0:
		return fmt.Errorf("%w: %s: negative cost", ErrInvalidParams, p.Key)
	}
	return nil
}
