package ability

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/placement"
	"github.com/milk9111/abilitykit/prefabs"
	"github.com/milk9111/abilitykit/trajectory"
)

// EffectLoader compiles the script named by a spec.
type EffectLoader func(path string, args map[string]any) (Effect, error)

// ParamsFromSpec converts an authored spec to Params. Slam settings take
// precedence over spawn settings for radius and damage.
func ParamsFromSpec(s prefabs.AbilitySpec) Params {
	p := Params{
		Key:      s.Key,
		Name:     s.Name,
		Kind:     s.Kind,
		Cooldown: s.Cooldown,
		Cost:     s.Cost,

		Range:      s.Range,
		SnapRadius: s.SnapRadius,
		Preview: placement.PreviewBounds{
			Anchor: cp.Vector{X: s.Preview.AnchorX, Y: s.Preview.AnchorY},
			Center: cp.Vector{X: s.Preview.CenterX, Y: s.Preview.CenterY},
		},

		Prefab: s.Spawn.Prefab,
		Fuse:   s.Spawn.Fuse,
		Radius: s.Spawn.Radius,
		Damage: s.Spawn.Damage,
		Heal:   s.Spawn.Heal,
		Health: s.Spawn.Health,

		ImpulseScale:    s.Slam.ImpulseScale,
		Duration:        s.Buff.Duration,
		SpeedMultiplier: s.Buff.SpeedMultiplier,

		AttachPoint: s.Held.AttachPoint,
		Held:        s.Held.Content,
		Content:     append([]string(nil), s.Content...),

		ArcSteps:    s.Arc.Steps,
		ArcDuration: s.Arc.Duration,
		Immediate:   s.Immediate,
		Instant:     s.Instant,
	}
	if s.Flight != nil {
		p.Flight = trajectory.FlightTime{Min: s.Flight.Min, Max: s.Flight.Max}
	}
	if s.Slam.Radius > 0 {
		p.Radius = s.Slam.Radius
	}
	if s.Slam.Damage > 0 {
		p.Damage = s.Slam.Damage
	}
	return p.WithDefaults()
}

// RegisterSpecs registers every spec with r. Scripts are compiled with
// load; a nil load skips them.
func RegisterSpecs(r *Registry, specs []prefabs.AbilitySpec, load EffectLoader) error {
	for _, s := range specs {
		factory, err := KindFactory(s.Kind)
		if err != nil {
			return fmt.Errorf("ability: spec %s: %w", s.Key, err)
		}
		p := ParamsFromSpec(s)
		if s.Script != "" && load != nil {
			eff, err := load(s.Script, s.ScriptArgs)
			if err != nil {
				return fmt.Errorf("ability: spec %s: %w", s.Key, err)
			}
			p.OnResolve = eff
		}
		if err := r.Register(Registration{Key: s.Key, Factory: factory, Params: p}); err != nil {
			return err
		}
	}
	return nil
}

// LoadCatalog loads every ability spec and freezes them into a catalog.
func LoadCatalog(load EffectLoader) (*Catalog, error) {
	specs, err := prefabs.LoadAbilitySpecs()
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	if err := RegisterSpecs(r, specs, load); err != nil {
		return nil, err
	}
	return r.Build(), nil
}
