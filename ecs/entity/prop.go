package entity

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
	"github.com/milk9111/abilitykit/prefabs"
)

var defaultColor = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

// BuildProp creates the components an entity spec describes, centered at
// at. Bodies are created by the physics system.
func BuildProp(w *ecs.World, spec prefabs.EntitySpec, at cp.Vector) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	col := spec.Collider
	if col.Radius <= 0 && (col.Width <= 0 || col.Height <= 0) {
		return 0, fmt.Errorf("build entity: %s: collider needs a radius or a size", spec.Name)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: at.X, Y: at.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return discard(w, e, spec.Name, "transform", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      col.Width,
		Height:     col.Height,
		Radius:     col.Radius,
		Mass:       spec.Mass,
		Friction:   col.Friction,
		Elasticity: col.Elasticity,
		Static:     spec.Static,
	}); err != nil {
		return discard(w, e, spec.Name, "physics body", err)
	}
	if err := ecs.Add(w, e, component.PrefabComponent.Kind(), &component.Prefab{Name: spec.Name, Color: spec.Color.ColorOr(defaultColor)}); err != nil {
		return discard(w, e, spec.Name, "prefab", err)
	}
	if spec.Health > 0 {
		if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: spec.Health, Max: spec.Health}); err != nil {
			return discard(w, e, spec.Name, "health", err)
		}
	}
	if spec.TTL > 0 {
		if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: spec.TTL}); err != nil {
			return discard(w, e, spec.Name, "ttl", err)
		}
	}
	return e, nil
}

// discard destroys a half-built entity.
func discard(w *ecs.World, e ecs.Entity, name, what string, err error) (ecs.Entity, error) {
	ecs.DestroyEntity(w, e)
	return 0, fmt.Errorf("build entity: %s: %s: %w", name, what, err)
}

// NewProp loads entities/<name>.yaml and builds it at at.
func NewProp(w *ecs.World, name string, at cp.Vector) (ecs.Entity, error) {
	spec, err := prefabs.LoadEntitySpec(name)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", name, err)
	}
	return BuildProp(w, spec, at)
}
