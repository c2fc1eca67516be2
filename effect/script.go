// Package effect runs tengo scripts when an ability resolves.
package effect

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/ability"
	"github.com/milk9111/abilitykit/prefabs"
)

// Script is a compiled resolution script. Scripts see three globals:
// engine (functions acting on the world), args (the spec's script_args)
// and ability (the resolving ability's key).
type Script struct {
	path     string
	compiled *tengo.Compiled
}

// Load compiles a script from the prefab scripts directory.
func Load(path string, args map[string]any) (*Script, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("effect: load %s: %w", path, err)
	}
	return Compile(path, src, args)
}

// Loader adapts Load for spec registration.
func Loader(path string, args map[string]any) (ability.Effect, error) {
	s, err := Load(path, args)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func Compile(path string, src []byte, args map[string]any) (*Script, error) {
	if args == nil {
		args = map[string]any{}
	}
	script := tengo.NewScript(src)
	if err := script.Add("engine", map[string]any{}); err != nil {
		return nil, err
	}
	if err := script.Add("args", args); err != nil {
		return nil, fmt.Errorf("effect: %s: args: %w", path, err)
	}
	if err := script.Add("ability", ""); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("effect: compile %s: %w", path, err)
	}
	return &Script{path: path, compiled: compiled}, nil
}

func (s *Script) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Apply runs the script once against ctx.
func (s *Script) Apply(ctx ability.EffectContext) error {
	if s == nil || s.compiled == nil {
		return fmt.Errorf("effect: nil script")
	}
	if err := s.compiled.Set("engine", buildEngine(ctx)); err != nil {
		return err
	}
	if err := s.compiled.Set("ability", ctx.Ability); err != nil {
		return err
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("effect: run %s: %w", s.path, err)
	}
	return nil
}

func buildEngine(ctx ability.EffectContext) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	var owner ability.EntityID
	if ctx.Owner != nil {
		owner = ctx.Owner.ID()
	}

	values["owner"] = &tengo.UserFunction{Name: "owner", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(owner)}, nil
	}}

	values["owner_position"] = &tengo.UserFunction{Name: "owner_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Owner == nil {
			return vectorObject(cp.Vector{}), nil
		}
		return vectorObject(ctx.Owner.Position()), nil
	}}

	values["point"] = &tengo.UserFunction{Name: "point", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(ctx.Point), nil
	}}

	values["target"] = &tengo.UserFunction{Name: "target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ctx.Target)}, nil
	}}

	values["spawned"] = &tengo.UserFunction{Name: "spawned", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ctx.Spawned)}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.World == nil || len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		p, ok := ctx.World.EntityPosition(objectAsID(args[0]))
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vectorObject(p), nil
	}}

	values["spawn"] = &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.World == nil || len(args) < 3 {
			return &tengo.Int{Value: 0}, nil
		}
		prefab := objectAsString(args[0])
		at := cp.Vector{X: objectAsFloat(args[1]), Y: objectAsFloat(args[2])}
		id, err := ctx.World.Spawn(at, ability.Constructor{Prefab: prefab, Owner: owner})
		if err != nil {
			log.Printf("effect: ability=%s spawn %s: %v", ctx.Ability, prefab, err)
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(id)}, nil
	}}

	values["impulse"] = &tengo.UserFunction{Name: "impulse", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.World == nil || len(args) < 3 {
			return tengo.FalseValue, nil
		}
		ctx.World.ApplyImpulse(objectAsID(args[0]), cp.Vector{X: objectAsFloat(args[1]), Y: objectAsFloat(args[2])})
		return tengo.TrueValue, nil
	}}

	values["damage"] = &tengo.UserFunction{Name: "damage", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.World == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		ctx.World.Damage(objectAsID(args[0]), objectAsFloat(args[1]), owner)
		return tengo.TrueValue, nil
	}}

	// damage_radius(x, y, radius, amount) damages everything but the owner
	// with linear falloff and returns how many entities were hit.
	values["damage_radius"] = &tengo.UserFunction{Name: "damage_radius", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.World == nil || len(args) < 4 {
			return &tengo.Int{Value: 0}, nil
		}
		center := cp.Vector{X: objectAsFloat(args[0]), Y: objectAsFloat(args[1])}
		radius := objectAsFloat(args[2])
		amount := objectAsFloat(args[3])
		hit := 0
		for _, id := range ctx.World.EntitiesNear(center, radius) {
			if id == owner {
				continue
			}
			p, ok := ctx.World.EntityPosition(id)
			if !ok {
				continue
			}
			if f := ability.Falloff(center.Distance(p), radius); f > 0 {
				ctx.World.Damage(id, amount*f, owner)
				hit++
			}
		}
		return &tengo.Int{Value: int64(hit)}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("effect: ability=%s owner=%d %s", ctx.Ability, owner, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vectorObject(v cp.Vector) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) float64 {
	f, _ := tengo.ToFloat64(obj)
	return f
}

func objectAsID(obj tengo.Object) ability.EntityID {
	n, ok := tengo.ToInt64(obj)
	if !ok || n < 0 {
		return 0
	}
	return ability.EntityID(n)
}
