package system

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/ability"
	"github.com/milk9111/abilitykit/common"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
)

func TestAbilityWorldSpawn(t *testing.T) {
	cases := []struct {
		name        string
		ctor        ability.Constructor
		wantFuse    bool
		wantPayload bool
		wantHealth  float64
	}{
		{
			name:     "bomb_with_fuse",
			ctor:     ability.Constructor{Prefab: "bomb", Owner: 7, Fuse: 4, Radius: 600, Damage: 30},
			wantFuse: true,
		},
		{
			name:        "food_with_target",
			ctor:        ability.Constructor{Prefab: "food", Owner: 7, Target: 99, Heal: 20},
			wantPayload: true,
		},
		{
			name: "food_without_target",
			ctor: ability.Constructor{Prefab: "food", Owner: 7, Heal: 20},
		},
		{
			name:       "barricade_health_override",
			ctor:       ability.Constructor{Prefab: "barricade", Owner: 7, Health: 250},
			wantHealth: 250,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sim := newSim(t)
			id, err := sim.Abilities.Spawn(cp.Vector{X: 0, Y: -100}, c.ctor)
			if err != nil {
				t.Fatalf("Spawn: %v", err)
			}
			e := ecs.Entity(id)

			body, ok := ecs.Get(sim.World, e, component.PhysicsBodyComponent.Kind())
			if !ok || body.Body == nil {
				t.Fatalf("spawned entity has no body")
			}

			fuse, hasFuse := ecs.Get(sim.World, e, component.FuseComponent.Kind())
			if hasFuse != c.wantFuse {
				t.Fatalf("fuse = %v, want %v", hasFuse, c.wantFuse)
			}
			if hasFuse && (fuse.Remaining != c.ctor.Fuse || fuse.Owner != c.ctor.Owner) {
				t.Fatalf("fuse = %+v", *fuse)
			}

			payload, hasPayload := ecs.Get(sim.World, e, component.PayloadComponent.Kind())
			if hasPayload != c.wantPayload {
				t.Fatalf("payload = %v, want %v", hasPayload, c.wantPayload)
			}
			if hasPayload && (payload.Target != c.ctor.Target || payload.Heal != c.ctor.Heal) {
				t.Fatalf("payload = %+v", *payload)
			}

			if c.wantHealth > 0 {
				h, _ := ecs.Get(sim.World, e, component.HealthComponent.Kind())
				if h == nil || h.Max != c.wantHealth || h.Current != c.wantHealth {
					t.Fatalf("health = %+v, want %v", h, c.wantHealth)
				}
			}

			spawned := sim.World.Events().Take(EventSpawned)
			if len(spawned) != 1 || spawned[0].Data.(Spawned).Prefab != c.ctor.Prefab {
				t.Fatalf("spawn events = %+v", spawned)
			}
		})
	}
}

func TestAbilityWorldSpawnUnknownPrefab(t *testing.T) {
	sim := newSim(t)
	if _, err := sim.Abilities.Spawn(cp.Vector{}, ability.Constructor{Prefab: "nope"}); err == nil {
		t.Fatalf("spawning an unknown prefab succeeded")
	}
	if got := len(sim.World.Entities()); got != 0 {
		t.Fatalf("%d entities left behind", got)
	}
}

func TestAbilityWorldQueries(t *testing.T) {
	sim := newSim(t)
	a := mustProp(t, sim.World, "dummy", cp.Vector{X: 0, Y: 0})
	b := mustProp(t, sim.World, "dummy", cp.Vector{X: 100, Y: 0})
	mustProp(t, sim.World, "dummy", cp.Vector{X: 300, Y: 0})
	mustProp(t, sim.World, "bomb", cp.Vector{X: 10, Y: 0})

	got := sim.Abilities.EntitiesNear(cp.Vector{}, 150)
	if len(got) != 2 || got[0] != ability.EntityID(a) || got[1] != ability.EntityID(b) {
		t.Fatalf("EntitiesNear = %v, want [%d %d]", got, a, b)
	}
	if got := sim.Abilities.EntitiesNear(cp.Vector{}, 0); got != nil {
		t.Fatalf("EntitiesNear with zero radius = %v", got)
	}

	if pos, ok := sim.Abilities.EntityPosition(ability.EntityID(b)); !ok || pos.X != 100 {
		t.Fatalf("EntityPosition = %v, %v", pos, ok)
	}
	if _, ok := sim.Abilities.EntityPosition(12345); ok {
		t.Fatalf("EntityPosition found a missing entity")
	}

	if got := sim.Abilities.Mass("dummy"); got != 5 {
		t.Fatalf("Mass(dummy) = %v, want 5", got)
	}
	if got := sim.Abilities.Mass("missing"); got != 0 {
		t.Fatalf("Mass(missing) = %v, want 0", got)
	}
	if got := sim.Abilities.Gravity(); got.Y != common.Gravity {
		t.Fatalf("gravity = %v", got)
	}
}

func TestAbilityWorldDamageAndBuff(t *testing.T) {
	sim := newSim(t)
	d := mustProp(t, sim.World, "dummy", cp.Vector{})
	id := ability.EntityID(d)

	sim.Abilities.Damage(id, 15, 3)
	sim.Abilities.Damage(id, -5, 3)
	if got := health(t, sim.World, d); got != 45 {
		t.Fatalf("health = %v, want 45", got)
	}
	if n := len(sim.World.Events().Take(EventDamaged)); n != 1 {
		t.Fatalf("%d damage events, want 1", n)
	}

	sim.Abilities.ApplyBuff(id, ability.Buff{Name: "sprint", Duration: 5, SpeedMultiplier: 1.5})
	sim.Abilities.ApplyBuff(id, ability.Buff{Name: "sprint", Duration: 2, SpeedMultiplier: 1.5})
	buffs, ok := ecs.Get(sim.World, d, component.BuffsComponent.Kind())
	if !ok || len(buffs.Active) != 1 || buffs.Active[0].Remaining != 2 {
		t.Fatalf("buffs = %+v, want one refreshed sprint", buffs)
	}
}

func TestAbilityWorldImpulseOnKinematicIsKnockback(t *testing.T) {
	sim := newSim(t)
	actor := mustActor(t, sim)
	sim.Abilities.ApplyImpulse(ability.EntityID(actor), cp.Vector{X: 50, Y: -250})

	m, _ := ecs.Get(sim.World, actor, component.MoverComponent.Kind())
	// actor mass 5
	if m.Knockback.X != 10 || m.Knockback.Y != -50 {
		t.Fatalf("knockback = %v, want (10, -50)", m.Knockback)
	}
}

func TestAbilityWorldDecorateReportsErrors(t *testing.T) {
	sim := newSim(t)
	e := ecs.CreateEntity(sim.World)
	ecs.DestroyEntity(sim.World, e)

	tests := []struct {
		name string
		ctor ability.Constructor
	}{
		{"health", ability.Constructor{Health: 10}},
		{"fuse", ability.Constructor{Fuse: 1, Radius: 10}},
		{"payload", ability.Constructor{Heal: 5, Target: 7}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := sim.Abilities.decorate(e, tc.ctor)
			if !errors.Is(err, component.ErrEntityNotAlive) {
				t.Fatalf("expected ErrEntityNotAlive, got %v", err)
			}
		})
	}
	if err := sim.Abilities.decorate(e, ability.Constructor{}); err != nil {
		t.Fatalf("empty constructor: %v", err)
	}

	// a buff on a dead entity is dropped without panicking
	sim.Abilities.ApplyBuff(ability.EntityID(e), ability.Buff{Name: "sprint", Duration: 1, SpeedMultiplier: 2})
}
