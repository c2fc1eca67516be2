package effect

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/ability"
	"github.com/milk9111/abilitykit/placement"
)

type spawnCall struct {
	at   cp.Vector
	ctor ability.Constructor
}

type world struct {
	next     ability.EntityID
	spawns   []spawnCall
	impulses map[ability.EntityID]cp.Vector
	damage   map[ability.EntityID]float64
	pos      map[ability.EntityID]cp.Vector
}

func newWorld() *world {
	return &world{
		next:     100,
		impulses: make(map[ability.EntityID]cp.Vector),
		damage:   make(map[ability.EntityID]float64),
		pos:      make(map[ability.EntityID]cp.Vector),
	}
}

func (w *world) Gravity() cp.Vector         { return cp.Vector{Y: 1000} }
func (w *world) Terrain() placement.Terrain { return nil }
func (w *world) Mass(string) float64        { return 1 }

func (w *world) Spawn(at cp.Vector, ctor ability.Constructor) (ability.EntityID, error) {
	w.next++
	w.spawns = append(w.spawns, spawnCall{at: at, ctor: ctor})
	w.pos[w.next] = at
	return w.next, nil
}

func (w *world) ApplyImpulse(id ability.EntityID, imp cp.Vector) {
	w.impulses[id] = w.impulses[id].Add(imp)
}

func (w *world) EntityMass(ability.EntityID) float64 { return 1 }

func (w *world) EntityPosition(id ability.EntityID) (cp.Vector, bool) {
	p, ok := w.pos[id]
	return p, ok
}

func (w *world) EntitiesNear(p cp.Vector, r float64) []ability.EntityID {
	var out []ability.EntityID
	for id := ability.EntityID(1); id <= w.next; id++ {
		if q, ok := w.pos[id]; ok && q.Distance(p) <= r {
			out = append(out, id)
		}
	}
	return out
}

func (w *world) Damage(id ability.EntityID, amount float64, _ ability.EntityID) {
	w.damage[id] += amount
}

func (w *world) ApplyBuff(ability.EntityID, ability.Buff) {}

type owner struct {
	id  ability.EntityID
	pos cp.Vector
}

func (o owner) ID() ability.EntityID   { return o.id }
func (o owner) Position() cp.Vector    { return o.pos }
func (o owner) Bounds() ability.Bounds { return ability.Bounds{Center: o.pos} }
func (o owner) IsMoving() bool         { return false }
func (o owner) MoveTo(cp.Vector) bool  { return false }
func (o owner) StopMoving()            {}
func (o owner) Face(cp.Vector)         {}

func TestScriptSpawnsOnce(t *testing.T) {
	src := []byte(`
p := engine.point()
id := engine.spawn("bomb", p[0], p[1])
engine.impulse(id, 5, -10)
`)
	s, err := Compile("inline.tengo", src, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	w := newWorld()
	err = s.Apply(ability.EffectContext{World: w, Owner: owner{id: 1}, Ability: "throw_bomb", Point: cp.Vector{X: 40, Y: -8}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(w.spawns) != 1 {
		t.Fatalf("%d spawns, want 1", len(w.spawns))
	}
	got := w.spawns[0]
	if got.ctor.Prefab != "bomb" || got.ctor.Owner != 1 || got.at != (cp.Vector{X: 40, Y: -8}) {
		t.Fatalf("spawn = %+v", got)
	}
	if imp := w.impulses[w.next]; imp != (cp.Vector{X: 5, Y: -10}) {
		t.Fatalf("impulse = %v", imp)
	}
}

func TestScriptDamageRadiusSkipsOwner(t *testing.T) {
	src := []byte(`hits = engine.damage_radius(0, 0, 100, 40)`)
	s, err := Compile("inline.tengo", append([]byte("hits := 0\n"), src...), nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	w := newWorld()
	w.pos[1] = cp.Vector{}           // owner
	w.pos[2] = cp.Vector{X: 50}      // half radius
	w.pos[3] = cp.Vector{X: 0, Y: 0} // center
	w.pos[4] = cp.Vector{X: 500}     // outside
	w.next = 4

	if err := s.Apply(ability.EffectContext{World: w, Owner: owner{id: 1}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if hits := s.compiled.Get("hits").Int(); hits != 2 {
		t.Fatalf("hits = %d, want 2", hits)
	}
	want := map[ability.EntityID]float64{2: 20, 3: 40}
	if len(w.damage) != len(want) {
		t.Fatalf("damage = %v, want %v", w.damage, want)
	}
	for id, amount := range want {
		if w.damage[id] != amount {
			t.Fatalf("damage[%d] = %v, want %v", id, w.damage[id], amount)
		}
	}
}

func TestScriptArgsAndAbility(t *testing.T) {
	src := []byte(`
out := ""
if ability == "ground_slam" {
	out = args.prefab
}
`)
	s, err := Compile("inline.tengo", src, map[string]any{"prefab": "dust"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := s.Apply(ability.EffectContext{Ability: "ground_slam"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := s.compiled.Get("out").String(); got != "dust" {
		t.Fatalf("out = %q, want dust", got)
	}
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", "x := ("},
		{"unknown_global", "y := undefined_thing + 1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Compile("bad.tengo", []byte(c.src), nil); err == nil {
				t.Fatalf("Compile(%q) succeeded", c.src)
			}
		})
	}
}

func TestLoadEmbeddedScripts(t *testing.T) {
	for _, name := range []string{"slam_dust.tengo", "announce.tengo"} {
		s, err := Load(name, map[string]any{"prefab": "dust"})
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if s.Path() != name {
			t.Fatalf("Path = %q", s.Path())
		}
	}
	if _, err := Load("missing.tengo", nil); err == nil {
		t.Fatalf("loaded a missing script")
	}
}

func TestSlamDustSpawnsBothSides(t *testing.T) {
	s, err := Load("slam_dust.tengo", map[string]any{"prefab": "dust"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	w := newWorld()
	if err := s.Apply(ability.EffectContext{World: w, Owner: owner{id: 1, pos: cp.Vector{X: 10, Y: -48}}, Ability: "ground_slam"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(w.spawns) != 2 {
		t.Fatalf("%d spawns, want 2", len(w.spawns))
	}
	if w.spawns[0].at.X != -140 || w.spawns[1].at.X != 160 {
		t.Fatalf("dust at %v and %v", w.spawns[0].at, w.spawns[1].at)
	}
}
