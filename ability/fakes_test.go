package ability

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/placement"
)

// actor is a test owner with every trait. Movement is manual: MoveTo only
// records the destination and tests decide when the actor arrives.
type actor struct {
	id      EntityID
	pos     cp.Vector
	hand    cp.Vector
	width   float64
	moving  bool
	dest    cp.Vector
	reach   bool
	facing  cp.Vector
	stopped int

	throw Timing
	drop  DropTiming
	slam  Timing

	attached map[string]Handle
	attaches int
	detaches int
}

func newActor(id EntityID, pos cp.Vector) *actor {
	return &actor{
		id:       id,
		pos:      pos,
		hand:     pos.Add(cp.Vector{X: 10, Y: -40}),
		width:    48,
		reach:    true,
		throw:    Timing{Release: 0.3, Total: 0.8},
		drop:     DropTiming{Spawn: 0.2, Drop: 0.5, Total: 0.9},
		slam:     Timing{Release: 0.4, Total: 1.0},
		attached: map[string]Handle{},
	}
}

func (a *actor) ID() EntityID        { return a.id }
func (a *actor) Position() cp.Vector { return a.pos }
func (a *actor) Bounds() Bounds {
	return Bounds{Center: a.pos, Width: a.width, Height: 96}
}
func (a *actor) IsMoving() bool { return a.moving }
func (a *actor) MoveTo(p cp.Vector) bool {
	if !a.reach {
		return false
	}
	a.dest = p
	a.moving = true
	return true
}
func (a *actor) StopMoving()             { a.moving = false; a.stopped++ }
func (a *actor) Face(p cp.Vector)        { a.facing = p }
func (a *actor) HandPosition() cp.Vector { return a.hand }
func (a *actor) PlayThrow() Timing       { return a.throw }
func (a *actor) PlayDrop() DropTiming    { return a.drop }
func (a *actor) PlaySlam() Timing        { return a.slam }

func (a *actor) Attach(point string, h Handle) {
	a.attached[point] = h
	a.attaches++
}

func (a *actor) Detach(point string, h Handle) {
	if a.attached[point] == h {
		delete(a.attached, point)
	}
	a.detaches++
}

// arrive teleports the actor to its destination and stops it.
func (a *actor) arrive() {
	a.pos = a.dest
	a.hand = a.pos.Add(cp.Vector{X: 10, Y: -40})
	a.moving = false
}

// bare is an owner with no optional traits.
type bare struct {
	id EntityID
}

func (b bare) ID() EntityID          { return b.id }
func (b bare) Position() cp.Vector   { return cp.Vector{} }
func (b bare) Bounds() Bounds        { return Bounds{Width: 32} }
func (b bare) IsMoving() bool        { return false }
func (b bare) MoveTo(cp.Vector) bool { return true }
func (b bare) StopMoving()           {}
func (b bare) Face(cp.Vector)        {}

type spawnCall struct {
	ID   EntityID
	At   cp.Vector
	Ctor Constructor
}

type impulseCall struct {
	ID      EntityID
	Impulse cp.Vector
}

type damageCall struct {
	ID     EntityID
	Amount float64
	From   EntityID
}

type world struct {
	gravity  cp.Vector
	terrain  placement.Terrain
	masses   map[string]float64
	next     EntityID
	failNext bool

	positions map[EntityID]cp.Vector
	bodyMass  map[EntityID]float64

	spawns   []spawnCall
	impulses []impulseCall
	damages  []damageCall
	buffs    []Buff
}

func newWorld() *world {
	return &world{
		gravity:   cp.Vector{X: 0, Y: 1000},
		terrain:   &placement.BoxTerrain{Boxes: []placement.Box{{Min: cp.Vector{X: -5000, Y: 0}, Max: cp.Vector{X: 5000, Y: 100}}}},
		masses:    map[string]float64{"bomb": 2, "food": 0.5},
		next:      100,
		positions: map[EntityID]cp.Vector{},
		bodyMass:  map[EntityID]float64{},
	}
}

func (w *world) Gravity() cp.Vector         { return w.gravity }
func (w *world) Terrain() placement.Terrain { return w.terrain }

func (w *world) Spawn(at cp.Vector, ctor Constructor) (EntityID, error) {
	if w.failNext {
		w.failNext = false
		return 0, errors.New("spawn refused")
	}
	if ctor.Prefab == "" {
		return 0, fmt.Errorf("no prefab")
	}
	w.next++
	w.spawns = append(w.spawns, spawnCall{ID: w.next, At: at, Ctor: ctor})
	w.positions[w.next] = at
	return w.next, nil
}

func (w *world) ApplyImpulse(id EntityID, impulse cp.Vector) {
	w.impulses = append(w.impulses, impulseCall{ID: id, Impulse: impulse})
}

func (w *world) Mass(prefab string) float64 { return w.masses[prefab] }

func (w *world) EntityMass(id EntityID) float64 {
	if m, ok := w.bodyMass[id]; ok {
		return m
	}
	return 1
}

func (w *world) EntityPosition(id EntityID) (cp.Vector, bool) {
	p, ok := w.positions[id]
	return p, ok
}

func (w *world) EntitiesNear(p cp.Vector, radius float64) []EntityID {
	var out []EntityID
	for id, pos := range w.positions {
		if pos.Distance(p) <= radius {
			out = append(out, id)
		}
	}
	return out
}

func (w *world) Damage(id EntityID, amount float64, from EntityID) {
	w.damages = append(w.damages, damageCall{ID: id, Amount: amount, From: from})
}

func (w *world) ApplyBuff(id EntityID, b Buff) {
	w.buffs = append(w.buffs, b)
}

// content hands out sequential handles and tracks what is held.
type content struct {
	next    Handle
	held    map[Handle]string
	missing map[string]bool
}

func newContent() *content {
	return &content{held: map[Handle]string{}, missing: map[string]bool{}}
}

func (c *content) Acquire(path string) (Handle, error) {
	if c.missing[path] {
		return 0, fmt.Errorf("%s not found", path)
	}
	c.next++
	c.held[c.next] = path
	return c.next, nil
}

func (c *content) Release(h Handle) {
	delete(c.held, h)
}

func bombParams() Params {
	return Params{
		Key:         "throw_bomb",
		Kind:        "throw",
		Cooldown:    30,
		Range:       3000,
		Prefab:      "bomb",
		Fuse:        4,
		Radius:      600,
		Damage:      30,
		AttachPoint: "hand",
		Held:        "bomb.skel",
	}
}

func dynamiteParams() Params {
	return Params{
		Key:         "plant_dynamite",
		Kind:        "place",
		Cooldown:    30,
		SnapRadius:  400,
		Prefab:      "dynamite",
		Fuse:        3,
		AttachPoint: "keg",
		Held:        "keg.skel",
		Preview: placement.PreviewBounds{
			Anchor: cp.Vector{X: 0, Y: 32},
		},
	}
}

func mustInstance(t interface {
	Helper()
	Fatalf(string, ...any)
}, p Params, f Factory, owner Owner, w World) *Instance {
	t.Helper()
	kind, err := f(p, owner)
	if err != nil {
		t.Fatalf("factory %s: %v", p.Key, err)
	}
	in, err := NewInstance(p, kind, owner, w)
	if err != nil {
		t.Fatalf("new instance %s: %v", p.Key, err)
	}
	return in
}
