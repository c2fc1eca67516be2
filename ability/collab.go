package ability

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/placement"
)

// Bounds is the owner's drawn extent.
type Bounds struct {
	Center cp.Vector
	Width  float64
	Height float64
}

// Owner is the actor an ability instance belongs to.
type Owner interface {
	ID() EntityID
	Position() cp.Vector
	Bounds() Bounds
	IsMoving() bool
	// MoveTo starts pathing toward p and reports whether p is reachable.
	MoveTo(p cp.Vector) bool
	StopMoving()
	Face(p cp.Vector)
}

// Timing is the animation timing for a single-hit action, in seconds from
// the start of the animation.
type Timing struct {
	Release float64
	Total   float64
}

// DropTiming is the animation timing for placing an object.
type DropTiming struct {
	Spawn float64 // held object appears
	Drop  float64 // object leaves the hand
	Total float64
}

// Thrower owners throw projectiles from their hand.
type Thrower interface {
	HandPosition() cp.Vector
	PlayThrow() Timing
}

// Dropper owners play a put-down animation.
type Dropper interface {
	PlayDrop() DropTiming
}

// Slammer owners play a ground slam.
type Slammer interface {
	PlaySlam() Timing
}

// Attacher owners expose named attachment points for held visuals.
type Attacher interface {
	Attach(point string, h Handle)
	Detach(point string, h Handle)
}

// Constructor carries the values handed to a spawned entity.
type Constructor struct {
	Prefab string
	Owner  EntityID
	Target EntityID
	Fuse   float64
	Radius float64
	Damage float64
	Heal   float64
	Health float64
}

// Buff is a timed modifier applied to an entity.
type Buff struct {
	Name            string
	Duration        float64
	SpeedMultiplier float64
}

// World is the simulation surface abilities act on.
type World interface {
	Gravity() cp.Vector
	Terrain() placement.Terrain
	Spawn(at cp.Vector, ctor Constructor) (EntityID, error)
	ApplyImpulse(id EntityID, impulse cp.Vector)
	// Mass returns the body mass a prefab spawns with.
	Mass(prefab string) float64
	EntityMass(id EntityID) float64
	EntityPosition(id EntityID) (cp.Vector, bool)
	EntitiesNear(p cp.Vector, radius float64) []EntityID
	Damage(id EntityID, amount float64, from EntityID)
	ApplyBuff(id EntityID, b Buff)
}

// Handle is an opaque reference to loaded content. Zero is never valid.
type Handle uint64

// Content loads and unloads assets by path.
type Content interface {
	Acquire(path string) (Handle, error)
	Release(h Handle)
}

// EffectContext is what a resolution effect sees.
type EffectContext struct {
	World   World
	Owner   Owner
	Ability string
	Point   cp.Vector
	Target  EntityID
	Spawned EntityID
}

// Effect runs once when an action resolves.
type Effect interface {
	Apply(ctx EffectContext) error
}

// EffectFunc adapts a function to Effect.
type EffectFunc func(ctx EffectContext) error

func (f EffectFunc) Apply(ctx EffectContext) error {
	return f(ctx)
}
