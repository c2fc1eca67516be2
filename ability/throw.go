package ability

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/trajectory"
)

// ThrowKind lobs a prefab at a point along a ballistic arc. The projectile
// leaves the owner's hand at the throw release time.
type ThrowKind struct {
	thrower Thrower
}

func NewThrowKind(p Params, owner Owner) (Kind, error) {
	t, ok := owner.(Thrower)
	if !ok {
		return nil, fmt.Errorf("%w: %s needs a thrower", ErrMissingTrait, p.Key)
	}
	if !(p.Range > 0) {
		return nil, fmt.Errorf("%w: %s: range must be positive", ErrInvalidParams, p.Key)
	}
	return &ThrowKind{thrower: t}, nil
}

func (k *ThrowKind) Name() string        { return "throw" }
func (k *ThrowKind) Targets() TargetType { return TargetPoint }

func (k *ThrowKind) Target(in *Instance, raw cp.Vector) Aim {
	sol := k.solve(in, raw)
	return Aim{Valid: true, Point: sol.Target, Ballistic: true, Solution: sol}
}

func (k *ThrowKind) Begin(in *Instance, ex *Execution) Step {
	in.owner.Face(ex.Point)
	ex.Timing = k.thrower.PlayThrow()
	ex.Phase = PhaseWindup
	in.attach(ex)
	if ex.Timing.Release <= 0 {
		return k.release(in, ex)
	}
	return StepContinue
}

func (k *ThrowKind) Advance(in *Instance, ex *Execution, dt float64) Step {
	if ex.Phase == PhaseWindup && ex.Elapsed >= ex.Timing.Release {
		return k.release(in, ex)
	}
	return StepContinue
}

func (k *ThrowKind) Cancel(in *Instance, ex *Execution) {}

func (k *ThrowKind) release(in *Instance, ex *Execution) Step {
	in.detach(ex)
	sol := k.solve(in, ex.Point)
	if !in.spawn(ex, sol.Launch) {
		return StepAborted
	}
	in.world.ApplyImpulse(ex.Spawned, sol.Impulse)
	return StepResolved
}

func (k *ThrowKind) solve(in *Instance, target cp.Vector) trajectory.Solution {
	p := in.params
	return trajectory.Solve(k.thrower.HandPosition(), target, p.Range, in.gravityY(), in.prefabMass(), p.Flight)
}
