package ability

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/trajectory"
)

// LobKind throws a prefab at another entity. Targeting picks the entity
// nearest the aim point within SnapRadius, as long as it is in range; the
// throw aims at wherever that entity is at release.
type LobKind struct {
	thrower Thrower
}

func NewLobKind(p Params, owner Owner) (Kind, error) {
	t, ok := owner.(Thrower)
	if !ok {
		return nil, fmt.Errorf("%w: %s needs a thrower", ErrMissingTrait, p.Key)
	}
	if !(p.Range > 0) || !(p.SnapRadius > 0) {
		return nil, fmt.Errorf("%w: %s: range and snap radius must be positive", ErrInvalidParams, p.Key)
	}
	return &LobKind{thrower: t}, nil
}

func (k *LobKind) Name() string        { return "lob" }
func (k *LobKind) Targets() TargetType { return TargetEntity }

func (k *LobKind) Target(in *Instance, raw cp.Vector) Aim {
	if in.world == nil {
		return Aim{Point: raw}
	}
	self := in.owner.ID()
	origin := in.owner.Position()

	var (
		best     EntityID
		bestPos  cp.Vector
		bestDist float64
		found    bool
	)
	for _, id := range in.world.EntitiesNear(raw, in.params.SnapRadius) {
		if id == self {
			continue
		}
		pos, ok := in.world.EntityPosition(id)
		if !ok || origin.Distance(pos) > in.params.Range {
			continue
		}
		d := raw.Distance(pos)
		if !found || d < bestDist || (d == bestDist && id < best) {
			best, bestPos, bestDist, found = id, pos, d, true
		}
	}
	if !found {
		return Aim{Point: raw}
	}
	sol := k.solve(in, bestPos)
	return Aim{Valid: true, Point: bestPos, Entity: best, Ballistic: true, Solution: sol}
}

func (k *LobKind) Begin(in *Instance, ex *Execution) Step {
	pos, ok := k.targetPosition(in, ex)
	if !ok {
		return StepAborted
	}
	in.owner.Face(pos)
	ex.Point = pos
	ex.Timing = k.thrower.PlayThrow()
	ex.Phase = PhaseWindup
	in.attach(ex)
	if ex.Timing.Release <= 0 {
		return k.release(in, ex)
	}
	return StepContinue
}

func (k *LobKind) Advance(in *Instance, ex *Execution, dt float64) Step {
	if ex.Phase != PhaseWindup {
		return StepContinue
	}
	pos, ok := k.targetPosition(in, ex)
	if !ok {
		return StepAborted
	}
	ex.Point = pos
	if ex.Elapsed >= ex.Timing.Release {
		return k.release(in, ex)
	}
	return StepContinue
}

func (k *LobKind) Cancel(in *Instance, ex *Execution) {}

func (k *LobKind) release(in *Instance, ex *Execution) Step {
	in.detach(ex)
	sol := k.solve(in, ex.Point)
	if !in.spawn(ex, sol.Launch) {
		return StepAborted
	}
	in.world.ApplyImpulse(ex.Spawned, sol.Impulse)
	return StepResolved
}

func (k *LobKind) targetPosition(in *Instance, ex *Execution) (cp.Vector, bool) {
	if in.world == nil || ex.Target == 0 || ex.Target == in.owner.ID() {
		return cp.Vector{}, false
	}
	return in.world.EntityPosition(ex.Target)
}

func (k *LobKind) solve(in *Instance, target cp.Vector) trajectory.Solution {
	p := in.params
	return trajectory.Solve(k.thrower.HandPosition(), target, p.Range, in.gravityY(), in.prefabMass(), p.Flight)
}
