package ability

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/common"
)

// SlamKind acts on the owner's surroundings. The regular variant winds up,
// hits everything in Radius at the slam's release time with damage and
// upward impulse falling off linearly with distance, then recovers until
// the slam's total time before resolving. The instant
// variant applies a buff to the owner inside ExecuteAction.
type SlamKind struct {
	slammer Slammer
	instant bool
}

func NewSlamKind(p Params, owner Owner) (Kind, error) {
	if p.Instant {
		return &SlamKind{instant: true}, nil
	}
	s, ok := owner.(Slammer)
	if !ok {
		return nil, fmt.Errorf("%w: %s needs a slammer", ErrMissingTrait, p.Key)
	}
	if !(p.Radius > 0) {
		return nil, fmt.Errorf("%w: %s: radius must be positive", ErrInvalidParams, p.Key)
	}
	return &SlamKind{slammer: s}, nil
}

func (k *SlamKind) Name() string {
	if k.instant {
		return "instant"
	}
	return "slam"
}

func (k *SlamKind) Targets() TargetType { return TargetSelf }

func (k *SlamKind) Target(in *Instance, raw cp.Vector) Aim {
	return Aim{Valid: true, Point: in.owner.Position()}
}

func (k *SlamKind) Begin(in *Instance, ex *Execution) Step {
	if k.instant {
		if in.world != nil {
			in.world.ApplyBuff(in.owner.ID(), Buff{
				Name:            in.params.Key,
				Duration:        in.params.Duration,
				SpeedMultiplier: in.params.SpeedMultiplier,
			})
		}
		return StepResolved
	}
	in.owner.StopMoving()
	ex.Timing = k.slammer.PlaySlam()
	ex.Phase = PhaseWindup
	if ex.Timing.Release <= 0 {
		return k.hit(in, ex)
	}
	return StepContinue
}

func (k *SlamKind) Advance(in *Instance, ex *Execution, dt float64) Step {
	switch ex.Phase {
	case PhaseWindup:
		if ex.Elapsed >= ex.Timing.Release {
			return k.hit(in, ex)
		}
	case PhaseRecover:
		return k.recover(ex)
	}
	return StepContinue
}

func (k *SlamKind) recover(ex *Execution) Step {
	if ex.Elapsed >= ex.Timing.Total {
		return StepResolved
	}
	return StepContinue
}

func (k *SlamKind) Cancel(in *Instance, ex *Execution) {}

func (k *SlamKind) hit(in *Instance, ex *Execution) Step {
	ex.Phase = PhaseRecover
	ex.committed = true
	if in.world == nil {
		return k.recover(ex)
	}
	self := in.owner.ID()
	radius := in.params.Radius
	for _, id := range in.world.EntitiesNear(ex.Point, radius) {
		if id == self {
			continue
		}
		pos, ok := in.world.EntityPosition(id)
		if !ok {
			continue
		}
		falloff := Falloff(ex.Point.Distance(pos), radius)
		if falloff <= 0 {
			continue
		}
		if in.params.Damage > 0 {
			in.world.Damage(id, in.params.Damage*falloff, self)
		}
		if in.params.ImpulseScale > 0 {
			mass := in.world.EntityMass(id)
			in.world.ApplyImpulse(id, cp.Vector{X: 0, Y: -falloff * in.params.ImpulseScale * mass})
		}
	}
	return k.recover(ex)
}

// Falloff is 1 at the centre of an area effect and 0 at its edge.
func Falloff(dist, radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return common.Saturate(1 - dist/radius)
}
