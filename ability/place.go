package ability

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/placement"
)

// PlaceKind walks the owner to a validated placement and puts an object
// down there. Immediate variants spawn on arrival; the others play the
// owner's drop animation and spawn at its drop instant.
type PlaceKind struct {
	dropper Dropper
}

func NewPlaceKind(p Params, owner Owner) (Kind, error) {
	if !(p.SnapRadius > 0) {
		return nil, fmt.Errorf("%w: %s: snap radius must be positive", ErrInvalidParams, p.Key)
	}
	if p.Immediate {
		return &PlaceKind{}, nil
	}
	d, ok := owner.(Dropper)
	if !ok {
		return nil, fmt.Errorf("%w: %s needs a dropper", ErrMissingTrait, p.Key)
	}
	return &PlaceKind{dropper: d}, nil
}

func (k *PlaceKind) Name() string {
	if k.dropper == nil {
		return "build"
	}
	return "place"
}

func (k *PlaceKind) Targets() TargetType { return TargetPoint }

func (k *PlaceKind) Target(in *Instance, raw cp.Vector) Aim {
	var terrain placement.Terrain
	if in.world != nil {
		terrain = in.world.Terrain()
	}
	res := placement.Validate(terrain, raw, in.params.SnapRadius, in.params.Preview)
	return Aim{Valid: res.Valid, Point: res.Position}
}

func (k *PlaceKind) Begin(in *Instance, ex *Execution) Step {
	if !in.owner.MoveTo(ex.Point) {
		return StepAborted
	}
	ex.Phase = PhaseMove
	return k.Advance(in, ex, 0)
}

func (k *PlaceKind) Advance(in *Instance, ex *Execution, dt float64) Step {
	switch ex.Phase {
	case PhaseMove:
		if !arrived(in.owner, ex.Point) {
			if in.owner.IsMoving() {
				return StepContinue
			}
			// stopped short: blocked or knocked away
			return StepAborted
		}
		in.owner.StopMoving()
		in.owner.Face(ex.Point)
		if k.dropper == nil {
			return k.drop(in, ex)
		}
		ex.Drop = k.dropper.PlayDrop()
		ex.Phase = PhaseDrop
		ex.Elapsed = 0
		return k.Advance(in, ex, 0)
	case PhaseDrop:
		if ex.Elapsed >= ex.Drop.Drop || ex.Elapsed >= ex.Drop.Total {
			return k.drop(in, ex)
		}
		if ex.Elapsed >= ex.Drop.Spawn {
			in.attach(ex)
		}
	}
	return StepContinue
}

func (k *PlaceKind) Cancel(in *Instance, ex *Execution) {
	if ex.Phase == PhaseMove || ex.Phase == PhaseDrop {
		in.owner.StopMoving()
	}
}

func (k *PlaceKind) drop(in *Instance, ex *Execution) Step {
	in.detach(ex)
	if !in.spawn(ex, ex.Point) {
		return StepAborted
	}
	return StepResolved
}

// arrived reports whether the owner stands within half its width of p
// along the ground.
func arrived(o Owner, p cp.Vector) bool {
	return math.Abs(o.Position().X-p.X) < o.Bounds().Width*0.5
}
