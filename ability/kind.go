package ability

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/trajectory"
)

// Aim is the result of running a kind's targeting against a raw point.
type Aim struct {
	Valid  bool
	Point  cp.Vector
	Entity EntityID

	// Ballistic aims carry the solution used to draw the preview arc.
	Ballistic bool
	Solution  trajectory.Solution
}

// Step is what a kind reports after starting or advancing an execution.
type Step int

const (
	StepContinue Step = iota
	StepResolved
	StepAborted
)

// Execution is the record of one action in flight. It is built from the
// Action alone and is the only target data a kind may read.
type Execution struct {
	Action  Action
	Point   cp.Vector
	Target  EntityID
	Phase   Phase
	Elapsed float64
	Timing  Timing
	Drop    DropTiming
	Spawned EntityID

	attached bool
	// committed is set once the action has touched the world; the cooldown
	// is owed even if it is cancelled afterwards.
	committed bool
}

// Kind is the behaviour shared by every ability of one family.
type Kind interface {
	Name() string
	Targets() TargetType
	// Target validates a raw aim point. It must not change simulation
	// state.
	Target(in *Instance, raw cp.Vector) Aim
	Begin(in *Instance, ex *Execution) Step
	Advance(in *Instance, ex *Execution, dt float64) Step
	// Cancel undoes side effects of an unresolved execution.
	Cancel(in *Instance, ex *Execution)
}

// Factory builds a kind for an owner. It fails with ErrMissingTrait when
// the owner cannot perform the kind.
type Factory func(p Params, owner Owner) (Kind, error)
