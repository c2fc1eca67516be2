package ability

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/trajectory"
)

// Preview is a read-only snapshot for the presentation layer.
type Preview struct {
	Visible bool
	Valid   bool
	Marker  cp.Vector
	Target  EntityID
	Radius  float64
	// Arc is reused between calls; copy it to keep it.
	Arc []cp.Vector
}

// Instance is one equipped ability on one actor. It is mutated only from
// the owner's tick.
type Instance struct {
	params Params
	kind   Kind
	owner  Owner
	world  World
	gate   Gate

	state  State
	raw    cp.Vector
	aim    Aim
	hasAim bool
	exec   *Execution

	arc     []cp.Vector
	content Content
	handles map[string]Handle
}

// NewInstance binds a kind to an owner and world.
func NewInstance(p Params, kind Kind, owner Owner, world World) (*Instance, error) {
	if kind == nil {
		return nil, fmt.Errorf("%w: %s: nil kind", ErrInvalidParams, p.Key)
	}
	if owner == nil {
		return nil, fmt.Errorf("%w: %s: nil owner", ErrInvalidParams, p.Key)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.AttachPoint != "" {
		if _, ok := owner.(Attacher); !ok {
			return nil, fmt.Errorf("%w: %s needs attach point %q", ErrMissingTrait, p.Key, p.AttachPoint)
		}
	}
	p = p.WithDefaults()
	return &Instance{
		params: p,
		kind:   kind,
		owner:  owner,
		world:  world,
		gate:   NewGate(p.Cooldown, p.Cost),
	}, nil
}

func (in *Instance) Key() string       { return in.params.Key }
func (in *Instance) Params() Params    { return in.params }
func (in *Instance) Kind() Kind        { return in.kind }
func (in *Instance) Owner() Owner      { return in.owner }
func (in *Instance) World() World      { return in.world }
func (in *Instance) Gate() *Gate       { return &in.gate }
func (in *Instance) State() State      { return in.state }
func (in *Instance) Cooldown() float64 { return in.gate.Duration() }

func (in *Instance) RemainingCooldown() float64 {
	return in.gate.Remaining()
}

func (in *Instance) ResourceCost() int {
	return in.gate.Cost()
}

// Execution returns a copy of the action in flight.
func (in *Instance) Execution() (Execution, bool) {
	if in == nil || in.exec == nil {
		return Execution{}, false
	}
	return *in.exec, true
}

// ClearState forces Idle from any state. An unresolved execution is
// cancelled first. The cooldown keeps counting.
func (in *Instance) ClearState() {
	if in == nil {
		return
	}
	in.abort()
	in.clearAim()
	in.state = Idle
}

// SetPrimaryTarget runs targeting against p and enters Targeting. It is
// rejected while executing or cooling down.
func (in *Instance) SetPrimaryTarget(p cp.Vector) bool {
	if in == nil {
		return false
	}
	if in.state == Executing || in.state == Cooldown {
		return false
	}
	in.state = Targeting
	in.raw = p
	in.retarget()
	return true
}

func (in *Instance) retarget() {
	in.aim = in.kind.Target(in, in.raw)
	in.hasAim = true
}

// IsInValidState reports whether the last targeting pass produced a usable
// target.
func (in *Instance) IsInValidState() bool {
	if in == nil {
		return false
	}
	return in.state == Targeting && in.hasAim && in.aim.Valid
}

// GenerateAction reads the current target into an Action. It returns
// EmptyAction unless IsInValidState.
func (in *Instance) GenerateAction() Action {
	if !in.IsInValidState() {
		return EmptyAction()
	}
	id := in.owner.ID()
	switch in.kind.Targets() {
	case TargetPoint:
		return PointAction(in.params.Key, id, in.aim.Point)
	case TargetEntity:
		return EntityAction(in.params.Key, id, in.aim.Entity)
	default:
		return SelfAction(in.params.Key, id)
	}
}

// ExecuteAction starts executing a. The target comes from a only. Actions
// are accepted from Idle and Targeting so a recorded action can be replayed
// on a fresh instance. ErrAborted means the kind could not start (an
// unreachable drop point, a failed spawn) and nothing was applied.
func (in *Instance) ExecuteAction(a Action) error {
	if in == nil {
		return ErrNotTargeting
	}
	if a.IsEmpty() {
		return ErrEmptyAction
	}
	if a.Ability != in.params.Key || a.Issuer != in.owner.ID() {
		return fmt.Errorf("%w: %s issued by %d", ErrForeignAction, a.Ability, a.Issuer)
	}
	if want := in.kind.Targets().actionKind(); a.Kind != want {
		return fmt.Errorf("%w: %s payload, want %s", ErrForeignAction, a.Kind, want)
	}
	if in.state != Idle && in.state != Targeting {
		return fmt.Errorf("%w: %s", ErrNotTargeting, in.state)
	}
	if !in.gate.Ready() {
		return ErrCoolingDown
	}

	ex := &Execution{Action: a}
	switch a.Kind {
	case ActionPoint:
		ex.Point = a.Point
	case ActionEntity:
		ex.Target = a.Target
	case ActionSelf:
		ex.Point = in.owner.Position()
	}

	in.clearAim()
	in.exec = ex
	in.state = Executing
	step := in.kind.Begin(in, ex)
	in.settle(step)
	if step == StepAborted {
		return fmt.Errorf("%w: %s", ErrAborted, in.params.Key)
	}
	return nil
}

// CancelAction returns to Idle from Targeting or Executing. Nothing of an
// unresolved execution survives, except that an action which already hit
// the world still goes on cooldown.
func (in *Instance) CancelAction() {
	if in == nil {
		return
	}
	switch in.state {
	case Targeting:
		in.clearAim()
		in.state = Idle
	case Executing:
		in.abort()
		in.state = Idle
		if !in.gate.Ready() {
			in.state = Cooldown
		}
	}
}

func (in *Instance) IsExecutingAction() bool {
	return in != nil && in.state == Executing
}

// Update advances the instance by dt seconds. It is called once per tick in
// every state.
func (in *Instance) Update(dt float64) {
	if in == nil {
		return
	}
	in.gate.Tick(dt)

	switch in.state {
	case Cooldown:
		if in.gate.Ready() {
			in.state = Idle
		}
	case Executing:
		if in.exec != nil {
			in.exec.Elapsed += dt
			in.settle(in.kind.Advance(in, in.exec, dt))
		}
	case Targeting:
		if in.hasAim {
			in.retarget()
		}
	}
}

// Preview returns what should be drawn for the current target.
func (in *Instance) Preview() Preview {
	if in == nil || in.state != Targeting || !in.hasAim {
		return Preview{}
	}
	pv := Preview{
		Visible: true,
		Valid:   in.aim.Valid,
		Marker:  in.aim.Point,
		Target:  in.aim.Entity,
		Radius:  in.params.Radius,
	}
	if in.aim.Ballistic {
		in.arc = trajectory.SampleArc(in.arc, in.aim.Solution, in.gravityY(), in.params.ArcSteps, in.params.ArcDuration)
		pv.Arc = in.arc
	}
	return pv
}

// Equip acquires the content the ability draws. On failure nothing stays
// acquired.
func (in *Instance) Equip(c Content) error {
	if in == nil {
		return nil
	}
	if c == nil {
		if len(in.params.Preloads()) > 0 {
			return fmt.Errorf("%w: %s: no content source", ErrMissingContent, in.params.Key)
		}
		return nil
	}
	in.Unequip()
	handles := make(map[string]Handle)
	for _, path := range in.params.Preloads() {
		h, err := c.Acquire(path)
		if err == nil && h == 0 {
			err = ErrMissingContent
		}
		if err != nil {
			for _, got := range handles {
				c.Release(got)
			}
			return fmt.Errorf("ability: equip %s: acquire %s: %w", in.params.Key, path, err)
		}
		handles[path] = h
	}
	in.content = c
	in.handles = handles
	return nil
}

// Unequip clears state and releases every acquired handle.
func (in *Instance) Unequip() {
	if in == nil {
		return
	}
	in.ClearState()
	if in.content != nil {
		for _, h := range in.handles {
			in.content.Release(h)
		}
	}
	in.content = nil
	in.handles = nil
}

// Handle returns the handle acquired for path.
func (in *Instance) Handle(path string) (Handle, bool) {
	if in == nil {
		return 0, false
	}
	h, ok := in.handles[path]
	return h, ok
}

func (in *Instance) settle(step Step) {
	switch step {
	case StepResolved:
		in.resolve()
	case StepAborted:
		in.abort()
		in.state = Idle
	}
}

func (in *Instance) resolve() {
	ex := in.exec
	in.exec = nil
	if ex == nil {
		in.state = Idle
		return
	}
	in.detach(ex)

	if in.params.OnResolve != nil {
		err := in.params.OnResolve.Apply(EffectContext{
			World:   in.world,
			Owner:   in.owner,
			Ability: in.params.Key,
			Point:   ex.Point,
			Target:  ex.Target,
			Spawned: ex.Spawned,
		})
		if err != nil {
			log.Printf("ability: owner=%d key=%s effect: %v", in.owner.ID(), in.params.Key, err)
		}
	}

	in.gate.StartCooldown()
	if in.gate.Ready() {
		in.state = Idle
		return
	}
	in.state = Cooldown
}

func (in *Instance) abort() {
	if in.exec == nil {
		return
	}
	ex := in.exec
	in.exec = nil
	in.kind.Cancel(in, ex)
	in.detach(ex)
	if ex.committed {
		in.gate.StartCooldown()
	}
}

func (in *Instance) clearAim() {
	in.aim = Aim{}
	in.hasAim = false
	in.raw = cp.Vector{}
}

// attach shows the held visual on the owner's attach point.
func (in *Instance) attach(ex *Execution) {
	if ex == nil || ex.attached || in.params.AttachPoint == "" {
		return
	}
	h, ok := in.handles[in.params.Held]
	if !ok {
		return
	}
	if a, ok := in.owner.(Attacher); ok {
		a.Attach(in.params.AttachPoint, h)
		ex.attached = true
	}
}

func (in *Instance) detach(ex *Execution) {
	if ex == nil || !ex.attached {
		return
	}
	ex.attached = false
	if a, ok := in.owner.(Attacher); ok {
		a.Detach(in.params.AttachPoint, in.handles[in.params.Held])
	}
}

// spawn creates the ability's prefab at p. Failures are logged and
// reported as false.
func (in *Instance) spawn(ex *Execution, at cp.Vector) bool {
	if in.world == nil {
		return false
	}
	id, err := in.world.Spawn(at, Constructor{
		Prefab: in.params.Prefab,
		Owner:  in.owner.ID(),
		Target: ex.Target,
		Fuse:   in.params.Fuse,
		Radius: in.params.Radius,
		Damage: in.params.Damage,
		Heal:   in.params.Heal,
		Health: in.params.Health,
	})
	if err != nil {
		log.Printf("ability: owner=%d key=%s spawn %s: %v", in.owner.ID(), in.params.Key, in.params.Prefab, err)
		return false
	}
	ex.Spawned = id
	return true
}

func (in *Instance) gravityY() float64 {
	if in.world == nil {
		return 0
	}
	return in.world.Gravity().Y
}

func (in *Instance) prefabMass() float64 {
	if in.world == nil {
		return 0
	}
	return in.world.Mass(in.params.Prefab)
}
