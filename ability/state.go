package ability

// State is the top-level state of an ability instance.
type State int

const (
	Idle State = iota
	Targeting
	Executing
	Cooldown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Targeting:
		return "targeting"
	case Executing:
		return "executing"
	case Cooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// Phase refines Executing for kinds that run sub-timers.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseMove
	PhaseWindup
	PhaseDrop
	PhaseRecover
)

func (p Phase) String() string {
	switch p {
	case PhaseMove:
		return "move"
	case PhaseWindup:
		return "windup"
	case PhaseDrop:
		return "drop"
	case PhaseRecover:
		return "recover"
	default:
		return "none"
	}
}
