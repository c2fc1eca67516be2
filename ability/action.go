package ability

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// EntityID identifies a world entity outside the ECS package.
type EntityID uint64

// ActionKind tags the payload carried by an Action.
type ActionKind int

const (
	ActionEmpty ActionKind = iota
	ActionSelf
	ActionPoint
	ActionEntity
)

func (k ActionKind) String() string {
	switch k {
	case ActionSelf:
		return "self"
	case ActionPoint:
		return "point"
	case ActionEntity:
		return "entity"
	default:
		return "empty"
	}
}

// Action is the value handed from targeting to execution. It is produced by
// GenerateAction and consumed once by ExecuteAction; Actions compare with ==.
type Action struct {
	Kind    ActionKind
	Ability string
	Issuer  EntityID
	Point   cp.Vector
	Target  EntityID
}

// EmptyAction returns the canonical no-op action.
func EmptyAction() Action {
	return Action{}
}

func PointAction(ability string, issuer EntityID, p cp.Vector) Action {
	return Action{Kind: ActionPoint, Ability: ability, Issuer: issuer, Point: p}
}

func EntityAction(ability string, issuer, target EntityID) Action {
	return Action{Kind: ActionEntity, Ability: ability, Issuer: issuer, Target: target}
}

func SelfAction(ability string, issuer EntityID) Action {
	return Action{Kind: ActionSelf, Ability: ability, Issuer: issuer}
}

func (a Action) IsEmpty() bool {
	return a.Kind == ActionEmpty
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPoint:
		return fmt.Sprintf("%s(issuer=%d point=%.1f,%.1f)", a.Ability, a.Issuer, a.Point.X, a.Point.Y)
	case ActionEntity:
		return fmt.Sprintf("%s(issuer=%d target=%d)", a.Ability, a.Issuer, a.Target)
	case ActionSelf:
		return fmt.Sprintf("%s(issuer=%d self)", a.Ability, a.Issuer)
	default:
		return "empty"
	}
}

// TargetType is what a kind aims at.
type TargetType int

const (
	TargetSelf TargetType = iota
	TargetPoint
	TargetEntity
)

func (t TargetType) actionKind() ActionKind {
	switch t {
	case TargetPoint:
		return ActionPoint
	case TargetEntity:
		return ActionEntity
	default:
		return ActionSelf
	}
}
