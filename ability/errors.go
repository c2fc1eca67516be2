package ability

import "errors"

var (
	ErrNotTargeting   = errors.New("ability: not accepting actions")
	ErrCoolingDown    = errors.New("ability: cooling down")
	ErrEmptyAction    = errors.New("ability: empty action")
	ErrAborted        = errors.New("ability: action aborted")
	ErrForeignAction  = errors.New("ability: action belongs to another ability")
	ErrMissingTrait   = errors.New("ability: owner lacks required trait")
	ErrRegistryFrozen = errors.New("ability: registry frozen")
	ErrUnknownAbility = errors.New("ability: unknown ability")
	ErrDuplicateKey   = errors.New("ability: duplicate ability key")
	ErrUnknownKind    = errors.New("ability: unknown kind")
	ErrMissingContent = errors.New("ability: missing content")
	ErrInvalidParams  = errors.New("ability: invalid params")
)
