package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/ability"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
)

// ActorOwner exposes an actor entity to its ability instances. It reads
// components on every call so it never holds stale values.
type ActorOwner struct {
	w *ecs.World
	e ecs.Entity
}

var (
	_ ability.Owner    = (*ActorOwner)(nil)
	_ ability.Thrower  = (*ActorOwner)(nil)
	_ ability.Dropper  = (*ActorOwner)(nil)
	_ ability.Slammer  = (*ActorOwner)(nil)
	_ ability.Attacher = (*ActorOwner)(nil)
)

func NewActorOwner(w *ecs.World, e ecs.Entity) *ActorOwner {
	return &ActorOwner{w: w, e: e}
}

func (o *ActorOwner) Entity() ecs.Entity { return o.e }

func (o *ActorOwner) ID() ability.EntityID { return ability.EntityID(o.e) }

func (o *ActorOwner) Position() cp.Vector {
	t, ok := ecs.Get(o.w, o.e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}
	}
	return t.Vec()
}

func (o *ActorOwner) Bounds() ability.Bounds {
	b := ability.Bounds{Center: o.Position()}
	if a, ok := ecs.Get(o.w, o.e, component.ActorComponent.Kind()); ok {
		b.Width = a.Width
		b.Height = a.Height
	}
	return b
}

func (o *ActorOwner) IsMoving() bool {
	m, ok := ecs.Get(o.w, o.e, component.MoverComponent.Kind())
	return ok && m.Moving
}

// MoveTo walks toward p along the ground. Points farther than the mover's
// reach are unreachable.
func (o *ActorOwner) MoveTo(p cp.Vector) bool {
	m, ok := ecs.Get(o.w, o.e, component.MoverComponent.Kind())
	if !ok || m.Speed <= 0 {
		return false
	}
	if m.Reach > 0 && o.Position().Distance(p) > m.Reach {
		return false
	}
	m.Target = p
	m.Moving = true
	return true
}

func (o *ActorOwner) StopMoving() {
	if m, ok := ecs.Get(o.w, o.e, component.MoverComponent.Kind()); ok {
		m.Moving = false
	}
}

func (o *ActorOwner) Face(p cp.Vector) {
	a, ok := ecs.Get(o.w, o.e, component.ActorComponent.Kind())
	if !ok {
		return
	}
	dx := p.X - o.Position().X
	switch {
	case dx > 0:
		a.Facing = 1
	case dx < 0:
		a.Facing = -1
	}
}

func (o *ActorOwner) HandPosition() cp.Vector {
	pos := o.Position()
	a, ok := ecs.Get(o.w, o.e, component.ActorComponent.Kind())
	if !ok {
		return pos
	}
	facing := a.Facing
	if facing == 0 {
		facing = 1
	}
	return pos.Add(cp.Vector{X: a.Hand.X * facing, Y: a.Hand.Y})
}

func (o *ActorOwner) PlayThrow() ability.Timing {
	if a, ok := ecs.Get(o.w, o.e, component.ActorComponent.Kind()); ok {
		return a.Throw
	}
	return ability.Timing{}
}

func (o *ActorOwner) PlayDrop() ability.DropTiming {
	if a, ok := ecs.Get(o.w, o.e, component.ActorComponent.Kind()); ok {
		return a.Drop
	}
	return ability.DropTiming{}
}

func (o *ActorOwner) PlaySlam() ability.Timing {
	if a, ok := ecs.Get(o.w, o.e, component.ActorComponent.Kind()); ok {
		return a.Slam
	}
	return ability.Timing{}
}

func (o *ActorOwner) Attach(point string, h ability.Handle) {
	a, ok := ecs.Get(o.w, o.e, component.ActorComponent.Kind())
	if !ok {
		return
	}
	if a.Attached == nil {
		a.Attached = make(map[string]ability.Handle)
	}
	a.Attached[point] = h
}

func (o *ActorOwner) Detach(point string, h ability.Handle) {
	a, ok := ecs.Get(o.w, o.e, component.ActorComponent.Kind())
	if !ok {
		return
	}
	if cur, ok := a.Attached[point]; ok && cur == h {
		delete(a.Attached, point)
	}
}
