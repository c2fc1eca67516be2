package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/common"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
	"github.com/milk9111/abilitykit/placement"
)

const collisionTypeSolid cp.CollisionType = 1

// PhysicsSystem owns the Chipmunk space. Dynamic bodies drive their
// Transform; kinematic bodies follow it.
type PhysicsSystem struct {
	space    *cp.Space
	dt       float64
	entities map[ecs.Entity]*bodyInfo
	terrain  *placement.SpaceTerrain
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	if dt <= 0 {
		dt = common.TickSeconds
	}
	return &PhysicsSystem{
		space:    newSpace(),
		dt:       dt,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Terrain returns the walkable-ground view of the space.
func (ps *PhysicsSystem) Terrain() *placement.SpaceTerrain {
	if ps == nil {
		return nil
	}
	if ps.terrain == nil {
		ps.terrain = placement.NewSpaceTerrain(ps.space)
	}
	return ps.terrain
}

// AddGround adds a static walkable segment.
func (ps *PhysicsSystem) AddGround(a, b cp.Vector, radius float64) *cp.Shape {
	if ps == nil || ps.space == nil {
		return nil
	}
	return placement.AddWalkableSegment(ps.space, a, b, radius)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.syncEntities(w)
	ps.syncKinematic(w)
	ps.space.Step(ps.dt)
	ps.syncTransforms(w)
}

// Ensure creates the body of e now instead of on the next update, so
// impulses can be applied in the frame an entity spawns.
func (ps *PhysicsSystem) Ensure(w *ecs.World, e ecs.Entity) (*cp.Body, bool) {
	if ps == nil || w == nil {
		return nil, false
	}
	bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return nil, false
	}
	if info := ps.entities[e]; info != nil {
		if bodyComp.Body == nil {
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
		}
		return info.body, true
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	info := ps.createBodyInfo(*transform, *bodyComp)
	if info == nil {
		return nil, false
	}
	ps.entities[e] = info
	bodyComp.Body = info.body
	bodyComp.Shape = info.shape
	info.shape.UserData = e
	if !info.static {
		info.body.UserData = e
	}
	return info.body, true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		ps.Ensure(w, e)
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width = 32
		height = 32
	}
	center := transform.Vec()
	info := &bodyInfo{static: bodyComp.Static}

	category := bodyComp.Category
	if category == 0 {
		switch {
		case bodyComp.Static:
			category = placement.WalkableCategory
		case bodyComp.Kinematic:
			category = placement.ActorCategory
		default:
			category = placement.PropCategory
		}
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, category, cp.ALL_CATEGORIES)

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, center)
		} else {
			bb := cp.BB{L: center.X - width/2, B: center.Y - height/2, R: center.X + width/2, T: center.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(filter)
		ps.space.AddShape(shape)
		info.body = ps.space.StaticBody
		info.shape = shape
		return info
	}

	var body *cp.Body
	if bodyComp.Kinematic {
		body = cp.NewKinematicBody()
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		var moment float64
		if radius > 0 {
			moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, width, height)
		}
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(center)
	body.SetAngle(transform.Rotation)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(filter)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	info.body = body
	info.shape = shape
	return info
}

func (ps *PhysicsSystem) syncKinematic(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if !bodyComp.Kinematic || bodyComp.Body == nil {
			return
		}
		next := transform.Vec()
		v := next.Sub(bodyComp.Body.Position()).Mult(1 / ps.dt)
		bodyComp.Body.SetVelocity(v.X, v.Y)
		bodyComp.Body.SetPosition(next)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static || bodyComp.Kinematic {
			return
		}
		transform.SetVec(bodyComp.Body.Position())
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
