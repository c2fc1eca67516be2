package placement

import "github.com/jakecoffman/cp"

// Shape categories. Walkable terrain is the only category placement probes
// accept; actors and loose props never count as ground.
const (
	WalkableCategory uint = 1 << 0
	ActorCategory    uint = 1 << 1
	PropCategory     uint = 1 << 2
)

// SpaceTerrain queries walkable shapes of a Chipmunk space.
type SpaceTerrain struct {
	space  *cp.Space
	filter cp.ShapeFilter
	Rays   int
}

// NewSpaceTerrain returns a terrain that only hits shapes in the walkable
// category.
func NewSpaceTerrain(space *cp.Space) *SpaceTerrain {
	return &SpaceTerrain{
		space:  space,
		filter: cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, WalkableCategory),
	}
}

// RayCast returns the first walkable point on the segment.
func (t *SpaceTerrain) RayCast(from, to cp.Vector) (cp.Vector, bool) {
	if t == nil || t.space == nil {
		return cp.Vector{}, false
	}
	info := t.space.SegmentQueryFirst(from, to, 0, t.filter)
	if info.Shape == nil {
		return cp.Vector{}, false
	}
	return info.Point, true
}

func (t *SpaceTerrain) NearestWalkable(p cp.Vector, radius float64) (cp.Vector, bool) {
	if t == nil {
		return cp.Vector{}, false
	}
	return RaySnap{Caster: t, Rays: t.Rays}.NearestWalkable(p, radius)
}

// AddWalkableSegment adds a static walkable segment to space and returns it.
func AddWalkableSegment(space *cp.Space, a, b cp.Vector, radius float64) *cp.Shape {
	shape := cp.NewSegment(space.StaticBody, a, b, radius)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, WalkableCategory, cp.ALL_CATEGORIES))
	shape.SetFriction(0.8)
	space.AddShape(shape)
	return shape
}
