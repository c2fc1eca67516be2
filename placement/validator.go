// Package placement snaps raw aim points onto walkable terrain.
package placement

import "github.com/jakecoffman/cp"

// DefaultRays is the number of downward probes cast per validation.
const DefaultRays = 10

// Down is the probe direction. World coordinates grow downward.
var Down = cp.Vector{X: 0, Y: 1}

// Result is the outcome of one validation.
type Result struct {
	Valid    bool
	Position cp.Vector
}

// Terrain answers walkability queries.
type Terrain interface {
	// NearestWalkable returns a walkable placement within radius of p.
	NearestWalkable(p cp.Vector, radius float64) (cp.Vector, bool)
}

// RayCaster casts a segment against walkable terrain and returns the first
// hit from the start point.
type RayCaster interface {
	RayCast(from, to cp.Vector) (cp.Vector, bool)
}

// PreviewBounds describes the marker drawn for the candidate placement. An
// invalid placement keeps the marker where the cursor is by offsetting the
// raw point with Anchor - Center.
type PreviewBounds struct {
	Anchor cp.Vector
	Center cp.Vector
}

func (b PreviewBounds) offset() cp.Vector {
	return b.Anchor.Sub(b.Center)
}

// Validate projects raw onto the nearest walkable placement within radius.
func Validate(t Terrain, raw cp.Vector, radius float64, preview PreviewBounds) Result {
	if t != nil && radius > 0 {
		if p, ok := t.NearestWalkable(raw, radius); ok {
			return Result{Valid: true, Position: p}
		}
	}
	return Result{Valid: false, Position: raw.Add(preview.offset())}
}

// RaySnap turns a RayCaster into a Terrain. It casts Rays probes straight
// down; probe i starts i*radius/Rays above the raw point so placements on a
// ledge slightly above the cursor are found. The first probe whose hit lies
// within radius of the raw point wins.
type RaySnap struct {
	Caster RayCaster
	Rays   int
}

func (s RaySnap) NearestWalkable(p cp.Vector, radius float64) (cp.Vector, bool) {
	if s.Caster == nil || radius <= 0 {
		return cp.Vector{}, false
	}
	rays := s.Rays
	if rays <= 0 {
		rays = DefaultRays
	}

	end := p.Add(Down.Mult(radius))
	for i := 0; i < rays; i++ {
		lift := float64(i) * (radius / float64(rays))
		origin := p.Sub(Down.Mult(lift))
		hit, ok := s.Caster.RayCast(origin, end)
		if ok && p.Distance(hit) <= radius {
			return hit, true
		}
	}
	return cp.Vector{}, false
}
