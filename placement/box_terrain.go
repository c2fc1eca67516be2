package placement

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Box is an axis-aligned walkable rectangle.
type Box struct {
	Min cp.Vector
	Max cp.Vector
}

// BoxTerrain is walkable terrain made of boxes. It needs no physics space.
type BoxTerrain struct {
	Boxes []Box
	Rays  int
}

func (t *BoxTerrain) RayCast(from, to cp.Vector) (cp.Vector, bool) {
	if t == nil {
		return cp.Vector{}, false
	}
	dx := to.X - from.X
	dy := to.Y - from.Y
	if dx == 0 && dy == 0 {
		return cp.Vector{}, false
	}

	closest := 1.0
	hasHit := false
	for _, b := range t.Boxes {
		hit, at := segmentAABBHit(from.X, from.Y, dx, dy, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
		if hit && at >= 0 && at <= closest {
			closest = at
			hasHit = true
		}
	}
	if !hasHit {
		return cp.Vector{}, false
	}
	return cp.Vector{X: from.X + dx*closest, Y: from.Y + dy*closest}, true
}

func (t *BoxTerrain) NearestWalkable(p cp.Vector, radius float64) (cp.Vector, bool) {
	if t == nil {
		return cp.Vector{}, false
	}
	return RaySnap{Caster: t, Rays: t.Rays}.NearestWalkable(p, radius)
}

func segmentAABBHit(x0, y0, dx, dy, minX, minY, maxX, maxY float64) (bool, float64) {
	tmin := 0.0
	tmax := 1.0

	if dx != 0 {
		invD := 1.0 / dx
		t1 := (minX - x0) * invD
		t2 := (maxX - x0) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if x0 < minX || x0 > maxX {
		return false, 0
	}

	if dy != 0 {
		invD := 1.0 / dy
		t1 := (minY - y0) * invD
		t2 := (maxY - y0) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if y0 < minY || y0 > maxY {
		return false, 0
	}

	if tmax >= tmin {
		return true, tmin
	}
	return false, 0
}
