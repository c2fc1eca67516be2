package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/abilitykit/common"
	"github.com/milk9111/abilitykit/ecs"
	"github.com/milk9111/abilitykit/ecs/component"
	"github.com/milk9111/abilitykit/ecs/entity"
)

const dt = common.TickSeconds

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// newSim returns a simulation with flat walkable ground at y=0.
func newSim(t *testing.T) *Simulation {
	t.Helper()
	sim := NewSimulation(dt)
	if sim.Physics.AddGround(cp.Vector{X: -4000, Y: 0}, cp.Vector{X: 4000, Y: 0}, 0) == nil {
		t.Fatalf("ground not added")
	}
	return sim
}

func mustProp(t *testing.T, w *ecs.World, name string, at cp.Vector) ecs.Entity {
	t.Helper()
	e, err := entity.NewProp(w, name, at)
	if err != nil {
		t.Fatalf("NewProp(%s): %v", name, err)
	}
	return e
}

func step(sim *Simulation, n int) {
	for i := 0; i < n; i++ {
		sim.Step()
	}
}

func health(t *testing.T, w *ecs.World, e ecs.Entity) float64 {
	t.Helper()
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		t.Fatalf("entity %d has no health", e)
	}
	return h.Current
}

// mustActor builds an actor standing on the ground at x=0.
func mustActor(t *testing.T, sim *Simulation) ecs.Entity {
	t.Helper()
	e, err := entity.NewActor(sim.World, "actor", cp.Vector{X: 0, Y: -48})
	if err != nil {
		t.Fatalf("NewActor: %v", err)
	}
	return e
}
