package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Transform is the body center.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	// Kinematic bodies follow their Transform instead of the solver.
	Kinematic bool
	// Category is the shape filter category; zero picks one from the body
	// type.
	Category uint
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
