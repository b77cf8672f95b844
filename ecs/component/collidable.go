package component

// Collidable associates an agent with the collision presence the host owns.
// The simulation only flips Enabled; a dead agent stops participating in
// every hit test without being removed from the roster.
type Collidable struct {
	Radius  float64
	Enabled bool
}

var CollidableComponent = NewComponent[Collidable]()
