package component

import "github.com/milk9111/arenashooter/common"

// StopThreshold is the velocity dead-zone below which position does not
// integrate, so idle agents don't jitter in place.
const StopThreshold = 0.1

// Movement integrates acceleration-driven velocity with a clamped top speed
// and per-tick friction damping. Desired is the unit direction requested
// this tick; it is consumed by the movement system and reset to zero.
type Movement struct {
	Velocity common.Vec3
	Desired  common.Vec3

	Speed        float64
	Acceleration float64
	Friction     float64
}

var MovementComponent = NewComponent[Movement]()
