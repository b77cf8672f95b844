package component

import "github.com/milk9111/arenashooter/common"

// Transform is world position plus yaw facing in degrees.
type Transform struct {
	Position common.Vec3
	Facing   float64
}

var TransformComponent = NewComponent[Transform]()
