package system

import (
	"github.com/milk9111/arenashooter/common"
	"github.com/milk9111/arenashooter/ecs"
	"github.com/milk9111/arenashooter/ecs/component"
)

// MovementSystem integrates every mover: acceleration toward the desired
// direction, top-speed clamp, friction damping, then position. The order is
// fixed; friction applies every tick, even to a mover still accelerating, so
// top effective speed lands a little under Speed.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	ecs.ForEach2(w, component.MovementComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, move *component.Movement, tr *component.Transform) {
			if !move.Desired.IsZero() {
				dir := move.Desired.Normalized()
				move.Velocity = move.Velocity.Add(dir.Scale(move.Acceleration * dt))
			}
			if speed := move.Velocity.Length(); speed > move.Speed && move.Speed > 0 {
				move.Velocity = move.Velocity.Scale(move.Speed / speed)
			}
			move.Velocity = move.Velocity.Scale(move.Friction)

			// Below the dead-zone the mover holds position, so residual
			// friction-decayed velocity can't make idle agents drift.
			if move.Velocity.Length() > component.StopThreshold {
				tr.Position = tr.Position.Add(move.Velocity.Scale(dt))
				tr.Facing = move.Velocity.FacingDegrees()
			}

			move.Desired = common.Vec3{}
		})
}
