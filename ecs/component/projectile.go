package component

import "github.com/milk9111/arenashooter/common"

// Projectile is a live round. It resolves exactly once per sweep: expiry,
// wall, or the first enemy within the hit radius.
type Projectile struct {
	Origin   common.Vec3
	Velocity common.Vec3
	Lifetime float64 // seconds remaining
	Owner    EntityRef
	Damage   int
}

var ProjectileComponent = NewComponent[Projectile]()
