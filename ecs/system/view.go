package system

import "github.com/milk9111/arenashooter/common"

// WorldView is the narrow contract the simulation needs from the world
// collaborator: sight queries, spawn points, map bounds, and randomness.
// The arena package implements it over a Chipmunk space; tests implement it
// with a few lines of stub.
type WorldView interface {
	// LineOfSight reports whether the straight segment between two points
	// is free of static geometry. Agents and the player never block sight.
	LineOfSight(from, to common.Vec3) bool

	// SweepWall tests a movement segment against static geometry and
	// returns the impact point on hit.
	SweepWall(from, to common.Vec3) (bool, common.Vec3)

	// EnemySpawn returns a spawn point for a new agent. The point is
	// accepted as given; the simulation does not validate it.
	EnemySpawn() common.Vec3

	// PlayerSpawn returns the player spawn point.
	PlayerSpawn() common.Vec3

	// Bounds returns the min and max world corners, used to clamp
	// generated patrol waypoints.
	Bounds() (min, max common.Vec3)

	// RandFloat returns a uniform float in [lo, hi).
	RandFloat(lo, hi float64) float64

	// RandInt returns a uniform int in [lo, hi].
	RandInt(lo, hi int) int
}
