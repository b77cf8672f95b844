package ecs

import "github.com/milk9111/arenashooter/common"

// Event is any of the typed payloads below. The simulation pushes, the host
// drains once per frame for HUD text and sound dispatch.
type Event any

// EnemySpawned is pushed when the spawner constructs a fresh agent.
type EnemySpawned struct {
	Enemy    Entity
	Position common.Vec3
}

// EnemyRespawned is pushed when the spawner recycles a dead agent.
type EnemyRespawned struct {
	Enemy    Entity
	Position common.Vec3
}

// EnemyDamaged is pushed on every non-lethal or lethal hit that changed health.
type EnemyDamaged struct {
	Enemy  Entity
	Amount int
	Health int
}

// EnemyDied is pushed exactly once per death.
type EnemyDied struct {
	Enemy Entity
}

// EnemyKilled carries the score awarded for a projectile kill.
type EnemyKilled struct {
	Enemy      Entity
	ScoreDelta int
}

// PlayerAttacked is pushed when an agent lands a melee attack.
type PlayerAttacked struct {
	Enemy  Entity
	Damage int
}

// PlayerDied is pushed once when the player's health reaches zero.
type PlayerDied struct {
	Player Entity
}

// ProjectileExpired is pushed when a projectile runs out of lifetime.
type ProjectileExpired struct {
	Projectile Entity
}

// ProjectileHitWall is pushed when a projectile sweep crosses static geometry.
type ProjectileHitWall struct {
	Projectile Entity
	At         common.Vec3
}

// ShotFired is pushed per trigger pull that produced projectiles.
type ShotFired struct {
	Owner   Entity
	Weapon  string
	Pellets int
}

// ReloadStarted is pushed when a reload deadline is scheduled.
type ReloadStarted struct {
	Owner  Entity
	Weapon string
}

// ReloadFinished is pushed when the deadline passes and the magazine refills.
type ReloadFinished struct {
	Owner  Entity
	Weapon string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
