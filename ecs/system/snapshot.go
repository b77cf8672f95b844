package system

import (
	"github.com/milk9111/arenashooter/common"
	"github.com/milk9111/arenashooter/ecs"
	"github.com/milk9111/arenashooter/ecs/component"
)

// Snapshot is the read-only view the host renders from. Taking one never
// mutates the world.
type Snapshot struct {
	Time        float64
	Score       int
	Kills       int
	LiveEnemies int
	Player      *PlayerSnapshot
	Enemies     []EnemySnapshot
	Projectiles []ProjectileSnapshot
}

type PlayerSnapshot struct {
	Entity    ecs.Entity
	Position  common.Vec3
	Facing    float64
	Health    float64
	Dead      bool
	Weapon    string
	Magazine  int
	Reserve   int
	Reloading bool
}

type EnemySnapshot struct {
	Entity   ecs.Entity
	Position common.Vec3
	Facing   float64
	Health   float64
	State    component.StateID
}

type ProjectileSnapshot struct {
	Entity   ecs.Entity
	Position common.Vec3
}

// TakeSnapshot captures the frame state: scoreboard, player, the enemy
// roster in roster order, and live projectiles.
func TakeSnapshot(w *ecs.World, board *Scoreboard) Snapshot {
	snap := Snapshot{}
	if w == nil {
		return snap
	}
	snap.Time = w.Now()
	if board != nil {
		snap.Score = board.Score
		snap.Kills = board.Kills
	}

	if p, ok := w.First(component.PlayerTagComponent.Kind().ID()); ok {
		ps := &PlayerSnapshot{Entity: p}
		if tr, ok := ecs.Get(w, p, component.TransformComponent.Kind()); ok {
			ps.Position = tr.Position
			ps.Facing = tr.Facing
		}
		if hp, ok := ecs.Get(w, p, component.HealthComponent.Kind()); ok {
			ps.Health = hp.Fraction()
			ps.Dead = !hp.IsAlive()
		}
		if arsenal, ok := ecs.Get(w, p, component.ArsenalComponent.Kind()); ok {
			if wp := arsenal.CurrentWeapon(); wp != nil {
				ps.Weapon = wp.Name
				ps.Magazine = wp.Magazine
				ps.Reserve = wp.Reserve
				ps.Reloading = wp.Reloading
			}
		}
		snap.Player = ps
	}

	for _, e := range w.Query(
		component.EnemyTagComponent.Kind().ID(),
		component.TransformComponent.Kind().ID(),
		component.HealthComponent.Kind().ID(),
	) {
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		hp, _ := ecs.Get(w, e, component.HealthComponent.Kind())
		es := EnemySnapshot{Entity: e, Position: tr.Position, Facing: tr.Facing, Health: hp.Fraction()}
		if state, ok := ecs.Get(w, e, component.AIStateComponent.Kind()); ok {
			es.State = state.Current
		}
		if hp.IsAlive() {
			snap.LiveEnemies++
		}
		snap.Enemies = append(snap.Enemies, es)
	}

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, _ *component.Projectile, tr *component.Transform) {
			snap.Projectiles = append(snap.Projectiles, ProjectileSnapshot{Entity: e, Position: tr.Position})
		})

	return snap
}
