package system

import (
	"github.com/milk9111/arenashooter/common"
	"github.com/milk9111/arenashooter/ecs"
	"github.com/milk9111/arenashooter/ecs/component"
)

// Scoreboard accumulates the session score. The combat system is the only
// writer; the HUD and snapshots read it.
type Scoreboard struct {
	Score int
	Kills int
}

func (b *Scoreboard) Reset() {
	if b == nil {
		return
	}
	b.Score = 0
	b.Kills = 0
}

// CombatConfig is the tunable half of projectile resolution.
type CombatConfig struct {
	// HitRadius is the distance under which a projectile connects.
	HitRadius float64
	// KillScore is awarded per projectile kill.
	KillScore int
}

func DefaultCombatConfig() CombatConfig {
	return CombatConfig{HitRadius: 2.0, KillScore: 100}
}

// CombatSystem sweeps every live projectile once per tick. Each projectile
// resolves at most one outcome per tick, checked in a fixed order: expiry,
// wall, then the first enemy in roster order inside the hit radius. Spent
// projectiles are collected during the sweep and destroyed after it, so a
// removal can never skew the iteration.
type CombatSystem struct {
	view  WorldView
	board *Scoreboard
	cfg   CombatConfig
}

func NewCombatSystem(view WorldView, board *Scoreboard, cfg CombatConfig) *CombatSystem {
	if cfg.HitRadius <= 0 {
		cfg = DefaultCombatConfig()
	}
	return &CombatSystem{view: view, board: board, cfg: cfg}
}

func (s *CombatSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}

	roster := w.Query(
		component.EnemyTagComponent.Kind().ID(),
		component.TransformComponent.Kind().ID(),
		component.HealthComponent.Kind().ID(),
	)

	var spent []ecs.Entity
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, proj *component.Projectile, tr *component.Transform) {
			from := tr.Position
			tr.Position = tr.Position.Add(proj.Velocity.Scale(dt))

			proj.Lifetime -= dt
			if proj.Lifetime <= 0 {
				// An expired round deals no damage, even if this tick's
				// movement carried it inside someone's hit radius.
				w.Events().Push(ecs.ProjectileExpired{Projectile: e})
				spent = append(spent, e)
				return
			}

			if s.view != nil {
				if hit, at := s.view.SweepWall(from, tr.Position); hit {
					w.Events().Push(ecs.ProjectileHitWall{Projectile: e, At: at})
					spent = append(spent, e)
					return
				}
			}

			if s.resolveEnemyHit(w, e, proj, tr.Position, roster) {
				spent = append(spent, e)
			}
		})

	for _, e := range spent {
		ecs.DestroyEntity(w, e)
	}
}

// resolveEnemyHit damages the first vulnerable enemy in roster order within
// the hit radius. At most one enemy takes damage per projectile per tick.
func (s *CombatSystem) resolveEnemyHit(w *ecs.World, projEnt ecs.Entity, proj *component.Projectile, at common.Vec3, roster []ecs.Entity) bool {
	for _, enemy := range roster {
		if component.EntityRef(enemy) == proj.Owner {
			continue
		}
		hp, ok := ecs.Get(w, enemy, component.HealthComponent.Kind())
		if !ok || !hp.IsAlive() {
			continue
		}
		if col, ok := ecs.Get(w, enemy, component.CollidableComponent.Kind()); ok && !col.Enabled {
			continue
		}
		tr, ok := ecs.Get(w, enemy, component.TransformComponent.Kind())
		if !ok || at.Dist(tr.Position) >= s.cfg.HitRadius {
			continue
		}

		hp.ApplyDamage(proj.Damage)
		w.Events().Push(ecs.EnemyDamaged{Enemy: enemy, Amount: proj.Damage, Health: hp.Current})
		if !hp.IsAlive() {
			KillEnemy(w, enemy)
			if s.board != nil {
				s.board.Score += s.cfg.KillScore
				s.board.Kills++
			}
			w.Events().Push(ecs.EnemyKilled{Enemy: enemy, ScoreDelta: s.cfg.KillScore})
		}
		return true
	}
	return false
}

// KillEnemy moves an agent into its terminal state: dead FSM state, zeroed
// velocity, no target, collision disabled. The entity stays in the roster
// for the spawner's respawn pool. Pushes EnemyDied exactly once.
func KillEnemy(w *ecs.World, e ecs.Entity) bool {
	if w == nil {
		return false
	}
	state, ok := ecs.Get(w, e, component.AIStateComponent.Kind())
	if !ok || state.Current == component.StateDead {
		return false
	}
	state.Current = component.StateDead

	if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && hp.IsAlive() {
		hp.ApplyDamage(hp.Current)
	}
	if move, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
		move.Velocity = common.Vec3{}
		move.Desired = common.Vec3{}
	}
	if aictx, ok := ecs.Get(w, e, component.AIContextComponent.Kind()); ok {
		aictx.Target = 0
	}
	if col, ok := ecs.Get(w, e, component.CollidableComponent.Kind()); ok {
		col.Enabled = false
	}
	w.Events().Push(ecs.EnemyDied{Enemy: e})
	return true
}
