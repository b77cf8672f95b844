package system

import (
	"github.com/milk9111/arenashooter/common"
	"github.com/milk9111/arenashooter/ecs"
	"github.com/milk9111/arenashooter/ecs/component"
)

// stubView is a deterministic WorldView: sight is a flag, randomness returns
// the low bound, spawns come from a fixed list.
type stubView struct {
	blocked bool
	wallHit bool
	wallAt  common.Vec3

	spawns    []common.Vec3
	spawnNext int
}

func (v *stubView) LineOfSight(from, to common.Vec3) bool {
	return !v.blocked
}

func (v *stubView) SweepWall(from, to common.Vec3) (bool, common.Vec3) {
	if v.wallHit {
		return true, v.wallAt
	}
	return false, common.Vec3{}
}

func (v *stubView) EnemySpawn() common.Vec3 {
	if len(v.spawns) == 0 {
		return common.Vec3{}
	}
	p := v.spawns[v.spawnNext%len(v.spawns)]
	v.spawnNext++
	return p
}

func (v *stubView) PlayerSpawn() common.Vec3 {
	return common.Vec3{}
}

func (v *stubView) Bounds() (common.Vec3, common.Vec3) {
	return common.Vec3{X: -25, Z: -25}, common.Vec3{X: 25, Z: 25}
}

func (v *stubView) RandFloat(lo, hi float64) float64 { return lo }

func (v *stubView) RandInt(lo, hi int) int { return lo }

func testAI() component.AI {
	return component.AI{
		Speed:             3.0,
		Acceleration:      10.0,
		Friction:          0.8,
		DetectionRange:    15.0,
		AttackRange:       2.0,
		AttackCooldown:    2.0,
		AttackDamage:      10,
		LoseTargetFactor:  1.5,
		LeaveAttackFactor: 1.2,
		PatrolWait:        2.0,
	}
}

func testEnemyConfig() EnemyConfig {
	return EnemyConfig{Health: 50, AI: testAI(), Radius: 0.5}
}

func addPlayer(w *ecs.World, pos common.Vec3, health int) ecs.Entity {
	e := ecs.CreateEntity(w)
	ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
	ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(health))
	return e
}

func movePlayer(w *ecs.World, player ecs.Entity, pos common.Vec3) {
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	tr.Position = pos
}

func enemyState(w *ecs.World, e ecs.Entity) component.StateID {
	st, _ := ecs.Get(w, e, component.AIStateComponent.Kind())
	return st.Current
}

func setEnemyPos(w *ecs.World, e ecs.Entity, pos common.Vec3) {
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.Position = pos
}

func addProjectile(w *ecs.World, pos, vel common.Vec3, lifetime float64, damage int, owner ecs.Entity) ecs.Entity {
	e := ecs.CreateEntity(w)
	ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
	ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Origin:   pos,
		Velocity: vel,
		Lifetime: lifetime,
		Damage:   damage,
		Owner:    component.EntityRef(owner),
	})
	return e
}

func drainEvents[T any](w *ecs.World) []T {
	var out []T
	for _, evt := range w.Events().Drain() {
		if typed, ok := evt.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
