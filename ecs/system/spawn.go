package system

import (
	"github.com/milk9111/arenashooter/common"
	"github.com/milk9111/arenashooter/ecs"
	"github.com/milk9111/arenashooter/ecs/component"
)

// EnemyConfig is the recipe one agent is built from, copied out of the
// enemy prefab.
type EnemyConfig struct {
	Health int
	AI     component.AI
	Radius float64

	// Behavior selection. Empty means the default machine.
	FSM    string
	Spec   *component.AIFSMSpec
	Script string
}

// SpawnConfig is the spawner's cadence.
type SpawnConfig struct {
	Interval float64
	MaxLive  int
	Initial  int
}

func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{Interval: 10.0, MaxLive: 5, Initial: 3}
}

// SpawnSystem keeps the arena populated on a fixed cadence. Dead agents are
// recycled before new entities are created, so the roster is a pool that
// only grows to MaxLive. The interval timer does not accumulate while the
// arena is at capacity; it resumes where it stopped once a slot opens.
type SpawnSystem struct {
	view  WorldView
	enemy EnemyConfig
	cfg   SpawnConfig
	timer float64
}

func NewSpawnSystem(view WorldView, enemy EnemyConfig, cfg SpawnConfig) *SpawnSystem {
	if cfg.Interval <= 0 {
		cfg = DefaultSpawnConfig()
	}
	return &SpawnSystem{view: view, enemy: enemy, cfg: cfg}
}

// Populate fills the arena with the configured initial agents. Called once
// at session start and again on restart.
func (s *SpawnSystem) Populate(w *ecs.World) {
	for i := 0; i < s.cfg.Initial && s.liveCount(w) < s.cfg.MaxLive; i++ {
		s.spawnOne(w)
	}
}

// ResetTimer clears the accumulated interval, used on session restart.
func (s *SpawnSystem) ResetTimer() {
	s.timer = 0
}

func (s *SpawnSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	if s.liveCount(w) >= s.cfg.MaxLive {
		return
	}
	s.timer += dt
	if s.timer < s.cfg.Interval {
		return
	}
	// At most one spawn per tick; the timer restarts from zero rather than
	// keeping the remainder.
	s.spawnOne(w)
	s.timer = 0
}

func (s *SpawnSystem) liveCount(w *ecs.World) int {
	count := 0
	ecs.ForEach2(w, component.EnemyTagComponent.Kind(), component.HealthComponent.Kind(),
		func(e ecs.Entity, _ *component.EnemyTag, hp *component.Health) {
			if hp.IsAlive() {
				count++
			}
		})
	return count
}

// spawnOne recycles a dead agent when one exists, otherwise creates a new
// entity from the recipe.
func (s *SpawnSystem) spawnOne(w *ecs.World) ecs.Entity {
	var pooled ecs.Entity
	ecs.ForEach2(w, component.EnemyTagComponent.Kind(), component.HealthComponent.Kind(),
		func(e ecs.Entity, _ *component.EnemyTag, hp *component.Health) {
			if pooled == 0 && !hp.IsAlive() {
				pooled = e
			}
		})
	if pooled != 0 {
		RespawnEnemy(w, s.view, pooled)
		return pooled
	}
	return SpawnEnemy(w, s.view, s.enemy)
}

// SpawnEnemy builds a fresh agent from the recipe at a spawn point chosen by
// the view.
func SpawnEnemy(w *ecs.World, view WorldView, cfg EnemyConfig) ecs.Entity {
	if w == nil {
		return 0
	}
	pos := common.Vec3{}
	if view != nil {
		pos = view.EnemySpawn()
	}

	e := ecs.CreateEntity(w)
	ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
	ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
	ecs.Add(w, e, component.HealthComponent.Kind(), component.NewHealth(cfg.Health))
	ai := cfg.AI
	ecs.Add(w, e, component.AIComponent.Kind(), &ai)
	ecs.Add(w, e, component.AIStateComponent.Kind(), &component.AIState{})
	ecs.Add(w, e, component.AIContextComponent.Kind(), &component.AIContext{SpawnPos: pos})
	ecs.Add(w, e, component.MovementComponent.Kind(), &component.Movement{
		Speed:        cfg.AI.Speed,
		Acceleration: cfg.AI.Acceleration,
		Friction:     cfg.AI.Friction,
	})
	ecs.Add(w, e, component.CollidableComponent.Kind(), &component.Collidable{Radius: cfg.Radius, Enabled: true})
	if cfg.FSM != "" || cfg.Spec != nil || cfg.Script != "" {
		ecs.Add(w, e, component.AIConfigComponent.Kind(), &component.AIConfig{
			FSM:    cfg.FSM,
			Spec:   cfg.Spec,
			Script: cfg.Script,
		})
	}

	w.Events().Push(ecs.EnemySpawned{Enemy: e, Position: pos})
	return e
}

// RespawnEnemy resets a pooled dead agent at a fresh spawn point: full
// health, empty FSM state so the machine re-enters its initial state next
// tick, cleared context, and collision back on.
func RespawnEnemy(w *ecs.World, view WorldView, e ecs.Entity) bool {
	if w == nil || !ecs.IsAlive(w, e) {
		return false
	}
	hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || hp.IsAlive() {
		return false
	}

	pos := common.Vec3{}
	if view != nil {
		pos = view.EnemySpawn()
	}

	hp.Restore()
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		tr.Position = pos
		tr.Facing = 0
	}
	if state, ok := ecs.Get(w, e, component.AIStateComponent.Kind()); ok {
		state.Current = ""
	}
	if aictx, ok := ecs.Get(w, e, component.AIContextComponent.Kind()); ok {
		*aictx = component.AIContext{SpawnPos: pos}
	}
	if move, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
		move.Velocity = common.Vec3{}
		move.Desired = common.Vec3{}
	}
	if col, ok := ecs.Get(w, e, component.CollidableComponent.Kind()); ok {
		col.Enabled = true
	}

	w.Events().Push(ecs.EnemyRespawned{Enemy: e, Position: pos})
	return true
}
