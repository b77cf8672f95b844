package prefabs

import (
	"math"

	"github.com/milk9111/arenashooter/ecs/component"
	"github.com/milk9111/arenashooter/ecs/system"
)

// EnemyConfig converts the prefab into the spawner's recipe.
func (s *EnemySpec) EnemyConfig() system.EnemyConfig {
	cfg := system.EnemyConfig{
		Health: s.Health,
		Radius: s.Radius,
		AI: component.AI{
			Speed:             s.Speed,
			Acceleration:      s.Acceleration,
			Friction:          s.Friction,
			DetectionRange:    s.DetectionRange,
			AttackRange:       s.AttackRange,
			AttackCooldown:    s.AttackCooldown,
			AttackDamage:      s.AttackDamage,
			LoseTargetFactor:  s.LoseTargetFactor,
			LeaveAttackFactor: s.LeaveAttackFactor,
			PatrolWait:        s.PatrolWait,
		},
	}
	if cfg.AI.LoseTargetFactor <= 0 {
		cfg.AI.LoseTargetFactor = 1.5
	}
	if cfg.AI.LeaveAttackFactor <= 0 {
		cfg.AI.LeaveAttackFactor = 1.2
	}
	if s.FSM != nil {
		if s.FSM.Script != "" {
			cfg.Script = s.FSM.Script
		} else if len(s.FSM.States) > 0 {
			cfg.Spec = s.FSM.Component()
		}
	}
	return cfg
}

// Component converts the YAML machine into the runtime spec type.
func (s *FSMSpec) Component() *component.AIFSMSpec {
	if s == nil {
		return nil
	}
	out := &component.AIFSMSpec{
		Initial:     s.Initial,
		States:      make(map[string]component.AIFSMStateSpec, len(s.States)),
		Transitions: s.Transitions,
	}
	for name, st := range s.States {
		out.States[name] = component.AIFSMStateSpec{
			OnEnter: st.OnEnter,
			While:   st.While,
			OnExit:  st.OnExit,
		}
	}
	if s.Script != "" {
		out.ScriptLifecycle = true
		out.ScriptPath = s.Script
	}
	return out
}

// Weapon converts the prefab entry into a loaded weapon, ready to fire.
func (s *WeaponSpec) Weapon() component.Weapon {
	return component.Weapon{
		LastShotTime: math.Inf(-1),
		Name:         s.Name,
		Damage:       s.Damage,
		Range:        s.Range,
		FireRate:     s.FireRate,
		MagazineSize: s.MagazineSize,
		Magazine:     s.MagazineSize,
		Reserve:      s.Reserve,
		ReloadTime:   s.ReloadTime,
		Pellets:      s.Pellets,
		Spread:       s.Spread,
	}
}

// Arsenal converts the full weapons prefab, first entry selected.
func (s *WeaponsSpec) Arsenal() component.Arsenal {
	arsenal := component.Arsenal{}
	for i := range s.Weapons {
		arsenal.Weapons = append(arsenal.Weapons, s.Weapons[i].Weapon())
	}
	return arsenal
}

// SpawnConfig converts the game prefab's spawner half.
func (s *GameSpec) SpawnConfig() system.SpawnConfig {
	cfg := system.SpawnConfig{
		Interval: s.SpawnInterval,
		MaxLive:  s.MaxEnemies,
		Initial:  s.InitialEnemies,
	}
	if cfg.Interval <= 0 || cfg.MaxLive <= 0 {
		return system.DefaultSpawnConfig()
	}
	return cfg
}

// CombatConfig converts the game prefab's scoring half.
func (s *GameSpec) CombatConfig() system.CombatConfig {
	cfg := system.CombatConfig{HitRadius: s.HitRadius, KillScore: s.KillScore}
	if cfg.HitRadius <= 0 {
		return system.DefaultCombatConfig()
	}
	return cfg
}
