package prefabs

import (
	"testing"

	"github.com/milk9111/arenashooter/arena"
	"github.com/milk9111/arenashooter/ecs/system"
)

func TestLoadEnemySpec(t *testing.T) {
	spec, err := LoadEnemySpec()
	if err != nil {
		t.Fatalf("LoadEnemySpec: %v", err)
	}
	if spec.Health != 50 || spec.Speed != 3.0 || spec.DetectionRange != 15.0 {
		t.Fatalf("enemy spec = %+v", spec)
	}
	if spec.FSM == nil || spec.FSM.Initial != "patrol" {
		t.Fatalf("enemy prefab should carry a behavior machine")
	}

	cfg := spec.EnemyConfig()
	if cfg.AI.AttackCooldown != 2.0 || cfg.AI.AttackDamage != 10 {
		t.Fatalf("config = %+v", cfg.AI)
	}
	if cfg.AI.LoseTargetFactor != 1.5 || cfg.AI.LeaveAttackFactor != 1.2 {
		t.Fatalf("hysteresis factors = %v/%v", cfg.AI.LoseTargetFactor, cfg.AI.LeaveAttackFactor)
	}
	if cfg.Spec == nil {
		t.Fatalf("inline machine should convert to a runtime spec")
	}
}

func TestEnemyPrefabMachineCompiles(t *testing.T) {
	spec, err := LoadEnemySpec()
	if err != nil {
		t.Fatalf("LoadEnemySpec: %v", err)
	}
	def, err := system.CompileFSM(spec.FSM.Component())
	if err != nil {
		t.Fatalf("the shipped enemy machine must compile: %v", err)
	}
	if def.Initial != "patrol" {
		t.Fatalf("initial = %q", def.Initial)
	}
}

func TestLoadWeaponsSpec(t *testing.T) {
	spec, err := LoadWeaponsSpec()
	if err != nil {
		t.Fatalf("LoadWeaponsSpec: %v", err)
	}
	if len(spec.Weapons) != 3 {
		t.Fatalf("weapons = %d, want 3", len(spec.Weapons))
	}

	arsenal := spec.Arsenal()
	pistol := arsenal.CurrentWeapon()
	if pistol == nil || pistol.Name != "pistol" {
		t.Fatalf("first weapon should be selected: %+v", pistol)
	}
	if pistol.Magazine != pistol.MagazineSize {
		t.Fatalf("weapons should start loaded")
	}
	if !pistol.CanFire(0) {
		t.Fatalf("a fresh weapon should be ready to fire")
	}

	shotgun := arsenal.Weapons[2]
	if shotgun.Pellets != 8 || shotgun.Spread != 0.2 {
		t.Fatalf("shotgun = %+v", shotgun)
	}
}

func TestLoadGameSpec(t *testing.T) {
	spec, err := LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	spawn := spec.SpawnConfig()
	if spawn.Interval != 10.0 || spawn.MaxLive != 5 || spawn.Initial != 3 {
		t.Fatalf("spawn config = %+v", spawn)
	}
	combat := spec.CombatConfig()
	if combat.HitRadius != 2.0 || combat.KillScore != 100 {
		t.Fatalf("combat config = %+v", combat)
	}
}

func TestLoadArenaConfig(t *testing.T) {
	cfg, err := LoadSpec[arena.Config]("arena.yaml")
	if err != nil {
		t.Fatalf("load arena.yaml: %v", err)
	}
	if cfg.Size != 50.0 {
		t.Fatalf("size = %v", cfg.Size)
	}
	if len(cfg.EnemySpawns) == 0 || len(cfg.Walls) == 0 {
		t.Fatalf("arena prefab should carry spawns and walls")
	}
	half := cfg.Size / 2
	for _, p := range cfg.EnemySpawns {
		if p.X < -half || p.X > half || p.Z < -half || p.Z > half {
			t.Fatalf("spawn out of bounds: %+v", p)
		}
	}
}

func TestLoadShippedScripts(t *testing.T) {
	data, err := LoadScript("berserker.tengo")
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("script should not be empty")
	}
	// Path prefixes normalize to the same file.
	again, err := LoadScript("prefabs/scripts/berserker.tengo")
	if err != nil || len(again) != len(data) {
		t.Fatalf("prefixed load mismatch: %v", err)
	}
}

func TestGameSpecFallbacks(t *testing.T) {
	var zero GameSpec
	if got := zero.SpawnConfig(); got != system.DefaultSpawnConfig() {
		t.Fatalf("zero game spec should fall back to defaults, got %+v", got)
	}
	if got := zero.CombatConfig(); got != system.DefaultCombatConfig() {
		t.Fatalf("zero combat spec should fall back to defaults, got %+v", got)
	}
}
