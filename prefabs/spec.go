package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec reads and unmarshals one prefab file into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// FSMSpec is the YAML shape of a behavior machine. Transitions are an
// ordered list of single-entry {checker: target_state} maps per source
// state; list order is evaluation order.
type FSMSpec struct {
	Initial     string                         `yaml:"initial"`
	States      map[string]FSMStateSpec        `yaml:"states"`
	Transitions map[string][]map[string]string `yaml:"transitions"`

	Script string `yaml:"script"`
}

type FSMStateSpec struct {
	OnEnter []map[string]any `yaml:"on_enter"`
	While   []map[string]any `yaml:"while"`
	OnExit  []map[string]any `yaml:"on_exit"`
}

// EnemySpec mirrors enemy.yaml.
type EnemySpec struct {
	Name   string  `yaml:"name"`
	Health int     `yaml:"health"`
	Radius float64 `yaml:"radius"`

	Speed        float64 `yaml:"speed"`
	Acceleration float64 `yaml:"acceleration"`
	Friction     float64 `yaml:"friction"`

	DetectionRange float64 `yaml:"detection_range"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	AttackDamage   int     `yaml:"attack_damage"`

	LoseTargetFactor  float64 `yaml:"lose_target_factor"`
	LeaveAttackFactor float64 `yaml:"leave_attack_factor"`
	PatrolWait        float64 `yaml:"patrol_wait"`

	FSM *FSMSpec `yaml:"fsm"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// PlayerSpec mirrors player.yaml.
type PlayerSpec struct {
	Name   string  `yaml:"name"`
	Health int     `yaml:"health"`
	Radius float64 `yaml:"radius"`

	Speed        float64 `yaml:"speed"`
	Acceleration float64 `yaml:"acceleration"`
	Friction     float64 `yaml:"friction"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// WeaponSpec mirrors one entry of weapons.yaml.
type WeaponSpec struct {
	Name         string  `yaml:"name"`
	Damage       int     `yaml:"damage"`
	Range        float64 `yaml:"range"`
	FireRate     float64 `yaml:"fire_rate"`
	MagazineSize int     `yaml:"magazine_size"`
	Reserve      int     `yaml:"reserve"`
	ReloadTime   float64 `yaml:"reload_time"`
	Pellets      int     `yaml:"pellets"`
	Spread       float64 `yaml:"spread"`
}

type WeaponsSpec struct {
	Weapons []WeaponSpec `yaml:"weapons"`
}

func LoadWeaponsSpec() (*WeaponsSpec, error) {
	spec, err := LoadSpec[WeaponsSpec]("weapons.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// GameSpec mirrors game.yaml: spawner cadence and combat scoring.
type GameSpec struct {
	SpawnInterval  float64 `yaml:"spawn_interval"`
	MaxEnemies     int     `yaml:"max_enemies"`
	InitialEnemies int     `yaml:"initial_enemies"`
	KillScore      int     `yaml:"kill_score"`
	HitRadius      float64 `yaml:"hit_radius"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
