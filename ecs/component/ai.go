package component

import "github.com/milk9111/arenashooter/common"

// StateID identifies an AI FSM state.
type StateID string

// EventID identifies an AI FSM transition event.
type EventID string

const (
	StatePatrol StateID = "patrol"
	StateChase  StateID = "chase"
	StateAttack StateID = "attack"
	StateDead   StateID = "dead"
)

const DefaultFSMName = "enemy_default"

// EntityRef is an entity handle stored inside a component. The component
// package cannot import ecs, so the raw packed value is carried instead;
// zero means "no entity".
type EntityRef uint64

// AI holds per-agent tunables, copied from the prefab at spawn.
type AI struct {
	Speed          float64
	Acceleration   float64
	Friction       float64
	DetectionRange float64
	AttackRange    float64
	AttackCooldown float64
	AttackDamage   int

	// Hysteresis multipliers: a chasing agent gives up beyond
	// LoseTargetFactor*DetectionRange, an attacking agent falls back to
	// chase beyond LeaveAttackFactor*AttackRange.
	LoseTargetFactor float64
	LeaveAttackFactor float64

	PatrolWait float64
}

// AIState stores the current FSM state.
type AIState struct {
	Current StateID
}

// AIContext is the per-agent runtime data the state machine reads and writes.
type AIContext struct {
	Target          EntityRef
	LastKnownTarget common.Vec3
	LastAttackTime  float64

	SpawnPos      common.Vec3
	Waypoints     []common.Vec3
	WaypointIndex int
	WaitRemaining float64
}

// AIConfig selects the machine driving this agent: a named built-in FSM, an
// inline spec from the prefab, or a tengo brain script.
type AIConfig struct {
	FSM    string
	Spec   *AIFSMSpec
	Script string
}

var AIComponent = NewComponent[AI]()
var AIStateComponent = NewComponent[AIState]()
var AIContextComponent = NewComponent[AIContext]()
var AIConfigComponent = NewComponent[AIConfig]()
