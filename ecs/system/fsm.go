package system

import (
	"fmt"
	"math"

	"github.com/milk9111/arenashooter/common"
	"github.com/milk9111/arenashooter/ecs"
	"github.com/milk9111/arenashooter/ecs/component"
)

// Action mutates the agent through its ActionContext. Actions guard their
// own preconditions so a state can run its while-list unconditionally.
type Action func(ctx *ActionContext)

// Checker decides whether a transition out of the current state fires.
type Checker func(ctx *ActionContext) bool

// ActionContext carries everything one agent's brain can see during a tick.
// It is rebuilt per agent per tick and never retained.
type ActionContext struct {
	World  *ecs.World
	View   WorldView
	Entity ecs.Entity
	DT     float64
	Now    float64

	AI        *component.AI
	State     *component.AIState
	Ctx       *component.AIContext
	Move      *component.Movement
	Transform *component.Transform

	Player      ecs.Entity
	PlayerFound bool
	PlayerAlive bool
	PlayerPos   common.Vec3
}

func (c *ActionContext) distToPlayer() float64 {
	return c.Transform.Position.Dist(c.PlayerPos)
}

// hasTarget reports whether the agent still has something to pursue. A
// target reference survives only while the referenced player is present
// and alive.
func (c *ActionContext) hasTarget() bool {
	if c.Ctx.Target == 0 {
		return false
	}
	return c.PlayerFound && c.PlayerAlive && c.Ctx.Target == component.EntityRef(c.Player)
}

// StateDef is one compiled state: ordered action lists run on entry, every
// tick while active, and on exit.
type StateDef struct {
	OnEnter []Action
	While   []Action
	OnExit  []Action
}

// TransitionDef pairs a checker with the state it leads to. Transitions are
// evaluated in declaration order and the first satisfied one wins.
type TransitionDef struct {
	Name  string
	Check Checker
	To    component.StateID
}

// FSMDef is a fully compiled state machine shared by every agent that uses
// the same behavior name. Per-agent data lives in AIState and AIContext.
type FSMDef struct {
	Initial     component.StateID
	States      map[component.StateID]StateDef
	Transitions map[component.StateID][]TransitionDef
}

// Enter runs the target state's enter actions and records it as current.
func (d *FSMDef) Enter(ctx *ActionContext, to component.StateID) {
	ctx.State.Current = to
	for _, act := range d.States[to].OnEnter {
		act(ctx)
	}
}

// Step runs one tick of the machine: the current state's while actions,
// then its transitions. At most one transition fires per tick.
func (d *FSMDef) Step(ctx *ActionContext) {
	cur := ctx.State.Current
	for _, act := range d.States[cur].While {
		act(ctx)
	}
	for _, tr := range d.Transitions[cur] {
		if !tr.Check(ctx) {
			continue
		}
		for _, act := range d.States[cur].OnExit {
			act(ctx)
		}
		d.Enter(ctx, tr.To)
		return
	}
}

const patrolArriveRadius = 1.0

// actionRegistry maps the action names a behavior spec may reference to
// their implementations. Compile fails fast on unknown names so a bad
// prefab surfaces at load time rather than mid-run.
var actionRegistry = map[string]Action{
	"patrol":         actionPatrol,
	"chase":          actionChase,
	"attack":         actionAttack,
	"stop":           actionStop,
	"acquire_target": actionAcquireTarget,
	"clear_target":   actionClearTarget,
}

// checkerRegistry maps transition checker names to implementations.
var checkerRegistry = map[string]Checker{
	"player_detected":   checkPlayerDetected,
	"target_missing":    checkTargetMissing,
	"target_lost":       checkTargetLost,
	"in_attack_range":   checkInAttackRange,
	"left_attack_range": checkLeftAttackRange,
	"always":            func(*ActionContext) bool { return true },
}

// actionPatrol walks the agent's waypoint loop, generating one lazily from
// the spawn position the first time through. On arrival the agent holds for
// PatrolWait seconds before advancing to the next point.
func actionPatrol(ctx *ActionContext) {
	if len(ctx.Ctx.Waypoints) == 0 {
		generateWaypoints(ctx)
		if len(ctx.Ctx.Waypoints) == 0 {
			return
		}
	}
	wp := ctx.Ctx.Waypoints[ctx.Ctx.WaypointIndex%len(ctx.Ctx.Waypoints)]
	if ctx.Transform.Position.Dist(wp) < patrolArriveRadius {
		if ctx.Ctx.WaitRemaining > 0 {
			ctx.Ctx.WaitRemaining -= ctx.DT
			return
		}
		ctx.Ctx.WaypointIndex = (ctx.Ctx.WaypointIndex + 1) % len(ctx.Ctx.Waypoints)
		ctx.Ctx.WaitRemaining = ctx.AI.PatrolWait
		return
	}
	ctx.Move.Desired = wp.Sub(ctx.Transform.Position).Normalized()
}

// generateWaypoints lays 3 to 6 points on a ring around the spawn position,
// evenly spaced by angle with a random radius, clamped to the map bounds.
func generateWaypoints(ctx *ActionContext) {
	n := ctx.View.RandInt(3, 6)
	radius := ctx.View.RandFloat(5, 15)
	min, max := ctx.View.Bounds()
	pts := make([]common.Vec3, 0, n)
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		p := ctx.Ctx.SpawnPos.Add(common.Vec3{
			X: radius * math.Cos(angle),
			Z: radius * math.Sin(angle),
		})
		p.X = common.Clamp(p.X, min.X, max.X)
		p.Z = common.Clamp(p.Z, min.Z, max.Z)
		pts = append(pts, p)
	}
	ctx.Ctx.Waypoints = pts
	ctx.Ctx.WaypointIndex = 0
	ctx.Ctx.WaitRemaining = 0
}

// actionChase steers toward the target while it sits inside the pursuit
// band. Outside the band the transition checkers take over this tick, so the
// agent must not also move.
func actionChase(ctx *ActionContext) {
	if !ctx.hasTarget() {
		return
	}
	d := ctx.distToPlayer()
	if d <= ctx.AI.AttackRange || d > ctx.AI.LoseTargetFactor*ctx.AI.DetectionRange {
		return
	}
	ctx.Ctx.LastKnownTarget = ctx.PlayerPos
	ctx.Move.Desired = ctx.PlayerPos.Sub(ctx.Transform.Position).Normalized()
}

// actionAttack lands a melee hit when the cooldown has elapsed. The hit is
// withheld if the target already drifted past the leave band; the transition
// back to chase fires later this tick.
func actionAttack(ctx *ActionContext) {
	if !ctx.hasTarget() {
		return
	}
	if ctx.distToPlayer() > ctx.AI.LeaveAttackFactor*ctx.AI.AttackRange {
		return
	}
	if ctx.Now-ctx.Ctx.LastAttackTime < ctx.AI.AttackCooldown {
		return
	}
	ctx.Ctx.LastAttackTime = ctx.Now
	ctx.World.Events().Push(ecs.PlayerAttacked{Enemy: ctx.Entity, Damage: ctx.AI.AttackDamage})
	if hp, ok := ecs.Get(ctx.World, ctx.Player, component.HealthComponent.Kind()); ok {
		wasAlive := hp.IsAlive()
		hp.ApplyDamage(ctx.AI.AttackDamage)
		if wasAlive && !hp.IsAlive() {
			ctx.World.Events().Push(ecs.PlayerDied{Player: ctx.Player})
		}
	}
}

func actionStop(ctx *ActionContext) {
	ctx.Move.Desired = common.Vec3{}
}

func actionAcquireTarget(ctx *ActionContext) {
	ctx.Ctx.Target = component.EntityRef(ctx.Player)
	ctx.Ctx.LastKnownTarget = ctx.PlayerPos
}

func actionClearTarget(ctx *ActionContext) {
	ctx.Ctx.Target = 0
}

// checkPlayerDetected is the patrol-state sensor: a live player inside
// detection range with a clear line of sight. The range test is inclusive.
func checkPlayerDetected(ctx *ActionContext) bool {
	if !ctx.PlayerFound || !ctx.PlayerAlive {
		return false
	}
	if ctx.distToPlayer() > ctx.AI.DetectionRange {
		return false
	}
	return ctx.View.LineOfSight(ctx.Transform.Position, ctx.PlayerPos)
}

func checkTargetMissing(ctx *ActionContext) bool {
	return !ctx.hasTarget()
}

// checkTargetLost fires only past the widened lose radius, never at the
// plain detection boundary, so the chase/patrol pair cannot flicker.
func checkTargetLost(ctx *ActionContext) bool {
	return ctx.hasTarget() && ctx.distToPlayer() > ctx.AI.LoseTargetFactor*ctx.AI.DetectionRange
}

func checkInAttackRange(ctx *ActionContext) bool {
	return ctx.hasTarget() && ctx.distToPlayer() <= ctx.AI.AttackRange
}

func checkLeftAttackRange(ctx *ActionContext) bool {
	return ctx.hasTarget() && ctx.distToPlayer() > ctx.AI.LeaveAttackFactor*ctx.AI.AttackRange
}

// CompileFSM resolves a behavior spec's action and checker names against the
// registries and returns the shared compiled machine.
func CompileFSM(spec *component.AIFSMSpec) (*FSMDef, error) {
	if spec == nil {
		return nil, fmt.Errorf("fsm: nil spec")
	}
	def := &FSMDef{
		Initial:     component.StateID(spec.Initial),
		States:      make(map[component.StateID]StateDef, len(spec.States)),
		Transitions: make(map[component.StateID][]TransitionDef, len(spec.Transitions)),
	}
	for name, st := range spec.States {
		compiled := StateDef{}
		var err error
		if compiled.OnEnter, err = compileActions(name, "on_enter", st.OnEnter); err != nil {
			return nil, err
		}
		if compiled.While, err = compileActions(name, "while", st.While); err != nil {
			return nil, err
		}
		if compiled.OnExit, err = compileActions(name, "on_exit", st.OnExit); err != nil {
			return nil, err
		}
		def.States[component.StateID(name)] = compiled
	}
	for from, rules := range spec.Transitions {
		if _, ok := def.States[component.StateID(from)]; !ok {
			return nil, fmt.Errorf("fsm: transition from unknown state %q", from)
		}
		for _, rule := range rules {
			for checkName, to := range rule {
				check, ok := checkerRegistry[checkName]
				if !ok {
					return nil, fmt.Errorf("fsm: state %q references unknown checker %q", from, checkName)
				}
				if _, ok := def.States[component.StateID(to)]; !ok {
					return nil, fmt.Errorf("fsm: state %q transitions to unknown state %q", from, to)
				}
				def.Transitions[component.StateID(from)] = append(
					def.Transitions[component.StateID(from)],
					TransitionDef{Name: checkName, Check: check, To: component.StateID(to)},
				)
			}
		}
	}
	if _, ok := def.States[def.Initial]; !ok {
		return nil, fmt.Errorf("fsm: initial state %q not defined", spec.Initial)
	}
	return def, nil
}

func compileActions(state, phase string, specs []map[string]any) ([]Action, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	actions := make([]Action, 0, len(specs))
	for _, entry := range specs {
		for name := range entry {
			act, ok := actionRegistry[name]
			if !ok {
				return nil, fmt.Errorf("fsm: state %q %s references unknown action %q", state, phase, name)
			}
			actions = append(actions, act)
		}
	}
	return actions, nil
}

// DefaultEnemyFSM is the built-in patrol/chase/attack machine, used when a
// prefab doesn't carry its own behavior spec. Dead is reached only through
// the combat path, never through a checker.
func DefaultEnemyFSM() *FSMDef {
	def, err := CompileFSM(defaultEnemySpec())
	if err != nil {
		panic(err)
	}
	return def
}

func defaultEnemySpec() *component.AIFSMSpec {
	return &component.AIFSMSpec{
		Initial: string(component.StatePatrol),
		States: map[string]component.AIFSMStateSpec{
			string(component.StatePatrol): {
				OnEnter: []map[string]any{{"clear_target": nil}, {"stop": nil}},
				While:   []map[string]any{{"patrol": nil}},
			},
			string(component.StateChase): {
				OnEnter: []map[string]any{{"acquire_target": nil}},
				While:   []map[string]any{{"chase": nil}},
			},
			string(component.StateAttack): {
				OnEnter: []map[string]any{{"stop": nil}},
				While:   []map[string]any{{"attack": nil}},
			},
			string(component.StateDead): {},
		},
		Transitions: map[string][]map[string]string{
			string(component.StatePatrol): {
				{"player_detected": string(component.StateChase)},
			},
			string(component.StateChase): {
				{"target_missing": string(component.StatePatrol)},
				{"target_lost": string(component.StatePatrol)},
				{"in_attack_range": string(component.StateAttack)},
			},
			string(component.StateAttack): {
				{"target_missing": string(component.StatePatrol)},
				{"left_attack_range": string(component.StateChase)},
			},
		},
	}
}
