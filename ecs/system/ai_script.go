package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/arenashooter/ecs"
	"github.com/milk9111/arenashooter/ecs/component"
)

// aiScriptRuntime drives one agent's brain from a tengo script instead of a
// compiled machine. The script defines onEnter/update/onExit functions; a
// dispatch stub appended to the source routes each phase call to them.
type aiScriptRuntime struct {
	scriptPath  string
	compiled    *tengo.Compiled
	stateData   *tengo.Map
	initial     component.StateID
	initialized bool
	pending     component.StateID
}

const aiLifecycleDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __state, __current_state)
} else if __phase == "update" {
	update(__engine, __state, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __state, __current_state)
}
`

func (s *AISystem) updateFromScript(ctx *ActionContext, scriptPath string) {
	if s == nil || ctx == nil || ctx.State == nil {
		return
	}

	rt, err := s.getScriptRuntime(ctx.Entity, scriptPath)
	if err != nil {
		fmt.Printf("ai: entity=%s load scripted brain error: %v\n", ctx.Entity, err)
		return
	}

	// A blank state means a fresh or recycled agent: the brain restarts from
	// its initial state with empty script data, so onEnter fires again.
	if ctx.State.Current == "" {
		rt.reset()
		ctx.State.Current = rt.initial
	}

	engine := buildAIScriptEngine(ctx, rt)
	if !rt.initialized {
		if err := rt.runPhase("enter", ctx.State.Current, engine); err != nil {
			fmt.Printf("ai: entity=%s script onEnter error: %v\n", ctx.Entity, err)
			return
		}
		rt.initialized = true
	}

	if err := rt.runPhase("update", ctx.State.Current, engine); err != nil {
		fmt.Printf("ai: entity=%s script update error: %v\n", ctx.Entity, err)
		return
	}

	if rt.pending == "" || rt.pending == ctx.State.Current {
		rt.pending = ""
		return
	}

	prev := ctx.State.Current
	if err := rt.runPhase("exit", prev, engine); err != nil {
		fmt.Printf("ai: entity=%s script onExit error: %v\n", ctx.Entity, err)
		return
	}

	ctx.State.Current = rt.pending
	rt.pending = ""

	if err := rt.runPhase("enter", ctx.State.Current, engine); err != nil {
		fmt.Printf("ai: entity=%s script onEnter error: %v\n", ctx.Entity, err)
	}
}

func (s *AISystem) getScriptRuntime(ent ecs.Entity, scriptPath string) (*aiScriptRuntime, error) {
	if strings.TrimSpace(scriptPath) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if s.scripts == nil {
		return nil, fmt.Errorf("no script source wired")
	}
	if s.scriptCache == nil {
		s.scriptCache = map[ecs.Entity]*aiScriptRuntime{}
	}

	if rt, ok := s.scriptCache[ent]; ok && rt != nil && rt.scriptPath == scriptPath {
		return rt, nil
	}

	scriptBytes, err := s.scripts(scriptPath)
	if err != nil {
		return nil, err
	}

	src := string(scriptBytes) + "\n" + aiLifecycleDispatchScript
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &aiScriptRuntime{
		scriptPath: scriptPath,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
		initial:    component.StatePatrol,
	}

	// Resolve optional initial state from script global `initial_state`.
	noop := &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	if err := rt.runPhase("noop", rt.initial, noop); err != nil {
		return nil, err
	}
	if compiled.IsDefined("initial_state") {
		st := strings.TrimSpace(compiled.Get("initial_state").String())
		if st != "" {
			rt.initial = component.StateID(st)
		}
	}

	s.scriptCache[ent] = rt
	return rt, nil
}

func (rt *aiScriptRuntime) reset() {
	rt.stateData = &tengo.Map{Value: map[string]tengo.Object{}}
	rt.initialized = false
	rt.pending = ""
}

func (rt *aiScriptRuntime) runPhase(phase string, current component.StateID, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__current_state", string(current)); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// buildAIScriptEngine exposes the same primitives the compiled machine uses:
// every registered action and checker by name, plus position and target
// queries on the x/z plane.
func buildAIScriptEngine(ctx *ActionContext, rt *aiScriptRuntime) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["transition"] = &tengo.UserFunction{Name: "transition", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		rt.pending = component.StateID(name)
		return tengo.TrueValue, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: ctx.Transform.Position.X},
			&tengo.Float{Value: ctx.Transform.Position.Z},
		}}, nil
	}}

	values["get_player_position"] = &tengo.UserFunction{Name: "get_player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: ctx.PlayerPos.X},
			&tengo.Float{Value: ctx.PlayerPos.Z},
		}}, nil
	}}

	values["player_found"] = &tengo.UserFunction{Name: "player_found", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.PlayerFound {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["player_alive"] = &tengo.UserFunction{Name: "player_alive", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.PlayerAlive {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["distance_to_player"] = &tengo.UserFunction{Name: "distance_to_player", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ctx.distToPlayer()}, nil
	}}

	values["line_of_sight"] = &tengo.UserFunction{Name: "line_of_sight", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if !ctx.PlayerFound {
			return tengo.FalseValue, nil
		}
		if ctx.View.LineOfSight(ctx.Transform.Position, ctx.PlayerPos) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["now"] = &tengo.UserFunction{Name: "now", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ctx.Now}, nil
	}}

	values["dt"] = &tengo.UserFunction{Name: "dt", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ctx.DT}, nil
	}}

	values["move_toward"] = &tengo.UserFunction{Name: "move_toward", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := objectAsFloat(args[0])
		z, okZ := objectAsFloat(args[1])
		if !okX || !okZ {
			return tengo.FalseValue, nil
		}
		target := ctx.Transform.Position
		target.X = x
		target.Z = z
		ctx.Move.Desired = target.Sub(ctx.Transform.Position).Normalized()
		return tengo.TrueValue, nil
	}}

	for name, act := range actionRegistry {
		action := act
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			action(ctx)
			return tengo.TrueValue, nil
		}}
	}

	for name, check := range checkerRegistry {
		checker := check
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if checker(ctx) {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		}}
	}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}
