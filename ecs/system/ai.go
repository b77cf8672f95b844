package system

import (
	"fmt"

	"github.com/milk9111/arenashooter/common"
	"github.com/milk9111/arenashooter/ecs"
	"github.com/milk9111/arenashooter/ecs/component"
)

// ScriptSource loads a behavior script by name. The host wires the prefab
// loader in; tests can pass a map lookup.
type ScriptSource func(name string) ([]byte, error)

// AISystem advances every agent's state machine once per tick. Agents with
// the same behavior name share one compiled machine; per-agent data lives
// entirely in the agent's components.
type AISystem struct {
	view        WorldView
	fsmCache    map[string]*FSMDef
	specCache   map[*component.AIFSMSpec]*FSMDef
	scriptCache map[ecs.Entity]*aiScriptRuntime
	scripts     ScriptSource
}

func NewAISystem(view WorldView, scripts ScriptSource) *AISystem {
	return &AISystem{
		view: view,
		fsmCache: map[string]*FSMDef{
			component.DefaultFSMName: DefaultEnemyFSM(),
		},
		specCache: map[*component.AIFSMSpec]*FSMDef{},
		scripts:   scripts,
	}
}

// RegisterFSM makes a compiled machine available under a behavior name.
func (s *AISystem) RegisterFSM(name string, def *FSMDef) {
	if name == "" || def == nil {
		return
	}
	s.fsmCache[name] = def
}

func (s *AISystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	var (
		player      ecs.Entity
		playerFound bool
		playerAlive bool
		playerPos   common.Vec3
	)
	if p, ok := w.First(component.PlayerTagComponent.Kind().ID()); ok {
		if tr, ok := ecs.Get(w, p, component.TransformComponent.Kind()); ok {
			player = p
			playerFound = true
			playerPos = tr.Position
			if hp, ok := ecs.Get(w, p, component.HealthComponent.Kind()); ok {
				playerAlive = hp.IsAlive()
			}
		}
	}

	roster := w.Query(
		component.EnemyTagComponent.Kind().ID(),
		component.AIComponent.Kind().ID(),
		component.AIStateComponent.Kind().ID(),
		component.AIContextComponent.Kind().ID(),
		component.TransformComponent.Kind().ID(),
		component.MovementComponent.Kind().ID(),
	)
	for _, ent := range roster {
		aiComp, ok := ecs.Get(w, ent, component.AIComponent.Kind())
		if !ok {
			continue
		}
		stateComp, _ := ecs.Get(w, ent, component.AIStateComponent.Kind())
		ctxComp, _ := ecs.Get(w, ent, component.AIContextComponent.Kind())
		trComp, _ := ecs.Get(w, ent, component.TransformComponent.Kind())
		moveComp, _ := ecs.Get(w, ent, component.MovementComponent.Kind())
		if stateComp == nil || ctxComp == nil || trComp == nil || moveComp == nil {
			continue
		}

		// Dead is terminal. The combat path is the only way in and the
		// spawner's respawn reset the only way out.
		if stateComp.Current == component.StateDead {
			continue
		}

		ctx := &ActionContext{
			World:       w,
			View:        s.view,
			Entity:      ent,
			DT:          dt,
			Now:         w.Now(),
			AI:          aiComp,
			State:       stateComp,
			Ctx:         ctxComp,
			Move:        moveComp,
			Transform:   trComp,
			Player:      player,
			PlayerFound: playerFound,
			PlayerAlive: playerAlive,
			PlayerPos:   playerPos,
		}

		cfg, hasCfg := ecs.Get(w, ent, component.AIConfigComponent.Kind())
		if hasCfg && scriptPathFor(cfg) != "" {
			s.updateFromScript(ctx, scriptPathFor(cfg))
			continue
		}

		def := s.machineFor(cfg, hasCfg, ent)
		if def == nil {
			continue
		}
		if stateComp.Current == "" {
			def.Enter(ctx, def.Initial)
		}
		def.Step(ctx)
	}

	// Script runtimes for destroyed entities would otherwise pile up.
	for ent := range s.scriptCache {
		if !ecs.IsAlive(w, ent) {
			delete(s.scriptCache, ent)
		}
	}
}

func scriptPathFor(cfg *component.AIConfig) string {
	if cfg == nil {
		return ""
	}
	if cfg.Script != "" {
		return cfg.Script
	}
	if cfg.Spec != nil && cfg.Spec.ScriptLifecycle {
		return cfg.Spec.ScriptPath
	}
	return ""
}

func (s *AISystem) machineFor(cfg *component.AIConfig, hasCfg bool, ent ecs.Entity) *FSMDef {
	if !hasCfg {
		return s.fsmCache[component.DefaultFSMName]
	}
	if cfg.Spec != nil {
		if def, ok := s.specCache[cfg.Spec]; ok {
			return def
		}
		def, err := CompileFSM(cfg.Spec)
		if err != nil {
			fmt.Printf("ai: entity=%s bad behavior spec: %v\n", ent, err)
			def = s.fsmCache[component.DefaultFSMName]
		}
		s.specCache[cfg.Spec] = def
		return def
	}
	name := cfg.FSM
	if name == "" {
		name = component.DefaultFSMName
	}
	if def, ok := s.fsmCache[name]; ok {
		return def
	}
	return s.fsmCache[component.DefaultFSMName]
}
