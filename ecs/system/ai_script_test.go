package system

import (
	"fmt"
	"testing"

	"github.com/milk9111/arenashooter/common"
	"github.com/milk9111/arenashooter/ecs"
	"github.com/milk9111/arenashooter/ecs/component"
)

const hunterScript = `
initial_state := "chase"

onEnter := func(engine, state, current) {
	if current == "chase" {
		engine.acquire_target()
	}
	state.enters = (state.enters == undefined ? 0 : state.enters) + 1
}

update := func(engine, state, current) {
	if current == "chase" {
		engine.chase()
		if engine.in_attack_range() {
			engine.transition("attack")
		}
	} else if current == "attack" {
		engine.attack()
	}
}

onExit := func(engine, state, current) {}
`

func scriptedEnemy(w *ecs.World, view *stubView, script string) ecs.Entity {
	cfg := testEnemyConfig()
	cfg.Script = script
	return SpawnEnemy(w, view, cfg)
}

func scriptSourceFor(name, body string) ScriptSource {
	return func(requested string) ([]byte, error) {
		if requested != name {
			return nil, fmt.Errorf("unknown script %q", requested)
		}
		return []byte(body), nil
	}
}

func TestScriptedBrainDrivesAgent(t *testing.T) {
	w := ecs.NewWorld()
	view := &stubView{spawns: []common.Vec3{{}}}
	ai := NewAISystem(view, scriptSourceFor("hunter.tengo", hunterScript))
	addPlayer(w, common.Vec3{Z: 10}, 100)
	enemy := scriptedEnemy(w, view, "hunter.tengo")

	tick(w, ai)

	if got := enemyState(w, enemy); got != "chase" {
		t.Fatalf("state = %q, want script's initial chase", got)
	}
	aictx, _ := ecs.Get(w, enemy, component.AIContextComponent.Kind())
	if aictx.Target == 0 {
		t.Fatalf("onEnter should acquire the target")
	}
	move, _ := ecs.Get(w, enemy, component.MovementComponent.Kind())
	if move.Desired.IsZero() {
		t.Fatalf("scripted chase should steer toward the player")
	}
}

func TestScriptedBrainTransitions(t *testing.T) {
	w := ecs.NewWorld()
	view := &stubView{spawns: []common.Vec3{{}}}
	ai := NewAISystem(view, scriptSourceFor("hunter.tengo", hunterScript))
	player := addPlayer(w, common.Vec3{Z: 10}, 100)
	enemy := scriptedEnemy(w, view, "hunter.tengo")

	tick(w, ai)
	movePlayer(w, player, common.Vec3{Z: 1})
	tick(w, ai)

	if got := enemyState(w, enemy); got != "attack" {
		t.Fatalf("state = %q, want attack once in range", got)
	}

	// The attack branch runs the shared attack action, cooldown included.
	hp, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	w.Advance(2.1)
	ai.Update(w, dt)
	if hp.Current != 90 {
		t.Fatalf("player health = %d, want 90 after scripted attack", hp.Current)
	}
}

func TestScriptedBrainRestartsAfterRespawn(t *testing.T) {
	w := ecs.NewWorld()
	view := &stubView{spawns: []common.Vec3{{}}}
	ai := NewAISystem(view, scriptSourceFor("hunter.tengo", hunterScript))
	player := addPlayer(w, common.Vec3{Z: 10}, 100)
	enemy := scriptedEnemy(w, view, "hunter.tengo")

	tick(w, ai)
	movePlayer(w, player, common.Vec3{Z: 1})
	tick(w, ai)
	if got := enemyState(w, enemy); got != "attack" {
		t.Fatalf("state = %q, want attack before the kill", got)
	}

	KillEnemy(w, enemy)
	if !RespawnEnemy(w, view, enemy) {
		t.Fatalf("respawn refused")
	}
	movePlayer(w, player, common.Vec3{Z: 10})
	tick(w, ai)

	// The recycled agent's brain starts over: initial state, onEnter re-run.
	if got := enemyState(w, enemy); got != "chase" {
		t.Fatalf("state = %q, want script's initial chase after respawn", got)
	}
	aictx, _ := ecs.Get(w, enemy, component.AIContextComponent.Kind())
	if aictx.Target == 0 {
		t.Fatalf("onEnter did not re-fire after respawn")
	}
}

func TestScriptRuntimeEvictedOnDestroy(t *testing.T) {
	w := ecs.NewWorld()
	view := &stubView{spawns: []common.Vec3{{}}}
	ai := NewAISystem(view, scriptSourceFor("hunter.tengo", hunterScript))
	addPlayer(w, common.Vec3{Z: 10}, 100)
	enemy := scriptedEnemy(w, view, "hunter.tengo")

	tick(w, ai)
	if len(ai.scriptCache) != 1 {
		t.Fatalf("scriptCache = %d entries, want 1", len(ai.scriptCache))
	}

	ecs.DestroyEntity(w, enemy)
	tick(w, ai)
	if len(ai.scriptCache) != 0 {
		t.Fatalf("scriptCache = %d entries, want 0 after destroy", len(ai.scriptCache))
	}
}

func TestScriptedBrainLoadFailureLeavesAgentUntouched(t *testing.T) {
	w := ecs.NewWorld()
	view := &stubView{spawns: []common.Vec3{{}}}
	ai := NewAISystem(view, scriptSourceFor("other.tengo", hunterScript))
	addPlayer(w, common.Vec3{Z: 10}, 100)
	enemy := scriptedEnemy(w, view, "missing.tengo")

	tick(w, ai)

	if got := enemyState(w, enemy); got != "" {
		t.Fatalf("state = %q, want untouched on load failure", got)
	}
}
