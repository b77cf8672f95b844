package system

import (
	"testing"

	"github.com/milk9111/arenashooter/ecs/component"
)

func TestCompileFSMRejectsUnknownNames(t *testing.T) {
	cases := []struct {
		name string
		spec *component.AIFSMSpec
	}{
		{"nil_spec", nil},
		{"unknown_action", &component.AIFSMSpec{
			Initial: "a",
			States: map[string]component.AIFSMStateSpec{
				"a": {While: []map[string]any{{"levitate": nil}}},
			},
		}},
		{"unknown_checker", &component.AIFSMSpec{
			Initial: "a",
			States: map[string]component.AIFSMStateSpec{
				"a": {}, "b": {},
			},
			Transitions: map[string][]map[string]string{
				"a": {{"smells_player": "b"}},
			},
		}},
		{"transition_to_unknown_state", &component.AIFSMSpec{
			Initial: "a",
			States:  map[string]component.AIFSMStateSpec{"a": {}},
			Transitions: map[string][]map[string]string{
				"a": {{"always": "nowhere"}},
			},
		}},
		{"unknown_initial", &component.AIFSMSpec{
			Initial: "ghost",
			States:  map[string]component.AIFSMStateSpec{"a": {}},
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := CompileFSM(c.spec); err == nil {
				t.Fatalf("CompileFSM should fail")
			}
		})
	}
}

func TestDefaultEnemyFSMShape(t *testing.T) {
	def := DefaultEnemyFSM()

	if def.Initial != component.StatePatrol {
		t.Fatalf("initial = %q, want patrol", def.Initial)
	}
	for _, state := range []component.StateID{
		component.StatePatrol, component.StateChase, component.StateAttack, component.StateDead,
	} {
		if _, ok := def.States[state]; !ok {
			t.Fatalf("missing state %q", state)
		}
	}

	// Dead is terminal: no transitions out, and none lead in. Combat sets
	// it directly.
	if len(def.Transitions[component.StateDead]) != 0 {
		t.Fatalf("dead state must have no outgoing transitions")
	}
	for from, transitions := range def.Transitions {
		for _, tr := range transitions {
			if tr.To == component.StateDead {
				t.Fatalf("no checker may lead to dead (found from %q)", from)
			}
		}
	}

	// Chase checks target loss before attack range, so a vanished target
	// wins over a stale in-range reading.
	chase := def.Transitions[component.StateChase]
	if len(chase) != 3 || chase[0].Name != "target_missing" || chase[1].Name != "target_lost" || chase[2].Name != "in_attack_range" {
		t.Fatalf("chase transition order = %+v", chase)
	}
}

func TestCompiledSpecMatchesBuiltin(t *testing.T) {
	def, err := CompileFSM(defaultEnemySpec())
	if err != nil {
		t.Fatalf("CompileFSM: %v", err)
	}
	if len(def.States) != 4 {
		t.Fatalf("states = %d, want 4", len(def.States))
	}
	if got := len(def.States[component.StatePatrol].OnEnter); got != 2 {
		t.Fatalf("patrol on_enter actions = %d, want 2", got)
	}
	if got := len(def.Transitions[component.StateAttack]); got != 2 {
		t.Fatalf("attack transitions = %d, want 2", got)
	}
}
