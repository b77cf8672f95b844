package component

// AIFSMSpec is a YAML-agnostic representation of an AI finite state machine
// used by runtime systems.
type AIFSMSpec struct {
	Initial     string
	States      map[string]AIFSMStateSpec
	Transitions map[string][]map[string]string

	// ScriptLifecycle hands the whole onEnter/update/onExit cycle to a
	// tengo script instead of compiled actions.
	ScriptLifecycle bool
	ScriptPath      string
}

type AIFSMStateSpec struct {
	OnEnter []map[string]any
	While   []map[string]any
	OnExit  []map[string]any
}
