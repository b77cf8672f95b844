package component

// PlayerTag marks the player entity.
type PlayerTag struct{}

// EnemyTag marks an enemy agent. The enemy tag store's dense order is the
// roster order combat resolves in.
type EnemyTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
var EnemyTagComponent = NewComponent[EnemyTag]()
