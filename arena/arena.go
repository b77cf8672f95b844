// Package arena owns the static level: a Chipmunk space holding the
// perimeter and interior walls, spawn points, and the seeded randomness the
// simulation draws from. It implements the system.WorldView contract.
package arena

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arenashooter/common"
)

// Wall is one static segment on the x/z plane.
type Wall struct {
	From      common.Vec3 `yaml:"from"`
	To        common.Vec3 `yaml:"to"`
	Thickness float64     `yaml:"thickness"`
}

// Config mirrors arena.yaml. Size is the side length of the square map;
// bounds run from -Size/2 to +Size/2 on both axes.
type Config struct {
	Size        float64       `yaml:"size"`
	Walls       []Wall        `yaml:"walls"`
	PlayerSpawn common.Vec3   `yaml:"player_spawn"`
	EnemySpawns []common.Vec3 `yaml:"enemy_spawns"`

	// SpawnMargin keeps random spawn points away from the perimeter.
	SpawnMargin float64 `yaml:"spawn_margin"`
}

// Arena is the built level. Gameplay is on the x/z plane; the space maps
// world x to space X and world z to space Y.
type Arena struct {
	cfg   Config
	space *cp.Space
	rng   *rand.Rand
}

func New(cfg Config, seed int64) *Arena {
	if cfg.Size <= 0 {
		cfg.Size = 50
	}
	if cfg.SpawnMargin <= 0 {
		cfg.SpawnMargin = 2
	}

	space := cp.NewSpace()

	half := cfg.Size / 2
	thickness := 0.5
	perimeter := []struct{ a, b cp.Vector }{
		{a: cp.Vector{X: -half, Y: -half}, b: cp.Vector{X: half, Y: -half}},
		{a: cp.Vector{X: -half, Y: half}, b: cp.Vector{X: half, Y: half}},
		{a: cp.Vector{X: -half, Y: -half}, b: cp.Vector{X: -half, Y: half}},
		{a: cp.Vector{X: half, Y: -half}, b: cp.Vector{X: half, Y: half}},
	}
	for _, seg := range perimeter {
		shape := cp.NewSegment(space.StaticBody, seg.a, seg.b, thickness)
		space.AddShape(shape)
	}
	for _, wall := range cfg.Walls {
		t := wall.Thickness
		if t <= 0 {
			t = thickness
		}
		shape := cp.NewSegment(space.StaticBody, toSpace(wall.From), toSpace(wall.To), t)
		space.AddShape(shape)
	}

	return &Arena{cfg: cfg, space: space, rng: rand.New(rand.NewSource(seed))}
}

// LineOfSight reports whether the segment between the points crosses no
// static geometry. A zero-length segment always has sight.
func (a *Arena) LineOfSight(from, to common.Vec3) bool {
	if from.Dist(to) == 0 {
		return true
	}
	info := a.space.SegmentQueryFirst(toSpace(from), toSpace(to), 0, cp.SHAPE_FILTER_ALL)
	return info.Shape == nil
}

// SweepWall tests a movement segment against static geometry and returns
// the impact point on hit.
func (a *Arena) SweepWall(from, to common.Vec3) (bool, common.Vec3) {
	if from.Dist(to) == 0 {
		return false, common.Vec3{}
	}
	info := a.space.SegmentQueryFirst(toSpace(from), toSpace(to), 0, cp.SHAPE_FILTER_ALL)
	if info.Shape == nil {
		return false, common.Vec3{}
	}
	return true, fromSpace(info.Point)
}

// Config returns the configuration the arena was built from.
func (a *Arena) Config() Config {
	return a.cfg
}

// Bounds returns the min and max world corners.
func (a *Arena) Bounds() (common.Vec3, common.Vec3) {
	half := a.cfg.Size / 2
	return common.Vec3{X: -half, Z: -half}, common.Vec3{X: half, Z: half}
}

// EnemySpawn picks one of the configured spawn points, or a random interior
// point when the prefab lists none.
func (a *Arena) EnemySpawn() common.Vec3 {
	if n := len(a.cfg.EnemySpawns); n > 0 {
		return a.cfg.EnemySpawns[a.rng.Intn(n)]
	}
	half := a.cfg.Size/2 - a.cfg.SpawnMargin
	return common.Vec3{
		X: a.RandFloat(-half, half),
		Z: a.RandFloat(-half, half),
	}
}

// PlayerSpawn returns the configured player spawn point.
func (a *Arena) PlayerSpawn() common.Vec3 {
	return a.cfg.PlayerSpawn
}

// RandFloat returns a uniform float in [lo, hi).
func (a *Arena) RandFloat(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + a.rng.Float64()*(hi-lo)
}

// RandInt returns a uniform int in [lo, hi].
func (a *Arena) RandInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + a.rng.Intn(hi-lo+1)
}

func toSpace(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

func fromSpace(v cp.Vector) common.Vec3 {
	return common.Vec3{X: v.X, Z: v.Y}
}
