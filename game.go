package main

import (
	"fmt"
	"log"
	"math"

	"github.com/ebitenui/ebitenui"

	"github.com/milk9111/arenashooter/arena"
	"github.com/milk9111/arenashooter/common"
	"github.com/milk9111/arenashooter/ecs"
	"github.com/milk9111/arenashooter/ecs/component"
	"github.com/milk9111/arenashooter/ecs/system"
	"github.com/milk9111/arenashooter/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	tps        = 60
	fixedDT    = 1.0 / tps
)

// Game hosts the simulation: it owns the world, the arena, and the system
// scheduler, translates input into simulation operations, and draws the
// debug view from per-frame snapshots.
type Game struct {
	world *ecs.World
	level *arena.Arena
	sched *ecs.Scheduler

	ai      *system.AISystem
	weapons *system.WeaponSystem
	spawner *system.SpawnSystem
	board   *system.Scoreboard

	player ecs.Entity

	playerSpec prefabs.PlayerSpec
	enemySpec  *prefabs.EnemySpec
	gameSpec   prefabs.GameSpec

	snapshot system.Snapshot
	feed     []string

	paused   bool
	gameOver bool
	debug    bool

	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
	input   *Input
}

func NewGame(seed int64, debug, watch bool) (*Game, error) {
	enemySpec, err := prefabs.LoadEnemySpec()
	if err != nil {
		return nil, err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	weaponsSpec, err := prefabs.LoadWeaponsSpec()
	if err != nil {
		return nil, err
	}
	gameSpec, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, err
	}
	arenaCfg, err := prefabs.LoadSpec[arena.Config]("arena.yaml")
	if err != nil {
		return nil, err
	}

	level := arena.New(arenaCfg, seed)
	world := ecs.NewWorld()
	board := &system.Scoreboard{}

	ai := system.NewAISystem(level, prefabs.LoadScript)
	weapons := system.NewWeaponSystem(level)
	spawner := system.NewSpawnSystem(level, enemySpec.EnemyConfig(), gameSpec.SpawnConfig())
	sched := ecs.NewScheduler(
		ai,
		system.NewMovementSystem(),
		weapons,
		system.NewCombatSystem(level, board, gameSpec.CombatConfig()),
		spawner,
	)

	g := &Game{
		world:      world,
		level:      level,
		sched:      sched,
		ai:         ai,
		weapons:    weapons,
		spawner:    spawner,
		board:      board,
		playerSpec: *playerSpec,
		enemySpec:  enemySpec,
		gameSpec:   *gameSpec,
		debug:      debug,
		input:      NewInput(),
	}

	g.player = g.spawnPlayer(weaponsSpec.Arsenal())
	spawner.Populate(world)
	g.snapshot = system.TakeSnapshot(world, board)
	g.pauseUI = NewPauseUI(g)

	if watch {
		watcher, err := prefabs.NewWatcher(0, "prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("prefab watcher disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

func (g *Game) spawnPlayer(arsenal component.Arsenal) ecs.Entity {
	pos := g.level.PlayerSpawn()
	e := ecs.CreateEntity(g.world)
	ecs.Add(g.world, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	ecs.Add(g.world, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
	ecs.Add(g.world, e, component.HealthComponent.Kind(), component.NewHealth(g.playerSpec.Health))
	ecs.Add(g.world, e, component.MovementComponent.Kind(), &component.Movement{
		Speed:        g.playerSpec.Speed,
		Acceleration: g.playerSpec.Acceleration,
		Friction:     g.playerSpec.Friction,
	})
	ecs.Add(g.world, e, component.CollidableComponent.Kind(), &component.Collidable{Radius: g.playerSpec.Radius, Enabled: true})
	ecs.Add(g.world, e, component.ArsenalComponent.Kind(), &arsenal)
	return e
}

func (g *Game) Update() error {
	g.input.Update()
	g.applyWatcher()

	if g.input.PauseToggled() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.gameOver {
		if g.input.RestartPressed() {
			g.Restart()
		}
		return nil
	}

	g.applyPlayerInput()
	g.sched.Update(g.world, fixedDT)
	g.consumeEvents()
	g.snapshot = system.TakeSnapshot(g.world, g.board)
	return nil
}

func (g *Game) applyPlayerInput() {
	move, ok := ecs.Get(g.world, g.player, component.MovementComponent.Kind())
	if !ok {
		return
	}
	tr, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	move.Desired = g.input.MoveDir()

	aim := g.worldAt(g.input.CursorX, g.input.CursorY).Sub(tr.Position)
	if !aim.IsZero() {
		tr.Facing = aim.FacingDegrees()
	}

	if g.input.FireHeld() && !aim.IsZero() {
		g.weapons.Fire(g.world, g.player, aim)
	}
	if g.input.ReloadPressed() {
		g.weapons.StartReload(g.world, g.player)
	}
	if idx, ok := g.input.WeaponSlot(); ok {
		g.weapons.SwitchWeapon(g.world, g.player, idx)
	}
}

// consumeEvents drains the tick's events into the HUD feed and watches for
// the session-ending one.
func (g *Game) consumeEvents() {
	for _, evt := range g.world.Events().Drain() {
		switch e := evt.(type) {
		case ecs.EnemyKilled:
			g.pushFeed(fmt.Sprintf("+%d", e.ScoreDelta))
		case ecs.PlayerAttacked:
			g.pushFeed(fmt.Sprintf("hit for %d", e.Damage))
		case ecs.PlayerDied:
			g.gameOver = true
		case ecs.ReloadStarted:
			g.pushFeed("reloading...")
		case ecs.ReloadFinished:
			g.pushFeed(e.Weapon + " ready")
		case ecs.EnemySpawned, ecs.EnemyRespawned:
			g.pushFeed("hostile inbound")
		}
	}
}

func (g *Game) pushFeed(line string) {
	g.feed = append(g.feed, line)
	if len(g.feed) > 5 {
		g.feed = g.feed[len(g.feed)-5:]
	}
}

// Restart rebuilds the session in place: projectiles cleared, enemies
// despawned and repopulated, player restored at spawn, score zeroed. The
// simulation clock keeps running; only session state resets.
func (g *Game) Restart() {
	for _, e := range g.world.Query(component.ProjectileComponent.Kind().ID()) {
		ecs.DestroyEntity(g.world, e)
	}
	for _, e := range g.world.Query(component.EnemyTagComponent.Kind().ID()) {
		ecs.DestroyEntity(g.world, e)
	}

	if hp, ok := ecs.Get(g.world, g.player, component.HealthComponent.Kind()); ok {
		hp.Restore()
	}
	if tr, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind()); ok {
		tr.Position = g.level.PlayerSpawn()
		tr.Facing = 0
	}
	if move, ok := ecs.Get(g.world, g.player, component.MovementComponent.Kind()); ok {
		move.Velocity = common.Vec3{}
		move.Desired = common.Vec3{}
	}
	if arsenal, ok := ecs.Get(g.world, g.player, component.ArsenalComponent.Kind()); ok {
		for i := range arsenal.Weapons {
			wp := &arsenal.Weapons[i]
			wp.Magazine = wp.MagazineSize
			wp.Reloading = false
			wp.LastShotTime = math.Inf(-1)
		}
		arsenal.Current = 0
	}

	g.board.Reset()
	g.spawner.ResetTimer()
	g.spawner.Populate(g.world)
	g.feed = nil
	g.gameOver = false
	g.snapshot = system.TakeSnapshot(g.world, g.board)
}

// applyWatcher hot-reloads prefab edits reported by fsnotify.
func (g *Game) applyWatcher() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case ev, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab changed: %s", ev.Path)
			// Script edits reach agents through the per-agent runtime
			// cache; only spec edits force a reload here.
			if !ev.Script {
				reload = true
			}
		case err := <-g.watcher.Errors:
			if err != nil {
				log.Printf("prefab watcher: %v", err)
			}
		default:
			if reload {
				g.reloadSpecs()
			}
			return
		}
	}
}

func (g *Game) reloadSpecs() {
	if enemySpec, err := prefabs.LoadEnemySpec(); err == nil {
		g.enemySpec = enemySpec
	} else {
		log.Printf("reload enemy.yaml: %v", err)
		return
	}
	gameSpec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Printf("reload game.yaml: %v", err)
		return
	}
	g.gameSpec = *gameSpec

	// New cadence and recipe apply to future spawns; live agents keep the
	// stats they were built with.
	g.spawner = system.NewSpawnSystem(g.level, g.enemySpec.EnemyConfig(), g.gameSpec.SpawnConfig())
	g.sched = ecs.NewScheduler(
		g.ai,
		system.NewMovementSystem(),
		g.weapons,
		system.NewCombatSystem(g.level, g.board, g.gameSpec.CombatConfig()),
		g.spawner,
	)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
