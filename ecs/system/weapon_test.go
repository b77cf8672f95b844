package system

import (
	"math"
	"testing"

	"github.com/milk9111/arenashooter/common"
	"github.com/milk9111/arenashooter/ecs"
	"github.com/milk9111/arenashooter/ecs/component"
)

func addShooter(w *ecs.World, weapons ...component.Weapon) ecs.Entity {
	e := ecs.CreateEntity(w)
	ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{})
	ecs.Add(w, e, component.ArsenalComponent.Kind(), &component.Arsenal{Weapons: weapons})
	return e
}

func testPistol() component.Weapon {
	return component.Weapon{
		Name: "pistol", Damage: 25, Range: 50, FireRate: 2,
		MagazineSize: 2, Magazine: 2, Reserve: 4, ReloadTime: 1.0,
		LastShotTime: math.Inf(-1),
	}
}

func testShotgun() component.Weapon {
	return component.Weapon{
		Name: "shotgun", Damage: 15, Range: 20, FireRate: 1,
		MagazineSize: 6, Magazine: 6, Reserve: 12, ReloadTime: 2.5,
		Pellets: 8, Spread: 0.2,
		LastShotTime: math.Inf(-1),
	}
}

func countProjectiles(w *ecs.World) int {
	return len(w.Query(component.ProjectileComponent.Kind().ID()))
}

func TestFireSpendsAmmoAndSpawnsProjectile(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewWeaponSystem(&stubView{})
	shooter := addShooter(w, testPistol())

	if !sys.Fire(w, shooter, common.Vec3{Z: 1}) {
		t.Fatalf("fresh weapon should fire")
	}
	if countProjectiles(w) != 1 {
		t.Fatalf("projectiles = %d, want 1", countProjectiles(w))
	}
	arsenal, _ := ecs.Get(w, shooter, component.ArsenalComponent.Kind())
	if arsenal.CurrentWeapon().Magazine != 1 {
		t.Fatalf("magazine = %d, want 1", arsenal.CurrentWeapon().Magazine)
	}

	proj := w.Query(component.ProjectileComponent.Kind().ID())[0]
	p, _ := ecs.Get(w, proj, component.ProjectileComponent.Kind())
	if p.Damage != 25 || p.Owner != component.EntityRef(shooter) {
		t.Fatalf("projectile = %+v", p)
	}
	if math.Abs(p.Velocity.Length()-component.ProjectileSpeed) > 1e-9 {
		t.Fatalf("muzzle speed = %v, want %v", p.Velocity.Length(), component.ProjectileSpeed)
	}
	if math.Abs(p.Lifetime-0.5) > 1e-9 {
		t.Fatalf("lifetime = %v, want range/speed = 0.5", p.Lifetime)
	}
	if shots := drainEvents[ecs.ShotFired](w); len(shots) != 1 || shots[0].Pellets != 1 {
		t.Fatalf("ShotFired = %+v", shots)
	}
}

func TestFireRateGate(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewWeaponSystem(&stubView{})
	shooter := addShooter(w, testPistol())

	if !sys.Fire(w, shooter, common.Vec3{Z: 1}) {
		t.Fatalf("first shot should land")
	}
	// 2 shots/s means a 0.5s interval.
	if sys.Fire(w, shooter, common.Vec3{Z: 1}) {
		t.Fatalf("second trigger pull inside the interval should be rejected")
	}
	w.Advance(0.6)
	if !sys.Fire(w, shooter, common.Vec3{Z: 1}) {
		t.Fatalf("shot after the interval should land")
	}
}

func TestShotgunFiresAllPellets(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewWeaponSystem(&stubView{})
	shooter := addShooter(w, testShotgun())

	if !sys.Fire(w, shooter, common.Vec3{Z: 1}) {
		t.Fatalf("shotgun should fire")
	}
	if got := countProjectiles(w); got != 8 {
		t.Fatalf("pellets = %d, want 8", got)
	}
	arsenal, _ := ecs.Get(w, shooter, component.ArsenalComponent.Kind())
	if arsenal.CurrentWeapon().Magazine != 5 {
		t.Fatalf("one trigger pull should spend one shell, magazine = %d", arsenal.CurrentWeapon().Magazine)
	}
	if shots := drainEvents[ecs.ShotFired](w); len(shots) != 1 || shots[0].Pellets != 8 {
		t.Fatalf("ShotFired = %+v", shots)
	}
}

func TestReloadDeadline(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewWeaponSystem(&stubView{})
	shooter := addShooter(w, testPistol())
	arsenal, _ := ecs.Get(w, shooter, component.ArsenalComponent.Kind())
	wp := arsenal.CurrentWeapon()

	sys.Fire(w, shooter, common.Vec3{Z: 1})
	w.Advance(0.6)
	sys.Fire(w, shooter, common.Vec3{Z: 1})
	if wp.Magazine != 0 {
		t.Fatalf("setup: magazine should be empty")
	}
	if sys.Fire(w, shooter, common.Vec3{Z: 1}) {
		t.Fatalf("empty weapon must not fire")
	}

	if !sys.StartReload(w, shooter) {
		t.Fatalf("reload should start")
	}
	if sys.StartReload(w, shooter) {
		t.Fatalf("double reload should be rejected")
	}
	if sys.Fire(w, shooter, common.Vec3{Z: 1}) {
		t.Fatalf("firing mid-reload should be rejected")
	}

	// Before the deadline nothing happens.
	w.Advance(0.5)
	sys.Update(w, dt)
	if wp.Magazine != 0 || !wp.Reloading {
		t.Fatalf("reload finished early")
	}

	// Past the deadline the magazine refills from reserve.
	w.Advance(0.6)
	sys.Update(w, dt)
	if wp.Reloading {
		t.Fatalf("reload should be finished")
	}
	if wp.Magazine != 2 || wp.Reserve != 2 {
		t.Fatalf("magazine/reserve = %d/%d, want 2/2", wp.Magazine, wp.Reserve)
	}
	if done := drainEvents[ecs.ReloadFinished](w); len(done) != 1 {
		t.Fatalf("expected one ReloadFinished event, got %d", len(done))
	}
}

func TestReloadRejections(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewWeaponSystem(&stubView{})

	t.Run("full_magazine", func(t *testing.T) {
		shooter := addShooter(w, testPistol())
		if sys.StartReload(w, shooter) {
			t.Fatalf("full magazine should not reload")
		}
	})

	t.Run("no_reserve", func(t *testing.T) {
		wp := testPistol()
		wp.Magazine = 0
		wp.Reserve = 0
		shooter := addShooter(w, wp)
		if sys.StartReload(w, shooter) {
			t.Fatalf("no reserve should not reload")
		}
	})
}

func TestSwitchWeaponKeepsReloadRunning(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewWeaponSystem(&stubView{})
	pistol := testPistol()
	pistol.Magazine = 0
	shooter := addShooter(w, pistol, testShotgun())

	if !sys.StartReload(w, shooter) {
		t.Fatalf("reload should start")
	}
	if !sys.SwitchWeapon(w, shooter, 1) {
		t.Fatalf("switch should succeed")
	}

	w.Advance(1.1)
	sys.Update(w, dt)

	arsenal, _ := ecs.Get(w, shooter, component.ArsenalComponent.Kind())
	if arsenal.Weapons[0].Magazine != 2 {
		t.Fatalf("holstered pistol should finish reloading, magazine = %d", arsenal.Weapons[0].Magazine)
	}
	if arsenal.CurrentWeapon().Name != "shotgun" {
		t.Fatalf("selection should be the shotgun")
	}
}
