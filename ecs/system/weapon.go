package system

import (
	"math"

	"github.com/milk9111/arenashooter/common"
	"github.com/milk9111/arenashooter/ecs"
	"github.com/milk9111/arenashooter/ecs/component"
)

// WeaponSystem owns firing and reload completion. Reloads are deadlines on
// the simulation clock: StartReload records when the magazine refills and
// Update performs the refill on the first tick at or past the deadline.
type WeaponSystem struct {
	view WorldView
}

func NewWeaponSystem(view WorldView) *WeaponSystem {
	return &WeaponSystem{view: view}
}

func (s *WeaponSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	now := w.Now()
	ecs.ForEach(w, component.ArsenalComponent.Kind(), func(e ecs.Entity, arsenal *component.Arsenal) {
		for i := range arsenal.Weapons {
			wp := &arsenal.Weapons[i]
			if !wp.Reloading || now < wp.ReloadDoneAt {
				continue
			}
			need := wp.MagazineSize - wp.Magazine
			if need > wp.Reserve {
				need = wp.Reserve
			}
			wp.Magazine += need
			wp.Reserve -= need
			wp.Reloading = false
			w.Events().Push(ecs.ReloadFinished{Owner: e, Weapon: wp.Name})
		}
	})
}

// Fire pulls the trigger on the owner's selected weapon toward dir. Returns
// false when the weapon can't fire: mid-reload, empty magazine, or inside
// the fire-rate interval. A scatter weapon spends one round on all pellets.
func (s *WeaponSystem) Fire(w *ecs.World, owner ecs.Entity, dir common.Vec3) bool {
	if w == nil || dir.IsZero() {
		return false
	}
	arsenal, ok := ecs.Get(w, owner, component.ArsenalComponent.Kind())
	if !ok {
		return false
	}
	wp := arsenal.CurrentWeapon()
	now := w.Now()
	if wp == nil || !wp.CanFire(now) {
		return false
	}
	tr, ok := ecs.Get(w, owner, component.TransformComponent.Kind())
	if !ok {
		return false
	}

	wp.Magazine--
	wp.LastShotTime = now

	pellets := wp.Pellets
	if pellets < 1 {
		pellets = 1
	}
	base := math.Atan2(dir.X, dir.Z)
	for i := 0; i < pellets; i++ {
		angle := base
		if pellets > 1 && wp.Spread > 0 && s.view != nil {
			angle += s.view.RandFloat(-wp.Spread, wp.Spread)
		}
		pdir := common.Vec3{X: math.Sin(angle), Z: math.Cos(angle)}
		spawnProjectile(w, owner, wp, tr.Position, pdir)
	}

	w.Events().Push(ecs.ShotFired{Owner: owner, Weapon: wp.Name, Pellets: pellets})
	return true
}

// StartReload schedules a reload on the owner's selected weapon. Rejected
// while already reloading, with a full magazine, or with no reserve ammo.
func (s *WeaponSystem) StartReload(w *ecs.World, owner ecs.Entity) bool {
	if w == nil {
		return false
	}
	arsenal, ok := ecs.Get(w, owner, component.ArsenalComponent.Kind())
	if !ok {
		return false
	}
	wp := arsenal.CurrentWeapon()
	if wp == nil || wp.Reloading || wp.Magazine >= wp.MagazineSize || wp.Reserve <= 0 {
		return false
	}
	wp.Reloading = true
	wp.ReloadDoneAt = w.Now() + wp.ReloadTime
	w.Events().Push(ecs.ReloadStarted{Owner: owner, Weapon: wp.Name})
	return true
}

// SwitchWeapon selects the owner's weapon at index. Switching cancels
// nothing: an in-flight reload on the previous weapon still completes.
func (s *WeaponSystem) SwitchWeapon(w *ecs.World, owner ecs.Entity, index int) bool {
	if w == nil {
		return false
	}
	arsenal, ok := ecs.Get(w, owner, component.ArsenalComponent.Kind())
	if !ok {
		return false
	}
	return arsenal.Switch(index)
}

func spawnProjectile(w *ecs.World, owner ecs.Entity, wp *component.Weapon, origin, dir common.Vec3) ecs.Entity {
	e := ecs.CreateEntity(w)
	ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: origin})
	ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Origin:   origin,
		Velocity: dir.Normalized().Scale(component.ProjectileSpeed),
		Lifetime: wp.ProjectileLifetime(),
		Owner:    component.EntityRef(owner),
		Damage:   wp.Damage,
	})
	return e
}
