package component

// ProjectileSpeed is the muzzle speed shared by all weapons; a weapon's
// range divided by this speed gives each round its lifetime.
const ProjectileSpeed = 100.0

// Weapon is one firearm's stats and firing state. Reloading is an explicit
// deadline on the simulation clock checked each tick, never a delayed
// callback.
type Weapon struct {
	Name         string
	Damage       int
	Range        float64
	FireRate     float64 // shots per second
	MagazineSize int
	Magazine     int
	Reserve      int
	ReloadTime   float64

	// Pellets > 1 makes this a scatter weapon; Spread is the per-pellet
	// direction jitter.
	Pellets int
	Spread  float64

	LastShotTime float64
	Reloading    bool
	ReloadDoneAt float64
}

// CanFire reports whether a trigger pull at sim time now would fire.
func (wp *Weapon) CanFire(now float64) bool {
	if wp == nil || wp.Reloading || wp.Magazine <= 0 || wp.FireRate <= 0 {
		return false
	}
	return now-wp.LastShotTime >= 1.0/wp.FireRate
}

// ProjectileLifetime returns the seconds a round from this weapon lives.
func (wp *Weapon) ProjectileLifetime() float64 {
	if wp == nil || wp.Range <= 0 {
		return 0
	}
	return wp.Range / ProjectileSpeed
}

// Arsenal is the set of weapons an entity carries plus the selected index.
type Arsenal struct {
	Weapons []Weapon
	Current int
}

// CurrentWeapon returns the selected weapon, or nil for an empty arsenal.
func (a *Arsenal) CurrentWeapon() *Weapon {
	if a == nil || len(a.Weapons) == 0 || a.Current < 0 || a.Current >= len(a.Weapons) {
		return nil
	}
	return &a.Weapons[a.Current]
}

// Switch selects the weapon at index if it exists.
func (a *Arsenal) Switch(index int) bool {
	if a == nil || index < 0 || index >= len(a.Weapons) {
		return false
	}
	a.Current = index
	return true
}

var ArsenalComponent = NewComponent[Arsenal]()
