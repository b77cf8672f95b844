package component

// Health is a reusable health pool for any entity that can take damage.
// The invariant is Current == 0 exactly when Dead is set; ApplyDamage is the
// only way down and Restore the only way back.
type Health struct {
	Max     int
	Current int
	Dead    bool
}

// NewHealth creates a Health component at full strength.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage subtracts amount, flooring at zero, and marks death when the
// floor is reached. Damage against the dead is a defined no-op. Returns true
// if health changed.
func (h *Health) ApplyDamage(amount int) bool {
	if h == nil || h.Dead || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
	}
	return true
}

// Restore refills to max and clears the death flag (respawn path).
func (h *Health) Restore() {
	if h == nil {
		return
	}
	h.Current = h.Max
	h.Dead = false
}

// Fraction returns current health as a 0..1 fraction for HUD bars.
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

var HealthComponent = NewComponent[Health]()
