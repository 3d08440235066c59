package entity

// Arbiter decides whether an entity may start being dragged.
// With Exclusive unset any number of entities may be dragged at once.
// The zero value is ready to use.
type Arbiter struct {
	Exclusive bool

	holders map[*Entity]struct{}
}

// NewArbiter creates an arbiter.
func NewArbiter(exclusive bool) *Arbiter {
	return &Arbiter{Exclusive: exclusive, holders: make(map[*Entity]struct{})}
}

// TryAcquire records e as dragged. In exclusive mode it fails while any other
// entity is held. A nil arbiter always grants.
func (a *Arbiter) TryAcquire(e *Entity) bool {
	if a == nil {
		return true
	}
	if _, ok := a.holders[e]; ok {
		return true
	}
	if a.Exclusive && len(a.holders) > 0 {
		return false
	}
	if a.holders == nil {
		a.holders = make(map[*Entity]struct{})
	}
	a.holders[e] = struct{}{}
	return true
}

// Release forgets e.
func (a *Arbiter) Release(e *Entity) {
	if a == nil {
		return
	}
	delete(a.holders, e)
}

// Holding reports whether e is currently dragged.
func (a *Arbiter) Holding(e *Entity) bool {
	if a == nil {
		return false
	}
	_, ok := a.holders[e]
	return ok
}

// Count returns the number of entities being dragged.
func (a *Arbiter) Count() int {
	if a == nil {
		return 0
	}
	return len(a.holders)
}
