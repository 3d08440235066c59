// Package pointer defines renderer-neutral pointer events and scoped pointer
// capture.
//
// A drag session acquires the pointer that started it and must release it when
// the session ends, whether by pointer-up, cancellation or the dragged entity
// disappearing. While a pointer is captured its move events belong to the
// capturing owner only.
package pointer

// Kind identifies a pointer event.
type Kind int

const (
	Down Kind = iota
	Move
	Up
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Event is a pointer event in window pixel coordinates.
type Event struct {
	Kind      Kind
	PointerID int
	X, Y      float32
}

// Capture tracks which owner holds each pointer. The zero value is ready
// to use.
type Capture struct {
	owners map[int]any
}

// NewCapture creates an empty capture table.
func NewCapture() *Capture {
	return &Capture{owners: make(map[int]any)}
}

// Acquire captures pointerID for owner. It fails if another owner already
// holds the pointer; re-acquiring by the same owner returns a fresh grab.
func (c *Capture) Acquire(pointerID int, owner any) (*Grab, bool) {
	if cur, held := c.owners[pointerID]; held && cur != owner {
		return nil, false
	}
	if c.owners == nil {
		c.owners = make(map[int]any)
	}
	c.owners[pointerID] = owner
	return &Grab{capture: c, pointerID: pointerID, owner: owner}, true
}

// Owner returns the current holder of pointerID.
func (c *Capture) Owner(pointerID int) (any, bool) {
	o, ok := c.owners[pointerID]
	return o, ok
}

// Held returns the number of captured pointers.
func (c *Capture) Held() int {
	return len(c.owners)
}

// Grab is one owner's hold on a pointer.
type Grab struct {
	capture   *Capture
	pointerID int
	owner     any
	released  bool
}

// PointerID returns the captured pointer.
func (g *Grab) PointerID() int {
	return g.pointerID
}

// Active reports whether the grab still owns its pointer.
func (g *Grab) Active() bool {
	if g == nil || g.released {
		return false
	}
	cur, ok := g.capture.owners[g.pointerID]
	return ok && cur == g.owner
}

// Release gives the pointer back. Safe to call more than once.
func (g *Grab) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	if cur, ok := g.capture.owners[g.pointerID]; ok && cur == g.owner {
		delete(g.capture.owners, g.pointerID)
	}
}
