package file

import "testing"

func TestCursor_AdvanceMonotonic(t *testing.T) {
	t.Parallel()

	var c Cursor
	c.Advance(10)
	c.Advance(5)
	if c.Offset() != 15 {
		t.Fatalf("offset: want 15, got %d", c.Offset())
	}

	// non-positive advances are ignored
	c.Advance(0)
	c.Advance(-3)
	if c.Offset() != 15 {
		t.Fatalf("offset must never decrease within an epoch, got %d", c.Offset())
	}
	if c.Epoch() != 0 {
		t.Fatalf("epoch must stay 0 without a reset, got %d", c.Epoch())
	}
}

func TestCursor_ResetBumpsEpoch(t *testing.T) {
	t.Parallel()

	var c Cursor
	c.Advance(500)
	c.Reset()
	if c.Offset() != 0 {
		t.Fatalf("offset after reset: want 0, got %d", c.Offset())
	}
	if c.Epoch() != 1 {
		t.Fatalf("epoch after reset: want 1, got %d", c.Epoch())
	}

	c.Advance(10)
	c.Reset()
	if c.Offset() != 0 || c.Epoch() != 2 {
		t.Fatalf("second reset wrong: offset=%d epoch=%d", c.Offset(), c.Epoch())
	}
}
