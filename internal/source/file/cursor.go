package file

// Cursor tracks how far into the current incarnation of the source the
// consumer has committed. The offset only grows within an epoch; an observed
// shrink of the source resets it to zero and bumps the epoch. Neither value
// survives a process restart.
type Cursor struct {
	offset int64
	epoch  uint64
}

func (c Cursor) Offset() int64 { return c.offset }
func (c Cursor) Epoch() uint64 { return c.epoch }

// Advance moves the offset forward by n bytes. Non-positive n is ignored.
func (c *Cursor) Advance(n int64) {
	if n <= 0 {
		return
	}
	c.offset += n
}

// Reset handles a truncation/rotation event: offset back to the start of the
// new incarnation, epoch bumped.
func (c *Cursor) Reset() {
	c.offset = 0
	c.epoch++
}
