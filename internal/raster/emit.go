package raster

// spanCursor replicates the C++ source's pointer-walking span emission: a
// "current span" slot that either grows in place or gets finalized by
// advancing to a fresh zeroed slot. Every tile row is unconditionally
// finalized at its end, so the current slot's Length is always 0 once
// binning for the triangle completes, and idx alone is the emitted count,
// mirroring `NumFullSpans = (int)(span - thread->FullSpans)`.
type spanCursor struct {
	spans []FullSpan
	idx   int
}

func newSpanCursor(spans []FullSpan) *spanCursor {
	c := &spanCursor{spans: spans}
	if len(spans) > 0 {
		c.spans[0] = FullSpan{}
	}
	return c
}

// finalize closes the current span if it has any length, advancing to a
// fresh empty slot.
func (c *spanCursor) finalize() {
	if c.spans[c.idx].Length != 0 {
		c.idx++
		c.spans[c.idx] = FullSpan{}
	}
}

// grow extends the current span, or starts a new one at (x, y) if the
// current slot is empty.
func (c *spanCursor) grow(x, y int) {
	if c.spans[c.idx].Length != 0 {
		c.spans[c.idx].Length++
	} else {
		c.spans[c.idx] = FullSpan{X: x, Y: y, Length: 1}
	}
}

func (c *spanCursor) count() int {
	return c.idx
}

// partialCursor appends partial blocks in emission order; unlike spans,
// partial blocks never coalesce.
type partialCursor struct {
	blocks []PartialBlock
	idx    int
}

func newPartialCursor(blocks []PartialBlock) *partialCursor {
	return &partialCursor{blocks: blocks}
}

func (c *partialCursor) emit(x, y int, mask0, mask1 uint32) {
	c.blocks[c.idx] = PartialBlock{X: x, Y: y, Mask0: mask0, Mask1: mask1}
	c.idx++
}

func (c *partialCursor) count() int {
	return c.idx
}

// cornerBits packs the four corner half-space tests of one edge function
// into a 4-bit mask: bit 0 = (x0,y0), bit 1 = (x1,y0), bit 2 = (x0,y1),
// bit 3 = (x1,y1).
func cornerBits(c, dx, dy, x0, x1, y0, y1 int) int {
	bits := 0
	if c+dx*y0-dy*x0 > 0 {
		bits |= 1
	}
	if c+dx*y0-dy*x1 > 0 {
		bits |= 2
	}
	if c+dx*y1-dy*x0 > 0 {
		bits |= 4
	}
	if c+dx*y1-dy*x1 > 0 {
		bits |= 8
	}
	return bits
}

// coreSkipRows computes the number of tile rows to skip so that tile row r
// is handled by worker r mod numCores.
func coreSkipRows(minTileY, core, numCores int) int {
	return (numCores - ((minTileY-core)%numCores+numCores)%numCores) % numCores
}

// prepareBinning runs the part of setup that is identical between the
// Normal and Subsector Tile Binner variants: it bails out on an empty
// bounding box and otherwise returns the first tile row this worker owns
// and the row stride.
func prepareBinning(e edges, core, numCores int) (startY, stepY int, ok bool) {
	if e.Empty {
		return 0, 0, false
	}
	skip := coreSkipRows(e.MinY/TileSize, core, numCores)
	return e.MinY + skip*TileSize, TileSize * numCores, true
}
