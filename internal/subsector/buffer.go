// Package subsector implements the per-pixel subsector depth/identity
// buffer: a flat uint32 plane compared against a triangle's subsectorDepth
// to decide whether that triangle is allowed to own a pixel.
package subsector

// Buffer is a row-major uint32 plane with configurable pitch, matching the
// frame buffer's layout pixel for pixel.
type Buffer struct {
	Values []uint32
	Pitch  int
	Height int
}

// New allocates a subsector buffer for a screenWidth x screenHeight image,
// every pixel initialized to initialDepth.
func New(screenWidth, screenHeight int, initialDepth uint32) *Buffer {
	b := &Buffer{
		Values: make([]uint32, screenWidth*screenHeight),
		Pitch:  screenWidth,
		Height: screenHeight,
	}
	if initialDepth != 0 {
		for i := range b.Values {
			b.Values[i] = initialDepth
		}
	}
	return b
}

// At returns the depth/identity value at pixel (x, y).
func (b *Buffer) At(x, y int) uint32 {
	return b.Values[y*b.Pitch+x]
}

// Set writes the depth/identity value at pixel (x, y).
func (b *Buffer) Set(x, y int, depth uint32) {
	b.Values[y*b.Pitch+x] = depth
}

// Passes reports whether the pixel at (x, y) satisfies the subsector test
// used by the Subsector Tile Binner: the stored value must be >= depth.
func (b *Buffer) Passes(x, y int, depth uint32) bool {
	return b.At(x, y) >= depth
}

// Reset refills every pixel with initialDepth in place, letting a caller
// reuse one persistently allocated Buffer frame to frame instead of
// reallocating, mirroring FloatBuffer.clearDepth.
func (b *Buffer) Reset(initialDepth uint32) {
	for i := range b.Values {
		b.Values[i] = initialDepth
	}
}
