// Package stencil implements the tiled stencil buffer consumed and produced
// by the coverage core: an 8x8-tiled plane where each tile is either a
// single compressed value ("uniform") or 64 authoritative per-pixel bytes
// ("heterogeneous").
package stencil

// TileSize is the side length, in pixels, of one stencil tile. It matches
// the coverage core's 8x8 binning granularity.
const TileSize = 8
const pixelsPerTile = TileSize * TileSize

// uniformFlag occupies the high 24 bits of a tile's mask word when that tile
// is in the uniform (single-value) representation; the low 8 bits then hold
// the shared value. A mask word of 0 means heterogeneous.
const uniformFlag = 0xFFFFFF00

// Buffer is the tiled stencil plane. Values and Masks are exported for
// direct inspection; the coverage core (internal/raster) goes through the
// methods below, and Block hands it a tile's per-pixel bytes as a slice so
// its inner loops index them without a getter call per pixel.
type Buffer struct {
	Values []uint8  // 64 bytes per tile, authoritative only when that tile is heterogeneous
	Masks  []uint32 // one word per tile

	Pitch int // tiles per row
	Rows  int // tile rows
}

// New allocates a stencil buffer sized for a screenWidth x screenHeight
// image, rounded up to whole tiles, with every tile uniform and initialized
// to initialValue.
func New(screenWidth, screenHeight int, initialValue uint8) *Buffer {
	pitch := (screenWidth + TileSize - 1) / TileSize
	rows := (screenHeight + TileSize - 1) / TileSize

	b := &Buffer{
		Values: make([]uint8, pitch*rows*pixelsPerTile),
		Masks:  make([]uint32, pitch*rows),
		Pitch:  pitch,
		Rows:   rows,
	}
	for i := range b.Masks {
		b.Masks[i] = uniformFlag | uint32(initialValue)
	}
	return b
}

// TileIndex maps a tile-aligned pixel coordinate to its tile slot, the same
// formula the coverage core uses: block = x/8 + (y/8)*stencilPitch.
func (b *Buffer) TileIndex(x, y int) int {
	return x/TileSize + (y/TileSize)*b.Pitch
}

// IsUniform reports whether the tile at the given tile index is in the
// compressed single-value representation.
func (b *Buffer) IsUniform(tile int) bool {
	return b.Masks[tile]&uniformFlag == uniformFlag
}

// UniformValue returns the shared value of a uniform tile. The result is
// meaningless if the tile is heterogeneous; callers must check IsUniform
// first.
func (b *Buffer) UniformValue(tile int) uint8 {
	return uint8(b.Masks[tile])
}

// PixelValue returns the authoritative value at pixel (x, y), resolving
// through the uniform fast path if needed.
func (b *Buffer) PixelValue(x, y int) uint8 {
	tile := b.TileIndex(x, y)
	if b.IsUniform(tile) {
		return b.UniformValue(tile)
	}
	localX, localY := x%TileSize, y%TileSize
	return b.Values[tile*pixelsPerTile+localY*TileSize+localX]
}

// Block returns the 64 per-pixel bytes backing a tile, row-major within the
// tile (index = localX + localY*TileSize). It is only authoritative when
// the tile is heterogeneous; the coverage core only reads it after checking
// IsUniform.
func (b *Buffer) Block(tile int) []uint8 {
	base := tile * pixelsPerTile
	return b.Values[base : base+pixelsPerTile]
}

// SetUniform collapses a tile to the uniform representation, marking its 64
// per-pixel bytes stale.
func (b *Buffer) SetUniform(tile int, value uint8) {
	b.Masks[tile] = uniformFlag | uint32(value)
}

// Materialize forces a tile out of the uniform representation by writing
// its shared value into all 64 per-pixel bytes and clearing the mask word,
// mirroring the Stencil Writer's "materialize before merge" step. It is a
// no-op if the tile is already heterogeneous.
func (b *Buffer) Materialize(tile int) {
	if !b.IsUniform(tile) {
		return
	}
	value := b.UniformValue(tile)
	base := tile * pixelsPerTile
	px := b.Values[base : base+pixelsPerTile]
	for i := range px {
		px[i] = value
	}
	b.Masks[tile] = 0
}

// Reset collapses every tile back to the uniform representation holding
// initialValue, letting a caller reuse one persistently allocated Buffer
// frame to frame the way subsector.Buffer.Reset and framebuffer.Buffer.Clear
// do, instead of calling New again.
func (b *Buffer) Reset(initialValue uint8) {
	mask := uniformFlag | uint32(initialValue)
	for i := range b.Masks {
		b.Masks[i] = mask
	}
}

// FillUniformAllEqual reports whether a heterogeneous tile's 64 bytes all
// hold the same value, letting a caller collapse it back to uniform.
func (b *Buffer) FillUniformAllEqual(tile int) (value uint8, ok bool) {
	base := tile * pixelsPerTile
	px := b.Values[base : base+pixelsPerTile]
	value = px[0]
	for _, v := range px[1:] {
		if v != value {
			return 0, false
		}
	}
	return value, true
}
