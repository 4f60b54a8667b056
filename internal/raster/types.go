// Package raster implements the coverage/binning front end of the
// rasterizer: Edge Setup, the two Tile Binner variants, the Stencil Writer
// and the Subsector Writer. It never returns an error: degenerate or
// off-screen triangles simply produce empty output.
package raster

import (
	f32 "golang.org/x/image/math/f32"

	"github.com/ghetty3d/polycore/internal/framebuffer"
	"github.com/ghetty3d/polycore/internal/stencil"
	"github.com/ghetty3d/polycore/internal/subsector"
)

// Vertex is a screen-space position with sub-pixel precision. Only X/Y are
// consumed by the coverage core; z, u/v, color and any other attribute are
// the drawer's concern and are not carried by Uniforms or TriangleArgs (the
// drawers receive them through their own per-triangle arguments).
type Vertex = f32.Vec2

// TileSize is the coverage core's binning granularity: 8x8 pixels.
const TileSize = 8

// Uniforms carries the per-triangle values the coverage core itself reads.
// SubsectorDepth is compared against subsector.Buffer by the Subsector Tile
// Binner and written by the Subsector Writer.
type Uniforms struct {
	SubsectorDepth uint32
}

// TriangleArgs is the immutable, read-only descriptor of one triangle. It
// is shared read-only across every worker goroutine binning this triangle.
type TriangleArgs struct {
	V1, V2, V3 Vertex

	ClipRight, ClipBottom int

	Stencil   *stencil.Buffer
	Subsector *subsector.Buffer
	Dest      *framebuffer.Buffer

	// Pitch is pixels per row of the subsector/destination buffers.
	Pitch int

	StencilTestValue  uint8
	StencilWriteValue uint8

	Uniforms Uniforms
}

// WorkerThread is one worker's scratch block. FullSpans and PartialBlocks
// must be pre-sized by the caller to the worst-case tile count of the
// triangle's bounding box; the core never allocates in its inner loops.
type WorkerThread struct {
	Core, NumCores int

	FullSpans     []FullSpan
	PartialBlocks []PartialBlock

	NumFullSpans     int
	NumPartialBlocks int

	StartX, StartY int
}

// Reset clears a worker's emission counts without touching the backing
// arrays, so the scheduler can reuse WorkerThread scratch triangle to
// triangle.
func (w *WorkerThread) Reset() {
	w.NumFullSpans = 0
	w.NumPartialBlocks = 0
	w.StartX, w.StartY = 0, 0
}

// FullSpan is a horizontal run of contiguous, fully covered 8x8 tiles on a
// single tile row. X, Y are the leftmost tile's top-left corner, both
// multiples of 8; Length is a positive tile count.
type FullSpan struct {
	X, Y   int
	Length int
}

// PartialBlock is a single 8x8 tile with per-pixel coverage packed
// MSB-first into two 32-bit words: Mask0 covers rows 0..3, Mask1 rows 4..7.
// Bit 31 of Mask0 is pixel (X, Y); bit 0 of Mask1 is pixel (X+7, Y+7).
type PartialBlock struct {
	X, Y         int
	Mask0, Mask1 uint32
}
