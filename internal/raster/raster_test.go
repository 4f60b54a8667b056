package raster

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ghetty3d/polycore/internal/framebuffer"
	"github.com/ghetty3d/polycore/internal/stencil"
	"github.com/ghetty3d/polycore/internal/subsector"
)

func newArgs(clipRight, clipBottom int, testValue, writeValue uint8) *TriangleArgs {
	return &TriangleArgs{
		ClipRight:         clipRight,
		ClipBottom:        clipBottom,
		Stencil:           stencil.New(clipRight, clipBottom, 0),
		Subsector:         subsector.New(clipRight, clipBottom, 0),
		Dest:              framebuffer.New(framebuffer.RGBA32, clipRight, clipBottom),
		Pitch:             clipRight,
		StencilTestValue:  testValue,
		StencilWriteValue: writeValue,
	}
}

func newThread(core, numCores, capTiles int) *WorkerThread {
	return &WorkerThread{
		Core:          core,
		NumCores:      numCores,
		FullSpans:     make([]FullSpan, capTiles+1),
		PartialBlocks: make([]PartialBlock, capTiles+1),
	}
}

// coveredPixels renders the thread's spans/blocks into a plain bool grid
// for assertion convenience.
func coveredPixels(thread *WorkerThread, width, height int) [][]bool {
	grid := make([][]bool, height)
	for i := range grid {
		grid[i] = make([]bool, width)
	}
	for i := 0; i < thread.NumFullSpans; i++ {
		s := thread.FullSpans[i]
		for row := 0; row < TileSize; row++ {
			for col := 0; col < s.Length*TileSize; col++ {
				grid[s.Y+row][s.X+col] = true
			}
		}
	}
	for i := 0; i < thread.NumPartialBlocks; i++ {
		b := thread.PartialBlocks[i]
		mask0, mask1 := b.Mask0, b.Mask1
		for row := 0; row < 4; row++ {
			for col := 0; col < TileSize; col++ {
				if mask0&(1<<31) != 0 {
					grid[b.Y+row][b.X+col] = true
				}
				mask0 <<= 1
			}
		}
		for row := 4; row < TileSize; row++ {
			for col := 0; col < TileSize; col++ {
				if mask1&(1<<31) != 0 {
					grid[b.Y+row][b.X+col] = true
				}
				mask1 <<= 1
			}
		}
	}
	return grid
}

// These vertex orders have a negative signed area in screen space (y grows
// downward), so they appear counter-clockwise on screen: the winding this
// rasterizer's half-space functions treat as front-facing (positive inside). Upstream triangle setup, out of scope for this
// package, is responsible for guaranteeing that winding; the tests feed it
// directly so they exercise the binner itself rather than a winding
// failure.

func TestScreenFillingTriangleSingleWorker(t *testing.T) {
	args := newArgs(100, 100, 0, 0)
	args.V1, args.V2, args.V3 = Vertex{0, 0}, Vertex{0, 200}, Vertex{200, 0}

	thread := newThread(0, 1, 256)
	BinNormal(args, thread)

	require.Greater(t, thread.NumFullSpans, 0)
	require.Greater(t, thread.NumPartialBlocks, 0)

	grid := coveredPixels(thread, 100, 100)
	// The hypotenuse (x+y=200) never enters the 100x100 clip rectangle
	// (max x+y there is 198), so every clipped pixel is interior; only the
	// clip edge itself (not a multiple of the tile size) forces partial
	// blocks.
	require.True(t, grid[99][99])
	require.True(t, grid[10][10])
}

func TestExactlyTopLeftPixel(t *testing.T) {
	args := newArgs(8, 8, 0, 0)
	args.V1, args.V2, args.V3 = Vertex{0, 0}, Vertex{0, 1}, Vertex{1, 0}

	thread := newThread(0, 1, 4)
	BinNormal(args, thread)

	grid := coveredPixels(thread, 8, 8)
	require.True(t, grid[0][0])
	require.False(t, grid[0][1])
	require.False(t, grid[1][0])
}

func TestQuadSplitIntoTwoTrianglesCoversEachPixelOnce(t *testing.T) {
	args := newArgs(16, 16, 0, 0)

	t1 := *args
	t1.V1, t1.V2, t1.V3 = Vertex{0, 0}, Vertex{16, 16}, Vertex{16, 0}
	thread1 := newThread(0, 1, 8)
	BinNormal(&t1, thread1)

	t2 := *args
	t2.V1, t2.V2, t2.V3 = Vertex{0, 0}, Vertex{0, 16}, Vertex{16, 16}
	thread2 := newThread(0, 1, 8)
	BinNormal(&t2, thread2)

	grid1 := coveredPixels(thread1, 16, 16)
	grid2 := coveredPixels(thread2, 16, 16)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			require.False(t, grid1[y][x] && grid2[y][x], "double-covered at (%d,%d)", x, y)
			require.True(t, grid1[y][x] || grid2[y][x], "uncovered at (%d,%d)", x, y)
		}
	}
}

func TestStencilRejectWholeTile(t *testing.T) {
	args := newArgs(8, 8, 5, 0)
	// Tile (0,0) uniform value 3, test value 5: must reject entirely.
	args.Stencil = stencil.New(8, 8, 3)
	args.V1, args.V2, args.V3 = Vertex{0, 0}, Vertex{0, 8}, Vertex{8, 0}

	thread := newThread(0, 1, 4)
	BinNormal(args, thread)

	require.Equal(t, 0, thread.NumFullSpans)
	require.Equal(t, 0, thread.NumPartialBlocks)
}

func TestStencilPartialPassLeftHalf(t *testing.T) {
	baseline := newArgs(8, 8, 5, 0)
	baseline.Stencil = stencil.New(8, 8, 5)
	baseline.V1, baseline.V2, baseline.V3 = Vertex{0, 0}, Vertex{0, 8}, Vertex{8, 0}
	baselineThread := newThread(0, 1, 4)
	BinNormal(baseline, baselineThread)
	baselineGrid := coveredPixels(baselineThread, 8, 8)

	args := newArgs(8, 8, 5, 0)
	args.Stencil = stencil.New(8, 8, 5)
	tile := args.Stencil.TileIndex(0, 0)
	args.Stencil.Materialize(tile)
	block := args.Stencil.Block(tile)
	for row := 0; row < 8; row++ {
		for col := 4; col < 8; col++ {
			block[row*8+col] = 3
		}
	}

	args.V1, args.V2, args.V3 = baseline.V1, baseline.V2, baseline.V3
	thread := newThread(0, 1, 4)
	BinNormal(args, thread)

	require.Equal(t, 0, thread.NumFullSpans)
	require.Equal(t, 1, thread.NumPartialBlocks)

	grid := coveredPixels(thread, 8, 8)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			wantCovered := baselineGrid[row][col] && col < 4
			require.Equal(t, wantCovered, grid[row][col], "pixel (%d,%d)", col, row)
		}
	}
}

func TestSubsectorDepthReject(t *testing.T) {
	args := newArgs(8, 8, 0, 0)
	args.Subsector = subsector.New(8, 8, 10)
	args.Uniforms.SubsectorDepth = 11 // strictly greater than the stored 10: fails >=
	args.V1, args.V2, args.V3 = Vertex{0, 0}, Vertex{0, 8}, Vertex{8, 0}

	thread := newThread(0, 1, 4)
	BinSubsector(args, thread)

	require.Equal(t, 0, thread.NumFullSpans)
	require.Equal(t, 0, thread.NumPartialBlocks)
}

func TestSubsectorDepthPass(t *testing.T) {
	args := newArgs(8, 8, 0, 0)
	args.Subsector = subsector.New(8, 8, 10)
	args.Uniforms.SubsectorDepth = 5
	args.V1, args.V2, args.V3 = Vertex{0, 0}, Vertex{0, 8}, Vertex{8, 0}

	thread := newThread(0, 1, 4)
	BinSubsector(args, thread)

	grid := coveredPixels(thread, 8, 8)
	require.True(t, grid[0][0])
}

func TestDegenerateTriangleProducesEmptyOutput(t *testing.T) {
	args := newArgs(100, 100, 0, 0)
	args.V1, args.V2, args.V3 = Vertex{5, 5}, Vertex{5, 5}, Vertex{5, 5}

	thread := newThread(0, 1, 16)
	BinNormal(args, thread)

	require.Equal(t, 0, thread.NumFullSpans)
	require.Equal(t, 0, thread.NumPartialBlocks)
}

func TestOffScreenTriangleProducesEmptyOutput(t *testing.T) {
	args := newArgs(100, 100, 0, 0)
	args.V1, args.V2, args.V3 = Vertex{-50, -50}, Vertex{-40, -50}, Vertex{-50, -40}

	thread := newThread(0, 1, 16)
	BinNormal(args, thread)

	require.Equal(t, 0, thread.NumFullSpans)
	require.Equal(t, 0, thread.NumPartialBlocks)
}

func TestTileRowPartitionIsIndependentOfWorkerCount(t *testing.T) {
	args := newArgs(100, 100, 0, 0)
	args.V1, args.V2, args.V3 = Vertex{0, 0}, Vertex{0, 90}, Vertex{90, 0}

	reference := make([][]bool, 0)
	for _, numCores := range []int{1, 2, 4, 8} {
		grid := make([][]bool, 100)
		for i := range grid {
			grid[i] = make([]bool, 100)
		}
		rowOwner := make([]int, 100/TileSize+1)
		for i := range rowOwner {
			rowOwner[i] = -1
		}

		for core := 0; core < numCores; core++ {
			thread := newThread(core, numCores, 256)
			BinNormal(args, thread)
			g := coveredPixels(thread, 100, 100)
			for y := 0; y < 100; y++ {
				for x := 0; x < 100; x++ {
					if g[y][x] {
						require.False(t, grid[y][x], "pixel (%d,%d) double-claimed across workers", x, y)
						grid[y][x] = true
					}
				}
			}
			for i := 0; i < thread.NumFullSpans; i++ {
				checkRowOwnership(t, rowOwner, thread.FullSpans[i].Y, core)
			}
			for i := 0; i < thread.NumPartialBlocks; i++ {
				checkRowOwnership(t, rowOwner, thread.PartialBlocks[i].Y, core)
			}
		}

		if numCores == 1 {
			reference = grid
		} else {
			require.Equal(t, reference, grid, "coverage differs for numCores=%d", numCores)
		}
	}
}

func checkRowOwnership(t *testing.T, rowOwner []int, y, core int) {
	t.Helper()
	row := y / TileSize
	if rowOwner[row] == -1 {
		rowOwner[row] = core
	} else {
		require.Equal(t, rowOwner[row], core, "tile row %d touched by more than one worker", row)
	}
}

func TestUniformTileEquivalenceWithHeterogeneousAllEqual(t *testing.T) {
	argsUniform := newArgs(8, 8, 4, 0)
	argsUniform.Stencil = stencil.New(8, 8, 4)
	argsUniform.V1, argsUniform.V2, argsUniform.V3 = Vertex{0, 0}, Vertex{0, 8}, Vertex{8, 0}

	argsHetero := newArgs(8, 8, 4, 0)
	argsHetero.V1, argsHetero.V2, argsHetero.V3 = argsUniform.V1, argsUniform.V2, argsUniform.V3
	tile := argsHetero.Stencil.TileIndex(0, 0)
	argsHetero.Stencil.Materialize(tile)
	for i := range argsHetero.Stencil.Block(tile) {
		argsHetero.Stencil.Block(tile)[i] = 4
	}

	threadUniform := newThread(0, 1, 4)
	BinNormal(argsUniform, threadUniform)

	threadHetero := newThread(0, 1, 4)
	BinNormal(argsHetero, threadHetero)

	require.Equal(t, coveredPixels(threadUniform, 8, 8), coveredPixels(threadHetero, 8, 8))
}

func TestStencilWriteRoundTripCollapsesToUniform(t *testing.T) {
	args := newArgs(8, 8, 9, 9)
	args.Stencil = stencil.New(8, 8, 9)
	args.V1, args.V2, args.V3 = Vertex{0, 0}, Vertex{0, 8}, Vertex{8, 0}

	thread := newThread(0, 1, 4)
	BinNormal(args, thread)
	require.Equal(t, 1, thread.NumPartialBlocks)

	StencilWrite(args, thread)

	tile := args.Stencil.TileIndex(0, 0)
	require.True(t, args.Stencil.IsUniform(tile))
	require.Equal(t, uint8(9), args.Stencil.UniformValue(tile))
}

func TestStencilWritePreservesHeterogeneityWhenNotFullyWritten(t *testing.T) {
	args := newArgs(8, 8, 1, 9)
	args.Stencil = stencil.New(8, 8, 1)
	args.V1, args.V2, args.V3 = Vertex{0, 0}, Vertex{0, 4}, Vertex{4, 0}

	thread := newThread(0, 1, 4)
	BinNormal(args, thread)
	require.Equal(t, 1, thread.NumPartialBlocks)

	StencilWrite(args, thread)

	tile := args.Stencil.TileIndex(0, 0)
	require.False(t, args.Stencil.IsUniform(tile))
	require.Equal(t, uint8(9), args.Stencil.Block(tile)[0])
	require.Equal(t, uint8(1), args.Stencil.Block(tile)[7])
}

func TestPartialBlockNeverSetsBitsOutsideClip(t *testing.T) {
	args := newArgs(5, 5, 0, 0)
	args.V1, args.V2, args.V3 = Vertex{0, 0}, Vertex{0, 8}, Vertex{8, 0}

	thread := newThread(0, 1, 4)
	BinNormal(args, thread)

	for i := 0; i < thread.NumPartialBlocks; i++ {
		b := thread.PartialBlocks[i]
		mask0, mask1 := b.Mask0, b.Mask1
		for row := 0; row < 4; row++ {
			for col := 0; col < TileSize; col++ {
				bitSet := mask0&(1<<31) != 0
				mask0 <<= 1
				if bitSet {
					require.Less(t, b.X+col, 5)
					require.Less(t, b.Y+row, 5)
				}
			}
		}
		for row := 4; row < TileSize; row++ {
			for col := 0; col < TileSize; col++ {
				bitSet := mask1&(1<<31) != 0
				mask1 <<= 1
				if bitSet {
					require.Less(t, b.X+col, 5)
					require.Less(t, b.Y+row, 5)
				}
			}
		}
	}
}

func TestMaskBitOrder(t *testing.T) {
	args := newArgs(8, 8, 0, 0)
	// A triangle covering only the top-left pixel of an otherwise
	// partial tile lets us pin down bit 31 of Mask0 unambiguously, and a
	// triangle covering the whole tile except the bottom-right pixel
	// pins down bit 0 of Mask1.
	args.V1, args.V2, args.V3 = Vertex{0, 0}, Vertex{0, 1}, Vertex{1, 0}
	thread := newThread(0, 1, 4)
	BinNormal(args, thread)
	require.Equal(t, 1, thread.NumPartialBlocks)
	require.Equal(t, uint32(1)<<31, thread.PartialBlocks[0].Mask0)
	require.Equal(t, uint32(0), thread.PartialBlocks[0].Mask1)
}
