package sched

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ghetty3d/polycore/internal/drawers"
	"github.com/ghetty3d/polycore/internal/framebuffer"
	"github.com/ghetty3d/polycore/internal/raster"
	"github.com/ghetty3d/polycore/internal/stencil"
	"github.com/ghetty3d/polycore/internal/subsector"
)

func screenFillingArgs(clip int) *raster.TriangleArgs {
	return &raster.TriangleArgs{
		V1:         raster.Vertex{0, 0},
		V2:         raster.Vertex{0, float32(2 * clip)},
		V3:         raster.Vertex{float32(2 * clip), 0},
		ClipRight:  clip,
		ClipBottom: clip,
		Stencil:    stencil.New(clip, clip, 0),
		Subsector:  subsector.New(clip, clip, 0),
		Dest:       framebuffer.New(framebuffer.RGBA32, clip, clip),
		Pitch:      clip,
	}
}

// TestScreenFillingTriangleThroughScheduler runs a screen-filling triangle
// end to end: Bin, a real Fill32 Copy drawer, and the Stencil Writer, fanned
// across a multi-worker pool.
func TestScreenFillingTriangleThroughScheduler(t *testing.T) {
	args := screenFillingArgs(100)
	s := New(4, 256)

	shade := &drawers.DrawArgs{SolidColor: drawers.Color{R: 255, G: 255, B: 255, A: 255}}
	s.Draw(args, NormalVariant, drawers.Fill32[drawers.Copy], shade)

	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			r, g, b, a := args.Dest.RGBA(x, y)
			require.Equal(t, [4]byte{255, 255, 255, 255}, [4]byte{r, g, b, a}, "pixel (%d,%d) not drawn", x, y)
		}
	}
}

func TestDrawResultIndependentOfWorkerCount(t *testing.T) {
	var reference [][4]byte

	for _, workers := range []int{1, 2, 3, 8} {
		args := screenFillingArgs(97)
		s := New(workers, 256)
		shade := &drawers.DrawArgs{SolidColor: drawers.Color{R: 7, G: 8, B: 9, A: 255}}
		s.Draw(args, NormalVariant, drawers.Fill32[drawers.Copy], shade)

		flat := make([][4]byte, 0, 97*97)
		for y := 0; y < 97; y++ {
			for x := 0; x < 97; x++ {
				r, g, b, a := args.Dest.RGBA(x, y)
				flat = append(flat, [4]byte{r, g, b, a})
			}
		}

		if reference == nil {
			reference = flat
		} else {
			require.Equal(t, reference, flat, "workers=%d diverged", workers)
		}
	}
}

func TestDrawWithoutDrawerStillRunsWriter(t *testing.T) {
	args := screenFillingArgs(16)
	args.StencilWriteValue = 9
	s := New(2, 16)

	s.Draw(args, NormalVariant, nil, nil)

	tile := args.Stencil.TileIndex(0, 0)
	require.True(t, args.Stencil.IsUniform(tile))
	require.Equal(t, uint8(9), args.Stencil.UniformValue(tile))
}
