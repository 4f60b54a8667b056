package drawers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ghetty3d/polycore/internal/framebuffer"
	"github.com/ghetty3d/polycore/internal/raster"
)

func oneFullSpanThread(x, y, tiles int) *raster.WorkerThread {
	return &raster.WorkerThread{
		FullSpans:    []raster.FullSpan{{X: x, Y: y, Length: tiles}},
		NumFullSpans: 1,
	}
}

func TestAllSlotsArePopulatedInEveryTable(t *testing.T) {
	for i := BlendMode(0); i < numBlendModes; i++ {
		require.NotNil(t, Draw8[i], "Draw8[%d]", i)
		require.NotNil(t, Fill8[i], "Fill8[%d]", i)
		require.NotNil(t, Draw32[i], "Draw32[%d]", i)
		require.NotNil(t, Fill32[i], "Fill32[%d]", i)
	}
}

func TestCopyFillWritesSolidColorInto32BitBuffer(t *testing.T) {
	dest := framebuffer.New(framebuffer.RGBA32, 16, 16)
	args := &DrawArgs{
		Dest:       dest,
		Thread:     oneFullSpanThread(0, 0, 1),
		SolidColor: Color{R: 10, G: 20, B: 30, A: 255},
	}

	Fill32[Copy](args)

	r, g, b, a := dest.RGBA(3, 3)
	require.Equal(t, Color{10, 20, 30, 255}, Color{r, g, b, a})
	// A pixel outside the drawn tile must be untouched.
	r, g, b, a = dest.RGBA(9, 9)
	require.Equal(t, Color{0, 0, 0, 0}, Color{r, g, b, a})
}

func TestAddClampBlendSaturatesAt255(t *testing.T) {
	dest := framebuffer.New(framebuffer.RGBA32, 8, 8)
	dest.SetRGBA(0, 0, 200, 200, 200, 255)
	args := &DrawArgs{
		Dest:       dest,
		Thread:     oneFullSpanThread(0, 0, 1),
		SolidColor: Color{R: 200, G: 0, B: 0, A: 255},
	}

	Fill32[Add](args)

	r, _, _, _ := dest.RGBA(0, 0)
	require.Equal(t, uint8(255), r)
}

func TestShadedSlotUsesLightAsAlpha(t *testing.T) {
	dest := framebuffer.New(framebuffer.RGBA32, 8, 8)
	dest.SetRGBA(0, 0, 0, 0, 0, 255)
	args := &DrawArgs{
		Dest:       dest,
		Thread:     oneFullSpanThread(0, 0, 1),
		SolidColor: Color{R: 255, G: 255, B: 255, A: 255},
		Light:      0,
	}

	Fill32[Shaded](args)

	// Light 0 means fully transparent source: destination must be unchanged.
	r, g, b, _ := dest.RGBA(0, 0)
	require.Equal(t, Color{0, 0, 0, 0}, Color{r, g, b, 0})
}

func TestPalettedCopyWritesIntensityByte(t *testing.T) {
	dest := framebuffer.New(framebuffer.Paletted8, 8, 8)
	args := &DrawArgs{
		Dest:       dest,
		Thread:     oneFullSpanThread(0, 0, 1),
		SolidColor: Color{R: 42},
	}

	Fill8[Copy](args)

	require.Equal(t, byte(42), dest.Paletted(5, 5))
}

func TestSkycapSamplesByScreenYNotUniformV(t *testing.T) {
	tex := &Texture{Width: 1, Height: 4, Pixels: []Color{
		{R: 0}, {R: 85}, {R: 170}, {R: 255},
	}}
	dest := framebuffer.New(framebuffer.RGBA32, 8, 8)
	args := &DrawArgs{
		Dest:    dest,
		Thread:  oneFullSpanThread(0, 0, 1),
		Texture: tex,
		V:       0, // deliberately wrong: skycap must ignore this
	}

	Draw32[Skycap](args)

	topR, _, _, _ := dest.RGBA(0, 0)
	bottomR, _, _, _ := dest.RGBA(0, 7)
	require.Less(t, topR, bottomR)
}
