package drawers

import (
	"github.com/ghetty3d/polycore/internal/framebuffer"
	"github.com/ghetty3d/polycore/internal/raster"
)

// BlendMode indexes the four dispatch tables, in the exact slot order
// `screen_triangle.cpp` lines 738-821 initialize TriDraw8/TriFill8/
// TriDraw32/TriFill32 in.
type BlendMode int

const (
	Copy BlendMode = iota
	AlphaBlend
	AddSolid
	Add
	Sub
	RevSub
	Stencil
	Shaded
	TranslateCopy
	TranslateAlphaBlend
	TranslateAdd
	TranslateSub
	TranslateRevSub
	AddSrcColorOneMinusSrcColor
	Skycap

	numBlendModes
)

// DrawArgs is the per-triangle input a DrawFunc needs: the coverage core's
// emitted spans/blocks (via Thread), the destination buffer, and the
// uniform shading inputs a non-perspective-correct drawer samples once per
// triangle rather than once per pixel.
type DrawArgs struct {
	Dest   *framebuffer.Buffer
	Thread *raster.WorkerThread

	SolidColor  Color
	Texture     *Texture
	Translation *TranslationTable
	U, V        float32
	Light       uint8
}

// DrawFunc walks one worker thread's emitted spans and partial blocks,
// blending sampled source color against the destination buffer for every
// covered pixel. The coverage mask format (MSB-first, Mask0 rows 0-3,
// Mask1 rows 4-7) is honored exactly as the core itself packs it.
type DrawFunc func(args *DrawArgs)

var (
	Draw8  [numBlendModes]DrawFunc
	Fill8  [numBlendModes]DrawFunc
	Draw32 [numBlendModes]DrawFunc
	Fill32 [numBlendModes]DrawFunc
)

func init() {
	type slot struct {
		mode        BlendMode
		blend       blendFunc
		drawSampler sampler
		fillSampler sampler
	}

	slots := []slot{
		{Copy, opaqueBlend, textureSampler, fillSampler},
		{AlphaBlend, maskedBlend, textureSampler, fillSampler},
		{AddSolid, addClampBlend, textureSampler, fillSampler},
		{Add, addClampBlend, textureSampler, fillSampler},
		{Sub, subClampBlend, textureSampler, fillSampler},
		{RevSub, revSubClampBlend, textureSampler, fillSampler},
		{Stencil, shadedBlend, shadedSampler, shadedSampler},
		{Shaded, shadedBlend, shadedSampler, shadedSampler},
		{TranslateCopy, opaqueBlend, translatedSampler, fillSampler},
		{TranslateAlphaBlend, maskedBlend, translatedSampler, fillSampler},
		{TranslateAdd, addClampBlend, translatedSampler, fillSampler},
		{TranslateSub, subClampBlend, translatedSampler, fillSampler},
		{TranslateRevSub, revSubClampBlend, translatedSampler, fillSampler},
		{AddSrcColorOneMinusSrcColor, addSrcColorBlend, textureSampler, fillSampler},
		{Skycap, opaqueBlend, skycapSampler, fillSampler},
	}

	for _, s := range slots {
		Draw8[s.mode] = makeDraw8(s.blend, s.drawSampler)
		Fill8[s.mode] = makeDraw8(s.blend, s.fillSampler)
		Draw32[s.mode] = makeDraw32(s.blend, s.drawSampler)
		Fill32[s.mode] = makeDraw32(s.blend, s.fillSampler)
	}
}
