package drawers

import "github.com/chewxy/math32"

// Texture is a flat RGBA image sampled by nearest-neighbor lookup, grounded
// in texture.go's Buffer shape (width/height plus a flat pixel slice)
// rather than its float32 channel buffers, since the drawers here work in
// 8-bit-per-channel Color throughout.
type Texture struct {
	Width, Height int
	Pixels        []Color
}

func (t *Texture) at(x, y int) Color {
	if t == nil || len(t.Pixels) == 0 {
		return Color{}
	}
	if x < 0 {
		x = 0
	} else if x >= t.Width {
		x = t.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pixels[y*t.Width+x]
}

// Sample does nearest-neighbor lookup at normalized coordinates in [0,1].
func (t *Texture) Sample(u, v float32) Color {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return Color{}
	}
	x := int(math32.Round(u * float32(t.Width-1)))
	y := int(math32.Round(v * float32(t.Height-1)))
	return t.at(x, y)
}

// TranslationTable remaps a sampled color's channels, standing in for the
// original engine's palette-index translation tables now that colors are
// full RGBA rather than palette indices.
type TranslationTable [256]uint8

func (tt *TranslationTable) apply(c Color) Color {
	if tt == nil {
		return c
	}
	return Color{R: tt[c.R], G: tt[c.G], B: tt[c.B], A: c.A}
}

// sampler produces the source color for one pixel. Every sampler in this
// module ignores (x, y) except skycapSampler, which is the one mode that
// samples by screen position rather than a uniform per-triangle value,
// matching the original engine's sky texture wrapping by view angle, here
// approximated by normalized screen Y.
type sampler func(args *DrawArgs, x, y int) Color

func textureSampler(args *DrawArgs, _, _ int) Color {
	return args.Texture.Sample(args.U, args.V)
}

func fillSampler(args *DrawArgs, _, _ int) Color {
	return args.SolidColor
}

func translatedSampler(args *DrawArgs, _, _ int) Color {
	return args.Translation.apply(args.Texture.Sample(args.U, args.V))
}

// shadedSampler produces a flat tint whose alpha is the triangle's uniform
// light value, used by the Stencil and Shaded slots (fuzz/translucent
// stencil effects in the original, where color itself is secondary to the
// amount of destination that shows through).
func shadedSampler(args *DrawArgs, _, _ int) Color {
	return Color{R: args.SolidColor.R, G: args.SolidColor.G, B: args.SolidColor.B, A: args.Light}
}

// skycapSampler ignores the triangle's uniform UV and instead samples the
// sky texture vertically by normalized screen position, the one sampler
// that is legitimately screen-position-dependent rather than per-triangle
// uniform.
func skycapSampler(args *DrawArgs, _, y int) Color {
	if args.Dest == nil || args.Dest.Height <= 1 {
		return args.Texture.Sample(args.U, 0)
	}
	v := float32(y) / float32(args.Dest.Height-1)
	return args.Texture.Sample(args.U, v)
}
