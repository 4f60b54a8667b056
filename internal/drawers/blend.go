package drawers

// blendFunc combines a sampled source color with the existing destination
// color. Each is a direct analog of one `TriScreenDrawerModes` blend
// template in `screen_triangle.cpp`; kept as separate named functions (not
// folded into one parameterized one) because the original keeps them
// separate too, even where two slots end up pointing at the same one.
type blendFunc func(dst, src Color) Color

func opaqueBlend(_, src Color) Color {
	return src
}

// maskedBlend is screen_triangle.cpp's MaskedBlend: straight alpha compositing
// using the sampled source's alpha.
func maskedBlend(dst, src Color) Color {
	inv := 255 - src.A
	return Color{
		R: mulDiv255(src.R, src.A) + mulDiv255(dst.R, inv),
		G: mulDiv255(src.G, src.A) + mulDiv255(dst.G, inv),
		B: mulDiv255(src.B, src.A) + mulDiv255(dst.B, inv),
		A: 255,
	}
}

func addClampBlend(dst, src Color) Color {
	return Color{
		R: clamp8(int(dst.R) + int(mulDiv255(src.R, src.A))),
		G: clamp8(int(dst.G) + int(mulDiv255(src.G, src.A))),
		B: clamp8(int(dst.B) + int(mulDiv255(src.B, src.A))),
		A: 255,
	}
}

func subClampBlend(dst, src Color) Color {
	return Color{
		R: clamp8(int(dst.R) - int(mulDiv255(src.R, src.A))),
		G: clamp8(int(dst.G) - int(mulDiv255(src.G, src.A))),
		B: clamp8(int(dst.B) - int(mulDiv255(src.B, src.A))),
		A: 255,
	}
}

func revSubClampBlend(dst, src Color) Color {
	return Color{
		R: clamp8(int(mulDiv255(src.R, src.A)) - int(dst.R)),
		G: clamp8(int(mulDiv255(src.G, src.A)) - int(dst.G)),
		B: clamp8(int(mulDiv255(src.B, src.A)) - int(dst.B)),
		A: 255,
	}
}

// shadedBlend is screen_triangle.cpp's ShadedBlend, used by the Stencil and
// Shaded slots: the sampled color carries a light-scaled alpha in place of
// a texture's own alpha (see shadedSampler), composited the same way as
// maskedBlend but kept distinct to mirror the original's separate template.
func shadedBlend(dst, src Color) Color {
	return maskedBlend(dst, src)
}

// addSrcColorBlend is the "AddSrcColorOneMinusSrcColor" slot: equivalent to
// glBlendFunc(GL_ONE, GL_ONE_MINUS_SRC_COLOR) combined additively,
// i.e. dst' = src + dst*(1-src).
func addSrcColorBlend(dst, src Color) Color {
	return Color{
		R: clamp8(int(src.R) + int(mulDiv255(dst.R, 255-src.R))),
		G: clamp8(int(src.G) + int(mulDiv255(dst.G, 255-src.G))),
		B: clamp8(int(src.B) + int(mulDiv255(dst.B, 255-src.B))),
		A: 255,
	}
}
