package drawers

import "github.com/ghetty3d/polycore/internal/raster"

// makeDraw8 and makeDraw32 are the Go analogs of the original's
// TriScreenDrawer8<Blend, Sampler>::Execute / TriScreenDrawer32<...>::Execute
// templates: one generic pixel loop per destination bit depth, parameterized
// by blend function and sampler. Kept as two near-duplicate walkers rather
// than one abstracted over pixel format, matching the original's own
// template duplication rather than introducing an interface indirection the
// source never had.

func makeDraw8(blend blendFunc, sample sampler) DrawFunc {
	return func(args *DrawArgs) {
		walkSpans(args, func(x, y int) {
			src := sample(args, x, y)
			dst := Color{R: args.Dest.Paletted(x, y)}
			out := blend(dst, src)
			args.Dest.SetPaletted(x, y, out.R)
		})
	}
}

func makeDraw32(blend blendFunc, sample sampler) DrawFunc {
	return func(args *DrawArgs) {
		walkSpans(args, func(x, y int) {
			src := sample(args, x, y)
			r, g, b, a := args.Dest.RGBA(x, y)
			dst := Color{R: r, G: g, B: b, A: a}
			out := blend(dst, src)
			args.Dest.SetRGBA(x, y, out.R, out.G, out.B, out.A)
		})
	}
}

// walkSpans drives plot over every pixel the coverage core marked covered:
// full spans unconditionally, partial blocks gated by their MSB-first mask.
func walkSpans(args *DrawArgs, plot func(x, y int)) {
	thread := args.Thread

	for i := 0; i < thread.NumFullSpans; i++ {
		span := thread.FullSpans[i]
		width := span.Length * raster.TileSize
		for row := 0; row < raster.TileSize; row++ {
			for col := 0; col < width; col++ {
				plot(span.X+col, span.Y+row)
			}
		}
	}

	for i := 0; i < thread.NumPartialBlocks; i++ {
		block := thread.PartialBlocks[i]
		mask0, mask1 := block.Mask0, block.Mask1

		for row := 0; row < 4; row++ {
			for col := 0; col < raster.TileSize; col++ {
				if mask0&(1<<31) != 0 {
					plot(block.X+col, block.Y+row)
				}
				mask0 <<= 1
			}
		}
		for row := 4; row < raster.TileSize; row++ {
			for col := 0; col < raster.TileSize; col++ {
				if mask1&(1<<31) != 0 {
					plot(block.X+col, block.Y+row)
				}
				mask1 <<= 1
			}
		}
	}
}
