package raster

// BinNormal implements the Normal Tile Binner: stencil equality test,
// whole-tile accept, per-pixel partial coverage otherwise, and
// span-coalescing emission. It is pixel-exact with
// `ScreenTriangle::SetupNormal` in the original source.
func BinNormal(args *TriangleArgs, thread *WorkerThread) {
	e := setupEdges(args.V1, args.V2, args.V3, args.ClipRight, args.ClipBottom)

	thread.Reset()
	startY, stepY, ok := prepareBinning(e, thread.Core, thread.NumCores)
	if !ok {
		return
	}
	thread.StartX, thread.StartY = e.MinX, startY

	spans := newSpanCursor(thread.FullSpans)
	partials := newPartialCursor(thread.PartialBlocks)

	for y := startY; y < e.MaxY; y += stepY {
		for x := e.MinX; x < e.MaxX; x += TileSize {
			x0, x1 := x<<4, (x+TileSize-1)<<4
			y0, y1 := y<<4, (y+TileSize-1)<<4

			a := cornerBits(e.C1, e.DX12, e.DY12, x0, x1, y0, y1)
			b := cornerBits(e.C2, e.DX23, e.DY23, x0, x1, y0, y1)
			c := cornerBits(e.C3, e.DX31, e.DY31, x0, x1, y0, y1)

			tile := args.Stencil.TileIndex(x, y)
			blockIsUniform := args.Stencil.IsUniform(tile)
			var uniformValue uint8
			if blockIsUniform {
				uniformValue = args.Stencil.UniformValue(tile)
			}
			skipBlock := blockIsUniform && uniformValue != args.StencilTestValue

			if a == 0 || b == 0 || c == 0 || skipBlock {
				spans.finalize()
				continue
			}

			if a == 0xF && b == 0xF && c == 0xF && x+TileSize <= args.ClipRight && y+TileSize <= args.ClipBottom && blockIsUniform {
				spans.grow(x, y)
				continue
			}

			mask0, mask1 := partialMaskNormal(e, args, x, y, tile, blockIsUniform, uniformValue)

			if mask0 != 0xFFFFFFFF || mask1 != 0xFFFFFFFF {
				spans.finalize()
				if mask0 == 0 && mask1 == 0 {
					continue
				}
				partials.emit(x, y, mask0, mask1)
			} else {
				spans.grow(x, y)
			}
		}
		spans.finalize()
	}

	thread.NumFullSpans = spans.count()
	thread.NumPartialBlocks = partials.count()
}

// partialMaskNormal evaluates the 64 pixels of one tile against the three
// edge functions, the clip rectangle and the Normal variant's equality
// stencil test, MSB-first packing rows 0..3 into mask0 and rows 4..7 into
// mask1.
func partialMaskNormal(e edges, args *TriangleArgs, x, y, tile int, blockIsUniform bool, uniformValue uint8) (mask0, mask1 uint32) {
	x0 := x << 4
	y0 := y << 4
	cy1 := e.C1 + e.DX12*y0 - e.DY12*x0
	cy2 := e.C2 + e.DX23*y0 - e.DY23*x0
	cy3 := e.C3 + e.DX31*y0 - e.DY31*x0

	var block []byte
	if !blockIsUniform {
		block = args.Stencil.Block(tile)
	}

	for iy := 0; iy < 4; iy++ {
		cx1, cx2, cx3 := cy1, cy2, cy3
		for ix := 0; ix < TileSize; ix++ {
			passStencil := blockIsUniform || block[ix+iy*TileSize] == args.StencilTestValue
			covered := cx1 > 0 && cx2 > 0 && cx3 > 0 && x+ix < args.ClipRight && y+iy < args.ClipBottom && passStencil
			mask0 <<= 1
			if covered {
				mask0 |= 1
			}
			cx1 -= e.FDY12
			cx2 -= e.FDY23
			cx3 -= e.FDY31
		}
		cy1 += e.FDX12
		cy2 += e.FDX23
		cy3 += e.FDX31
	}

	for iy := 4; iy < TileSize; iy++ {
		cx1, cx2, cx3 := cy1, cy2, cy3
		for ix := 0; ix < TileSize; ix++ {
			passStencil := blockIsUniform || block[ix+iy*TileSize] == args.StencilTestValue
			covered := cx1 > 0 && cx2 > 0 && cx3 > 0 && x+ix < args.ClipRight && y+iy < args.ClipBottom && passStencil
			mask1 <<= 1
			if covered {
				mask1 |= 1
			}
			cx1 -= e.FDY12
			cx2 -= e.FDY23
			cx3 -= e.FDY31
		}
		cy1 += e.FDX12
		cy2 += e.FDX23
		cy3 += e.FDX31
	}

	return mask0, mask1
}
