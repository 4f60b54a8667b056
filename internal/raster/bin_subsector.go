package raster

// BinSubsector implements the Subsector Tile Binner: a "stencil depth"
// (>=) test in place of the Normal variant's equality test, and a
// per-pixel subsector-depth re-examination even of geometrically
// fully-covered tiles. Pixel-exact with `ScreenTriangle::SetupSubsector`.
func BinSubsector(args *TriangleArgs, thread *WorkerThread) {
	e := setupEdges(args.V1, args.V2, args.V3, args.ClipRight, args.ClipBottom)

	thread.Reset()
	startY, stepY, ok := prepareBinning(e, thread.Core, thread.NumCores)
	if !ok {
		return
	}
	thread.StartX, thread.StartY = e.MinX, startY

	spans := newSpanCursor(thread.FullSpans)
	partials := newPartialCursor(thread.PartialBlocks)
	depth := args.Uniforms.SubsectorDepth

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
			skipBlock := blockIsUniform && uniformValue < args.StencilTestValue

			if a == 0 || b == 0 || c == 0 || skipBlock {
				spans.finalize()
				continue
			}

			var mask0, mask1 uint32
			if a == 0xF && b == 0xF && c == 0xF && x+TileSize <= args.ClipRight && y+TileSize <= args.ClipBottom && blockIsUniform {
				mask0, mask1 = subsectorOnlyMask(args, x, y, depth)
			} else {
				mask0, mask1 = partialMaskSubsector(e, args, x, y, tile, blockIsUniform, uniformValue, depth)
			}

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

// subsectorOnlyMask re-examines a geometrically fully-covered, stencil-passing
// tile against the subsector buffer alone.
func subsectorOnlyMask(args *TriangleArgs, x, y int, depth uint32) (mask0, mask1 uint32) {
	sub := args.Subsector
	for iy := 0; iy < 4; iy++ {
		for ix := 0; ix < TileSize; ix++ {
			mask0 <<= 1
			if sub.Passes(x+ix, y+iy, depth) {
				mask0 |= 1
			}
		}
	}
	for iy := 4; iy < TileSize; iy++ {
		for ix := 0; ix < TileSize; ix++ {
			mask1 <<= 1
			if sub.Passes(x+ix, y+iy, depth) {
				mask1 |= 1
			}
		}
	}
	return
}

// partialMaskSubsector evaluates the three edge functions, the clip
// rectangle, the >= stencil test and the subsector test together, ANDing
// the subsector test into the per-pixel decision.
func partialMaskSubsector(e edges, args *TriangleArgs, x, y, tile int, blockIsUniform bool, uniformValue uint8, depth uint32) (mask0, mask1 uint32) {
	x0 := x << 4
	y0 := y << 4
	cy1 := e.C1 + e.DX12*y0 - e.DY12*x0
	cy2 := e.C2 + e.DX23*y0 - e.DY23*x0
	cy3 := e.C3 + e.DX31*y0 - e.DY31*x0

	var block []byte
	if !blockIsUniform {
		block = args.Stencil.Block(tile)
	}
	sub := args.Subsector

	for iy := 0; iy < 4; iy++ {
		cx1, cx2, cx3 := cy1, cy2, cy3
		for ix := 0; ix < TileSize; ix++ {
			passStencil := blockIsUniform || block[ix+iy*TileSize] >= args.StencilTestValue
			covered := cx1 > 0 && cx2 > 0 && cx3 > 0 && x+ix < args.ClipRight && y+iy < args.ClipBottom && passStencil && sub.Passes(x+ix, y+iy, depth)
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
			passStencil := blockIsUniform || block[ix+iy*TileSize] >= args.StencilTestValue
			covered := cx1 > 0 && cx2 > 0 && cx3 > 0 && x+ix < args.ClipRight && y+iy < args.ClipBottom && passStencil && sub.Passes(x+ix, y+iy, depth)
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
