package raster

// StencilWrite implements the Stencil Writer: full spans collapse their
// tiles straight to the uniform representation; partial blocks materialize
// a uniform tile first, then merge the new write value in under the "mask
// bit set OR already-equal" keep rule, re-collapsing to uniform if all 64
// pixels end up holding the write value.
func StencilWrite(args *TriangleArgs, thread *WorkerThread) {
	buf := args.Stencil
	writeValue := args.StencilWriteValue

	for i := 0; i < thread.NumFullSpans; i++ {
		span := thread.FullSpans[i]
		for t := 0; t < span.Length; t++ {
			tile := buf.TileIndex(span.X+t*TileSize, span.Y)
			buf.SetUniform(tile, writeValue)
		}
	}

	for i := 0; i < thread.NumPartialBlocks; i++ {
		block := thread.PartialBlocks[i]
		tile := buf.TileIndex(block.X, block.Y)

		buf.Materialize(tile)
		px := buf.Block(tile)

		mask0, mask1 := block.Mask0, block.Mask1
		count := 0
		for v := 0; v < 32; v++ {
			if mask0&(1<<31) != 0 || px[v] == writeValue {
				px[v] = writeValue
				count++
			}
			mask0 <<= 1
		}
		for v := 32; v < 64; v++ {
			if mask1&(1<<31) != 0 || px[v] == writeValue {
				px[v] = writeValue
				count++
			}
			mask1 <<= 1
		}

		if count == 64 {
			buf.SetUniform(tile, writeValue)
		}
	}
}
