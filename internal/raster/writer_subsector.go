package raster

// SubsectorWrite implements the Subsector Writer: full spans stamp
// subsectorDepth across their whole rectangle, partial blocks stamp it
// only where the coverage mask bit is set.
func SubsectorWrite(args *TriangleArgs, thread *WorkerThread) {
	buf := args.Subsector
	depth := args.Uniforms.SubsectorDepth

	for i := 0; i < thread.NumFullSpans; i++ {
		span := thread.FullSpans[i]
		width := span.Length * TileSize
		for row := 0; row < TileSize; row++ {
			for col := 0; col < width; col++ {
				buf.Set(span.X+col, span.Y+row, depth)
			}
		}
	}

	for i := 0; i < thread.NumPartialBlocks; i++ {
		block := thread.PartialBlocks[i]
		mask0, mask1 := block.Mask0, block.Mask1

		for row := 0; row < 4; row++ {
			for col := 0; col < TileSize; col++ {
				if mask0&(1<<31) != 0 {
					buf.Set(block.X+col, block.Y+row, depth)
				}
				mask0 <<= 1
			}
		}
		for row := 4; row < TileSize; row++ {
			for col := 0; col < TileSize; col++ {
				if mask1&(1<<31) != 0 {
					buf.Set(block.X+col, block.Y+row, depth)
				}
				mask1 <<= 1
			}
		}
	}
}
