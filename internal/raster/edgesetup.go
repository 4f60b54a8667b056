package raster

import "github.com/ghetty3d/polycore/internal/fixed"

// edges holds everything the Tile Binner needs after Edge Setup has run:
// the 28.4 fixed-point half-space function coefficients, their per-pixel
// step deltas, and the tile-snapped, clip-clamped bounding box. Nothing in
// it depends on worker identity; each BinNormal/BinSubsector call recomputes
// it, so every worker runs Edge Setup for itself.
type edges struct {
	X1, X2, X3 int
	Y1, Y2, Y3 int

	DX12, DX23, DX31 int
	DY12, DY23, DY31 int

	FDX12, FDX23, FDX31 int
	FDY12, FDY23, FDY31 int

	C1, C2, C3 int

	MinX, MaxX, MinY, MaxY int

	Empty bool
}

// setupEdges runs Edge Setup: 28.4 conversion, deltas, fixed-step deltas,
// half-edge constants with the top-left fill-convention correction, and
// the tile-snapped bounding box.
func setupEdges(v1, v2, v3 Vertex, clipRight, clipBottom int) edges {
	p1, p2, p3 := fixed.ToFixed([2]float32{v1[0], v1[1]}, [2]float32{v2[0], v2[1]}, [2]float32{v3[0], v3[1]})

	var e edges
	e.X1, e.Y1 = int(p1.X), int(p1.Y)
	e.X2, e.Y2 = int(p2.X), int(p2.Y)
	e.X3, e.Y3 = int(p3.X), int(p3.Y)

	e.DX12 = e.X1 - e.X2
	e.DX23 = e.X2 - e.X3
	e.DX31 = e.X3 - e.X1

	e.DY12 = e.Y1 - e.Y2
	e.DY23 = e.Y2 - e.Y3
	e.DY31 = e.Y3 - e.Y1

	e.FDX12 = e.DX12 << 4
	e.FDX23 = e.DX23 << 4
	e.FDX31 = e.DX31 << 4

	e.FDY12 = e.DY12 << 4
	e.FDY23 = e.DY23 << 4
	e.FDY31 = e.DY31 << 4

	minx := max(ceilDiv16(min3(e.X1, e.X2, e.X3)), 0)
	maxx := min(ceilDiv16(max3(e.X1, e.X2, e.X3)), clipRight-1)
	miny := max(ceilDiv16(min3(e.Y1, e.Y2, e.Y3)), 0)
	maxy := min(ceilDiv16(max3(e.Y1, e.Y2, e.Y3)), clipBottom-1)

	if minx >= maxx || miny >= maxy {
		e.Empty = true
		return e
	}

	minx &^= TileSize - 1
	miny &^= TileSize - 1

	e.C1 = e.DY12*e.X1 - e.DX12*e.Y1
	e.C2 = e.DY23*e.X2 - e.DX23*e.Y2
	e.C3 = e.DY31*e.X3 - e.DX31*e.Y3

	if e.DY12 < 0 || (e.DY12 == 0 && e.DX12 > 0) {
		e.C1++
	}
	if e.DY23 < 0 || (e.DY23 == 0 && e.DX23 > 0) {
		e.C2++
	}
	if e.DY31 < 0 || (e.DY31 == 0 && e.DX31 > 0) {
		e.C3++
	}

	e.MinX, e.MaxX, e.MinY, e.MaxY = minx, maxx, miny, maxy
	return e
}

// ceilDiv16 converts a 28.4 fixed-point value back to whole pixels,
// rounding up.
func ceilDiv16(v int) int {
	return (v + 0xF) >> 4
}

func min3(a, b, c int) int {
	return min(a, min(b, c))
}

func max3(a, b, c int) int {
	return max(a, max(b, c))
}

// BoundingBoxTiles reports the tile-grid dimensions of a triangle's
// bounding box, letting a caller (internal/sched) size WorkerThread
// scratch to the worst case before binning runs. It returns zero values
// for a degenerate or fully clipped triangle.
func BoundingBoxTiles(args *TriangleArgs) (tilesX, tilesY int) {
	e := setupEdges(args.V1, args.V2, args.V3, args.ClipRight, args.ClipBottom)
	if e.Empty {
		return 0, 0
	}
	tilesX = (e.MaxX-e.MinX)/TileSize + 1
	tilesY = (e.MaxY-e.MinY)/TileSize + 1
	return
}
