package upstream

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ghetty3d/polycore/internal/model"
	"github.com/ghetty3d/polycore/internal/raster"
)

// ScreenTriangle is one fully clipped, culled, screen-projected triangle
// ready to become a raster.TriangleArgs. UV carries the one texture
// coordinate per vertex the non-perspective-correct drawers may sample:
// drawers take a single uniform UV per triangle, so callers typically
// average these three rather than interpolate them.
type ScreenTriangle struct {
	V1, V2, V3    raster.Vertex
	UV1, UV2, UV3 mgl32.Vec2

	// W1, W2, W3 are the clip-space w components before perspective divide,
	// monotonic in distance from the camera for any standard perspective
	// projection matrix. Callers use these as a depth proxy for subsector
	// ownership; the coverage core itself never reads them.
	W1, W2, W3 float32
}

// ProjectMesh transforms every triangle in mesh by mvp, clips it against
// the six frustum planes, perspective-divides and maps to screen pixels,
// fan-triangulates any clip-widened polygon, and back-face culls, mirroring
// polygon_core.go's ComputedTriangle.clip pipeline end to end. Degenerate
// or fully-clipped input triangles simply contribute no output triangles.
func ProjectMesh(mesh model.Mesh, mvp mgl32.Mat4, screenWidth, screenHeight int) []ScreenTriangle {
	var out []ScreenTriangle

	for _, tri := range mesh {
		verts := make([]mgl32.Vec4, 3)
		uvs := make([]mgl32.Vec2, 3)
		for i := 0; i < 3; i++ {
			verts[i] = mvp.Mul4x1(tri.Positions[i].Vec4(1))
			uvs[i] = tri.UVs[i]
		}

		ClipSixPlanes(&verts, &uvs)
		if len(verts) < 3 {
			continue
		}

		screen := make([]raster.Vertex, len(verts))
		ws := make([]float32, len(verts))
		for i, v := range verts {
			invW := 1 / v[3]
			ndcX, ndcY := v[0]*invW, v[1]*invW
			screen[i] = raster.Vertex{
				(ndcX + 1) * float32(screenWidth) / 2,
				(-ndcY + 1) * float32(screenHeight) / 2,
			}
			ws[i] = v[3]
		}

		// Fan-triangulate the (possibly widened) polygon and back-face cull
		// each fan triangle exactly as ComputedTriangle.clip does: cross < 0
		// in screen space is front-facing, which is also the winding
		// internal/raster's half-space functions treat as positive-inside.
		for i := 0; i < len(screen)-2; i++ {
			v0, v1, v2 := screen[0], screen[i+1], screen[i+2]
			t1x, t1y := v1[0]-v0[0], v1[1]-v0[1]
			t2x, t2y := v2[0]-v0[0], v2[1]-v0[1]
			cross := t1x*t2y - t1y*t2x
			if cross >= 0 {
				continue
			}

			out = append(out, ScreenTriangle{
				V1: v0, V2: v1, V3: v2,
				UV1: uvs[0], UV2: uvs[i+1], UV3: uvs[i+2],
				W1: ws[0], W2: ws[i+1], W3: ws[i+2],
			})
		}
	}

	return out
}
