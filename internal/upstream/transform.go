// Package upstream is the "what feeds the coverage core" stage:
// model/view/projection transform, six-plane homogeneous clipping,
// back-face culling and fan triangulation. None of it is part of the
// coverage core's own correctness contract; triangle setup, clipping and
// culling are out of scope for internal/raster. It exists so the demo
// command has triangles to feed that core.
//
// Matrix math uses github.com/go-gl/mathgl's mgl32, replacing the
// hand-rolled slice-of-slice Matrix (matrix.go) used for this stage, since
// a battle-tested linear algebra library is the better fit for a
// production upstream than a manual nested-loop multiply.
package upstream

import "github.com/go-gl/mathgl/mgl32"

// Camera describes the viewer the View matrix is built from.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
}

// ViewMatrix builds a right-handed look-at view matrix.
func (c Camera) ViewMatrix() mgl32.Mat4 {
	up := c.Up
	if up == (mgl32.Vec3{}) {
		up = mgl32.Vec3{0, 1, 0}
	}
	return mgl32.LookAtV(c.Position, c.Target, up)
}

// ProjectionMatrix builds a perspective projection matrix, fovDegrees
// matching polygon_core.go's `fov` field (fov = 165).
func ProjectionMatrix(fovDegrees, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far)
}

// ModelMatrix builds a translate * rotate(XYZ degrees) model matrix.
func ModelMatrix(position mgl32.Vec3, rotationDegrees mgl32.Vec3) mgl32.Mat4 {
	rot := mgl32.AnglesToQuat(
		mgl32.DegToRad(rotationDegrees[0]),
		mgl32.DegToRad(rotationDegrees[1]),
		mgl32.DegToRad(rotationDegrees[2]),
		mgl32.XYZ,
	)
	return mgl32.Translate3D(position[0], position[1], position[2]).Mul4(rot.Mat4())
}

// MVP combines Model, View and Projection in the standard clip = P*V*M*pos
// multiplication order.
func MVP(model, view, projection mgl32.Mat4) mgl32.Mat4 {
	return projection.Mul4(view).Mul4(model)
}
