// Package fixed converts screen-space float32 coordinates into the 28.4
// fixed-point representation the coverage core operates on.
package fixed

import (
	"github.com/chewxy/math32"
	"github.com/klauspost/cpuid/v2"
)

// Q is the fractional bit count of the 28.4 format: one integer unit is 16
// fixed-point units.
const Q = 4
const Scale = 1 << Q

// packedCapable is decided once at process start: if the host has no
// usable SIMD rounding path we always take the scalar one.
var packedCapable = cpuid.CPU.Supports(cpuid.SSE2) || cpuid.CPU.Supports(cpuid.ASIMD)

// Vertex28_4 holds one vertex's X and Y already converted to 28.4
// fixed-point integers.
type Vertex28_4 struct {
	X, Y int32
}

// Round converts a single float32 screen coordinate component to 28.4
// fixed-point: round(16*v).
func Round(v float32) int32 {
	return int32(math32.Round(Scale * v))
}

// ToFixed converts three screen-space vertices to 28.4 fixed-point,
// choosing between the packed and scalar conversion paths. Both paths are
// required to produce bit-identical output (spec property, see
// internal/fixed/fixed_test.go); packed is a throughput optimization only.
func ToFixed(v1, v2, v3 [2]float32) (p1, p2, p3 Vertex28_4) {
	if packedCapable {
		return toFixedPacked(v1, v2, v3)
	}
	return toFixedScalar(v1, v2, v3)
}

func toFixedScalar(v1, v2, v3 [2]float32) (p1, p2, p3 Vertex28_4) {
	p1 = Vertex28_4{Round(v1[0]), Round(v1[1])}
	p2 = Vertex28_4{Round(v2[0]), Round(v2[1])}
	p3 = Vertex28_4{Round(v3[0]), Round(v3[1])}
	return
}

// toFixedPacked rounds all six components through one flat window instead
// of three separate calls, standing in for the original's
// _mm_cvtps_epi32(_mm_add_ps(_mm_mul_ps(v, 16), 0.5)) block: Go has no
// portable intrinsic surface for that instruction, so the "packed" path here
// is the same round-half-away-from-zero arithmetic applied over a flat
// window rather than three independent calls.
func toFixedPacked(v1, v2, v3 [2]float32) (p1, p2, p3 Vertex28_4) {
	var window [6]float32
	window[0], window[1] = v1[0], v1[1]
	window[2], window[3] = v2[0], v2[1]
	window[4], window[5] = v3[0], v3[1]

	var rounded [6]int32
	for i, c := range window {
		rounded[i] = int32(math32.Round(Scale * c))
	}

	p1 = Vertex28_4{rounded[0], rounded[1]}
	p2 = Vertex28_4{rounded[2], rounded[3]}
	p3 = Vertex28_4{rounded[4], rounded[5]}
	return
}
