package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func Ceil(x float32) float32 {
	return float32(math.Ceil(float64(x)))
}

func Floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func EucledianDistance3D(one, two mgl32.Vec3) float32 {
	return one.Sub(two).Len()
}

// PlanarDistance measures distance projected onto the XZ plane, the metric
// the spatial index buckets by.
func PlanarDistance(one, two mgl32.Vec3) float32 {
	dx := one.X() - two.X()
	dz := one.Z() - two.Z()
	return Sqrt(dx*dx + dz*dz)
}
