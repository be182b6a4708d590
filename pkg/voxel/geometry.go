package voxel

import "github.com/go-gl/mathgl/mgl32"

// ComputeAABB returns an axis-aligned box containing every non-empty
// voxel, in the object's local space. The box is rounded out to whole
// occupied chunks (OccupiedVoxelRanges), so it is not tight.
func (o *Object) ComputeAABB() (min, max mgl32.Vec3) {
	r := o.OccupiedVoxelRanges()
	ext := float32(o.voxelExtent)
	min = mgl32.Vec3{float32(r[0][0]) * ext, float32(r[1][0]) * ext, float32(r[2][0]) * ext}
	max = mgl32.Vec3{float32(r[0][1]) * ext, float32(r[1][1]) * ext, float32(r[2][1]) * ext}
	return
}

// ComputeBoundingSphere returns the sphere circumscribing ComputeAABB,
// which is cheap and conservative rather than minimal.
func (o *Object) ComputeBoundingSphere() (center mgl32.Vec3, radius float32) {
	min, max := o.ComputeAABB()
	center = min.Add(max).Mul(0.5)
	radius = max.Sub(center).Len()
	return
}
