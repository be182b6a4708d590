package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord represents the x,y,z coordinates of a chunk
type ChunkCoord struct {
	X, Y, Z int32
}

// WorldToChunkCoord converts a world position to chunk coordinates
func WorldToChunkCoord(worldX, worldY, worldZ int32, chunkSize int) ChunkCoord {
	// Floor division, so negative positions land in the chunk below zero
	// (matching WorldToLocalCoord's wrap of negative remainders)
	cs := int32(chunkSize)
	c := ChunkCoord{X: worldX / cs, Y: worldY / cs, Z: worldZ / cs}
	if worldX%cs < 0 {
		c.X--
	}
	if worldY%cs < 0 {
		c.Y--
	}
	if worldZ%cs < 0 {
		c.Z--
	}
	return c
}

// WorldToLocalCoord converts a world position to local coordinates within a chunk
func WorldToLocalCoord(worldX, worldY, worldZ int32, chunkSize int) (int, int, int) {
	// Get the remainder to find position within chunk
	localX := int(worldX) % chunkSize
	localY := int(worldY) % chunkSize
	localZ := int(worldZ) % chunkSize

	// Handle negative coordinates properly
	if localX < 0 {
		localX += chunkSize
	}
	if localY < 0 {
		localY += chunkSize
	}
	if localZ < 0 {
		localZ += chunkSize
	}

	return localX, localY, localZ
}

// ChunkToWorldPos converts chunk coordinates to world position (corner of chunk)
func ChunkToWorldPos(chunkX, chunkY, chunkZ int32, chunkSize int) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(chunkX * int32(chunkSize)),
		float32(chunkY * int32(chunkSize)),
		float32(chunkZ * int32(chunkSize)),
	}
}

// LocalToIndex converts local block coordinates to an index in a flat array
func LocalToIndex(x, y, z, chunkSize int) int {
	return x*chunkSize*chunkSize + y*chunkSize + z
}

// IndexToLocal converts a flat array index to local coordinates within a chunk
func IndexToLocal(index, chunkSize int) (x, y, z int) {
	x = index / (chunkSize * chunkSize)
	remainder := index % (chunkSize * chunkSize)
	y = remainder / chunkSize
	z = remainder % chunkSize
	return
}
