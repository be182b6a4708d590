package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Chunk is a flat, uncompressed CHUNK_SIZE^3 block grid as received over
// the network wire protocol (pkg/network) or produced by the demo world
// generator in cmd/voxels. It predates the chunked/compressed Object
// representation and is kept as the bridge between that wire format and
// the renderer's greedy mesher: chunks received over the network are
// stored as Chunks by ChunkManager and meshed directly; no Object is
// involved on that path (mesh synthesis is out of scope for the core,
// see SPEC_FULL section 1).
type Chunk struct {
	// Position in chunk coordinates (not world coordinates)
	X, Y, Z int32
	// Size of the chunk in each dimension
	Size int
	// Voxel data
	Blocks []BlockType
	// Mesh of the chunk for rendering
	Mesh *Mesh
}

// NewChunk creates a new streamed chunk at the specified coordinates.
func NewChunk(x, y, z int32, size int) *Chunk {
	blockCount := size * size * size
	return &Chunk{
		X:      x,
		Y:      y,
		Z:      z,
		Size:   size,
		Blocks: make([]BlockType, blockCount),
	}
}

// NewChunkFromBlocks creates a new streamed chunk from existing block data.
func NewChunkFromBlocks(x, y, z int32, size int, blocks []BlockType) *Chunk {
	return &Chunk{
		X:      x,
		Y:      y,
		Z:      z,
		Size:   size,
		Blocks: blocks,
	}
}

// FillWithBlockType fills the entire chunk with a single block type.
func (c *Chunk) FillWithBlockType(blockType BlockType) {
	for i := range c.Blocks {
		c.Blocks[i] = blockType
	}
}

// GetBlock returns the block type at the specified local coordinates.
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if x < 0 || y < 0 || z < 0 || x >= c.Size || y >= c.Size || z >= c.Size {
		return Air
	}
	index := x*c.Size*c.Size + y*c.Size + z
	return c.Blocks[index]
}

// SetBlock sets the block type at the specified local coordinates.
func (c *Chunk) SetBlock(x, y, z int, blockType BlockType) {
	if x < 0 || y < 0 || z < 0 || x >= c.Size || y >= c.Size || z >= c.Size {
		return
	}
	index := x*c.Size*c.Size + y*c.Size + z
	c.Blocks[index] = blockType
}

// WorldPosition returns the world position of this chunk (corner).
func (c *Chunk) WorldPosition() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.X * int32(c.Size)),
		float32(c.Y * int32(c.Size)),
		float32(c.Z * int32(c.Size)),
	}
}

// MonoChunkMesh generates the mesh for a chunk known to be filled
// entirely with a single block type. It builds the 3D grid straight from
// blockType instead of reading c.Blocks, then greedy-meshes it as
// GenerateMesh does.
func MonoChunkMesh(c *Chunk, blockType BlockType) *Mesh {
	blocks3D := make([][][]BlockType, c.Size)
	for x := 0; x < c.Size; x++ {
		blocks3D[x] = make([][]BlockType, c.Size)
		for y := 0; y < c.Size; y++ {
			blocks3D[x][y] = make([]BlockType, c.Size)
			for z := 0; z < c.Size; z++ {
				blocks3D[x][y][z] = blockType
			}
		}
	}
	return GreedyMeshChunk(blocks3D, c.WorldPosition())
}

// GenerateMesh creates a mesh for this chunk using greedy meshing.
func (c *Chunk) GenerateMesh() *Mesh {
	blocks3D := convertNetworkBlocksTo3DArray(c.Blocks, c.Size, c.Size, c.Size)
	c.Mesh = GreedyMeshChunk(blocks3D, c.WorldPosition())
	return c.Mesh
}

// GeneratePackedMesh creates a mesh with packed vertices for this chunk.
func (c *Chunk) GeneratePackedMesh() *Mesh {
	blocks3D := convertNetworkBlocksTo3DArray(c.Blocks, c.Size, c.Size, c.Size)
	c.Mesh = GreedyMeshChunk(blocks3D, c.WorldPosition())
	return c.Mesh
}

// GetPackedVertexCount returns the number of packed vertices in the mesh.
func (c *Chunk) GetPackedVertexCount() int {
	if c.Mesh == nil {
		return 0
	}
	return len(c.Mesh.PackedVertices)
}

// GetPackedVertices returns the packed vertices for rendering.
func (c *Chunk) GetPackedVertices() []uint32 {
	if c.Mesh == nil {
		return nil
	}
	return c.Mesh.PackedVertices
}

// ForEachNeighbor calls the given function for each neighboring chunk position.
func (c *Chunk) ForEachNeighbor(fn func(x, y, z int32)) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				fn(c.X+int32(dx), c.Y+int32(dy), c.Z+int32(dz))
			}
		}
	}
}

func convertNetworkBlocksTo3DArray(flatBlocks []BlockType, sizeX, sizeY, sizeZ int) [][][]BlockType {
	blocks := make([][][]BlockType, sizeX)
	for x := 0; x < sizeX; x++ {
		blocks[x] = make([][]BlockType, sizeY)
		for y := 0; y < sizeY; y++ {
			blocks[x][y] = make([]BlockType, sizeZ)
			for z := 0; z < sizeZ; z++ {
				index := x*sizeY*sizeZ + y*sizeZ + z
				if index < len(flatBlocks) {
					blocks[x][y][z] = BlockType(flatBlocks[index])
				} else {
					blocks[x][y][z] = Air
				}
			}
		}
	}
	return blocks
}
