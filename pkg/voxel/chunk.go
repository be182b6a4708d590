package voxel

// ChunkKind distinguishes the three representations a chunk may take.
type ChunkKind uint8

const (
	ChunkEmpty ChunkKind = iota
	ChunkUniform
	ChunkNonUniform
)

// FaceDistribution describes whether voxels on one face of a chunk are
// none, all, or some.
type FaceDistribution uint8

const (
	FaceEmpty FaceDistribution = iota
	FaceFull
	FaceMixed
)

// ChunkFlags records per-face obscuredness for a NonUniform chunk. Uniform
// chunks are implicitly fully obscured on every face and don't carry these
// bits; Empty chunks carry none either.
type ChunkFlags uint8

const (
	ObscuredXDn ChunkFlags = 1 << iota
	ObscuredYDn
	ObscuredZDn
	ObscuredXUp
	ObscuredYUp
	ObscuredZUp
)

func obscuredFlagFor(d Dimension, side Side) ChunkFlags {
	switch {
	case d == DimX && side == SideLower:
		return ObscuredXDn
	case d == DimX && side == SideUpper:
		return ObscuredXUp
	case d == DimY && side == SideLower:
		return ObscuredYDn
	case d == DimY && side == SideUpper:
		return ObscuredYUp
	case d == DimZ && side == SideLower:
		return ObscuredZDn
	default:
		return ObscuredZUp
	}
}

// SplitDetectionData is the per-chunk summary the split detector keeps
// embedded in the chunk descriptor.
type SplitDetectionData struct {
	RegionCount         LocalRegionCount
	BoundaryRegionCount LocalRegionCount
}

// ChunkDescriptor is the tagged-variant chunk record: Empty, Uniform, or
// NonUniform, kept deliberately small and flat (no interface/virtual
// dispatch) so the dense per-object chunk array stays cache-friendly.
type ChunkDescriptor struct {
	Kind ChunkKind

	// DataOffset means different things depending on Kind:
	//  - Uniform: index into the sequence of uniform chunks ever allocated
	//    (arena index for the split detector's uniform region slot).
	//  - NonUniform: index of this chunk's CHUNK_VOXEL_COUNT-cell slab in
	//    the object's voxel arena (arena index = offset * ChunkVoxelCount).
	DataOffset uint32

	// Voxel is the representative voxel of a Uniform chunk. Unused for
	// Empty/NonUniform.
	Voxel Voxel

	// FaceDistributions is only meaningful for NonUniform chunks.
	FaceDistributions [3][2]FaceDistribution

	Flags ChunkFlags
	Split SplitDetectionData
}

func (c *ChunkDescriptor) isEmpty() bool { return c.Kind == ChunkEmpty }

// faceDistribution reports the distribution on the given face, treating
// Uniform as always Full and Empty as always Empty.
func (c *ChunkDescriptor) faceDistribution(d Dimension, side Side) FaceDistribution {
	switch c.Kind {
	case ChunkUniform:
		return FaceFull
	case ChunkNonUniform:
		return c.FaceDistributions[d][side]
	default:
		return FaceEmpty
	}
}

func (c *ChunkDescriptor) isObscured(d Dimension, side Side) bool {
	if c.Kind != ChunkNonUniform {
		// Uniform chunks are implicitly fully obscured; Empty chunks have
		// no faces to obscure.
		return c.Kind == ChunkUniform
	}
	return c.Flags&obscuredFlagFor(d, side) != 0
}

func (c *ChunkDescriptor) setObscured(d Dimension, side Side, obscured bool) {
	if c.Kind != ChunkNonUniform {
		return
	}
	bit := obscuredFlagFor(d, side)
	if obscured {
		c.Flags |= bit
	} else {
		c.Flags &^= bit
	}
}

// linearVoxelIdxWithinChunk computes the linear index of a voxel within a
// chunk's CHUNK_VOXEL_COUNT-cell slab from its local (i,j,k) coordinates.
func linearVoxelIdxWithinChunk(i, j, k int) int {
	return (i << (2 * LogChunkSize)) + (j << LogChunkSize) + k
}

// chunkVoxelIndicesFromLinearIdx is the inverse of linearVoxelIdxWithinChunk.
func chunkVoxelIndicesFromLinearIdx(idx int) (i, j, k int) {
	i = idx >> (2 * LogChunkSize)
	j = (idx >> LogChunkSize) & (ChunkSize - 1)
	k = idx & (ChunkSize - 1)
	return
}

// faceVoxelIndices maps a 2D (u,v) coordinate on the given face to the
// chunk-local 3D voxel indices.
func faceVoxelIndices(d Dimension, side Side, u, v int) (i, j, k int) {
	fixed := 0
	if side == SideUpper {
		fixed = ChunkSize - 1
	}
	switch d {
	case DimX:
		return fixed, u, v
	case DimY:
		return u, fixed, v
	default:
		return u, v, fixed
	}
}

// isInteriorVoxelIndex reports whether all three coordinates are strictly
// inside the chunk, i.e. not on any face.
func isInteriorVoxelIndex(i, j, k int) bool {
	return i > 0 && i < ChunkSize-1 && j > 0 && j < ChunkSize-1 && k > 0 && k < ChunkSize-1
}

// computeFaceDistributions scans a non-uniform chunk's slab and computes
// the Empty/Full/Mixed distribution for all six faces.
func computeFaceDistributions(slab []Voxel) [3][2]FaceDistribution {
	var emptyCount [3][2]int
	for d := Dimension(0); d < 3; d++ {
		for _, side := range [2]Side{SideLower, SideUpper} {
			count := 0
			for u := 0; u < ChunkSize; u++ {
				for v := 0; v < ChunkSize; v++ {
					i, j, k := faceVoxelIndices(d, side, u, v)
					if slab[linearVoxelIdxWithinChunk(i, j, k)].IsEmpty() {
						count++
					}
				}
			}
			emptyCount[d][side] = count
		}
	}
	var out [3][2]FaceDistribution
	for d := Dimension(0); d < 3; d++ {
		for _, side := range [2]Side{SideLower, SideUpper} {
			switch emptyCount[d][side] {
			case ChunkSizeSquared:
				out[d][side] = FaceEmpty
			case 0:
				out[d][side] = FaceFull
			default:
				out[d][side] = FaceMixed
			}
		}
	}
	return out
}
