package voxel

// UpdateInternalAdjacenciesForAllChunks recomputes each non-uniform chunk's
// per-voxel adjacency flags against its own interior neighbors, and
// recomputes the chunk's face distributions from the result. All adjacency
// flags are cleared first, so flags toward a neighboring chunk end up unset
// here; UpdateAllChunkBoundaryAdjacencies fills those in afterward.
func UpdateInternalAdjacenciesForAllChunks(o *Object) {
	for idx := range o.chunks {
		c := &o.chunks[idx]
		if c.Kind != ChunkNonUniform {
			continue
		}
		slab := o.nonUniformSlab(c.DataOffset)
		updateInternalAdjacenciesForChunk(slab)
		c.FaceDistributions = computeFaceDistributions(slab)
	}
}

func updateInternalAdjacenciesForChunk(slab []Voxel) {
	for idx := range slab {
		if slab[idx].IsEmpty() {
			continue
		}
		i, j, k := chunkVoxelIndicesFromLinearIdx(idx)
		flags := slab[idx].Flags &^ adjacencyFlagMask
		for d := Dimension(0); d < 3; d++ {
			for _, side := range [2]Side{SideLower, SideUpper} {
				ni, nj, nk := i, j, k
				delta := -1
				if side == SideUpper {
					delta = 1
				}
				switch d {
				case DimX:
					ni += delta
				case DimY:
					nj += delta
				default:
					nk += delta
				}
				if ni < 0 || ni >= ChunkSize || nj < 0 || nj >= ChunkSize || nk < 0 || nk >= ChunkSize {
					continue
				}
				if !slab[linearVoxelIdxWithinChunk(ni, nj, nk)].IsEmpty() {
					flags |= adjacentFlagForSide(d, side)
				}
			}
		}
		slab[idx].Flags = flags
	}
}
