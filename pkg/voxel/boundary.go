package voxel

// UpdateAllChunkBoundaryAdjacencies walks every pair of axis-adjacent
// chunks in the object and reconciles the per-voxel adjacency flags and
// per-face obscuredness flags across the shared boundary. Uniform chunks
// whose neighbor does not fully cover the shared face are promoted to
// NonUniform first, since a Uniform chunk cannot represent a boundary
// voxel with different adjacency than its interior.
func UpdateAllChunkBoundaryAdjacencies(o *Object) {
	for ci := 0; ci < o.chunkCounts[0]; ci++ {
		for cj := 0; cj < o.chunkCounts[1]; cj++ {
			for ck := 0; ck < o.chunkCounts[2]; ck++ {
				lowerIdx := o.linearChunkIdx(ci, cj, ck)
				coords := [3]int{ci, cj, ck}
				for d := Dimension(0); d < 3; d++ {
					if coords[d] == 0 {
						processBoundaryAgainstVirtualEmpty(o, lowerIdx, d, SideLower)
					}
					coords[d]++
					if o.inBounds(coords[0], coords[1], coords[2]) {
						upperIdx := o.linearChunkIdx(coords[0], coords[1], coords[2])
						updateMutualFaceAdjacencies(o, lowerIdx, upperIdx, d)
					} else {
						processBoundaryAgainstVirtualEmpty(o, lowerIdx, d, SideUpper)
					}
					coords[d]--
				}
			}
		}
	}
}

// processBoundaryAgainstVirtualEmpty reconciles the face of chunk idx that
// faces outside the object's chunk grid, treating the missing neighbor as a
// virtual Empty chunk: a Uniform chunk there is promoted to NonUniform (an
// Empty neighbor never fully covers the shared face), then the face's
// adjacency flags are cleared and its obscuredness bit set false, since
// nothing can ever obscure a face that borders empty space.
func processBoundaryAgainstVirtualEmpty(o *Object, idx int, d Dimension, side Side) {
	c := &o.chunks[idx]
	if c.Kind == ChunkEmpty {
		return
	}
	if c.Kind == ChunkUniform {
		promoteUniformToNonUniform(o, idx)
		c = &o.chunks[idx]
	}
	clearFaceAdjacency(o, idx, d, side)
	c.setObscured(d, side, false)
}

func neighborFullyCoversFace(c *ChunkDescriptor, d Dimension, side Side) bool {
	switch c.Kind {
	case ChunkUniform:
		return true
	case ChunkNonUniform:
		return c.FaceDistributions[d][side] == FaceFull
	default:
		return false
	}
}

func updateMutualFaceAdjacencies(o *Object, lowerIdx, upperIdx int, d Dimension) {
	if o.chunks[lowerIdx].Kind == ChunkUniform && !neighborFullyCoversFace(&o.chunks[upperIdx], d, SideLower) {
		promoteUniformToNonUniform(o, lowerIdx)
	}
	if o.chunks[upperIdx].Kind == ChunkUniform && !neighborFullyCoversFace(&o.chunks[lowerIdx], d, SideUpper) {
		promoteUniformToNonUniform(o, upperIdx)
	}

	lower := &o.chunks[lowerIdx]
	upper := &o.chunks[upperIdx]

	switch {
	case lower.Kind == ChunkEmpty && upper.Kind == ChunkEmpty:
		return
	case lower.Kind == ChunkUniform && upper.Kind == ChunkUniform:
		// Both implicitly fully obscured on the shared face; nothing to store.
		return
	case lower.Kind == ChunkNonUniform && upper.Kind == ChunkNonUniform:
		updateNonUniformFaceAdjacency(o, lowerIdx, upperIdx, d)
	default:
		if lower.Kind == ChunkNonUniform {
			if upper.Kind == ChunkUniform {
				setFaceAdjacencyAgainstFullNeighbor(o, lowerIdx, d, SideUpper)
				lower.setObscured(d, SideUpper, true)
			} else {
				clearFaceAdjacency(o, lowerIdx, d, SideUpper)
				lower.setObscured(d, SideUpper, false)
			}
		}
		if upper.Kind == ChunkNonUniform {
			if lower.Kind == ChunkUniform {
				setFaceAdjacencyAgainstFullNeighbor(o, upperIdx, d, SideLower)
				upper.setObscured(d, SideLower, true)
			} else {
				clearFaceAdjacency(o, upperIdx, d, SideLower)
				upper.setObscured(d, SideLower, false)
			}
		}
	}
}

func promoteUniformToNonUniform(o *Object, idx int) {
	c := &o.chunks[idx]
	slab := make([]Voxel, ChunkVoxelCount)
	rep := fullyAdjacentVoxel(c.Voxel.TypeID)
	for i := range slab {
		slab[i] = rep
	}
	slot := o.nextNonUniformSlot
	o.nextNonUniformSlot++
	o.voxels = append(o.voxels, slab...)
	o.growRegionLabels()
	c.Kind = ChunkNonUniform
	c.DataOffset = slot
	c.FaceDistributions = [3][2]FaceDistribution{
		{FaceFull, FaceFull}, {FaceFull, FaceFull}, {FaceFull, FaceFull},
	}
	c.Flags = ObscuredXDn | ObscuredYDn | ObscuredZDn | ObscuredXUp | ObscuredYUp | ObscuredZUp
	o.invalidateMesh(idx)
}

func clearFaceAdjacency(o *Object, idx int, d Dimension, side Side) {
	slab := o.NonUniformChunkVoxels(idx)
	flag := adjacentFlagForSide(d, side)
	for u := 0; u < ChunkSize; u++ {
		for v := 0; v < ChunkSize; v++ {
			i, j, k := faceVoxelIndices(d, side, u, v)
			slab[linearVoxelIdxWithinChunk(i, j, k)].Flags &^= flag
		}
	}
}

// setFaceAdjacencyAgainstFullNeighbor sets the outward adjacency flag on
// every non-empty face voxel of a NonUniform chunk whose neighbor on that
// face is a Uniform chunk, which is solid everywhere by construction.
func setFaceAdjacencyAgainstFullNeighbor(o *Object, idx int, d Dimension, side Side) {
	slab := o.NonUniformChunkVoxels(idx)
	flag := adjacentFlagForSide(d, side)
	for u := 0; u < ChunkSize; u++ {
		for v := 0; v < ChunkSize; v++ {
			i, j, k := faceVoxelIndices(d, side, u, v)
			vi := linearVoxelIdxWithinChunk(i, j, k)
			if slab[vi].IsEmpty() {
				slab[vi].Flags &^= flag
			} else {
				slab[vi].Flags |= flag
			}
		}
	}
}

func updateNonUniformFaceAdjacency(o *Object, lowerIdx, upperIdx int, d Dimension) {
	lowerSlab := o.NonUniformChunkVoxels(lowerIdx)
	upperSlab := o.NonUniformChunkVoxels(upperIdx)
	upFlag := adjacentUpFlag(d)
	dnFlag := adjacentDnFlag(d)

	for u := 0; u < ChunkSize; u++ {
		for v := 0; v < ChunkSize; v++ {
			li, lj, lk := faceVoxelIndices(d, SideUpper, u, v)
			ui, uj, uk := faceVoxelIndices(d, SideLower, u, v)
			lIdx := linearVoxelIdxWithinChunk(li, lj, lk)
			uIdx := linearVoxelIdxWithinChunk(ui, uj, uk)
			lowerNonEmpty := !lowerSlab[lIdx].IsEmpty()
			upperNonEmpty := !upperSlab[uIdx].IsEmpty()
			if lowerNonEmpty && upperNonEmpty {
				lowerSlab[lIdx].Flags |= upFlag
				upperSlab[uIdx].Flags |= dnFlag
			} else {
				lowerSlab[lIdx].Flags &^= upFlag
				upperSlab[uIdx].Flags &^= dnFlag
			}
		}
	}

	lower := &o.chunks[lowerIdx]
	upper := &o.chunks[upperIdx]
	lower.setObscured(d, SideUpper, upper.faceDistribution(d, SideLower) == FaceFull)
	upper.setObscured(d, SideLower, lower.faceDistribution(d, SideUpper) == FaceFull)
}
