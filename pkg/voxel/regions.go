package voxel

// GlobalRegionLabel names a connected region across the whole object: the
// high 24 bits are the region's home chunk's linear index, the low 8 bits
// are its local region index within that chunk. It doubles as the
// union-find node name and, via regionArenaIndex, the parent pointer
// stored in LocalRegion.Parent.
type GlobalRegionLabel uint32

func makeGlobalRegionLabel(chunkIdx uint32, local LocalRegionLabel) GlobalRegionLabel {
	return GlobalRegionLabel(chunkIdx)<<8 | GlobalRegionLabel(local)
}

func (g GlobalRegionLabel) chunkIdx() uint32        { return uint32(g) >> 8 }
func (g GlobalRegionLabel) localRegion() LocalRegionLabel { return LocalRegionLabel(g) }

// AdjacentRegionConnection is a bit-packed edge from a region to a region
// of a neighboring chunk: 12 bits neighbor local region index, 4 bits face
// (one-hot dimension in bits 3-1, side in bit 0).
type AdjacentRegionConnection uint16

func makeAdjacentRegionConnection(neighborRegion LocalRegionLabel, d Dimension, side Side) AdjacentRegionConnection {
	face := faceEncoding(d, side)
	return AdjacentRegionConnection(neighborRegion)<<4 | AdjacentRegionConnection(face)
}

func (c AdjacentRegionConnection) neighborRegion() LocalRegionLabel { return LocalRegionLabel(c >> 4) }
func (c AdjacentRegionConnection) face() uint8                      { return uint8(c & 0xF) }

func faceEncoding(d Dimension, side Side) uint8 {
	var dimBits uint8
	switch d {
	case DimX:
		dimBits = 0b1000
	case DimY:
		dimBits = 0b0100
	default:
		dimBits = 0b0010
	}
	if side == SideUpper {
		return dimBits | 0b0001
	}
	return dimBits
}

// LocalRegion is one arena slot of the split detector: a connected region
// of voxels confined to a single chunk, plus the union-find state used to
// resolve it against regions in neighboring chunks.
type LocalRegion struct {
	Parent     GlobalRegionLabel
	VoxelCount uint32
	IsBoundary bool
}

// regionArenaIndex maps a chunk's local region index to its flat slot in
// o.regions. Uniform chunks occupy one slot each (index = their uniform
// arena slot); non-uniform chunks occupy a ChunkMaxRegions-wide stripe
// starting after every uniform slot ever allocated.
func (o *Object) regionArenaIndex(chunkIdx int, kind ChunkKind, dataOffset uint32, local LocalRegionLabel) int {
	if kind == ChunkUniform {
		return int(dataOffset)
	}
	return int(o.nextUniformSlot) + int(dataOffset)*ChunkMaxRegions + int(local)
}

func (o *Object) regionArenaIndexForLabel(label GlobalRegionLabel) int {
	c := &o.chunks[label.chunkIdx()]
	return o.regionArenaIndex(int(label.chunkIdx()), c.Kind, c.DataOffset, label.localRegion())
}

func (o *Object) region(label GlobalRegionLabel) *LocalRegion {
	return &o.regions[o.regionArenaIndexForLabel(label)]
}

// RecomputeAllLocalRegions discards and rebuilds the region arena, the
// per-voxel region labels, and the connection map from scratch. Called
// after generation and after any structural edit (promotion, split-off).
func RecomputeAllLocalRegions(o *Object) {
	regionsLen := int(o.nextUniformSlot) + int(o.nextNonUniformSlot)*ChunkMaxRegions
	o.regions = make([]LocalRegion, regionsLen)
	o.connections = make(map[GlobalRegionLabel][]AdjacentRegionConnection)
	o.growRegionLabels()

	for idx := range o.chunks {
		c := &o.chunks[idx]
		switch c.Kind {
		case ChunkUniform:
			slot := o.regionArenaIndex(idx, c.Kind, c.DataOffset, 0)
			label := makeGlobalRegionLabel(uint32(idx), 0)
			o.regions[slot] = LocalRegion{Parent: label, VoxelCount: ChunkVoxelCount, IsBoundary: true}
			c.Split = SplitDetectionData{RegionCount: 1, BoundaryRegionCount: 1}
		case ChunkNonUniform:
			labelChunkVoxelRegions(o, idx, c)
		}
	}
}

// labelChunkVoxelRegions runs boundary-first union-find over one
// non-uniform chunk's non-empty voxels, assigns each resulting component a
// LocalRegionLabel, records it per-voxel, and populates the region arena
// slots for that chunk.
func labelChunkVoxelRegions(o *Object, chunkIdx int, c *ChunkDescriptor) {
	slab := o.nonUniformSlab(c.DataOffset)
	uf := newVoxelUnionFind(ChunkVoxelCount)

	for idx, v := range slab {
		if v.IsEmpty() {
			continue
		}
		i, j, k := chunkVoxelIndicesFromLinearIdx(idx)
		for _, d := range [3]Dimension{DimX, DimY, DimZ} {
			ni, nj, nk := i, j, k
			switch d {
			case DimX:
				ni++
			case DimY:
				nj++
			default:
				nk++
			}
			if ni >= ChunkSize || nj >= ChunkSize || nk >= ChunkSize {
				continue
			}
			nIdx := linearVoxelIdxWithinChunk(ni, nj, nk)
			if !slab[nIdx].IsEmpty() {
				uf.union(idx, nIdx)
			}
		}
	}

	// Boundary-first ordering: walk boundary voxels before interior ones so
	// that any region touching the chunk face claims the lowest available
	// label, keeping boundary regions contiguous at the front of the
	// chunk's region list.
	order := make([]int, 0, ChunkVoxelCount)
	for idx := 0; idx < ChunkVoxelCount; idx++ {
		i, j, k := chunkVoxelIndicesFromLinearIdx(idx)
		if slab[idx].IsEmpty() || isInteriorVoxelIndex(i, j, k) {
			continue
		}
		order = append(order, idx)
	}
	for idx := 0; idx < ChunkVoxelCount; idx++ {
		i, j, k := chunkVoxelIndicesFromLinearIdx(idx)
		if slab[idx].IsEmpty() || !isInteriorVoxelIndex(i, j, k) {
			continue
		}
		order = append(order, idx)
	}

	rootToLabel := make(map[int]LocalRegionLabel)
	voxelCounts := make(map[LocalRegionLabel]uint32)
	isBoundary := make(map[LocalRegionLabel]bool)
	labels := o.nonUniformRegionLabels(c.DataOffset)
	for n := range labels {
		labels[n] = EmptyVoxelLabel
	}
	var nextLabel LocalRegionLabel
	boundaryRegionCount := LocalRegionCount(0)
	sawBoundaryPhase := true

	for _, idx := range order {
		i, j, k := chunkVoxelIndicesFromLinearIdx(idx)
		onBoundary := !isInteriorVoxelIndex(i, j, k)
		if sawBoundaryPhase && !onBoundary {
			boundaryRegionCount = LocalRegionCount(nextLabel)
			sawBoundaryPhase = false
		}
		root := uf.find(idx)
		label, ok := rootToLabel[root]
		if !ok {
			if nextLabel > maxUsableRegionLabel {
				// Overflow: saturate into the last usable label rather than
				// exceeding the one-byte label space.
				label = maxUsableRegionLabel
			} else {
				label = nextLabel
				nextLabel++
			}
			rootToLabel[root] = label
		}
		labels[idx] = label
		voxelCounts[label]++
		if onBoundary {
			isBoundary[label] = true
		}
	}
	if sawBoundaryPhase {
		boundaryRegionCount = LocalRegionCount(nextLabel)
	}

	regionCount := LocalRegionCount(nextLabel)
	c.Split = SplitDetectionData{RegionCount: regionCount, BoundaryRegionCount: boundaryRegionCount}

	for label, count := range voxelCounts {
		slot := o.regionArenaIndex(chunkIdx, c.Kind, c.DataOffset, label)
		glabel := makeGlobalRegionLabel(uint32(chunkIdx), label)
		o.regions[slot] = LocalRegion{Parent: glabel, VoxelCount: count, IsBoundary: isBoundary[label]}
	}
}

// voxelUnionFind is a plain weighted-union-with-path-compression forest
// over chunk-local voxel linear indices, used only transiently while
// labeling one chunk.
type voxelUnionFind struct {
	parent []int
	rank   []uint8
}

func newVoxelUnionFind(n int) *voxelUnionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &voxelUnionFind{parent: p, rank: make([]uint8, n)}
}

func (u *voxelUnionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *voxelUnionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}
