package voxel

// Object is a chunked voxel volume: a dense grid of ChunkDescriptors, each
// either Empty, Uniform, or backed by a CHUNK_VOXEL_COUNT slab in voxels.
// Chunks are addressed by linear index, row-major in (x, y, z), never by
// pointer; non-uniform chunk data and local regions live in flat arenas
// indexed through each chunk's DataOffset.
type Object struct {
	voxelExtent float64

	// chunkCounts is the number of chunks along each axis.
	chunkCounts [3]int

	chunks []ChunkDescriptor

	// voxels is the non-uniform chunk voxel arena: voxels[off*ChunkVoxelCount:][:ChunkVoxelCount]
	// is the slab for the non-uniform chunk whose DataOffset is off.
	voxels []Voxel

	// nextUniformSlot is incremented every time a uniform chunk is created,
	// giving each one a stable arena index for the split detector's region
	// bookkeeping, mirroring the non-uniform voxel slab allocation scheme.
	nextUniformSlot uint32

	// nextNonUniformSlot is incremented every time a non-uniform chunk is
	// created; also the chunk's voxel-arena slab index.
	nextNonUniformSlot uint32

	regions []LocalRegion

	// regionLabels parallels voxels: the local region label assigned to
	// each non-uniform chunk voxel by the most recent region recompute.
	regionLabels []LocalRegionLabel

	// connections maps a region's global label to the cross-chunk
	// AdjacentRegionConnection edges leaving it. A map stands in for the
	// reference design's fixed per-chunk striped connection arena: the
	// region count per chunk is already capped at ChunkMaxRegions, so the
	// map never grows unboundedly, and this avoids reserving
	// ChunkMaxAdjacentRegionConnections slots for chunks that only ever
	// need a handful.
	connections map[GlobalRegionLabel][]AdjacentRegionConnection

	invalidatedMeshes map[uint32]struct{}

	// originOffset locates chunk (0,0,0) relative to the object's original
	// generation origin, in chunk units. Split-off and shrink mutate it.
	originOffset [3]int
}

// VoxelExtent returns the world-space side length of one voxel.
func (o *Object) VoxelExtent() float64 { return o.voxelExtent }

// ChunkExtent returns the world-space side length of one chunk.
func (o *Object) ChunkExtent() float64 { return o.voxelExtent * float64(ChunkSize) }

// ChunkCounts returns the number of chunks along each axis.
func (o *Object) ChunkCounts() [3]int { return o.chunkCounts }

// TotalChunkCount returns the total number of chunk slots, including Empty
// ones.
func (o *Object) TotalChunkCount() int {
	return o.chunkCounts[0] * o.chunkCounts[1] * o.chunkCounts[2]
}

// OriginOffsetInRoot returns the chunk-space offset of chunk (0,0,0)
// relative to the coordinate system the object was originally generated
// in. Non-zero after a split-off shrinks the occupied range.
func (o *Object) OriginOffsetInRoot() [3]int { return o.originOffset }

func (o *Object) chunkIdxStrides() [3]int {
	return [3]int{o.chunkCounts[1] * o.chunkCounts[2], o.chunkCounts[2], 1}
}

// ChunkIdxStrides returns the row-major linear-index strides for the three
// axes.
func (o *Object) ChunkIdxStrides() [3]int { return o.chunkIdxStrides() }

func (o *Object) linearChunkIdx(ci, cj, ck int) int {
	s := o.chunkIdxStrides()
	return ci*s[0] + cj*s[1] + ck*s[2]
}

func (o *Object) chunkCoordsFromLinearIdx(idx int) (ci, cj, ck int) {
	ci = idx / (o.chunkCounts[1] * o.chunkCounts[2])
	rem := idx % (o.chunkCounts[1] * o.chunkCounts[2])
	cj = rem / o.chunkCounts[2]
	ck = rem % o.chunkCounts[2]
	return
}

func (o *Object) inBounds(ci, cj, ck int) bool {
	return ci >= 0 && ci < o.chunkCounts[0] &&
		cj >= 0 && cj < o.chunkCounts[1] &&
		ck >= 0 && ck < o.chunkCounts[2]
}

// GenerateWithoutDerivedState builds an Object's chunk and voxel arenas
// directly from a Generator, without computing internal adjacency flags,
// face distributions, obscuredness, or split-detection regions. Callers
// that need those call ComputeAllDerivedState afterward; this split lets
// batch construction (e.g. loading many objects) defer the expensive
// derived pass.
func GenerateWithoutDerivedState(gen Generator) *Object {
	return buildFromVoxelFunc(gen.VoxelExtent(), gen.GridShape(), gen.VoxelAt)
}

// buildFromVoxelFunc is the shared construction path behind
// GenerateWithoutDerivedState and split-off: it samples voxelAt once per
// grid cell and classifies each chunk as Empty, Uniform, or NonUniform.
func buildFromVoxelFunc(extent float64, shape [3]int, voxelAt func(i, j, k int) Voxel) *Object {
	counts := [3]int{
		ceilDiv(shape[0], ChunkSize),
		ceilDiv(shape[1], ChunkSize),
		ceilDiv(shape[2], ChunkSize),
	}
	o := &Object{
		voxelExtent: extent,
		chunkCounts: counts,
	}
	total := o.TotalChunkCount()
	o.chunks = make([]ChunkDescriptor, total)

	for idx := 0; idx < total; idx++ {
		ci, cj, ck := o.chunkCoordsFromLinearIdx(idx)
		o.chunks[idx] = o.generateChunk(shape, voxelAt, ci, cj, ck)
	}
	return o
}

// Generate builds an Object from a Generator and computes all derived
// state (internal adjacencies, face distributions, obscuredness, and
// split-detection regions) in one call.
func Generate(gen Generator) *Object {
	o := GenerateWithoutDerivedState(gen)
	o.ComputeAllDerivedState()
	return o
}

func (o *Object) generateChunk(gridShape [3]int, voxelAt func(i, j, k int) Voxel, ci, cj, ck int) ChunkDescriptor {
	slab := make([]Voxel, ChunkVoxelCount)
	anyNonEmpty := false
	allSame := true
	var first Voxel
	firstSet := false

	for li := 0; li < ChunkSize; li++ {
		gi := ci*ChunkSize + li
		for lj := 0; lj < ChunkSize; lj++ {
			gj := cj*ChunkSize + lj
			for lk := 0; lk < ChunkSize; lk++ {
				gk := ck*ChunkSize + lk
				var v Voxel
				if gi < gridShape[0] && gj < gridShape[1] && gk < gridShape[2] {
					v = voxelAt(gi, gj, gk)
				} else {
					v = MaximallyOutside()
				}
				slab[linearVoxelIdxWithinChunk(li, lj, lk)] = v
				if !v.IsEmpty() {
					anyNonEmpty = true
				}
				if !firstSet {
					first = v
					firstSet = true
				} else if v.TypeID != first.TypeID || v.IsEmpty() != first.IsEmpty() {
					allSame = false
				}
			}
		}
	}

	if !anyNonEmpty {
		return ChunkDescriptor{Kind: ChunkEmpty}
	}
	if allSame && !first.IsEmpty() {
		slot := o.nextUniformSlot
		o.nextUniformSlot++
		return ChunkDescriptor{Kind: ChunkUniform, DataOffset: slot, Voxel: fullyAdjacentVoxel(first.TypeID)}
	}

	slot := o.nextNonUniformSlot
	o.nextNonUniformSlot++
	o.voxels = append(o.voxels, slab...)
	o.growRegionLabels()
	return ChunkDescriptor{Kind: ChunkNonUniform, DataOffset: slot}
}

// growRegionLabels keeps regionLabels the same length as voxels, filling
// new cells with EmptyVoxelLabel until the next region recompute assigns
// real labels.
func (o *Object) growRegionLabels() {
	for len(o.regionLabels) < len(o.voxels) {
		o.regionLabels = append(o.regionLabels, EmptyVoxelLabel)
	}
}

// nonUniformRegionLabels returns the region-label slab parallel to
// nonUniformSlab for the given arena offset.
func (o *Object) nonUniformRegionLabels(offset uint32) []LocalRegionLabel {
	start := int(offset) * ChunkVoxelCount
	return o.regionLabels[start : start+ChunkVoxelCount]
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// nonUniformSlab returns the voxel slab backing a non-uniform chunk.
func (o *Object) nonUniformSlab(offset uint32) []Voxel {
	start := int(offset) * ChunkVoxelCount
	return o.voxels[start : start+ChunkVoxelCount]
}

// GetChunk returns the chunk descriptor at the given chunk coordinates and
// whether it exists (is within bounds).
func (o *Object) GetChunk(ci, cj, ck int) (*ChunkDescriptor, bool) {
	if !o.inBounds(ci, cj, ck) {
		return nil, false
	}
	return &o.chunks[o.linearChunkIdx(ci, cj, ck)], true
}

// GetVoxel returns the voxel at global voxel coordinates (i, j, k).
func (o *Object) GetVoxel(i, j, k int) Voxel {
	if i < 0 || j < 0 || k < 0 {
		return MaximallyOutside()
	}
	ci, cj, ck := i/ChunkSize, j/ChunkSize, k/ChunkSize
	chunk, ok := o.GetChunk(ci, cj, ck)
	if !ok {
		return MaximallyOutside()
	}
	li, lj, lk := i-ci*ChunkSize, j-cj*ChunkSize, k-ck*ChunkSize
	switch chunk.Kind {
	case ChunkUniform:
		return chunk.Voxel
	case ChunkNonUniform:
		return o.nonUniformSlab(chunk.DataOffset)[linearVoxelIdxWithinChunk(li, lj, lk)]
	default:
		return MaximallyOutside()
	}
}

// StoredVoxelCount returns the number of voxel cells materialized in the
// non-uniform arena (not counting voxels implied by Uniform chunks).
func (o *Object) StoredVoxelCount() int { return len(o.voxels) }

// IsEffectivelyEmpty reports whether every chunk is Empty.
func (o *Object) IsEffectivelyEmpty() bool {
	for i := range o.chunks {
		if o.chunks[i].Kind != ChunkEmpty {
			return false
		}
	}
	return true
}

// OccupiedChunkRanges returns, for each axis, the half-open [lo, hi) range
// of chunk indices that contain any non-Empty chunk. If the object is
// effectively empty, lo == hi on every axis.
func (o *Object) OccupiedChunkRanges() [3][2]int {
	var lo = [3]int{o.chunkCounts[0], o.chunkCounts[1], o.chunkCounts[2]}
	var hi [3]int
	any := false
	for idx := range o.chunks {
		if o.chunks[idx].Kind == ChunkEmpty {
			continue
		}
		any = true
		ci, cj, ck := o.chunkCoordsFromLinearIdx(idx)
		coords := [3]int{ci, cj, ck}
		for a := 0; a < 3; a++ {
			if coords[a] < lo[a] {
				lo[a] = coords[a]
			}
			if coords[a]+1 > hi[a] {
				hi[a] = coords[a] + 1
			}
		}
	}
	if !any {
		return [3][2]int{{0, 0}, {0, 0}, {0, 0}}
	}
	return [3][2]int{{lo[0], hi[0]}, {lo[1], hi[1]}, {lo[2], hi[2]}}
}

// OccupiedVoxelRanges is OccupiedChunkRanges scaled up to voxel units.
func (o *Object) OccupiedVoxelRanges() [3][2]int {
	r := o.OccupiedChunkRanges()
	for a := 0; a < 3; a++ {
		r[a][0] *= ChunkSize
		r[a][1] *= ChunkSize
	}
	return r
}

// ExposedChunkCountHeuristic estimates the number of chunks with at least
// one unobscured face, without walking every voxel: any chunk that isn't
// fully obscured on all six sides counts as exposed.
func (o *Object) ExposedChunkCountHeuristic() int {
	count := 0
	for i := range o.chunks {
		c := &o.chunks[i]
		if c.Kind == ChunkEmpty {
			continue
		}
		if c.Kind == ChunkUniform {
			// Implicitly obscured on all sides unless at the object boundary.
			ci, cj, ck := o.chunkCoordsFromLinearIdx(i)
			if ci == 0 || cj == 0 || ck == 0 ||
				ci == o.chunkCounts[0]-1 || cj == o.chunkCounts[1]-1 || ck == o.chunkCounts[2]-1 {
				count++
			}
			continue
		}
		exposed := false
		for d := Dimension(0); d < 3 && !exposed; d++ {
			for _, side := range [2]Side{SideLower, SideUpper} {
				if !c.isObscured(d, side) {
					exposed = true
					break
				}
			}
		}
		if exposed {
			count++
		}
	}
	return count
}

// ForEachVoxelInNonUniformChunk calls fn with the local (i,j,k) and the
// voxel for every cell of the non-uniform chunk at the given chunk index.
// It is a no-op for Empty or Uniform chunks.
func (o *Object) ForEachVoxelInNonUniformChunk(linearChunkIdx int, fn func(i, j, k int, v Voxel)) {
	c := &o.chunks[linearChunkIdx]
	if c.Kind != ChunkNonUniform {
		return
	}
	slab := o.nonUniformSlab(c.DataOffset)
	for idx, v := range slab {
		i, j, k := chunkVoxelIndicesFromLinearIdx(idx)
		fn(i, j, k, v)
	}
}

// NonUniformChunkVoxels returns the raw voxel slab for the non-uniform
// chunk at the given linear chunk index, for callers that need direct
// slice access (mesh generation, property transfer).
func (o *Object) NonUniformChunkVoxels(linearChunkIdx int) []Voxel {
	c := &o.chunks[linearChunkIdx]
	if c.Kind != ChunkNonUniform {
		return nil
	}
	return o.nonUniformSlab(c.DataOffset)
}

// InvalidatedMeshChunkIndices returns the linear indices of chunks whose
// mesh-relevant state changed since the last MarkChunkMeshesSynchronized
// call.
func (o *Object) InvalidatedMeshChunkIndices() []uint32 {
	out := make([]uint32, 0, len(o.invalidatedMeshes))
	for idx := range o.invalidatedMeshes {
		out = append(out, idx)
	}
	return out
}

// MarkChunkMeshesSynchronized clears the invalidated-mesh set.
func (o *Object) MarkChunkMeshesSynchronized() {
	o.invalidatedMeshes = nil
}

func (o *Object) invalidateMesh(linearChunkIdx int) {
	if o.invalidatedMeshes == nil {
		o.invalidatedMeshes = make(map[uint32]struct{})
	}
	o.invalidatedMeshes[uint32(linearChunkIdx)] = struct{}{}
}

// CountNonEmptyVoxels returns the total number of non-empty voxel cells in
// the object, counting every cell of a Uniform chunk.
func (o *Object) CountNonEmptyVoxels() int {
	count := 0
	for idx := range o.chunks {
		switch o.chunks[idx].Kind {
		case ChunkUniform:
			count += ChunkVoxelCount
		case ChunkNonUniform:
			for _, v := range o.nonUniformSlab(o.chunks[idx].DataOffset) {
				if !v.IsEmpty() {
					count++
				}
			}
		}
	}
	return count
}

// DetermineTightOccupiedVoxelRanges scans only the chunks within
// OccupiedChunkRanges and returns the exact [lo, hi) voxel bounds of every
// non-empty voxel. Cheap when the occupied range is already small, which
// is the only case callers use it for (the split-off repack heuristic).
func (o *Object) DetermineTightOccupiedVoxelRanges() [3][2]int {
	chunkRanges := o.OccupiedChunkRanges()
	lo := [3]int{1 << 30, 1 << 30, 1 << 30}
	hi := [3]int{-1, -1, -1}
	any := false
	for ci := chunkRanges[0][0]; ci < chunkRanges[0][1]; ci++ {
		for cj := chunkRanges[1][0]; cj < chunkRanges[1][1]; cj++ {
			for ck := chunkRanges[2][0]; ck < chunkRanges[2][1]; ck++ {
				c, _ := o.GetChunk(ci, cj, ck)
				switch c.Kind {
				case ChunkEmpty:
					continue
				case ChunkUniform:
					lo0 := [3]int{ci * ChunkSize, cj * ChunkSize, ck * ChunkSize}
					hi0 := [3]int{lo0[0] + ChunkSize, lo0[1] + ChunkSize, lo0[2] + ChunkSize}
					updateRange(&lo, &hi, lo0, hi0)
					any = true
				case ChunkNonUniform:
					slab := o.nonUniformSlab(c.DataOffset)
					for lin, v := range slab {
						if v.IsEmpty() {
							continue
						}
						i, j, k := chunkVoxelIndicesFromLinearIdx(lin)
						gi, gj, gk := ci*ChunkSize+i, cj*ChunkSize+j, ck*ChunkSize+k
						updateRange(&lo, &hi, [3]int{gi, gj, gk}, [3]int{gi + 1, gj + 1, gk + 1})
						any = true
					}
				}
			}
		}
	}
	if !any {
		return [3][2]int{{0, 0}, {0, 0}, {0, 0}}
	}
	return [3][2]int{{lo[0], hi[0]}, {lo[1], hi[1]}, {lo[2], hi[2]}}
}

func updateRange(lo, hi *[3]int, rlo, rhi [3]int) {
	for a := 0; a < 3; a++ {
		if rlo[a] < lo[a] {
			lo[a] = rlo[a]
		}
		if rhi[a] > hi[a] {
			hi[a] = rhi[a]
		}
	}
}

// ShrinkOccupiedRanges rebuilds the object's chunk arena to the smallest
// chunk-aligned box containing every non-Empty chunk, dropping wholly
// empty border chunks and updating OriginOffsetInRoot accordingly. A
// no-op if the object is already tightly bounded.
func (o *Object) ShrinkOccupiedRanges() {
	r := o.OccupiedChunkRanges()
	if r[0][0] == 0 && r[1][0] == 0 && r[2][0] == 0 &&
		r[0][1] == o.chunkCounts[0] && r[1][1] == o.chunkCounts[1] && r[2][1] == o.chunkCounts[2] {
		return
	}
	if r[0][0] >= r[0][1] {
		// Effectively empty: collapse to a single Empty chunk.
		o.chunkCounts = [3]int{1, 1, 1}
		o.chunks = []ChunkDescriptor{{Kind: ChunkEmpty}}
		o.voxels = nil
		o.regionLabels = nil
		return
	}
	newCounts := [3]int{r[0][1] - r[0][0], r[1][1] - r[1][0], r[2][1] - r[2][0]}
	newTotal := newCounts[0] * newCounts[1] * newCounts[2]
	newChunks := make([]ChunkDescriptor, newTotal)
	old := o.chunks
	oldCounts := o.chunkCounts
	for ci := r[0][0]; ci < r[0][1]; ci++ {
		for cj := r[1][0]; cj < r[1][1]; cj++ {
			for ck := r[2][0]; ck < r[2][1]; ck++ {
				oldIdx := ci*oldCounts[1]*oldCounts[2] + cj*oldCounts[2] + ck
				ni, nj, nk := ci-r[0][0], cj-r[1][0], ck-r[2][0]
				newIdx := ni*newCounts[1]*newCounts[2] + nj*newCounts[2] + nk
				newChunks[newIdx] = old[oldIdx]
			}
		}
	}
	o.chunkCounts = newCounts
	o.chunks = newChunks
	for a := 0; a < 3; a++ {
		o.originOffset[a] += r[a][0]
	}
}

// ComputeAllDerivedState recomputes internal adjacencies, boundary
// adjacencies/obscuredness, and split-detection regions for every chunk.
// Called once after generation and again after a structural edit such as
// split-off.
func (o *Object) ComputeAllDerivedState() {
	UpdateInternalAdjacenciesForAllChunks(o)
	UpdateAllChunkBoundaryAdjacencies(o)
	RecomputeAllLocalRegions(o)
	ResolveConnectedRegionsBetweenAllChunks(o)
	for idx := range o.chunks {
		o.invalidateMesh(idx)
	}
}
