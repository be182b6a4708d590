package voxel

// PropertyTransferrer lets a caller move its own per-voxel or per-chunk
// side data (lighting, damage, custom components) along with a split-off
// region. The no-op default discards that data silently, which is correct
// for an object with no such extra properties attached.
type PropertyTransferrer interface {
	TransferVoxel(from, to *Object, srcI, srcJ, srcK, dstI, dstJ, dstK int)
	TransferNonUniformChunk(from, to *Object, srcChunkIdx, dstChunkIdx int)
	TransferUniformChunk(from, to *Object, srcChunkIdx, dstChunkIdx int)
}

// NoOpPropertyTransferrer implements PropertyTransferrer by doing nothing.
type NoOpPropertyTransferrer struct{}

func (NoOpPropertyTransferrer) TransferVoxel(from, to *Object, srcI, srcJ, srcK, dstI, dstJ, dstK int) {
}
func (NoOpPropertyTransferrer) TransferNonUniformChunk(from, to *Object, srcChunkIdx, dstChunkIdx int) {
}
func (NoOpPropertyTransferrer) TransferUniformChunk(from, to *Object, srcChunkIdx, dstChunkIdx int) {
}

// SplitOffAnyDisconnectedRegion extracts one disconnected region of o into
// a freshly allocated Object, discarding side data. See
// SplitOffAnyDisconnectedRegionWithPropertyTransferrer.
func SplitOffAnyDisconnectedRegion(o *Object) (*Object, bool) {
	return SplitOffAnyDisconnectedRegionWithPropertyTransferrer(o, NoOpPropertyTransferrer{})
}

// SplitOffAnyDisconnectedRegionWithPropertyTransferrer finds two
// disconnected regions in o, picks the one spanning fewer chunks, and
// moves it into a new Object sized to its chunk-aligned bounding box. The
// new piece is discarded (voxels simply deleted, nothing returned) if it
// has fewer than NonEmptyVoxelThreshold non-empty voxels, and repacked
// into a single padded chunk if it is small enough to fit one. Returns
// false if o is already fully connected (or empty).
func SplitOffAnyDisconnectedRegionWithPropertyTransferrer(o *Object, pt PropertyTransferrer) (*Object, bool) {
	rootA, rootB, ok := o.FindTwoDisconnectedRegions()
	if !ok {
		return nil, false
	}

	target := rootB
	if o.chunkCountForRoot(rootA) <= o.chunkCountForRoot(rootB) {
		target = rootA
	}

	loChunk, hiChunk, any := o.chunkBoundsForRoot(target)
	if !any {
		return nil, false
	}

	shape := [3]int{
		(hiChunk[0] - loChunk[0]) * ChunkSize,
		(hiChunk[1] - loChunk[1]) * ChunkSize,
		(hiChunk[2] - loChunk[2]) * ChunkSize,
	}
	loVoxel := [3]int{loChunk[0] * ChunkSize, loChunk[1] * ChunkSize, loChunk[2] * ChunkSize}

	voxelAt := func(i, j, k int) Voxel {
		gi, gj, gk := loVoxel[0]+i, loVoxel[1]+j, loVoxel[2]+k
		if o.rootAtGlobalVoxel(gi, gj, gk) != target {
			return MaximallyOutside()
		}
		return o.GetVoxel(gi, gj, gk)
	}
	newObj := buildFromVoxelFunc(o.voxelExtent, shape, voxelAt)

	o.transferAndClearRoot(newObj, pt, target, loChunk)

	if newObj.CountNonEmptyVoxels() < NonEmptyVoxelThreshold {
		o.ShrinkOccupiedRanges()
		o.ComputeAllDerivedState()
		return nil, false
	}

	newObj.ShrinkOccupiedRanges()
	newObj = maybeRepackTiny(newObj)
	newObj.ComputeAllDerivedState()
	o.ShrinkOccupiedRanges()
	o.ComputeAllDerivedState()
	return newObj, true
}

func (o *Object) rootAtGlobalVoxel(gi, gj, gk int) GlobalRegionLabel {
	ci, cj, ck := gi/ChunkSize, gj/ChunkSize, gk/ChunkSize
	if !o.inBounds(ci, cj, ck) {
		return invalidRegionLabel
	}
	idx := o.linearChunkIdx(ci, cj, ck)
	c := &o.chunks[idx]
	switch c.Kind {
	case ChunkUniform:
		return o.findRegionRoot(makeGlobalRegionLabel(uint32(idx), 0))
	case ChunkNonUniform:
		li, lj, lk := gi-ci*ChunkSize, gj-cj*ChunkSize, gk-ck*ChunkSize
		label := o.nonUniformRegionLabels(c.DataOffset)[linearVoxelIdxWithinChunk(li, lj, lk)]
		if label == EmptyVoxelLabel {
			return invalidRegionLabel
		}
		return o.findRegionRoot(makeGlobalRegionLabel(uint32(idx), label))
	default:
		return invalidRegionLabel
	}
}

// invalidRegionLabel can never equal a real root since chunk index 0's
// region 0xFF is never assigned (EmptyVoxelLabel is reserved).
const invalidRegionLabel = GlobalRegionLabel(EmptyVoxelLabel)

func (o *Object) chunkCountForRoot(root GlobalRegionLabel) int {
	count := 0
	seen := make(map[int]bool)
	o.forEachFilledRegion(func(label GlobalRegionLabel) {
		if o.findRegionRoot(label) != root {
			return
		}
		idx := int(label.chunkIdx())
		if !seen[idx] {
			seen[idx] = true
			count++
		}
	})
	return count
}

func (o *Object) chunkBoundsForRoot(root GlobalRegionLabel) (lo, hi [3]int, any bool) {
	lo = [3]int{1 << 30, 1 << 30, 1 << 30}
	hi = [3]int{-1, -1, -1}
	o.forEachFilledRegion(func(label GlobalRegionLabel) {
		if o.findRegionRoot(label) != root {
			return
		}
		ci, cj, ck := o.chunkCoordsFromLinearIdx(int(label.chunkIdx()))
		coords := [3]int{ci, cj, ck}
		for a := 0; a < 3; a++ {
			if coords[a] < lo[a] {
				lo[a] = coords[a]
			}
			if coords[a]+1 > hi[a] {
				hi[a] = coords[a] + 1
			}
		}
		any = true
	})
	return
}

// transferAndClearRoot moves every voxel belonging to root from o into
// dst (whose chunk (0,0,0) corresponds to o's chunk loChunk), invoking
// whole-chunk transfer hooks where an entire chunk belongs to root and
// per-voxel hooks otherwise, then deletes the transferred voxels from o.
func (o *Object) transferAndClearRoot(dst *Object, pt PropertyTransferrer, root GlobalRegionLabel, loChunk [3]int) {
	for idx := range o.chunks {
		c := &o.chunks[idx]
		if c.Kind == ChunkEmpty {
			continue
		}
		ci, cj, ck := o.chunkCoordsFromLinearIdx(idx)
		dstIdx := dst.linearChunkIdx(ci-loChunk[0], cj-loChunk[1], ck-loChunk[2])

		switch c.Kind {
		case ChunkUniform:
			if o.findRegionRoot(makeGlobalRegionLabel(uint32(idx), 0)) != root {
				continue
			}
			pt.TransferUniformChunk(o, dst, idx, dstIdx)
			o.chunks[idx] = ChunkDescriptor{Kind: ChunkEmpty}

		case ChunkNonUniform:
			labels := o.nonUniformRegionLabels(c.DataOffset)
			slab := o.nonUniformSlab(c.DataOffset)
			anyTarget, allTarget := false, true
			for _, label := range labels {
				if label == EmptyVoxelLabel {
					continue
				}
				if o.findRegionRoot(makeGlobalRegionLabel(uint32(idx), label)) == root {
					anyTarget = true
				} else {
					allTarget = false
				}
			}
			if !anyTarget {
				continue
			}
			if allTarget {
				pt.TransferNonUniformChunk(o, dst, idx, dstIdx)
				o.chunks[idx] = ChunkDescriptor{Kind: ChunkEmpty}
				continue
			}
			for lin := range slab {
				label := labels[lin]
				if label == EmptyVoxelLabel {
					continue
				}
				if o.findRegionRoot(makeGlobalRegionLabel(uint32(idx), label)) != root {
					continue
				}
				i, j, k := chunkVoxelIndicesFromLinearIdx(lin)
				gi, gj, gk := ci*ChunkSize+i, cj*ChunkSize+j, ck*ChunkSize+k
				pt.TransferVoxel(o, dst, gi, gj, gk, gi-loChunk[0]*ChunkSize, gj-loChunk[1]*ChunkSize, gk-loChunk[2]*ChunkSize)
				slab[lin] = MaximallyOutside()
				labels[lin] = EmptyVoxelLabel
			}
		}
	}
}

// maybeRepackTiny implements the 1x1x1 repack heuristic: an extracted
// object whose occupied voxels fit within ChunkSize-2 on every axis is
// rebuilt as a single chunk with a one-voxel empty border, so that
// distance-field style consumers still see continuity at its surface.
func maybeRepackTiny(o *Object) *Object {
	r := o.OccupiedChunkRanges()
	if r[0][1]-r[0][0] > 2 || r[1][1]-r[1][0] > 2 || r[2][1]-r[2][0] > 2 {
		return o
	}
	tight := o.DetermineTightOccupiedVoxelRanges()
	size := [3]int{tight[0][1] - tight[0][0], tight[1][1] - tight[1][0], tight[2][1] - tight[2][0]}
	if size[0] > ChunkSize-2 || size[1] > ChunkSize-2 || size[2] > ChunkSize-2 {
		return o
	}
	voxelAt := func(i, j, k int) Voxel {
		si, sj, sk := tight[0][0]+i-1, tight[1][0]+j-1, tight[2][0]+k-1
		if si < tight[0][0] || si >= tight[0][1] ||
			sj < tight[1][0] || sj >= tight[1][1] ||
			sk < tight[2][0] || sk >= tight[2][1] {
			return MaximallyOutside()
		}
		return o.GetVoxel(si, sj, sk)
	}
	return buildFromVoxelFunc(o.voxelExtent, [3]int{ChunkSize, ChunkSize, ChunkSize}, voxelAt)
}
