package voxel

// ResolveConnectedRegionsBetweenAllChunks walks every pair of axis-adjacent
// chunks and unions the local regions that touch across the shared face,
// turning the per-chunk region forest into one global union-find over the
// whole object. Must run after RecomputeAllLocalRegions.
func ResolveConnectedRegionsBetweenAllChunks(o *Object) {
	for ci := 0; ci < o.chunkCounts[0]; ci++ {
		for cj := 0; cj < o.chunkCounts[1]; cj++ {
			for ck := 0; ck < o.chunkCounts[2]; ck++ {
				lowerIdx := o.linearChunkIdx(ci, cj, ck)
				if o.chunks[lowerIdx].Kind == ChunkEmpty {
					continue
				}
				coords := [3]int{ci, cj, ck}
				for d := Dimension(0); d < 3; d++ {
					coords[d]++
					if o.inBounds(coords[0], coords[1], coords[2]) {
						upperIdx := o.linearChunkIdx(coords[0], coords[1], coords[2])
						connectRegionsAcrossFace(o, lowerIdx, upperIdx, d)
					}
					coords[d]--
				}
			}
		}
	}
}

func faceLabelAt(o *Object, chunkIdx int, d Dimension, side Side, u, v int) (GlobalRegionLabel, bool) {
	c := &o.chunks[chunkIdx]
	switch c.Kind {
	case ChunkUniform:
		return makeGlobalRegionLabel(uint32(chunkIdx), 0), true
	case ChunkNonUniform:
		i, j, k := faceVoxelIndices(d, side, u, v)
		lin := linearVoxelIdxWithinChunk(i, j, k)
		label := o.nonUniformRegionLabels(c.DataOffset)[lin]
		if label == EmptyVoxelLabel {
			return 0, false
		}
		return makeGlobalRegionLabel(uint32(chunkIdx), label), true
	default:
		return 0, false
	}
}

func connectRegionsAcrossFace(o *Object, lowerIdx, upperIdx int, d Dimension) {
	if o.chunks[lowerIdx].Kind == ChunkEmpty || o.chunks[upperIdx].Kind == ChunkEmpty {
		return
	}
	type edge struct{ a, b GlobalRegionLabel }
	seen := make(map[edge]bool)
	for u := 0; u < ChunkSize; u++ {
		for v := 0; v < ChunkSize; v++ {
			lLabel, lok := faceLabelAt(o, lowerIdx, d, SideUpper, u, v)
			uLabel, uok := faceLabelAt(o, upperIdx, d, SideLower, u, v)
			if !lok || !uok {
				continue
			}
			o.unionRegions(lLabel, uLabel)
			e := edge{lLabel, uLabel}
			if seen[e] {
				continue
			}
			seen[e] = true
			o.recordConnection(lLabel, uLabel, d)
		}
	}
}

func (o *Object) recordConnection(a, b GlobalRegionLabel, d Dimension) {
	if o.connections == nil {
		o.connections = make(map[GlobalRegionLabel][]AdjacentRegionConnection)
	}
	o.connections[a] = append(o.connections[a], makeAdjacentRegionConnection(b.localRegion(), d, SideUpper))
	o.connections[b] = append(o.connections[b], makeAdjacentRegionConnection(a.localRegion(), d, SideLower))
}

// findRegionRoot follows Parent pointers with path compression and
// returns the representative label of a's connected region.
func (o *Object) findRegionRoot(a GlobalRegionLabel) GlobalRegionLabel {
	for {
		r := o.region(a)
		if r.Parent == a {
			return a
		}
		parent := o.region(r.Parent)
		if parent.Parent != r.Parent {
			r.Parent = parent.Parent
		}
		a = r.Parent
	}
}

func (o *Object) unionRegions(a, b GlobalRegionLabel) {
	ra, rb := o.findRegionRoot(a), o.findRegionRoot(b)
	if ra == rb {
		return
	}
	raRegion, rbRegion := o.region(ra), o.region(rb)
	if raRegion.VoxelCount < rbRegion.VoxelCount {
		ra, rb = rb, ra
		raRegion, rbRegion = rbRegion, raRegion
	}
	rbRegion.Parent = ra
}

// CountRegions returns the number of distinct globally-connected regions
// in the object.
func (o *Object) CountRegions() int {
	seen := make(map[GlobalRegionLabel]bool)
	o.forEachFilledRegion(func(label GlobalRegionLabel) {
		seen[o.findRegionRoot(label)] = true
	})
	return len(seen)
}

// FindTwoDisconnectedRegions returns the roots of any two distinct
// globally-connected regions in the object, and false if the object is
// empty or fully connected.
func (o *Object) FindTwoDisconnectedRegions() (GlobalRegionLabel, GlobalRegionLabel, bool) {
	var first GlobalRegionLabel
	haveFirst := false
	var result GlobalRegionLabel
	found := false
	o.forEachFilledRegion(func(label GlobalRegionLabel) {
		if found {
			return
		}
		root := o.findRegionRoot(label)
		if !haveFirst {
			first = root
			haveFirst = true
			return
		}
		if root != first {
			result = root
			found = true
		}
	})
	if !found {
		return 0, 0, false
	}
	return first, result, true
}

// forEachFilledRegion calls fn once for every region arena slot that was
// actually populated by RecomputeAllLocalRegions (VoxelCount > 0).
func (o *Object) forEachFilledRegion(fn func(label GlobalRegionLabel)) {
	for idx := range o.chunks {
		c := &o.chunks[idx]
		switch c.Kind {
		case ChunkUniform:
			fn(makeGlobalRegionLabel(uint32(idx), 0))
		case ChunkNonUniform:
			for local := LocalRegionLabel(0); local < LocalRegionLabel(c.Split.RegionCount); local++ {
				slot := o.regionArenaIndex(idx, c.Kind, c.DataOffset, local)
				if o.regions[slot].VoxelCount == 0 {
					continue
				}
				fn(makeGlobalRegionLabel(uint32(idx), local))
			}
		}
	}
}
