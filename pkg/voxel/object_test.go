package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteForceCountRegions independently verifies CountRegions by flood
// filling the dense voxel grid with 6-connectivity, the way the original
// implementation's own test suite cross-checks the split detector.
func bruteForceCountRegions(o *Object) int {
	r := o.OccupiedVoxelRanges()
	type cell struct{ i, j, k int }
	visited := make(map[cell]bool)
	count := 0
	var stack []cell
	for i := r[0][0]; i < r[0][1]; i++ {
		for j := r[1][0]; j < r[1][1]; j++ {
			for k := r[2][0]; k < r[2][1]; k++ {
				c := cell{i, j, k}
				if visited[c] || o.GetVoxel(i, j, k).IsEmpty() {
					continue
				}
				count++
				stack = append(stack[:0], c)
				visited[c] = true
				for len(stack) > 0 {
					cur := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					deltas := [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
					for _, d := range deltas {
						n := cell{cur.i + d[0], cur.j + d[1], cur.k + d[2]}
						if visited[n] || n.i < r[0][0] || n.i >= r[0][1] ||
							n.j < r[1][0] || n.j >= r[1][1] || n.k < r[2][0] || n.k >= r[2][1] {
							continue
						}
						if o.GetVoxel(n.i, n.j, n.k).IsEmpty() {
							continue
						}
						visited[n] = true
						stack = append(stack, n)
					}
				}
			}
		}
	}
	return count
}

func TestGenerateSolidBoxIsOneRegion(t *testing.T) {
	gen := &UniformBoxGenerator{Extent: 1, Shape: [3]int{20, 18, 22}, TypeID: 1}
	o := Generate(gen)
	assert.Equal(t, 1, o.CountRegions())
	assert.Equal(t, bruteForceCountRegions(o), o.CountRegions())
	assert.False(t, o.IsEffectivelyEmpty())
}

// emptyGenerator produces a grid with no non-empty voxels anywhere.
type emptyGenerator struct {
	shape [3]int
}

func (g *emptyGenerator) VoxelExtent() float64      { return 1 }
func (g *emptyGenerator) GridShape() [3]int         { return g.shape }
func (g *emptyGenerator) VoxelAt(i, j, k int) Voxel { return MaximallyOutside() }

func TestGenerateEmptyGridIsEffectivelyEmpty(t *testing.T) {
	gen := &emptyGenerator{shape: [3]int{16, 16, 16}}
	o := Generate(gen)
	assert.True(t, o.IsEffectivelyEmpty())
	assert.Equal(t, 0, o.CountRegions())
}

// twoBoxesGenerator places two disjoint solid boxes separated by at least
// one empty voxel, one per half of a grid split along X.
type twoBoxesGenerator struct {
	shape [3]int
}

func (g *twoBoxesGenerator) VoxelExtent() float64 { return 1 }
func (g *twoBoxesGenerator) GridShape() [3]int     { return g.shape }
func (g *twoBoxesGenerator) VoxelAt(i, j, k int) Voxel {
	mid := g.shape[0] / 2
	if i < mid-1 || i >= mid+1 {
		return fullyAdjacentVoxel(1)
	}
	return MaximallyOutside()
}

func TestGenerateTwoBoxesAreTwoRegions(t *testing.T) {
	gen := &twoBoxesGenerator{shape: [3]int{34, 20, 20}}
	o := Generate(gen)
	assert.Equal(t, 2, o.CountRegions())
	assert.Equal(t, bruteForceCountRegions(o), o.CountRegions())

	a, b, ok := o.FindTwoDisconnectedRegions()
	require.True(t, ok)
	assert.NotEqual(t, a, b)
}

func TestSplitOffDisconnectedRegionConservesVoxels(t *testing.T) {
	gen := &twoBoxesGenerator{shape: [3]int{34, 20, 20}}
	o := Generate(gen)
	before := o.CountNonEmptyVoxels()

	split, ok := SplitOffAnyDisconnectedRegion(o)
	require.True(t, ok)
	require.NotNil(t, split)

	assert.Equal(t, 1, o.CountRegions())
	assert.Equal(t, 1, split.CountRegions())
	assert.Equal(t, before, o.CountNonEmptyVoxels()+split.CountNonEmptyVoxels())

	_, _, stillDisconnected := o.FindTwoDisconnectedRegions()
	assert.False(t, stillDisconnected)
	_, _, splitDisconnected := split.FindTwoDisconnectedRegions()
	assert.False(t, splitDisconnected)
}

func TestSplitOffReturnsFalseWhenAlreadyConnected(t *testing.T) {
	gen := &UniformBoxGenerator{Extent: 1, Shape: [3]int{20, 20, 20}, TypeID: 1}
	o := Generate(gen)
	_, ok := SplitOffAnyDisconnectedRegion(o)
	assert.False(t, ok)
}

func TestInteriorChunkOfLargeSolidBoxIsFullyObscured(t *testing.T) {
	gen := &UniformBoxGenerator{Extent: 1, Shape: [3]int{ChunkSize * 3, ChunkSize * 3, ChunkSize * 3}, TypeID: 1}
	o := Generate(gen)

	interior, ok := o.GetChunk(1, 1, 1)
	require.True(t, ok)
	for d := Dimension(0); d < 3; d++ {
		for _, side := range [2]Side{SideLower, SideUpper} {
			assert.True(t, interior.isObscured(d, side))
		}
	}

	corner, ok := o.GetChunk(0, 0, 0)
	require.True(t, ok)
	assert.False(t, corner.isObscured(DimX, SideLower))
}

func TestValidateAdjacencyFlagsMatchNeighborEmptiness(t *testing.T) {
	gen := &twoBoxesGenerator{shape: [3]int{34, 20, 20}}
	o := Generate(gen)
	r := o.OccupiedVoxelRanges()
	for i := r[0][0]; i < r[0][1]; i++ {
		for j := r[1][0]; j < r[1][1]; j++ {
			for k := r[2][0]; k < r[2][1]; k++ {
				v := o.GetVoxel(i, j, k)
				if v.IsEmpty() {
					continue
				}
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
						want := !o.GetVoxel(ni, nj, nk).IsEmpty()
						got := v.HasFlag(adjacentFlagForSide(d, side))
						assert.Equal(t, want, got)
					}
				}
			}
		}
	}
}
