package voxel

// Generator produces the voxels for a new Object. Implementations describe
// a rectangular grid of voxels in their own local units; Generate samples
// VoxelAt once per grid cell and never mutates the generator.
type Generator interface {
	// VoxelExtent returns the side length of one voxel in the generator's
	// own world units.
	VoxelExtent() float64

	// GridShape returns the number of voxels along each axis. It need not
	// be a multiple of ChunkSize; Generate pads the remainder of boundary
	// chunks with empty voxels.
	GridShape() [3]int

	// VoxelAt returns the voxel at grid cell (i, j, k). Coordinates are
	// always within [0, GridShape()).
	VoxelAt(i, j, k int) Voxel
}

// UniformBoxGenerator fills its entire grid with a single voxel type, or,
// with Hollow set, only the outer walls HollowN voxels thick. It is a
// minimal Generator used by tests and cmd/voxelgen to produce a known
// shape without depending on a real world generator.
type UniformBoxGenerator struct {
	Extent  float64
	Shape   [3]int
	TypeID  uint8
	Hollow  bool
	HollowN int // wall thickness when Hollow is set; 0 means 1
}

func (g *UniformBoxGenerator) VoxelExtent() float64 { return g.Extent }
func (g *UniformBoxGenerator) GridShape() [3]int     { return g.Shape }

func (g *UniformBoxGenerator) VoxelAt(i, j, k int) Voxel {
	if !g.Hollow {
		return fullyAdjacentVoxel(g.TypeID)
	}
	wall := g.HollowN
	if wall <= 0 {
		wall = 1
	}
	onBoundary := i < wall || j < wall || k < wall ||
		i >= g.Shape[0]-wall || j >= g.Shape[1]-wall || k >= g.Shape[2]-wall
	if onBoundary {
		return fullyAdjacentVoxel(g.TypeID)
	}
	return MaximallyOutside()
}

// SphereGenerator fills a sphere inscribed in its grid with a single voxel
// type, leaving the rest empty. Grounded on the sphere-mesh scenario
// referenced by the original Rust test suite for split detection.
type SphereGenerator struct {
	Extent float64
	Shape  [3]int
	TypeID uint8
}

func (g *SphereGenerator) VoxelExtent() float64 { return g.Extent }
func (g *SphereGenerator) GridShape() [3]int     { return g.Shape }

func (g *SphereGenerator) VoxelAt(i, j, k int) Voxel {
	cx := float64(g.Shape[0]-1) / 2
	cy := float64(g.Shape[1]-1) / 2
	cz := float64(g.Shape[2]-1) / 2
	r := (cx + cy + cz) / 3
	dx := float64(i) - cx
	dy := float64(j) - cy
	dz := float64(k) - cz
	if dx*dx+dy*dy+dz*dz <= r*r {
		return fullyAdjacentVoxel(g.TypeID)
	}
	return MaximallyOutside()
}
