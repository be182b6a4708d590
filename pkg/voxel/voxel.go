package voxel

// VoxelFlags is an 8-bit bitfield carried by every voxel cell: one bit
// marking the cell empty, and six marking which of its axis-aligned
// neighbors are non-empty.
type VoxelFlags uint8

const (
	FlagIsEmpty VoxelFlags = 1 << iota
	FlagHasAdjacentXDn
	FlagHasAdjacentXUp
	FlagHasAdjacentYDn
	FlagHasAdjacentYUp
	FlagHasAdjacentZDn
	FlagHasAdjacentZUp
)

// adjacencyFlagMask covers every HAS_ADJACENT_* bit, excluding FlagIsEmpty.
const adjacencyFlagMask = FlagHasAdjacentXDn | FlagHasAdjacentXUp |
	FlagHasAdjacentYDn | FlagHasAdjacentYUp | FlagHasAdjacentZDn | FlagHasAdjacentZUp

// Voxel is the smallest unit of the representation: a type id interpreted
// by an external registry, plus the adjacency/emptiness flags.
type Voxel struct {
	TypeID uint8
	Flags  VoxelFlags
}

// MaximallyOutside returns the canonical empty voxel.
func MaximallyOutside() Voxel {
	return Voxel{Flags: FlagIsEmpty}
}

// IsEmpty reports whether the voxel is the canonical empty cell.
func (v Voxel) IsEmpty() bool {
	return v.Flags&FlagIsEmpty != 0
}

// HasFlag reports whether the given adjacency/empty flag is set.
func (v Voxel) HasFlag(flag VoxelFlags) bool {
	return v.Flags&flag != 0
}

func fullyAdjacentVoxel(typeID uint8) Voxel {
	return Voxel{TypeID: typeID, Flags: adjacencyFlagMask}
}

// Dimension names one of the three coordinate axes.
type Dimension uint8

const (
	DimX Dimension = iota
	DimY
	DimZ
)

func (d Dimension) idx() int { return int(d) }

// Side names one of the two faces of a chunk along a Dimension.
type Side uint8

const (
	SideLower Side = iota
	SideUpper
)

func (s Side) opposite() Side {
	if s == SideLower {
		return SideUpper
	}
	return SideLower
}

func adjacentUpFlag(d Dimension) VoxelFlags {
	switch d {
	case DimX:
		return FlagHasAdjacentXUp
	case DimY:
		return FlagHasAdjacentYUp
	default:
		return FlagHasAdjacentZUp
	}
}

func adjacentDnFlag(d Dimension) VoxelFlags {
	switch d {
	case DimX:
		return FlagHasAdjacentXDn
	case DimY:
		return FlagHasAdjacentYDn
	default:
		return FlagHasAdjacentZDn
	}
}

func adjacentFlagForSide(d Dimension, side Side) VoxelFlags {
	if side == SideUpper {
		return adjacentUpFlag(d)
	}
	return adjacentDnFlag(d)
}
