package voxel

// TypeRegistry is the external registry a Voxel's TypeID is interpreted
// against. BlockType (block.go) is this object's registry: its values fit
// in the same byte Voxel.TypeID carries, so conversion is a plain cast.
type TypeRegistry interface {
	IsSolid(typeID uint8) bool
	IsTransparent(typeID uint8) bool
}

// blockTypeRegistry adapts BlockType's properties table to TypeRegistry.
type blockTypeRegistry struct{}

func (blockTypeRegistry) IsSolid(typeID uint8) bool       { return BlockType(typeID).IsSolid() }
func (blockTypeRegistry) IsTransparent(typeID uint8) bool { return BlockType(typeID).IsTransparent() }

// DefaultTypeRegistry is the BlockType-backed registry used throughout
// this module.
var DefaultTypeRegistry TypeRegistry = blockTypeRegistry{}

// NewVoxel builds a non-empty voxel of the given block type with no
// adjacency flags set; callers that know the voxel is interior to a solid
// region should use fullyAdjacentVoxel instead.
func NewVoxel(b BlockType) Voxel {
	return Voxel{TypeID: uint8(b)}
}

// BlockType returns the voxel's type id reinterpreted as a BlockType.
func (v Voxel) BlockType() BlockType {
	return BlockType(v.TypeID)
}
