package voxel

// LogChunkSize is log2 of ChunkSize. CHUNK_SIZE is required to be a
// compile-time power of two; 16 matches the reference configuration.
const LogChunkSize = 4

// ChunkSize is the number of voxels across a cubic chunk.
const ChunkSize = 1 << LogChunkSize

// ChunkSizeSquared is the number of voxels on one face of a chunk.
const ChunkSizeSquared = ChunkSize * ChunkSize

// ChunkVoxelCount is the total number of voxels comprising a chunk.
const ChunkVoxelCount = ChunkSize * ChunkSize * ChunkSize

// NonEmptyVoxelThreshold is the minimum number of non-empty voxels a
// disconnected region must have to not be discarded by split-off.
const NonEmptyVoxelThreshold = 8

// logMaxRegionsPerChunk is the conservative ceiling on chunk-local regions:
// the theoretical checkerboard maximum (3*LogChunkSize - 1) minus a factor
// of 8, keeping region labels within a single byte.
const logMaxRegionsPerChunk = 3*LogChunkSize - 1 - 3

// ChunkMaxRegions is the maximum number of local regions tracked per chunk.
const ChunkMaxRegions = 1 << logMaxRegionsPerChunk

// ChunkMaxAdjacentRegionConnections is the maximum number of outgoing
// cross-chunk connections from all local regions in one chunk.
const ChunkMaxAdjacentRegionConnections = ChunkMaxRegions

// ChunkMaxBoundaryRegions is the maximum number of local regions in a
// chunk that may touch the chunk boundary.
const ChunkMaxBoundaryRegions = ChunkMaxAdjacentRegionConnections

// EmptyVoxelLabel is the local region label assigned to empty voxel cells.
const EmptyVoxelLabel LocalRegionLabel = 0xFF

// maxUsableRegionLabel is the highest local region label a real (non-empty)
// region may be assigned. It is one below EmptyVoxelLabel so that the
// saturating merge-on-overflow behavior described in spec.md section 4.2
// never produces a real region indistinguishable from the empty sentinel.
const maxUsableRegionLabel = LocalRegionLabel(ChunkMaxRegions - 2)

// LocalRegionLabel identifies a connected voxel region within one chunk.
type LocalRegionLabel = uint8

// LocalRegionCount counts LocalRegionLabels.
type LocalRegionCount = uint16
