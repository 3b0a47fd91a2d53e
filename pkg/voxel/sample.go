package voxel

import "errors"

// ErrChunkMissing indicates a chunk the sample needed is not present in
// the manager's live map at all.
var ErrChunkMissing = errors.New("voxel: chunk missing")

// ErrCannotGetLock indicates a chunk the sample needed exists but its
// data lock could not be acquired without blocking.
var ErrCannotGetLock = errors.New("voxel: cannot acquire chunk lock")

// Sample is a read-only view spanning every chunk that intersects a
// requested absolute voxel range, holding a read lock on each chunk's
// cluster for the sample's lifetime. Grounded on ChunkSample in the
// reference chunk/sample.rs.
type Sample struct {
	chunkSize int
	clusters  map[VolumeIdxVec]*Cluster
	unlocks   []func()
}

// NewSample creates an empty sample for the given chunk size, ready to
// have chunks added via Insert. Used by pkg/terrain to assemble a
// cross-chunk view before handing it to a consumer.
func NewSample(chunkSize int) *Sample {
	return &Sample{chunkSize: chunkSize, clusters: make(map[VolumeIdxVec]*Cluster)}
}

// Insert adds a chunk's cluster to the sample along with the function
// that releases whatever lock was taken to read it.
func (s *Sample) Insert(idx VolumeIdxVec, cluster *Cluster, unlock func()) {
	s.clusters[idx] = cluster
	s.unlocks = append(s.unlocks, unlock)
}

// Release drops every read lock the sample is holding. Callers must call
// this exactly once when done with the sample.
func (s *Sample) Release() {
	for _, u := range s.unlocks {
		u()
	}
	s.unlocks = nil
}

// At returns the block at an absolute voxel coordinate, resolving which
// chunk it falls in and erroring if that chunk was not included in the
// sample.
func (s *Sample) At(abs VoxAbsVec) (Block, error) {
	idx := VoxAbsToVolIdx(abs, s.chunkSize)
	cluster, ok := s.clusters[idx]
	if !ok {
		return 0, ErrChunkMissing
	}
	rel := VoxAbsToVoxRel(abs, s.chunkSize)
	return cluster.GetPhysical().At(rel)
}

// AtUnsafe is like At but assumes abs falls within a chunk the sample
// holds; it panics (via a nil-pointer dereference of the missing
// cluster) if that invariant is violated by the caller.
func (s *Sample) AtUnsafe(abs VoxAbsVec) Block {
	idx := VoxAbsToVolIdx(abs, s.chunkSize)
	rel := VoxAbsToVoxRel(abs, s.chunkSize)
	return s.clusters[idx].GetPhysical().AtUnsafe(rel)
}

// Iter walks every absolute voxel coordinate in [min, max) (inclusive
// min, exclusive max on each axis), yielding it and its block to fn.
// Stops early if fn returns false. Mirrors ChunkSampleIter's
// chunk-boundary-aware walk in the reference, simplified here since Go's
// flat map-of-clusters makes per-voxel resolution a single lookup rather
// than requiring explicit wraparound bookkeeping.
func (s *Sample) Iter(min, max VoxAbsVec, fn func(abs VoxAbsVec, b Block) bool) {
	for x := min.X; x < max.X; x++ {
		for y := min.Y; y < max.Y; y++ {
			for z := min.Z; z < max.Z; z++ {
				abs := VoxAbsVec{X: x, Y: y, Z: z}
				b, err := s.At(abs)
				if err != nil {
					continue
				}
				if !fn(abs, b) {
					return
				}
			}
		}
	}
}
