package voxel

import (
	"fmt"
	"os"
	"path/filepath"
)

// SavePath returns the on-disk path for a chunk, following the
// c{x},{y},{z}.dat naming convention from spec.md §4.10.
func SavePath(root string, idx VolumeIdxVec) string {
	return filepath.Join(root, fmt.Sprintf("c%d,%d,%d.dat", idx.X, idx.Y, idx.Z))
}

// SaveChunk writes a cluster's serialized form to disk atomically: the
// body is written to a temporary file in the same directory and then
// renamed over the final path, so a reader never observes a partial
// write. Grounded on the persistence glue described in the reference
// vol_pers.rs, simplified to direct per-chunk files (no hot/cold tiering
// — see DESIGN.md Open Question decisions).
func SaveChunk(root string, idx VolumeIdxVec, cluster *Cluster) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}
	final := SavePath(root, idx)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, cluster.ToBytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, final)
}

// LoadChunk reads and decodes a previously saved chunk. Callers should
// treat any error (including os.ErrNotExist) as "regenerate this chunk"
// — this package never regenerates on the caller's behalf, since world
// generation is the host's responsibility (spec.md §1 Non-goals). The
// chunk's size is recovered from the file itself (see ClusterFromBytes),
// not supplied by the caller.
func LoadChunk(root string, idx VolumeIdxVec) (*Cluster, error) {
	data, err := os.ReadFile(SavePath(root, idx))
	if err != nil {
		return nil, err
	}
	return ClusterFromBytes(data)
}
