package voxel

import "testing"

func TestSaveLoadChunkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	size := VoxRelVec{X: 4, Y: 4, Z: 4}
	idx := VolumeIdxVec{X: 1, Y: -2, Z: 3}

	original := NewClusterHomogeneous(size, NewBlock(Stone, 0))
	if err := SaveChunk(dir, idx, original); err != nil {
		t.Fatalf("SaveChunk: %v", err)
	}

	loaded, err := LoadChunk(dir, idx)
	if err != nil {
		t.Fatalf("LoadChunk: %v", err)
	}
	if loaded.Size() != size {
		t.Fatalf("expected loaded size %v, got %v", size, loaded.Size())
	}
	got, err := loaded.Get(VoxRelVec{X: 2, Y: 2, Z: 2})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Material() != Stone {
		t.Fatalf("expected stone, got %v", got.Material())
	}
}

func TestLoadChunkMissingReturnsError(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadChunk(dir, VolumeIdxVec{X: 9, Y: 9, Z: 9}); err == nil {
		t.Fatal("expected an error loading a chunk that was never saved")
	}
}
