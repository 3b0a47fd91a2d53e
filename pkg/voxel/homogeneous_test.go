package voxel

import "testing"

func TestHomogeneousBytesRoundTrip(t *testing.T) {
	size := VoxRelVec{X: 8, Y: 8, Z: 8}
	h := NewHomogeneous(size, NewBlock(Sand, 3))

	data := h.ToBytes()
	decoded := &Homogeneous{}
	if err := decoded.FromBytes(data); err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if decoded.size != size {
		t.Fatalf("expected decoded size %v, got %v", size, decoded.size)
	}
	if decoded.block != h.block {
		t.Fatalf("expected decoded block %v, got %v", h.block, decoded.block)
	}
}

func TestHomogeneousFromBytesRejectsShortBody(t *testing.T) {
	decoded := &Homogeneous{}
	if err := decoded.FromBytes([]byte{1, 2, 3}); err != ErrSerialization {
		t.Fatalf("expected ErrSerialization, got %v", err)
	}
}
