package voxel

import "testing"

func patternBlock(x, y, z int) Block {
	switch (x + y + z) % 4 {
	case 0:
		return NewBlock(Stone, 0)
	case 1:
		return NewBlock(Earth, 0)
	case 2:
		return NewBlock(Sand, 0)
	default:
		return AirBlock
	}
}

func buildPatternHetero(size VoxRelVec) *Heterogeneous {
	h := NewHeterogeneousEmpty(size)
	for x := 0; x < int(size.X); x++ {
		for y := 0; y < int(size.Y); y++ {
			for z := 0; z < int(size.Z); z++ {
				_ = h.SetAt(VoxRelVec{X: VoxRelType(x), Y: VoxRelType(y), Z: VoxRelType(z)}, patternBlock(x, y, z))
			}
		}
	}
	return h
}

// TestRleRoundTripPreservesPattern is spec.md §8 scenario S4: a 4x4x4
// volume filled with a STONE/EARTH/SAND/AIR pattern must come back
// voxel-identical after Hetero -> Rle -> Hetero.
func TestRleRoundTripPreservesPattern(t *testing.T) {
	size := VoxRelVec{X: 4, Y: 4, Z: 4}
	h := buildPatternHetero(size)

	rle := FromHeterogeneous(h)
	back := rle.ToHeterogeneous()

	for x := 0; x < int(size.X); x++ {
		for y := 0; y < int(size.Y); y++ {
			for z := 0; z < int(size.Z); z++ {
				rel := VoxRelVec{X: VoxRelType(x), Y: VoxRelType(y), Z: VoxRelType(z)}
				want, _ := h.At(rel)
				got, _ := back.At(rel)
				if want != got {
					t.Fatalf("voxel (%d,%d,%d): want %v, got %v", x, y, z, want, got)
				}
			}
		}
	}
}

// TestRleRoundTripWithTrailingNonAirRun exercises spec.md §9's open
// question about the Hetero->Rle walk: a column entirely filled with a
// non-AIR material must still flush its final run, since the walk
// always terminates on a z=size.Z sentinel rather than special-casing
// AIR as a terminator.
func TestRleRoundTripWithTrailingNonAirRun(t *testing.T) {
	size := VoxRelVec{X: 2, Y: 2, Z: 4}
	h := NewHeterogeneousEmpty(size)
	stone := NewBlock(Stone, 0)
	for x := 0; x < int(size.X); x++ {
		for y := 0; y < int(size.Y); y++ {
			for z := 0; z < int(size.Z); z++ {
				_ = h.SetAt(VoxRelVec{X: VoxRelType(x), Y: VoxRelType(y), Z: VoxRelType(z)}, stone)
			}
		}
	}

	rle := FromHeterogeneous(h)
	for x := 0; x < int(size.X); x++ {
		for y := 0; y < int(size.Y); y++ {
			col := rle.columns[columnIndex(x, y, size)]
			total := 0
			for _, run := range col {
				if run.Block != stone {
					t.Fatalf("column (%d,%d): expected only stone runs, got %v", x, y, run.Block)
				}
				total += run.Len()
			}
			if total != int(size.Z) {
				t.Fatalf("column (%d,%d): expected trailing run to cover all %d voxels, covered %d", x, y, size.Z, total)
			}
		}
	}

	back := rle.ToHeterogeneous()
	for x := 0; x < int(size.X); x++ {
		for y := 0; y < int(size.Y); y++ {
			for z := 0; z < int(size.Z); z++ {
				rel := VoxRelVec{X: VoxRelType(x), Y: VoxRelType(y), Z: VoxRelType(z)}
				got, _ := back.At(rel)
				if got != stone {
					t.Fatalf("voxel (%d,%d,%d): want stone, got %v", x, y, z, got)
				}
			}
		}
	}
}

// TestRleBytesRoundTrip confirms the on-disk body is self-describing:
// decoding recovers the size triplet with no out-of-band size argument.
func TestRleBytesRoundTrip(t *testing.T) {
	size := VoxRelVec{X: 4, Y: 4, Z: 4}
	h := buildPatternHetero(size)
	rle := FromHeterogeneous(h)

	data := rle.ToBytes()
	decoded := &Rle{}
	if err := decoded.FromBytes(data); err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if decoded.size != size {
		t.Fatalf("expected decoded size %v, got %v", size, decoded.size)
	}

	back := decoded.ToHeterogeneous()
	for x := 0; x < int(size.X); x++ {
		for y := 0; y < int(size.Y); y++ {
			for z := 0; z < int(size.Z); z++ {
				rel := VoxRelVec{X: VoxRelType(x), Y: VoxRelType(y), Z: VoxRelType(z)}
				want, _ := h.At(rel)
				got, _ := back.At(rel)
				if want != got {
					t.Fatalf("voxel (%d,%d,%d) after byte round-trip: want %v, got %v", x, y, z, want, got)
				}
			}
		}
	}
}
