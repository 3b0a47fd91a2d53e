package voxel

import "encoding/binary"

// Heterogeneous is a dense flat-array chunk representation, one Block
// per voxel. Grounded on the teacher's Chunk.Blocks []BlockType plus
// LocalToIndex, generalized to the x*Y*Z+y*Z+z layout used by the
// reference HeterogeneousData.calculate_index in chunk/hetero.rs.
type Heterogeneous struct {
	size   VoxRelVec
	voxels []Block
}

// NewHeterogeneousEmpty builds an all-Air Heterogeneous volume.
func NewHeterogeneousEmpty(size VoxRelVec) *Heterogeneous {
	n := int(size.X) * int(size.Y) * int(size.Z)
	return &Heterogeneous{size: size, voxels: make([]Block, n)}
}

// NewHeterogeneousFilled builds a Heterogeneous volume pre-filled with
// block.
func NewHeterogeneousFilled(size VoxRelVec, block Block) *Heterogeneous {
	h := NewHeterogeneousEmpty(size)
	h.Fill(block)
	return h
}

func (h *Heterogeneous) Size() VoxRelVec { return h.size }

func (h *Heterogeneous) index(rel VoxRelVec) int {
	return int(rel.X)*int(h.size.Y)*int(h.size.Z) + int(rel.Y)*int(h.size.Z) + int(rel.Z)
}

func (h *Heterogeneous) At(rel VoxRelVec) (Block, error) {
	if err := validateOffset(rel, h.size); err != nil {
		return 0, err
	}
	return h.voxels[h.index(rel)], nil
}

func (h *Heterogeneous) AtUnsafe(rel VoxRelVec) Block {
	return h.voxels[h.index(rel)]
}

func (h *Heterogeneous) ReplaceAt(rel VoxRelVec, block Block) (Block, error) {
	if err := validateOffset(rel, h.size); err != nil {
		return 0, err
	}
	idx := h.index(rel)
	prev := h.voxels[idx]
	h.voxels[idx] = block
	return prev, nil
}

func (h *Heterogeneous) SetAt(rel VoxRelVec, block Block) error {
	_, err := h.ReplaceAt(rel, block)
	return err
}

func (h *Heterogeneous) Fill(block Block) {
	for i := range h.voxels {
		h.voxels[i] = block
	}
}

// IsHomogeneous reports whether every voxel holds the same block, the
// condition under which a Heterogeneous chunk can be losslessly demoted
// back to Homogeneous.
func (h *Heterogeneous) IsHomogeneous() (Block, bool) {
	if len(h.voxels) == 0 {
		return AirBlock, true
	}
	first := h.voxels[0]
	for _, v := range h.voxels[1:] {
		if v != first {
			return 0, false
		}
	}
	return first, true
}

// ToBytes encodes every voxel as a little-endian uint16, in flat-index
// order.
func (h *Heterogeneous) ToBytes() []byte {
	buf := make([]byte, len(h.voxels)*2)
	for i, v := range h.voxels {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}
	return buf
}

// FromBytes decodes a body previously written by ToBytes. h.size must
// already be set by the caller.
func (h *Heterogeneous) FromBytes(data []byte) error {
	n := int(h.size.X) * int(h.size.Y) * int(h.size.Z)
	if len(data) < n*2 {
		return ErrSerialization
	}
	h.voxels = make([]Block, n)
	for i := range h.voxels {
		h.voxels[i] = Block(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return nil
}
