package voxel

import "encoding/binary"

// Homogeneous is a chunk entirely filled with one block, stored in O(1)
// space. Grounded on Chunk::Homo(HomogeneousData) in the reference
// chunk/cluster.rs.
type Homogeneous struct {
	size  VoxRelVec
	block Block
}

// NewHomogeneous builds a Homogeneous volume of the given size filled
// with block.
func NewHomogeneous(size VoxRelVec, block Block) *Homogeneous {
	return &Homogeneous{size: size, block: block}
}

func (h *Homogeneous) Size() VoxRelVec { return h.size }

func (h *Homogeneous) At(rel VoxRelVec) (Block, error) {
	if err := validateOffset(rel, h.size); err != nil {
		return 0, err
	}
	return h.block, nil
}

func (h *Homogeneous) AtUnsafe(rel VoxRelVec) Block { return h.block }

// Block returns the single block value filling this chunk.
func (h *Homogeneous) Block() Block { return h.block }

// ToBytes encodes the body used after the format tag byte: the chunk's
// size triplet (little-endian u16 x, y, z) followed by the 16-bit block
// value, so the body is self-describing per spec.md §6 rather than
// relying on the caller already knowing the chunk size.
func (h *Homogeneous) ToBytes() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[0:], uint16(h.size.X))
	binary.LittleEndian.PutUint16(buf[2:], uint16(h.size.Y))
	binary.LittleEndian.PutUint16(buf[4:], uint16(h.size.Z))
	binary.LittleEndian.PutUint16(buf[6:], uint16(h.block))
	return buf
}

// FromBytes decodes a Homogeneous body previously written by ToBytes,
// recovering h.size from the leading size triplet rather than requiring
// the caller to supply it out of band.
func (h *Homogeneous) FromBytes(data []byte) error {
	if len(data) < 8 {
		return ErrSerialization
	}
	h.size = VoxRelVec{
		X: VoxRelType(binary.LittleEndian.Uint16(data[0:])),
		Y: VoxRelType(binary.LittleEndian.Uint16(data[2:])),
		Z: VoxRelType(binary.LittleEndian.Uint16(data[4:])),
	}
	h.block = Block(binary.LittleEndian.Uint16(data[6:]))
	return nil
}
