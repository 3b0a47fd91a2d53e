package voxel

import "errors"

// ErrOutOfBounds is returned by ReadVolume/ReadWriteVolume implementations
// when an offset falls outside the volume's size. Mirrors the bounds
// check performed by validate_offset in the reference terrain/mod.rs.
var ErrOutOfBounds = errors.New("voxel: offset out of bounds")

// Volume is implemented by every chunk representation and by the
// tagged-union cluster built on top of them. Size reports the volume's
// extent in voxels along each axis.
type Volume interface {
	Size() VoxRelVec
}

// ReadVolume supports read access to individual voxels by relative
// offset, matching the reference's ReadVolume trait (at/at_unsafe).
type ReadVolume interface {
	Volume
	// At returns the block at rel, or ErrOutOfBounds if rel falls
	// outside Size().
	At(rel VoxRelVec) (Block, error)
	// AtUnsafe returns the block at rel without bounds checking; the
	// caller must have already validated rel against Size().
	AtUnsafe(rel VoxRelVec) Block
}

// ReadWriteVolume additionally supports mutation, matching the
// reference's ReadWriteVolume trait (replace_at/set_at/fill).
type ReadWriteVolume interface {
	ReadVolume
	// ReplaceAt sets rel to block and returns the previous value.
	ReplaceAt(rel VoxRelVec, block Block) (Block, error)
	// SetAt sets rel to block, discarding the previous value.
	SetAt(rel VoxRelVec, block Block) error
	// Fill sets every voxel in the volume to block.
	Fill(block Block)
}

// ConstructVolume builds representations of a fixed size, matching the
// reference's ConstructVolume trait (empty/filled).
type ConstructVolume interface {
	// Empty returns a representation of the given size filled with Air.
	Empty(size VoxRelVec) ReadWriteVolume
	// Filled returns a representation of the given size filled with block.
	Filled(size VoxRelVec, block Block) ReadWriteVolume
}

// SerializeVolume is implemented by representations that can be encoded
// to and decoded from bytes for persistence. In the reference this is a
// blanket impl over bincode Serialize/DeserializeOwned; here each
// representation implements it directly since there is no bincode
// equivalent in the pack (see DESIGN.md).
type SerializeVolume interface {
	ToBytes() []byte
	FromBytes(data []byte) error
}

// validateOffset checks rel against size, mirroring validate_offset in
// the reference terrain/mod.rs.
func validateOffset(rel, size VoxRelVec) error {
	if rel.X >= size.X || rel.Y >= size.Y || rel.Z >= size.Z {
		return ErrOutOfBounds
	}
	return nil
}
