package voxel

// VoxAbsType is the absolute voxel coordinate type, spanning the whole
// world grid.
type VoxAbsType = int64

// VoxRelType is a coordinate relative to a chunk's own origin.
type VoxRelType = uint16

// VolumeIdxType indexes a chunk within the chunk grid.
type VolumeIdxType = int32

// Integer is the set of integer types Vec3 is instantiated over in this
// package (VoxAbsType, VolumeIdxType and plain int for sizes/indices).
type Integer interface {
	~int | ~int32 | ~int64 | ~uint16
}

// Vec3 is a generic three-component integer vector. The pack carries no
// library offering generic integer vector math (go-gl/mathgl is
// float32-only); this is the idiomatic Go 1.24 stand-in, grounded on the
// shape of ChunkCoord in the teacher's coord.go.
type Vec3[T Integer] struct {
	X, Y, Z T
}

// Add returns the component-wise sum.
func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference.
func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// VolumeIdxVec identifies a chunk in the chunk grid.
type VolumeIdxVec = Vec3[VolumeIdxType]

// VoxAbsVec is an absolute voxel coordinate.
type VoxAbsVec = Vec3[VoxAbsType]

// VoxRelVec is a voxel coordinate relative to its containing chunk.
type VoxRelVec = Vec3[VoxRelType]

// ediv is Euclidean integer division: the quotient always rounds toward
// negative infinity, so voxels below the origin map to chunk index -1,
// -2, ... rather than wrapping back toward 0. Mirrors the negative-aware
// remainder handling in the teacher's WorldToLocalCoord.
func ediv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// emod is the Euclidean remainder paired with ediv: always in [0, b).
func emod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// VoxAbsToVolIdx maps an absolute voxel coordinate to the chunk index
// that contains it, given the chunk edge length.
func VoxAbsToVolIdx(v VoxAbsVec, chunkSize int) VolumeIdxVec {
	cs := int64(chunkSize)
	return VolumeIdxVec{
		X: VolumeIdxType(ediv(v.X, cs)),
		Y: VolumeIdxType(ediv(v.Y, cs)),
		Z: VolumeIdxType(ediv(v.Z, cs)),
	}
}

// VoxAbsToVoxRel maps an absolute voxel coordinate to its position
// relative to the chunk that contains it.
func VoxAbsToVoxRel(v VoxAbsVec, chunkSize int) VoxRelVec {
	cs := int64(chunkSize)
	return VoxRelVec{
		X: VoxRelType(emod(v.X, cs)),
		Y: VoxRelType(emod(v.Y, cs)),
		Z: VoxRelType(emod(v.Z, cs)),
	}
}

// VolIdxToVoxAbs returns the absolute coordinate of a chunk's origin
// corner (its minimum voxel).
func VolIdxToVoxAbs(idx VolumeIdxVec, chunkSize int) VoxAbsVec {
	cs := int64(chunkSize)
	return VoxAbsVec{
		X: int64(idx.X) * cs,
		Y: int64(idx.Y) * cs,
		Z: int64(idx.Z) * cs,
	}
}

// LocalToIndex converts a relative voxel coordinate to a flat array
// index using x*Y*Z + y*Z + z layout, matching the Heterogeneous
// representation's calculate_index in the reference chunk/hetero.rs.
func LocalToIndex(rel VoxRelVec, chunkSize int) int {
	cs := chunkSize
	return int(rel.X)*cs*cs + int(rel.Y)*cs + int(rel.Z)
}

// IndexToLocal is the inverse of LocalToIndex.
func IndexToLocal(index, chunkSize int) VoxRelVec {
	cs := chunkSize
	x := index / (cs * cs)
	rem := index % (cs * cs)
	y := rem / cs
	z := rem % cs
	return VoxRelVec{X: VoxRelType(x), Y: VoxRelType(y), Z: VoxRelType(z)}
}
