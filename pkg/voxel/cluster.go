package voxel

import "errors"

// ErrSerialization indicates a chunk body could not be decoded — a
// format tag collision, a short read, or malformed run data.
var ErrSerialization = errors.New("voxel: serialization error")

// ErrNotConvertible is returned when a requested representation cannot
// be derived from the cluster's current state.
var ErrNotConvertible = errors.New("voxel: representation not available")

// State names which representation(s) a Cluster currently holds,
// mirroring the reference's Chunk enum discriminant in chunk/cluster.rs.
type State uint8

const (
	StateHomo State = iota
	StateHetero
	StateRle
	StateHeteroAndRle
)

// Cluster is the tagged-union chunk representation: at any time it holds
// exactly one of {Homo}, {Hetero}, {Rle}, or both {Hetero, Rle} kept in
// sync. Grounded on the Chunk enum (Homo/Hetero/Rle/HeteroAndRle) in the
// reference chunk/cluster.rs, reimplemented as a Go struct with an
// explicit State tag and switch dispatch in place of Rust's sealed enum
// — see spec.md Design Note 2.
type Cluster struct {
	size  VoxRelVec
	state State
	homo  *Homogeneous
	het   *Heterogeneous
	rle   *Rle
}

// NewClusterHomogeneous builds a cluster in the Homogeneous state.
func NewClusterHomogeneous(size VoxRelVec, block Block) *Cluster {
	return &Cluster{size: size, state: StateHomo, homo: NewHomogeneous(size, block)}
}

// NewClusterHeterogeneous builds a cluster in the Heterogeneous state
// from an existing dense volume.
func NewClusterHeterogeneous(h *Heterogeneous) *Cluster {
	return &Cluster{size: h.Size(), state: StateHetero, het: h}
}

func (c *Cluster) Size() VoxRelVec { return c.size }

// State reports which representation(s) are currently live.
func (c *Cluster) State() State { return c.state }

// Contains reports whether the cluster currently holds representation s.
func (c *Cluster) Contains(s State) bool {
	switch s {
	case StateHomo:
		return c.homo != nil
	case StateHetero:
		return c.het != nil
	case StateRle:
		return c.rle != nil
	case StateHeteroAndRle:
		return c.het != nil && c.rle != nil
	}
	return false
}

// Convert ensures the cluster holds representation target, deriving it
// from whatever is currently available. Converting to Homo succeeds only
// when every voxel holds the same block, and then drops Hetero and Rle;
// converting to Hetero or Rle drops Homo, and an existing Rle or Hetero
// body is kept alongside the new one as HeteroAndRle. Mirrors
// VolCluster's convert in the reference.
func (c *Cluster) Convert(target State) error {
	if c.Contains(target) {
		return nil
	}
	switch target {
	case StateHomo:
		het := c.heteroView()
		block, ok := het.IsHomogeneous()
		if !ok {
			return ErrNotConvertible
		}
		c.homo = NewHomogeneous(c.size, block)
		c.het, c.rle = nil, nil
	case StateHetero:
		c.het = c.heteroView()
		c.homo = nil
	case StateRle:
		c.rle = FromHeterogeneous(c.heteroView())
		c.homo = nil
	default:
		return ErrNotConvertible
	}
	if c.het != nil && c.rle != nil {
		c.state = StateHeteroAndRle
	} else {
		c.state = target
	}
	return nil
}

// heteroView returns (materializing if needed) a Heterogeneous view of
// the cluster's current contents, without altering c.state.
func (c *Cluster) heteroView() *Heterogeneous {
	switch {
	case c.het != nil:
		return c.het
	case c.homo != nil:
		return NewHeterogeneousFilled(c.size, c.homo.Block())
	case c.rle != nil:
		return c.rle.ToHeterogeneous()
	}
	panic("voxel: cluster has no representation")
}

// Get reads the block at rel from the best available representation.
func (c *Cluster) Get(rel VoxRelVec) (Block, error) {
	if err := validateOffset(rel, c.size); err != nil {
		return 0, err
	}
	switch {
	case c.homo != nil:
		return c.homo.block, nil
	case c.het != nil:
		return c.het.AtUnsafe(rel), nil
	case c.rle != nil:
		return c.rle.AtUnsafe(rel), nil
	}
	panic("voxel: cluster has no representation")
}

// Insert writes block at rel. Per the reference's insert semantics, any
// mutation invalidates representations that would go stale: every write
// leaves the cluster holding only Hetero, dropping Homo and Rle even when
// the chunk stays uniform.
func (c *Cluster) Insert(rel VoxRelVec, block Block) (Block, error) {
	het := c.heteroView()
	prev, err := het.ReplaceAt(rel, block)
	if err != nil {
		return 0, err
	}
	c.het = het
	c.homo = nil
	c.rle = nil
	c.state = StateHetero
	return prev, nil
}

// Remove resets rel to Air; semantically identical to Insert(rel, AirBlock)
// but named separately to mirror the reference's VolCluster::remove.
func (c *Cluster) Remove(rel VoxRelVec) (Block, error) {
	return c.Insert(rel, AirBlock)
}

// GetVol returns the cluster's preferred representation for bulk reads:
// Hetero if present, else Homo, else Rle, without materializing anything.
// Mirrors get_vol/prefered_read in the reference.
func (c *Cluster) GetVol() ReadVolume {
	if c.het != nil {
		return c.het
	}
	if c.homo != nil {
		return c.homo
	}
	return c.rle
}

// GetPhysical returns the representation physics sampling should read
// from: always a dense Hetero view, materializing one if necessary
// without mutating the cluster's stored state. Mirrors get_physical in
// the reference, used by the collision/physics components' block
// lookups.
func (c *Cluster) GetPhysical() ReadVolume {
	return c.heteroView()
}

// GetSerializable returns the representation best suited to on-disk
// persistence: Homo if the cluster holds a Homo representation, else Rle,
// converting if necessary (a uniform chunk held as Hetero is written as
// Rle). Mirrors get_serializeable in the reference.
func (c *Cluster) GetSerializable() (SerializeVolume, State) {
	if c.homo != nil {
		return c.homo, StateHomo
	}
	if c.rle != nil {
		return c.rle, StateRle
	}
	if err := c.Convert(StateRle); err == nil {
		return c.rle, StateRle
	}
	return c.het, StateHetero
}

// formatTagHomo and formatTagRle are the on-disk leading tag bytes,
// mirroring to_bytes in the reference chunk/cluster.rs (1 = Homo, 2 =
// Rle; any other representation is converted to Rle before writing).
const (
	formatTagHomo byte = 1
	formatTagRle  byte = 2
)

// ToBytes serializes the cluster to its persisted byte form: a leading
// tag byte followed by the chosen representation's body.
func (c *Cluster) ToBytes() []byte {
	vol, state := c.GetSerializable()
	tag := formatTagRle
	if state == StateHomo {
		tag = formatTagHomo
	}
	body := vol.ToBytes()
	out := make([]byte, 1+len(body))
	out[0] = tag
	copy(out[1:], body)
	return out
}

// ClusterFromBytes decodes a cluster previously written by ToBytes. The
// chunk size is recovered from the size triplet each representation's
// own FromBytes decodes, so no out-of-band size is required.
func ClusterFromBytes(data []byte) (*Cluster, error) {
	if len(data) < 1 {
		return nil, ErrSerialization
	}
	tag, body := data[0], data[1:]
	switch tag {
	case formatTagHomo:
		h := &Homogeneous{}
		if err := h.FromBytes(body); err != nil {
			return nil, err
		}
		return &Cluster{size: h.size, state: StateHomo, homo: h}, nil
	default:
		r := &Rle{}
		if err := r.FromBytes(body); err != nil {
			return nil, err
		}
		return &Cluster{size: r.size, state: StateRle, rle: r}, nil
	}
}
