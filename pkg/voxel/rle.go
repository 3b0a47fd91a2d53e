package voxel

import "encoding/binary"

// blockRLEMaxNum is the longest run a single BlockRun can encode: the
// run length is stored as length-1 in a byte, so the max representable
// length is 256. Grounded on BLOCK_RLE_MAX_NUM in the reference
// chunk/rle.rs.
const blockRLEMaxNum = 256

// BlockRun is one run of identical blocks along the z axis of a column.
type BlockRun struct {
	Block      Block
	NumMinusOne uint8
}

// Len returns the run's length in voxels.
func (r BlockRun) Len() int { return int(r.NumMinusOne) + 1 }

// Rle is a column run-length chunk representation: for every (x, y)
// column, a sequence of BlockRun entries walking z from 0 upward.
// Grounded on RleData in the reference chunk/rle.rs.
type Rle struct {
	size    VoxRelVec
	columns [][]BlockRun // indexed by x*size.Y + y
}

func columnIndex(x, y int, size VoxRelVec) int {
	return x*int(size.Y) + y
}

// NewRleEmpty builds an all-Air Rle volume: every column is one run of
// Air spanning the full Z extent (split if Z exceeds blockRLEMaxNum).
func NewRleEmpty(size VoxRelVec) *Rle {
	r := &Rle{size: size, columns: make([][]BlockRun, int(size.X)*int(size.Y))}
	for i := range r.columns {
		r.columns[i] = runsForUniformColumn(AirBlock, int(size.Z))
	}
	return r
}

func runsForUniformColumn(block Block, length int) []BlockRun {
	var runs []BlockRun
	for length > 0 {
		n := length
		if n > blockRLEMaxNum {
			n = blockRLEMaxNum
		}
		runs = append(runs, BlockRun{Block: block, NumMinusOne: uint8(n - 1)})
		length -= n
	}
	return runs
}

func (r *Rle) Size() VoxRelVec { return r.size }

func (r *Rle) At(rel VoxRelVec) (Block, error) {
	if err := validateOffset(rel, r.size); err != nil {
		return 0, err
	}
	return r.AtUnsafe(rel), nil
}

func (r *Rle) AtUnsafe(rel VoxRelVec) Block {
	col := r.columns[columnIndex(int(rel.X), int(rel.Y), r.size)]
	z := int(rel.Z)
	for _, run := range col {
		if z < run.Len() {
			return run.Block
		}
		z -= run.Len()
	}
	return AirBlock
}

// FromHeterogeneous builds an Rle representation from a Heterogeneous
// chunk by run-length-encoding each (x, y) column along z. Mirrors the
// reference's Hetero->Rle conversion: it walks z = 1..=size.z (one past
// the last real index, using a sentinel comparison against the previous
// block) so that a run is always flushed at the end of the column
// regardless of which material it holds — there is no special case for a
// trailing non-Air run. See DESIGN.md, Open Question 2.
func FromHeterogeneous(h *Heterogeneous) *Rle {
	size := h.size
	r := &Rle{size: size, columns: make([][]BlockRun, int(size.X)*int(size.Y))}
	for x := 0; x < int(size.X); x++ {
		for y := 0; y < int(size.Y); y++ {
			var runs []BlockRun
			runStart := 0
			var runBlock Block
			haveRun := false
			flush := func(end int) {
				if !haveRun {
					return
				}
				runs = append(runs, runsForUniformColumn(runBlock, end-runStart)...)
			}
			for z := 0; z <= int(size.Z); z++ {
				var cur Block
				atEnd := z == int(size.Z)
				if !atEnd {
					cur = h.AtUnsafe(VoxRelVec{X: VoxRelType(x), Y: VoxRelType(y), Z: VoxRelType(z)})
				}
				switch {
				case atEnd:
					flush(z)
				case !haveRun:
					haveRun = true
					runBlock = cur
					runStart = z
				case cur != runBlock:
					flush(z)
					runBlock = cur
					runStart = z
				}
			}
			r.columns[columnIndex(x, y, size)] = runs
		}
	}
	return r
}

// ToHeterogeneous expands this Rle volume into a dense Heterogeneous
// representation.
func (r *Rle) ToHeterogeneous() *Heterogeneous {
	h := NewHeterogeneousEmpty(r.size)
	for x := 0; x < int(r.size.X); x++ {
		for y := 0; y < int(r.size.Y); y++ {
			z := 0
			for _, run := range r.columns[columnIndex(x, y, r.size)] {
				for i := 0; i < run.Len(); i++ {
					h.voxels[h.index(VoxRelVec{X: VoxRelType(x), Y: VoxRelType(y), Z: VoxRelType(z)})] = run.Block
					z++
				}
			}
		}
	}
	return h
}

// ToBytes encodes the Rle body: a leading size triplet (little-endian
// u16 x, y, z) so the body is self-describing per spec.md §6, followed
// by, for each column, a uint16 run count and then (block uint16,
// numMinusOne byte) per run, in column-major (x then y) order.
func (r *Rle) ToBytes() []byte {
	buf := make([]byte, 6)
	binary.LittleEndian.PutUint16(buf[0:], uint16(r.size.X))
	binary.LittleEndian.PutUint16(buf[2:], uint16(r.size.Y))
	binary.LittleEndian.PutUint16(buf[4:], uint16(r.size.Z))

	tmp := make([]byte, 2)
	for _, col := range r.columns {
		binary.LittleEndian.PutUint16(tmp, uint16(len(col)))
		buf = append(buf, tmp...)
		for _, run := range col {
			binary.LittleEndian.PutUint16(tmp, uint16(run.Block))
			buf = append(buf, tmp...)
			buf = append(buf, run.NumMinusOne)
		}
	}
	return buf
}

// FromBytes decodes a body previously written by ToBytes, recovering
// r.size from the leading size triplet rather than requiring the caller
// to supply it out of band.
func (r *Rle) FromBytes(data []byte) error {
	if len(data) < 6 {
		return ErrSerialization
	}
	r.size = VoxRelVec{
		X: VoxRelType(binary.LittleEndian.Uint16(data[0:])),
		Y: VoxRelType(binary.LittleEndian.Uint16(data[2:])),
		Z: VoxRelType(binary.LittleEndian.Uint16(data[4:])),
	}
	pos := 6

	numColumns := int(r.size.X) * int(r.size.Y)
	r.columns = make([][]BlockRun, numColumns)
	for c := 0; c < numColumns; c++ {
		if pos+2 > len(data) {
			return ErrSerialization
		}
		count := int(binary.LittleEndian.Uint16(data[pos:]))
		pos += 2
		runs := make([]BlockRun, count)
		for i := 0; i < count; i++ {
			if pos+3 > len(data) {
				return ErrSerialization
			}
			runs[i] = BlockRun{
				Block:       Block(binary.LittleEndian.Uint16(data[pos:])),
				NumMinusOne: data[pos+2],
			}
			pos += 3
		}
		r.columns[c] = runs
	}
	return nil
}
