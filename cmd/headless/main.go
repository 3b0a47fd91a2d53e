// Command headless runs the voxel-world core with no rendering or
// networking attached: a flat-terrain generator feeds the chunk manager,
// a handful of entities fall and settle under gravity, and the physics
// and maintenance ticks run at a fixed rate while progress is logged.
// Grounded on headless/src/main.rs's no-GUI driver idiom and the
// teacher's cmd/voxels/main.go startup shape (flag parsing, structured
// startup logging).
package main

import (
	"context"
	"flag"
	"log/slog"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/voxelcore/internal/clock"
	"github.com/leterax/voxelcore/pkg/entity"
	"github.com/leterax/voxelcore/pkg/physics"
	"github.com/leterax/voxelcore/pkg/terrain"
	"github.com/leterax/voxelcore/pkg/voxel"
)

func main() {
	tps := flag.Float64("tps", 30, "physics ticks per second")
	ticks := flag.Int("ticks", 300, "number of ticks to run before exiting")
	chunkSize := flag.Int("chunk-size", 16, "chunk edge length in voxels")
	saveRoot := flag.String("save-dir", "saves", "directory chunks are persisted to")
	groundHeightBlocks := flag.Int("ground-height", 8, "height of the flat ground, in blocks, within the bottom chunk")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg := terrain.DefaultConfig()
	cfg.ChunkSize = *chunkSize
	cfg.SaveRoot = *saveRoot

	genVol := flatGroundGenerator(*chunkSize, *groundHeightBlocks)
	mgr := terrain.New[struct{}](cfg, genVol, nil, log)

	world := &worldAdapter{mgr: mgr, chunkSize: *chunkSize}

	registry := entity.NewRegistry()
	spawnHeights := []float32{3, 6, 10}
	handles := make([]entity.Handle, 0, len(spawnHeights))
	for i, h := range spawnHeights {
		handles = append(handles, registry.Insert(entity.Entity{
			Physics: physics.EntityState{
				ID:       uint64(i + 1),
				Position: mgl32.Vec3{float32(i) * 2, 0, h},
			},
		}))
	}

	log.Info("headless: starting", "tps", *tps, "ticks", *ticks, "entities", len(handles))

	c := clock.New(*tps)
	dt := float32(1 / *tps)
	ctx := context.Background()

	visible := visibleChunks(*chunkSize)

	for i := 0; i < *ticks; i++ {
		c.Tick()

		mgr.Maintain(ctx, visible)

		states := make([]*physics.EntityState, 0, len(handles))
		registry.ForEach(func(_ entity.Handle, e *entity.Entity) {
			states = append(states, &e.Physics)
		})

		physics.Tick(log, world, states, dt)

		if i%int(*tps) == 0 {
			for _, s := range states {
				log.Info("headless: entity state", "id", s.ID, "pos", s.Position, "on_ground", s.OnGround, "in_water", s.InWater)
			}
		}
	}

	log.Info("headless: done", "measured_tps", c.TPS())
}

// visibleChunks returns the fixed set of chunk indices the demonstration
// keeps loaded: a flat 5x5 footprint, two chunks tall.
func visibleChunks(chunkSize int) []voxel.VolumeIdxVec {
	var out []voxel.VolumeIdxVec
	for x := int32(-2); x <= 2; x++ {
		for y := int32(-2); y <= 2; y++ {
			for z := int32(0); z <= 1; z++ {
				out = append(out, voxel.VolumeIdxVec{X: x, Y: y, Z: z})
			}
		}
	}
	return out
}

// flatGroundGenerator builds a gen_vol callback producing a flat slab of
// stone groundHeight blocks tall within chunk z-index 0, air everywhere
// else — the same shape of test-fixture terrain used by the reference's
// physics integration tests (CHUNK_SIZE flat ground).
func flatGroundGenerator(chunkSize, groundHeight int) terrain.GenVol {
	size := voxel.VoxRelVec{X: voxel.VoxRelType(chunkSize), Y: voxel.VoxRelType(chunkSize), Z: voxel.VoxRelType(chunkSize)}
	return func(idx voxel.VolumeIdxVec) *voxel.Cluster {
		if idx.Z != 0 {
			return voxel.NewClusterHomogeneous(size, voxel.AirBlock)
		}
		het := voxel.NewHeterogeneousEmpty(size)
		stone := voxel.NewBlock(voxel.Stone, 0)
		for x := 0; x < chunkSize; x++ {
			for y := 0; y < chunkSize; y++ {
				for z := 0; z < groundHeight && z < chunkSize; z++ {
					_ = het.SetAt(voxel.VoxRelVec{X: voxel.VoxRelType(x), Y: voxel.VoxRelType(y), Z: voxel.VoxRelType(z)}, stone)
				}
			}
		}
		return voxel.NewClusterHeterogeneous(het)
	}
}

// worldAdapter lets the physics package's accept-an-interface World
// dependency be satisfied by the chunk manager, without pkg/physics
// importing pkg/voxel or pkg/terrain.
type worldAdapter struct {
	mgr       *terrain.Manager[struct{}]
	chunkSize int
}

func (w *worldAdapter) Sample(center, pad mgl32.Vec3) (physics.WorldSample, bool) {
	lo := center.Sub(pad)
	hi := center.Add(pad)

	loIdx := voxel.VoxAbsToVolIdx(voxel.VoxAbsVec{X: int64(math.Floor(float64(lo[0]))), Y: int64(math.Floor(float64(lo[1]))), Z: int64(math.Floor(float64(lo[2])))}, w.chunkSize)
	hiIdx := voxel.VoxAbsToVolIdx(voxel.VoxAbsVec{X: int64(math.Ceil(float64(hi[0]))), Y: int64(math.Ceil(float64(hi[1]))), Z: int64(math.Ceil(float64(hi[2])))}, w.chunkSize)

	var indices []voxel.VolumeIdxVec
	for x := loIdx.X; x <= hiIdx.X; x++ {
		for y := loIdx.Y; y <= hiIdx.Y; y++ {
			for z := loIdx.Z; z <= hiIdx.Z; z++ {
				indices = append(indices, voxel.VolumeIdxVec{X: x, Y: y, Z: z})
			}
		}
	}

	sample, err := w.mgr.TryGetSample(context.Background(), indices)
	if err != nil {
		return nil, false
	}
	return &sampleAdapter{sample: sample, chunkSize: w.chunkSize}, true
}

type sampleAdapter struct {
	sample    *voxel.Sample
	chunkSize int
}

func (s *sampleAdapter) Release() { s.sample.Release() }

func (s *sampleAdapter) SolidsNear(probe physics.Cuboid) []physics.Cuboid {
	return s.blocksMatching(probe, func(b voxel.Block) bool { return b.IsSolid() })
}

func (s *sampleAdapter) FluidOverlap(probe physics.Cuboid) bool {
	return len(s.blocksMatching(probe, func(b voxel.Block) bool { return b.IsFluid() })) > 0
}

func (s *sampleAdapter) blocksMatching(probe physics.Cuboid, keep func(voxel.Block) bool) []physics.Cuboid {
	lo, hi := probe.Lower(), probe.Upper()
	min := voxel.VoxAbsVec{X: int64(math.Floor(float64(lo[0]))), Y: int64(math.Floor(float64(lo[1]))), Z: int64(math.Floor(float64(lo[2])))}
	max := voxel.VoxAbsVec{X: int64(math.Ceil(float64(hi[0]))) + 1, Y: int64(math.Ceil(float64(hi[1]))) + 1, Z: int64(math.Ceil(float64(hi[2]))) + 1}

	var out []physics.Cuboid
	s.sample.Iter(min, max, func(abs voxel.VoxAbsVec, b voxel.Block) bool {
		if keep(b) {
			out = append(out, physics.NewCuboid(
				mgl32.Vec3{float32(abs.X) + 0.5, float32(abs.Y) + 0.5, float32(abs.Z) + 0.5},
				mgl32.Vec3{0.5, 0.5, 0.5},
			))
		}
		return true
	})
	return out
}
