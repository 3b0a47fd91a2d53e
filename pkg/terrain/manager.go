// Package terrain implements the concurrent chunk manager: a keyed cache
// of chunk containers, bounded background generation, maintenance
// (promotion, eviction and persistence), and cross-chunk sampling.
// Grounded on common/src/terrain/chunk_mgr.rs, generalized from the
// teacher's pkg/game/chunk_manager.go map+RWMutex+worker idiom.
package terrain

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/leterax/voxelcore/pkg/voxel"
)

// ErrSampleTimeout is returned by TryGetSample when the sample could not
// be assembled within Config.SampleDeadline. Resolves spec.md §9 Open
// Question 1 — see DESIGN.md.
var ErrSampleTimeout = errors.New("terrain: sample deadline exceeded")

// GenVol generates a chunk's voxel data for a chunk index the manager
// does not yet have cached or persisted.
type GenVol func(idx voxel.VolumeIdxVec) *voxel.Cluster

// GenPayload builds a chunk's payload (e.g. lighting, entity lists) once
// its volume is available.
type GenPayload[P any] func(idx voxel.VolumeIdxVec, cluster *voxel.Cluster) P

// Config tunes a Manager. There is no global/implicit configuration —
// every Manager is constructed with its own Config, per spec.md's
// no-global-thread-pool design note.
type Config struct {
	ChunkSize        int
	MaxConcurrentGen int64
	SampleDeadline   time.Duration
	SaveRoot         string
}

// DefaultConfig returns reasonable defaults: a 16^3 chunk, up to 8
// concurrent generation jobs, and a 200ms sample deadline.
func DefaultConfig() Config {
	return Config{
		ChunkSize:        16,
		MaxConcurrentGen: 8,
		SampleDeadline:   200 * time.Millisecond,
		SaveRoot:         "saves",
	}
}

// pendingSlot is the manager's empty-slot-then-fill idiom for an
// in-flight generation, mirroring the reference's Pending slot: a
// worker installs container once generation completes, then closes
// done. A nil container after done is closed means generation was
// cancelled or failed and the slot should simply be dropped.
type pendingSlot[P any] struct {
	done      chan struct{}
	container *voxel.Container[P]
}

// Manager is the concurrent chunk cache. A chunk is in exactly one of
// three states at a time: absent, pending (generation in flight, tracked
// only in the pending map), or live (present in the live map). Grounded
// on the reference's two-map design (HashMap<..., Pending> +
// HashMap<..., Container>), replacing its process-wide thread pool with
// an explicit semaphore owned by this Manager.
type Manager[P any] struct {
	cfg        Config
	genVol     GenVol
	genPayload GenPayload[P]
	sem        *semaphore.Weighted
	log        *slog.Logger

	mu      sync.RWMutex
	live    map[voxel.VolumeIdxVec]*voxel.Container[P]
	pending map[voxel.VolumeIdxVec]*pendingSlot[P]
}

// New builds a Manager. genPayload may be nil if P is a zero-value-only
// payload type.
func New[P any](cfg Config, genVol GenVol, genPayload GenPayload[P], log *slog.Logger) *Manager[P] {
	if log == nil {
		log = slog.Default()
	}
	return &Manager[P]{
		cfg:        cfg,
		genVol:     genVol,
		genPayload: genPayload,
		sem:        semaphore.NewWeighted(cfg.MaxConcurrentGen),
		log:        log,
		live:       make(map[voxel.VolumeIdxVec]*voxel.Container[P]),
		pending:    make(map[voxel.VolumeIdxVec]*pendingSlot[P]),
	}
}

// Get returns the live container for idx, if any.
func (m *Manager[P]) Get(idx voxel.VolumeIdxVec) (*voxel.Container[P], bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.live[idx]
	return c, ok
}

// ExistsChunk reports whether idx is live (not merely pending). Mirrors
// exists_chunk in spec.md §4.5.
func (m *Manager[P]) ExistsChunk(idx voxel.VolumeIdxVec) bool {
	_, ok := m.Get(idx)
	return ok
}

// ExistsBlock is shorthand for ExistsChunk on the chunk containing abs.
// Mirrors exists_block in spec.md §4.5.
func (m *Manager[P]) ExistsBlock(abs voxel.VoxAbsVec) bool {
	return m.ExistsChunk(voxel.VoxAbsToVolIdx(abs, m.cfg.ChunkSize))
}

// GetBlock returns the block at an absolute voxel coordinate, but only
// when the containing chunk is live and currently holds a Hetero
// representation — per spec.md §4.5, a chunk that is Homo- or Rle-only
// reports absence rather than materializing a dense view just to answer
// one point query.
func (m *Manager[P]) GetBlock(abs voxel.VoxAbsVec) (voxel.Block, bool) {
	idx := voxel.VoxAbsToVolIdx(abs, m.cfg.ChunkSize)
	container, ok := m.Get(idx)
	if !ok {
		return 0, false
	}
	cluster, unlock := container.DataRLock()
	defer unlock()
	if !cluster.Contains(voxel.StateHetero) {
		return 0, false
	}
	rel := voxel.VoxAbsToVoxRel(abs, m.cfg.ChunkSize)
	b, err := cluster.Get(rel)
	if err != nil {
		return 0, false
	}
	return b, true
}

// PendingChunkCnt reports how many chunks are currently queued or in
// flight for generation. Hosts use this for admission control on new
// Gen calls. Mirrors pending_chunk_cnt in spec.md §4.5.
func (m *Manager[P]) PendingChunkCnt() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pending)
}

// Gen ensures idx is either already live, already pending, or newly
// queued for bounded-concurrency background generation. It never blocks
// the caller on the semaphore — acquisition happens inside the spawned
// goroutine. The goroutine only fills the pending slot; promotion to
// live happens exclusively in Maintain, per spec.md §4.5.
func (m *Manager[P]) Gen(ctx context.Context, idx voxel.VolumeIdxVec) {
	m.mu.Lock()
	if _, ok := m.live[idx]; ok {
		m.mu.Unlock()
		return
	}
	if _, ok := m.pending[idx]; ok {
		m.mu.Unlock()
		return
	}
	slot := &pendingSlot[P]{done: make(chan struct{})}
	m.pending[idx] = slot
	m.mu.Unlock()

	go func() {
		defer close(slot.done)

		if err := m.sem.Acquire(ctx, 1); err != nil {
			m.log.Warn("terrain: generation cancelled before acquiring a slot", "chunk", idx, "err", err)
			return
		}
		defer m.sem.Release(1)

		cluster, err := voxel.LoadChunk(m.cfg.SaveRoot, idx)
		if err != nil {
			cluster = m.genVol(idx)
		}

		var payload P
		if m.genPayload != nil {
			payload = m.genPayload(idx, cluster)
		}
		slot.container = voxel.NewContainer(cluster, payload)
	}()
}

// promotePending moves every pending chunk whose generation has
// finished into the live map, leaving in-flight entries untouched. This
// is the sole pending->live transfer point, mirroring maintain()'s drain
// of a filled slot into the persisted map in the reference.
func (m *Manager[P]) promotePending() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for idx, slot := range m.pending {
		select {
		case <-slot.done:
			if slot.container != nil {
				m.live[idx] = slot.container
			}
			delete(m.pending, idx)
		default:
		}
	}
}

// Maintain performs the manager's periodic housekeeping: it first
// promotes any chunk whose background generation has completed from
// pending into live (spec.md §4.5's documented role for maintain()),
// then reconciles the live set against wanted — chunks in wanted that
// are neither live nor pending are queued via Gen; live chunks not in
// wanted are persisted to disk and evicted. The reconciliation half is a
// generalization of the reference's parameterless maintain(), grounded
// on the teacher's periodic chunk-manager sweep.
func (m *Manager[P]) Maintain(ctx context.Context, wanted []voxel.VolumeIdxVec) {
	m.promotePending()

	want := make(map[voxel.VolumeIdxVec]struct{}, len(wanted))
	for _, idx := range wanted {
		want[idx] = struct{}{}
	}

	m.mu.RLock()
	var toEvict []voxel.VolumeIdxVec
	for idx := range m.live {
		if _, keep := want[idx]; !keep {
			toEvict = append(toEvict, idx)
		}
	}
	m.mu.RUnlock()

	for _, idx := range toEvict {
		m.evict(idx)
	}

	for idx := range want {
		if _, ok := m.Get(idx); ok {
			continue
		}
		m.Gen(ctx, idx)
	}
}

// Remove evicts idx if it is live, persisting it first. Reports whether
// a chunk was actually removed. Mirrors remove(idx) in spec.md §4.5.
func (m *Manager[P]) Remove(idx voxel.VolumeIdxVec) bool {
	return m.evict(idx)
}

func (m *Manager[P]) evict(idx voxel.VolumeIdxVec) bool {
	m.mu.Lock()
	container, ok := m.live[idx]
	if !ok {
		m.mu.Unlock()
		return false
	}
	delete(m.live, idx)
	m.mu.Unlock()

	cluster, unlock := container.DataRLock()
	err := voxel.SaveChunk(m.cfg.SaveRoot, idx, cluster)
	unlock()
	if err != nil {
		m.log.Error("terrain: failed to persist evicted chunk", "chunk", idx, "err", err)
	}
	return true
}

// Sample assembles a read-locked cross-chunk Sample covering every chunk
// index in indices, without blocking on any single contested chunk: a
// chunk whose lock cannot be acquired immediately fails the whole
// attempt (and releases any locks already taken) rather than stalling.
// Grounded on ChunkSample construction in the reference.
func (m *Manager[P]) Sample(indices []voxel.VolumeIdxVec) (*voxel.Sample, error) {
	sample := voxel.NewSample(m.cfg.ChunkSize)
	for _, idx := range indices {
		container, ok := m.Get(idx)
		if !ok {
			sample.Release()
			return nil, voxel.ErrChunkMissing
		}
		cluster, unlock, ok := container.DataTryRLock()
		if !ok {
			sample.Release()
			return nil, voxel.ErrCannotGetLock
		}
		sample.Insert(idx, cluster, unlock)
	}
	return sample, nil
}

// TryGetSample retries Sample with a short backoff until it succeeds or
// Config.SampleDeadline elapses, at which point it returns
// ErrSampleTimeout. A warning is logged once the tenth attempt has
// failed. This bounds the reference's unbounded retry loop —
// see spec.md §9 Open Question 1 and DESIGN.md.
func (m *Manager[P]) TryGetSample(ctx context.Context, indices []voxel.VolumeIdxVec) (*voxel.Sample, error) {
	deadline := time.Now().Add(m.cfg.SampleDeadline)
	backoff := time.Millisecond
	attempts := 0
	for {
		sample, err := m.Sample(indices)
		if err == nil {
			return sample, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrSampleTimeout
		}
		attempts++
		if attempts == 10 {
			m.log.Warn("terrain: sample still unavailable after 10 attempts, retrying", "err", err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 20*time.Millisecond {
			backoff *= 2
		}
	}
}

// Len reports the number of live chunks, mainly for tests and metrics.
func (m *Manager[P]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.live)
}
