package voxel

import "sync"

// Container pairs a Cluster with an arbitrary per-chunk payload (e.g.
// lighting data, entity lists cached per chunk), each independently
// lockable so that a reader of block data never blocks a reader or
// writer of the payload and vice versa. Grounded on ChunkContainer in
// the reference chunk/container.rs.
type Container[P any] struct {
	dataMu sync.RWMutex
	data   *Cluster

	payloadMu sync.RWMutex
	payload   P
}

// NewContainer wraps a cluster and its payload in a Container.
func NewContainer[P any](data *Cluster, payload P) *Container[P] {
	return &Container[P]{data: data, payload: payload}
}

// DataRLock acquires a read lock on the cluster and returns it alongside
// an unlock function. Callers should defer the returned function.
func (c *Container[P]) DataRLock() (*Cluster, func()) {
	c.dataMu.RLock()
	return c.data, c.dataMu.RUnlock
}

// DataLock acquires a write lock on the cluster.
func (c *Container[P]) DataLock() (*Cluster, func()) {
	c.dataMu.Lock()
	return c.data, c.dataMu.Unlock
}

// DataTryRLock attempts to acquire a read lock without blocking,
// reporting false if the lock is currently held for writing. Used by the
// chunk manager's cross-chunk sampling, which must not block on a single
// contested chunk (see ErrCannotGetLock in pkg/terrain).
func (c *Container[P]) DataTryRLock() (*Cluster, func(), bool) {
	if !c.dataMu.TryRLock() {
		return nil, nil, false
	}
	return c.data, c.dataMu.RUnlock, true
}

// PayloadRLock acquires a read lock on the payload.
func (c *Container[P]) PayloadRLock() (P, func()) {
	c.payloadMu.RLock()
	return c.payload, c.payloadMu.RUnlock
}

// PayloadLock acquires a write lock on the payload.
func (c *Container[P]) PayloadLock() (*P, func()) {
	c.payloadMu.Lock()
	return &c.payload, c.payloadMu.Unlock
}
