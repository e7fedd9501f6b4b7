package pointcloud

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/pcstudio/lodcore/internal/las"
	"github.com/pcstudio/lodcore/pkg/octree"
)

// ManagerOptions configures Manager behavior.
type ManagerOptions struct {
	// StreamBatchSize is the batch size passed to las.Reader.StreamPoints
	// while materializing a dataset for octree construction.
	// Default: 100,000.
	StreamBatchSize uint64

	// CacheBytes bounds the node-chunk cache's estimated memory footprint.
	// Default: 512MB. Zero disables the byte limit (unbounded cache).
	CacheBytes int64
}

// DefaultManagerOptions returns manager options with defaults.
func DefaultManagerOptions() ManagerOptions {
	return ManagerOptions{
		StreamBatchSize: 100_000,
		CacheBytes:      512 * 1024 * 1024,
	}
}

// managerEntry is one registry slot: metadata plus whatever the background
// builder has produced so far. All fields are read/written only while
// holding Manager.mu.
type managerEntry struct {
	metadata PointcloudMetadata
	progress IndexProgress
	tree     *octree.Octree
}

// Manager is the process-scoped registry mapping synthetic ids to open
// datasets. Open spawns one background worker per call that streams points
// from the parser and builds the octree; query operations run on the
// caller's goroutine under a reader lock, while Open and Close take the
// writer lock for short critical sections.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*managerEntry

	idMu   sync.Mutex
	nextID uint64

	cache *nodeChunkCache
	index *registry

	opts ManagerOptions
}

// NewManager creates a manager with the given options.
func NewManager(opts ManagerOptions) *Manager {
	return &Manager{
		entries: make(map[string]*managerEntry),
		cache:   newNodeChunkCache(opts.CacheBytes),
		index:   newRegistry(),
		opts:    opts,
	}
}

func (m *Manager) allocID() string {
	m.idMu.Lock()
	defer m.idMu.Unlock()
	m.nextID++
	return fmt.Sprintf("pc_%d", m.nextID)
}

// Open parses path's header synchronously, registers an entry with an empty
// octree and initial "Reading points" progress, and spawns a background
// worker to materialize points and build the index.
func (m *Manager) Open(path string) (PointcloudMetadata, error) {
	reader, err := las.Open(path)
	if err != nil {
		return PointcloudMetadata{}, fmt.Errorf("open %s: %w", path, err)
	}

	h := reader.Header()
	bounds := octree.BoundingBox3D{
		MinX: h.Min[0], MinY: h.Min[1], MinZ: h.Min[2],
		MaxX: h.Max[0], MaxY: h.Max[1], MaxZ: h.Max[2],
	}

	id := m.allocID()
	meta := PointcloudMetadata{
		ID:                id,
		Path:              path,
		Name:              filepath.Base(path),
		Format:            fileFormat(path, reader.IsCompressed()),
		TotalPoints:       reader.TotalPoints(),
		Bounds:            bounds,
		HasColor:          h.HasColor,
		HasIntensity:      true,
		HasClassification: true,
		PointDataFormat:   h.PointDataFormat,
		Version:           fmt.Sprintf("1.%d", h.VersionMinor),
	}

	entry := &managerEntry{
		metadata: meta,
		progress: IndexProgress{
			Phase:       "Reading points",
			TotalPoints: reader.TotalPoints(),
		},
	}

	m.mu.Lock()
	m.entries[id] = entry
	m.mu.Unlock()

	m.index.insert(id, bounds)

	go m.buildOctree(id, reader)

	return meta, nil
}

// fileFormat reports path's format tag, preferring las.GetFileType's
// magic-byte-confirmed sniff over the reader's extension-only check; it
// falls back to the extension check for paths GetFileType doesn't recognize
// (non-.las/.laz extensions the reader still opened successfully).
func fileFormat(path string, isLaz bool) string {
	if sniffed := las.GetFileType(path); sniffed != "UNKNOWN" {
		return sniffed
	}
	if isLaz {
		return "LAZ"
	}
	return "LAS"
}

// buildOctree is the background worker spawned by Open: stream points,
// update progress, build the octree, install it. Every entry access
// tolerates the entry having been removed by a racing Close, per §5's
// cancellation tolerance — it simply stops writing.
func (m *Manager) buildOctree(id string, reader *las.Reader) {
	defer reader.Close()

	total := reader.TotalPoints()
	points := make([]octree.PointRecord, 0, total)
	var processed uint64

	err := reader.StreamPoints(m.opts.StreamBatchSize, func(batch []las.PointRecord, _ uint64) bool {
		for _, p := range batch {
			points = append(points, octree.PointRecord{
				X: p.X, Y: p.Y, Z: p.Z,
				R: p.R, G: p.G, B: p.B,
				Intensity:      p.Intensity,
				Classification: p.Classification,
			})
		}
		processed += uint64(len(batch))

		frac := 0.0
		if total > 0 {
			frac = float64(processed) / float64(total) * 0.5
		}
		return m.updateProgress(id, frac, "Reading points", processed)
	})
	if err != nil {
		m.setBuildError(id, err)
		return
	}

	bounds, ok := m.boundsFor(id)
	if !ok {
		return
	}
	if !m.updateProgress(id, 0.5, "Building octree", processed) {
		return
	}

	tree := octree.Build(points, bounds)

	m.mu.Lock()
	entry, ok := m.entries[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	entry.tree = tree
	entry.progress = IndexProgress{
		Progress:        1.0,
		Phase:           "Complete",
		PointsProcessed: processed,
		TotalPoints:     total,
	}
	m.mu.Unlock()
}

// updateProgress writes a progress snapshot and reports whether the entry
// still exists, so the caller (the streaming loop) can stop early once the
// dataset has been closed out from under it.
func (m *Manager) updateProgress(id string, progress float64, phase string, processed uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return false
	}
	entry.progress.Progress = progress
	entry.progress.Phase = phase
	entry.progress.PointsProcessed = processed
	return true
}

func (m *Manager) setBuildError(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return
	}
	entry.progress.Phase = fmt.Sprintf("Error: %s", err)
	log.Printf("pointcloud: build failed for %s: %v", id, err)
}

func (m *Manager) boundsFor(id string) (octree.BoundingBox3D, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[id]
	if !ok {
		return octree.BoundingBox3D{}, false
	}
	return entry.metadata.Bounds, true
}

// GetProgress returns a snapshot of id's build progress.
func (m *Manager) GetProgress(id string) (IndexProgress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[id]
	if !ok {
		return IndexProgress{}, ErrNotFound
	}
	return entry.progress, nil
}

// GetNodes resolves nodeIDs to packed PointChunks, skipping ids that have
// no points. Fails with ErrNotReady while the octree is still building.
func (m *Manager) GetNodes(id string, nodeIDs []string) ([]octree.PointChunk, error) {
	tree, err := m.treeFor(id)
	if err != nil {
		return nil, err
	}

	chunks := make([]octree.PointChunk, 0, len(nodeIDs))
	for _, nid := range nodeIDs {
		if chunk, ok := m.cache.get(id, nid, tree); ok {
			chunks = append(chunks, chunk)
		}
	}
	return chunks, nil
}

// GetVisibleNodes runs the screen-space-error LOD selection and resolves
// each returned id to its OctreeNodeInfo summary.
func (m *Manager) GetVisibleNodes(id string, camera CameraState, budget uint64) ([]octree.OctreeNodeInfo, error) {
	tree, err := m.treeFor(id)
	if err != nil {
		return nil, err
	}

	ids := tree.GetVisibleNodes(camera.toOctreeCamera(), budget)
	infos := make([]octree.OctreeNodeInfo, 0, len(ids))
	for _, nid := range ids {
		if info, ok := tree.GetNodeInfo(nid); ok {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

func (m *Manager) treeFor(id string) (*octree.Octree, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if entry.tree == nil {
		return nil, ErrNotReady
	}
	return entry.tree, nil
}

// Close removes id's entry and reports whether one was present. The octree
// and parser become eligible for garbage collection once no caller still
// holds a reference returned from GetNodes/GetVisibleNodes.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	_, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()

	m.index.remove(id)
	m.cache.removeDataset(id)
	return ok
}

// List returns metadata for every currently open dataset.
func (m *Manager) List() []PointcloudMetadata {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]PointcloudMetadata, 0, len(m.entries))
	for _, entry := range m.entries {
		out = append(out, entry.metadata)
	}
	return out
}

// ListInRegion returns metadata for every open dataset whose bounds
// intersect region, using the spatial registry instead of a linear scan.
func (m *Manager) ListInRegion(region octree.BoundingBox3D) []PointcloudMetadata {
	ids := m.index.query(region)

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]PointcloudMetadata, 0, len(ids))
	for _, id := range ids {
		if entry, ok := m.entries[id]; ok {
			out = append(out, entry.metadata)
		}
	}
	return out
}

// ManagerStats summarizes registry and cache state.
type ManagerStats struct {
	OpenDatasets int
	Building     int
	Complete     int
	Errored      int
	Cache        cacheStats
}

// Stats returns aggregate registry and cache statistics.
func (m *Manager) Stats() ManagerStats {
	m.mu.RLock()
	stats := ManagerStats{OpenDatasets: len(m.entries)}
	for _, entry := range m.entries {
		switch {
		case entry.tree != nil:
			stats.Complete++
		case len(entry.progress.Phase) >= 5 && entry.progress.Phase[:5] == "Error":
			stats.Errored++
		default:
			stats.Building++
		}
	}
	m.mu.RUnlock()

	stats.Cache = m.cache.stats()
	return stats
}
