package pointcloud

import (
	"container/list"
	"sync"

	"github.com/pcstudio/lodcore/pkg/octree"
)

// nodeChunkCache caches packed PointChunks in front of Octree.GetNodeChunk
// with LRU eviction by estimated byte size, the same shape as the teacher's
// chart cache but keyed per (dataset id, node id) instead of chart name.
type nodeChunkCache struct {
	mu         sync.Mutex
	maxBytes   int64
	usedBytes  int64
	entries    map[chunkKey]*chunkCacheEntry
	lru        *list.List
	hits       int
	misses     int
}

type chunkKey struct {
	datasetID string
	nodeID    string
}

type chunkCacheEntry struct {
	key     chunkKey
	chunk   octree.PointChunk
	bytes   int64
	element *list.Element
}

func newNodeChunkCache(maxBytes int64) *nodeChunkCache {
	return &nodeChunkCache{
		maxBytes: maxBytes,
		entries:  make(map[chunkKey]*chunkCacheEntry),
		lru:      list.New(),
	}
}

// get returns the cached chunk for (datasetID, nodeID), computing and
// caching it via tree.GetNodeChunk on a miss. Returns false only if the
// node has no points (or is unknown), matching GetNodeChunk's own contract.
func (c *nodeChunkCache) get(datasetID, nodeID string, tree *octree.Octree) (octree.PointChunk, bool) {
	key := chunkKey{datasetID, nodeID}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		c.lru.MoveToFront(entry.element)
		c.hits++
		chunk := entry.chunk
		c.mu.Unlock()
		return chunk, true
	}
	c.mu.Unlock()

	chunk, ok := tree.GetNodeChunk(nodeID)
	if !ok {
		return octree.PointChunk{}, false
	}

	c.mu.Lock()
	c.misses++
	c.add(key, chunk)
	c.mu.Unlock()

	return chunk, true
}

// add must be called with c.mu held.
func (c *nodeChunkCache) add(key chunkKey, chunk octree.PointChunk) {
	if entry, ok := c.entries[key]; ok {
		c.usedBytes -= entry.bytes
		entry.chunk = chunk
		entry.bytes = estimateChunkBytes(chunk)
		c.usedBytes += entry.bytes
		c.lru.MoveToFront(entry.element)
		return
	}

	size := estimateChunkBytes(chunk)
	if c.maxBytes > 0 {
		for c.usedBytes+size > c.maxBytes && c.lru.Len() > 0 {
			c.evictLRU()
		}
	}

	entry := &chunkCacheEntry{key: key, chunk: chunk, bytes: size}
	entry.element = c.lru.PushFront(entry)
	c.entries[key] = entry
	c.usedBytes += size
}

func (c *nodeChunkCache) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*chunkCacheEntry)
	c.lru.Remove(elem)
	delete(c.entries, entry.key)
	c.usedBytes -= entry.bytes
}

// removeDataset drops every cached chunk belonging to datasetID, called
// when Manager.Close releases that dataset.
func (c *nodeChunkCache) removeDataset(datasetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if key.datasetID != datasetID {
			continue
		}
		c.lru.Remove(entry.element)
		delete(c.entries, key)
		c.usedBytes -= entry.bytes
	}
}

func (c *nodeChunkCache) stats() cacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return cacheStats{
		ChunkCount: len(c.entries),
		UsedBytes:  c.usedBytes,
		MaxBytes:   c.maxBytes,
		Hits:       c.hits,
		Misses:     c.misses,
	}
}

type cacheStats struct {
	ChunkCount int
	UsedBytes  int64
	MaxBytes   int64
	Hits       int
	Misses     int
}

// estimateChunkBytes approximates a packed chunk's memory footprint from
// its per-point array sizes.
func estimateChunkBytes(c octree.PointChunk) int64 {
	n := int64(c.PointCount)
	return 128 + n*(4*3+1*3+2+1)
}
