package pointcloud

import (
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/pcstudio/lodcore/pkg/octree"
)

// registryEntry is the rtreego.Spatial adapter for one open dataset,
// projected onto the X/Y plane the same way ChartEntry projects chart
// bounds onto lon/lat.
type registryEntry struct {
	id     string
	bounds octree.BoundingBox3D
}

func (e *registryEntry) Bounds() rtreego.Rect {
	point := rtreego.Point{e.bounds.MinX, e.bounds.MinY}
	lengths := []float64{
		nonZero(e.bounds.MaxX - e.bounds.MinX),
		nonZero(e.bounds.MaxY - e.bounds.MinY),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// nonZero guards against a degenerate (zero-width) rtreego.Rect, which
// rtreego rejects; a dataset flat along one axis still needs an indexable
// extent.
func nonZero(d float64) float64 {
	if d <= 0 {
		return 1e-9
	}
	return d
}

// registry indexes every open dataset's bounds in an R-tree so
// Manager.ListInRegion answers spatial queries in O(log n) instead of
// scanning every entry, the same role ChartIndex plays for charts.
type registry struct {
	mu    sync.RWMutex
	byID  map[string]*registryEntry
	rtree *rtreego.Rtree
}

func newRegistry() *registry {
	return &registry{
		byID:  make(map[string]*registryEntry),
		rtree: rtreego.NewTree(2, 25, 50),
	}
}

func (r *registry) insert(id string, bounds octree.BoundingBox3D) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byID[id]; ok {
		r.rtree.Delete(old)
	}
	e := &registryEntry{id: id, bounds: bounds}
	r.rtree.Insert(e)
	r.byID[id] = e
}

func (r *registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.byID[id]; ok {
		r.rtree.Delete(e)
		delete(r.byID, id)
	}
}

// query returns the ids of every indexed dataset whose bounds intersect
// region's X/Y extent.
func (r *registry) query(region octree.BoundingBox3D) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	point := rtreego.Point{region.MinX, region.MinY}
	lengths := []float64{
		nonZero(region.MaxX - region.MinX),
		nonZero(region.MaxY - region.MinY),
	}
	rect, _ := rtreego.NewRect(point, lengths)

	hits := r.rtree.SearchIntersect(rect)
	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.(*registryEntry).id)
	}
	return ids
}
