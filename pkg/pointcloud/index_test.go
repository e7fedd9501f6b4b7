package pointcloud

import (
	"testing"

	"github.com/pcstudio/lodcore/pkg/octree"
)

func TestRegistryQueryIntersection(t *testing.T) {
	r := newRegistry()
	r.insert("a", octree.BoundingBox3D{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
	r.insert("b", octree.BoundingBox3D{MinX: 100, MinY: 100, MaxX: 110, MaxY: 110})

	hits := r.query(octree.BoundingBox3D{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15})
	if len(hits) != 1 || hits[0] != "a" {
		t.Fatalf("query = %v, want [a]", hits)
	}

	hits = r.query(octree.BoundingBox3D{MinX: 1000, MinY: 1000, MaxX: 1010, MaxY: 1010})
	if len(hits) != 0 {
		t.Fatalf("query disjoint = %v, want empty", hits)
	}
}

func TestRegistryRemove(t *testing.T) {
	r := newRegistry()
	r.insert("a", octree.BoundingBox3D{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
	r.remove("a")

	hits := r.query(octree.BoundingBox3D{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
	if len(hits) != 0 {
		t.Fatalf("query after remove = %v, want empty", hits)
	}
}

func TestRegistryInsertReplacesExisting(t *testing.T) {
	r := newRegistry()
	r.insert("a", octree.BoundingBox3D{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
	r.insert("a", octree.BoundingBox3D{MinX: 1000, MinY: 1000, MaxX: 1010, MaxY: 1010})

	if hits := r.query(octree.BoundingBox3D{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}); len(hits) != 0 {
		t.Fatalf("query at stale bounds = %v, want empty after re-insert", hits)
	}
	hits := r.query(octree.BoundingBox3D{MinX: 1000, MinY: 1000, MaxX: 1010, MaxY: 1010})
	if len(hits) != 1 || hits[0] != "a" {
		t.Fatalf("query at updated bounds = %v, want [a]", hits)
	}
}

func TestRegistryDegenerateFlatBounds(t *testing.T) {
	r := newRegistry()
	// A dataset flat along Y (MinY == MaxY) must still be indexable.
	r.insert("flat", octree.BoundingBox3D{MinX: 0, MinY: 5, MaxX: 10, MaxY: 5})

	hits := r.query(octree.BoundingBox3D{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
	if len(hits) != 1 || hits[0] != "flat" {
		t.Fatalf("query over degenerate bounds = %v, want [flat]", hits)
	}
}
