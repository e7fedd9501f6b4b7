package octree

import (
	"math/rand"
	"testing"
)

func unitCubePoints(n int, seed int64) []PointRecord {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]PointRecord, n)
	for i := range pts {
		pts[i] = PointRecord{
			X: rng.Float64(),
			Y: rng.Float64(),
			Z: rng.Float64(),
			R: 10, G: 20, B: 30,
			Intensity:      uint16(i % 65536),
			Classification: 1,
		}
	}
	return pts
}

var unitCube = BoundingBox3D{MinX: 0, MinY: 0, MinZ: 0, MaxX: 1, MaxY: 1, MaxZ: 1}

// walkAll visits every node in the arena in no particular order.
func walkAll(o *Octree) []*OctreeNode {
	out := make([]*OctreeNode, len(o.nodes))
	for i := range o.nodes {
		out[i] = &o.nodes[i]
	}
	return out
}

// TestOctreeMembership proves the sum of leaf points equals the input count
// and that every leaf's points lie inside its own bounds.
func TestOctreeMembership(t *testing.T) {
	pts := unitCubePoints(5000, 1)
	o := Build(pts, unitCube)

	var total int
	for _, n := range walkAll(o) {
		if !n.IsLeaf() {
			continue
		}
		total += len(n.Points)
		for _, p := range n.Points {
			if !n.Bounds.Contains(p.X, p.Y, p.Z) {
				t.Errorf("leaf %s contains out-of-bounds point (%v,%v,%v) vs bounds %+v", n.NodeID, p.X, p.Y, p.Z, n.Bounds)
			}
		}
	}
	if total != len(pts) {
		t.Fatalf("sum of leaf points = %d, want %d", total, len(pts))
	}
}

// TestOctreeDepthBound proves no node exceeds MaxDepth and every non-capped
// leaf respects MaxPointsPerLeaf.
func TestOctreeDepthBound(t *testing.T) {
	pts := unitCubePoints(5000, 2)
	o := Build(pts, unitCube)

	for _, n := range walkAll(o) {
		if n.Level > MaxDepth {
			t.Errorf("node %s level %d exceeds MaxDepth %d", n.NodeID, n.Level, MaxDepth)
		}
		if n.IsLeaf() && n.Level < MaxDepth && len(n.Points) > MaxPointsPerLeaf {
			t.Errorf("leaf %s has %d points, exceeds MaxPointsPerLeaf %d at level %d", n.NodeID, len(n.Points), MaxPointsPerLeaf, n.Level)
		}
	}
}

// TestOctreePrefixID proves every child's id is its parent's id plus exactly
// one digit.
func TestOctreePrefixID(t *testing.T) {
	pts := unitCubePoints(80_000, 3)
	o := Build(pts, unitCube)

	for _, n := range walkAll(o) {
		for _, c := range n.Children {
			if c == noChild {
				continue
			}
			child := o.node(c)
			if len(child.NodeID) != len(n.NodeID)+1 {
				t.Errorf("child %s length != parent %s length + 1", child.NodeID, n.NodeID)
			}
			if child.NodeID[:len(n.NodeID)] != n.NodeID {
				t.Errorf("child %s does not start with parent %s", child.NodeID, n.NodeID)
			}
		}
	}
}

// TestOctreeSplitAt70k covers spec scenario 3: 70,000 uniform points split
// the root into 8 children with no points remaining on internal nodes apart
// from their LOD sub-sample.
func TestOctreeSplitAt70k(t *testing.T) {
	pts := unitCubePoints(70_000, 4)
	o := Build(pts, unitCube)

	root := o.node(0)
	if root.IsLeaf() {
		t.Fatal("root should have split with 70,000 points > MaxPointsPerLeaf")
	}

	var leafSum int
	var rootLODWant int
	for _, c := range root.Children {
		if c == noChild {
			continue
		}
		child := o.node(c)
		if !child.IsLeaf() {
			t.Fatalf("child %s unexpectedly split; expected 8 leaves under ~8,750 points each", child.NodeID)
		}
		leafSum += len(child.Points)
		rootLODWant += (len(child.Points) + SubsampleRatio - 1) / SubsampleRatio
	}
	if leafSum != 70_000 {
		t.Fatalf("sum of child leaf counts = %d, want 70000", leafSum)
	}
	if len(root.Points) != rootLODWant {
		t.Fatalf("root LOD sample size = %d, want %d", len(root.Points), rootLODWant)
	}
	if o.TotalPoints() != 70_000 {
		t.Fatalf("TotalPoints = %d, want 70000", o.TotalPoints())
	}
}

// TestOctreeLODSubsampleSelectsEveryNth proves the bottom-up LOD pass takes
// every SubsampleRatio-th point of each child in order, not an arbitrary
// subset.
func TestOctreeLODSubsampleSelectsEveryNth(t *testing.T) {
	// Force a split with a small, deterministic point set: put more than
	// MaxPointsPerLeaf points is unnecessary here since we only care about
	// the LOD pass's selection rule, so drive buildLOD directly on a
	// constructed two-level tree instead.
	o := newOctree(BoundingBox3D{MinX: 0, MinY: 0, MinZ: 0, MaxX: 2, MaxY: 2, MaxZ: 2})
	childIdx := o.newChild(0, 0)
	var want []PointRecord
	for i := 0; i < 17; i++ {
		p := PointRecord{X: float64(i) * 0.01, Y: 0, Z: 0, Intensity: uint16(i)}
		o.nodes[childIdx].Points = append(o.nodes[childIdx].Points, p)
		if i%SubsampleRatio == 0 {
			want = append(want, p)
		}
	}
	o.buildLOD(0)

	got := o.nodes[0].Points
	if len(got) != len(want) {
		t.Fatalf("root LOD sample has %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Intensity != want[i].Intensity {
			t.Errorf("sample[%d].Intensity = %d, want %d", i, got[i].Intensity, want[i].Intensity)
		}
	}
}

func TestOctreeEmptyInput(t *testing.T) {
	o := Build(nil, unitCube)
	if o.TotalPoints() != 0 {
		t.Fatalf("TotalPoints = %d, want 0", o.TotalPoints())
	}
	root := o.node(0)
	if !root.IsLeaf() || len(root.Points) != 0 {
		t.Fatalf("empty-input root should be an empty leaf, got %+v", root)
	}
}
