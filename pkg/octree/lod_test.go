package octree

import "testing"

// TestLODCullsFarRoot covers spec scenario 4: a camera far enough away that
// the root's screen-space size falls below the cull threshold yields an
// empty frontier regardless of budget.
func TestLODCullsFarRoot(t *testing.T) {
	pts := unitCubePoints(1000, 11)
	o := Build(pts, unitCube)

	cam := Camera{PosX: 0, PosY: 0, PosZ: 1e9, FovDegrees: 60, ScreenHeight: 1080}
	got := o.GetVisibleNodes(cam, 1_000_000_000)
	if len(got) != 0 {
		t.Fatalf("GetVisibleNodes at extreme distance = %v, want empty", got)
	}
}

// TestLODAlwaysAcceptsFirstCandidate covers spec scenario 5: the root is
// returned even when its own point count exceeds the budget, because the
// first (highest-priority) candidate is always accepted.
func TestLODAlwaysAcceptsFirstCandidate(t *testing.T) {
	pts := unitCubePoints(10, 12) // stays a single leaf: root is the only node
	o := Build(pts, unitCube)

	cam := Camera{PosX: 0, PosY: 0, PosZ: 100, FovDegrees: 60, ScreenHeight: 1080}
	got := o.GetVisibleNodes(cam, 1) // budget far below root's point count
	if len(got) != 1 || got[0] != "r" {
		t.Fatalf("GetVisibleNodes = %v, want [\"r\"]", got)
	}
}

// TestLODEmptyChildlessNodeSkipped proves a node with no points and no
// children is skipped outright rather than contributing an empty candidate.
func TestLODEmptyChildlessNodeSkipped(t *testing.T) {
	o := Build(nil, unitCube)
	cam := Camera{PosX: 0, PosY: 0, PosZ: 5, FovDegrees: 60, ScreenHeight: 1080}
	got := o.GetVisibleNodes(cam, 1000)
	if len(got) != 0 {
		t.Fatalf("GetVisibleNodes on an empty tree = %v, want empty", got)
	}
}

// TestLODMonotonicBudget covers spec §8's LOD monotonicity property: for a
// fixed tree and camera, halving the point budget yields a subset of the
// unhalved result. Candidates are accepted in priority order and the scan
// stops (rather than skipping over) the first candidate past index 0 that
// would overflow the budget, so a smaller budget's frontier must be an exact
// prefix of a larger budget's frontier for the same sorted candidate list.
func TestLODMonotonicBudget(t *testing.T) {
	pts := unitCubePoints(200_000, 13)
	o := Build(pts, unitCube)

	cam := Camera{PosX: 2, PosY: 2, PosZ: 2, FovDegrees: 60, ScreenHeight: 1080}
	const budget = 50_000

	full := o.GetVisibleNodes(cam, budget)
	half := o.GetVisibleNodes(cam, budget/2)

	if len(half) > len(full) {
		t.Fatalf("half-budget result (%d) longer than full-budget result (%d)", len(half), len(full))
	}
	for i, id := range half {
		if full[i] != id {
			t.Fatalf("half-budget frontier %v is not a prefix of full-budget frontier %v", half, full)
		}
	}
	if len(half) == 0 {
		t.Fatal("expected at least the highest-priority candidate to survive both budgets")
	}
}

// TestLODBudgetBreaksOnFirstOverflow exercises a non-monotone per-node point
// count ([2, 10, 3] in priority order) where skip-continue (accept whatever
// still fits, keep scanning) and break-on-first-overflow (stop at the first
// candidate past index 0 that doesn't fit) diverge: skip-continue would let
// budget 6 accept candidate0 and candidate2 (2+3<=6, skipping the 10), which
// is not a prefix of budget 12's {candidate0, candidate1}. The synthetic tree
// below has three leaf children whose distance from the camera (hence
// priority) increases in the same order as their point counts, so the test
// pins both the result contents and the prefix relationship.
func TestLODBudgetBreaksOnFirstOverflow(t *testing.T) {
	o := newOctree(BoundingBox3D{MinX: -1, MinY: -1, MinZ: -1, MaxX: 4, MaxY: 1, MaxZ: 1})

	counts := []int{2, 10, 3}
	for i, n := range counts {
		x := float64(i + 1)
		childIdx := o.newChild(0, i)
		o.nodes[childIdx].Bounds = BoundingBox3D{
			MinX: x - 0.5, MinY: -0.5, MinZ: -0.5,
			MaxX: x + 0.5, MaxY: 0.5, MaxZ: 0.5,
		}
		o.nodes[childIdx].Points = make([]PointRecord, n)
	}

	cam := Camera{PosX: 0, PosY: 0, PosZ: 0, FovDegrees: 60, ScreenHeight: 1080}

	full := o.GetVisibleNodes(cam, 12) // 2 + 10 = 12, fits; +3 would overflow.
	wantFull := []string{"r0", "r1"}
	if len(full) != len(wantFull) {
		t.Fatalf("full-budget frontier = %v, want %v", full, wantFull)
	}
	for i := range wantFull {
		if full[i] != wantFull[i] {
			t.Fatalf("full-budget frontier = %v, want %v", full, wantFull)
		}
	}

	half := o.GetVisibleNodes(cam, 6) // candidate0 (2) fits; +10 overflows and must stop, not skip to +3.
	wantHalf := []string{"r0"}
	if len(half) != len(wantHalf) || half[0] != wantHalf[0] {
		t.Fatalf("half-budget frontier = %v, want %v (break on first overflow, not skip)", half, wantHalf)
	}
}
