package octree

// PointRecord is the octree's own copy of a decoded point. Kept distinct
// from internal/las.PointRecord so this package has no dependency on the
// parser; callers convert once after a successful read.
type PointRecord struct {
	X, Y, Z        float64
	R, G, B        uint8
	Intensity      uint16
	Classification uint8
}

const (
	// MaxPointsPerLeaf caps how many points a leaf holds before it splits.
	MaxPointsPerLeaf = 65_536
	// MaxDepth overrides the capacity cap: nodes at this level never split.
	MaxDepth = 12
	// SubsampleRatio selects every Nth descendant point for a parent's LOD
	// sample.
	SubsampleRatio = 8
)

// noChild marks an empty child slot in the arena.
const noChild = -1

// OctreeNode is one node of the tree, stored by value in Octree.nodes. Child
// slots hold arena indices rather than pointers so LOD traversal is an
// index walk, not a pointer chase.
type OctreeNode struct {
	NodeID   string
	Bounds   BoundingBox3D
	Level    int
	Points   []PointRecord
	Children [8]int32
}

// IsLeaf reports whether every child slot is empty.
func (n *OctreeNode) IsLeaf() bool {
	for _, c := range n.Children {
		if c != noChild {
			return false
		}
	}
	return true
}

// Octree is an arena of nodes plus a side index from node id to arena
// position, matching design note (a): an arena with int32 indices instead of
// the boxed-children-plus-raw-pointer-LOD-pass the original prototype uses.
type Octree struct {
	nodes   []OctreeNode
	byID    map[string]int32
	npoints int
}

func newOctree(rootBounds BoundingBox3D) *Octree {
	o := &Octree{
		byID: make(map[string]int32),
	}
	o.nodes = append(o.nodes, OctreeNode{
		NodeID:   "r",
		Bounds:   rootBounds,
		Level:    0,
		Children: [8]int32{noChild, noChild, noChild, noChild, noChild, noChild, noChild, noChild},
	})
	o.byID["r"] = 0
	return o
}

func (o *Octree) node(idx int32) *OctreeNode { return &o.nodes[idx] }

// newChild allocates a fresh child node in the arena under parent mask m.
func (o *Octree) newChild(parentIdx int32, m int) int32 {
	parent := &o.nodes[parentIdx]
	id := parent.NodeID + string(rune('0'+m))
	n := OctreeNode{
		NodeID:   id,
		Bounds:   parent.Bounds.Octant(m),
		Level:    parent.Level + 1,
		Children: [8]int32{noChild, noChild, noChild, noChild, noChild, noChild, noChild, noChild},
	}
	idx := int32(len(o.nodes))
	o.nodes = append(o.nodes, n)
	// parent may have been reallocated by the append above; re-fetch.
	o.nodes[parentIdx].Children[m] = idx
	o.byID[id] = idx
	return idx
}

// FindNode resolves a node id via the arena's side index, which design note
// (a) allows in place of prefix-pruned descent: a single map lookup, O(1)
// instead of O(depth), with no walk from the root.
func (o *Octree) FindNode(id string) (*OctreeNode, bool) {
	if id == "" {
		return nil, false
	}
	idx, ok := o.byID[id]
	if !ok {
		return nil, false
	}
	return &o.nodes[idx], true
}

// NodeCount returns the number of nodes in the arena.
func (o *Octree) NodeCount() int { return len(o.nodes) }
