package octree

// Build constructs a tree rooted at bounds from points, applying the
// capacity/depth insertion policy followed by the bottom-up LOD sub-sample
// pass.
func Build(points []PointRecord, bounds BoundingBox3D) *Octree {
	o := newOctree(bounds)
	for _, p := range points {
		o.insert(0, p)
	}
	o.npoints = len(points)
	o.buildLOD(0)
	return o
}

// TotalPoints returns the number of points originally inserted (not
// counting LOD sub-samples, which duplicate leaf points onto ancestors).
func (o *Octree) TotalPoints() int { return o.npoints }

// insert places p into the subtree rooted at idx following the capacity/
// depth/redistribute procedure, one point at a time.
func (o *Octree) insert(idx int32, p PointRecord) {
	isLeaf := o.nodes[idx].IsLeaf()
	n := len(o.nodes[idx].Points)
	level := o.nodes[idx].Level

	switch {
	case isLeaf && n < MaxPointsPerLeaf:
		o.nodes[idx].Points = append(o.nodes[idx].Points, p)

	case level >= MaxDepth:
		o.nodes[idx].Points = append(o.nodes[idx].Points, p)

	case isLeaf && n > 0:
		o.redistribute(idx)
		o.insertIntoChild(idx, p)

	default:
		o.insertIntoChild(idx, p)
	}
}

// insertIntoChild routes p to the child of idx matching its octant,
// creating that child lazily.
func (o *Octree) insertIntoChild(idx int32, p PointRecord) {
	m := o.nodes[idx].Bounds.OctantOf(p.X, p.Y, p.Z)
	childIdx := o.nodes[idx].Children[m]
	if childIdx == noChild {
		childIdx = o.newChild(idx, m)
	}
	o.insert(childIdx, p)
}

// redistribute moves every point currently on a just-over-capacity leaf
// into its children (created lazily), clearing the node's own points.
func (o *Octree) redistribute(idx int32) {
	pts := o.nodes[idx].Points
	o.nodes[idx].Points = nil
	for _, p := range pts {
		o.insertIntoChild(idx, p)
	}
}

// buildLOD fills every internal node's (currently empty) points with every
// SubsampleRatio-th point of each child in turn, post-order so a child's own
// sub-sample is finalised before its parent reads it.
func (o *Octree) buildLOD(idx int32) {
	if o.nodes[idx].IsLeaf() {
		return
	}

	children := o.nodes[idx].Children
	for _, c := range children {
		if c != noChild {
			o.buildLOD(c)
		}
	}

	if len(o.nodes[idx].Points) > 0 {
		return
	}

	var sample []PointRecord
	for _, c := range children {
		if c == noChild {
			continue
		}
		cpts := o.nodes[c].Points
		for i := 0; i < len(cpts); i += SubsampleRatio {
			sample = append(sample, cpts[i])
		}
	}
	o.nodes[idx].Points = sample
}
