package octree

import (
	"math"
	"sort"
)

// Camera is the subset of CameraState the LOD selector needs: eye position
// plus the projection parameters that turn a world-space extent into a
// screen-space pixel size. Target is irrelevant to this screen-size/distance
// criterion (this core does no frustum culling), so it lives only on the
// wire-level CameraState in pkg/pointcloud.
type Camera struct {
	PosX, PosY, PosZ float64
	FovDegrees       float64
	ScreenHeight     float64
}

// screenSizeCullThreshold is the minimum projected pixel size a node's
// subtree must clear to avoid being culled outright.
const screenSizeCullThreshold = 1.0

// screenSizeRefineThreshold is the projected pixel size below which a node
// is considered detailed enough to stop refining into its children.
const screenSizeRefineThreshold = 200.0

type visibleCandidate struct {
	nodeID     string
	priority   float64
	pointCount int
}

// GetVisibleNodes selects a rendering frontier: node ids sorted by priority
// (closer, proportionally larger nodes first) and greedily accepted while
// staying within budget, always keeping at least the single highest
// priority candidate even if it alone exceeds budget.
func (o *Octree) GetVisibleNodes(cam Camera, budget uint64) []string {
	fovRad := cam.FovDegrees * math.Pi / 180
	denom := 2 * math.Tan(fovRad/2)

	var candidates []visibleCandidate

	var walk func(idx int32)
	walk = func(idx int32) {
		n := &o.nodes[idx]
		if len(n.Points) == 0 && n.IsLeaf() {
			return
		}

		cx, cy, cz := n.Bounds.Center()
		dx, dy, dz := cx-cam.PosX, cy-cam.PosY, cz-cam.PosZ
		d := math.Sqrt(dx*dx + dy*dy + dz*dz)
		s := n.Bounds.MaxExtent()

		var screenSize float64
		if d <= 0.001 {
			screenSize = math.Inf(1)
		} else {
			screenSize = s / d * cam.ScreenHeight / denom
		}

		if screenSize < screenSizeCullThreshold {
			return
		}

		isLeaf := n.IsLeaf()
		eligible := isLeaf || screenSize < screenSizeRefineThreshold

		if eligible && len(n.Points) > 0 {
			candidates = append(candidates, visibleCandidate{
				nodeID:     n.NodeID,
				priority:   d / math.Max(s, 0.001),
				pointCount: len(n.Points),
			})
		}

		if !eligible || !isLeaf {
			for _, c := range n.Children {
				if c != noChild {
					walk(c)
				}
			}
		}
	}
	walk(0)

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].priority < candidates[j].priority
	})

	var result []string
	var cumulative uint64
	for i, c := range candidates {
		if i > 0 && cumulative+uint64(c.pointCount) > budget {
			break
		}
		result = append(result, c.nodeID)
		cumulative += uint64(c.pointCount)
	}
	return result
}
