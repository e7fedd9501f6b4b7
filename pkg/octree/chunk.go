package octree

import (
	"math"
	"sort"
)

// OctreeNodeInfo is the client-facing summary of one node, used for the
// rendering frontier returned by GetVisibleNodes.
type OctreeNodeInfo struct {
	NodeID      string        `json:"node_id"`
	Bounds      BoundingBox3D `json:"bounds"`
	Level       int           `json:"level"`
	PointCount  int           `json:"point_count"`
	HasChildren bool          `json:"has_children"`
}

// PointChunk is the renderer-ready payload for one node: positions stored
// relative to the node's center so single precision loses no visible
// precision even for georeferenced coordinates.
type PointChunk struct {
	NodeID          string     `json:"node_id"`
	Center          [3]float64 `json:"center"`
	Level           int        `json:"level"`
	Spacing         float32    `json:"spacing"`
	Positions       []float32  `json:"positions"` // 3 * PointCount, x,y,z interleaved
	Colors          []uint8    `json:"colors"`     // 3 * PointCount, r,g,b interleaved
	Intensities     []uint16   `json:"intensities"`
	Classifications []uint8    `json:"classifications"`
	PointCount      int        `json:"point_count"`
}

// GetNodeInfo resolves id to an OctreeNodeInfo, or false if the id is
// unknown.
func (o *Octree) GetNodeInfo(id string) (OctreeNodeInfo, bool) {
	n, ok := o.FindNode(id)
	if !ok {
		return OctreeNodeInfo{}, false
	}
	return OctreeNodeInfo{
		NodeID:      n.NodeID,
		Bounds:      n.Bounds,
		Level:       n.Level,
		PointCount:  len(n.Points),
		HasChildren: !n.IsLeaf(),
	}, true
}

// GetNodeChunk packs id's points into a renderer-ready PointChunk. Returns
// false if the node has no points (including an unknown id).
func (o *Octree) GetNodeChunk(id string) (PointChunk, bool) {
	n, ok := o.FindNode(id)
	if !ok || len(n.Points) == 0 {
		return PointChunk{}, false
	}

	cx, cy, cz := n.Bounds.Center()
	count := len(n.Points)

	chunk := PointChunk{
		NodeID:          n.NodeID,
		Center:          [3]float64{cx, cy, cz},
		Level:           n.Level,
		Spacing:         nodeSpacing(n.Bounds, count),
		Positions:       make([]float32, 0, count*3),
		Colors:          make([]uint8, 0, count*3),
		Intensities:     make([]uint16, 0, count),
		Classifications: make([]uint8, 0, count),
		PointCount:      count,
	}

	for _, p := range n.Points {
		chunk.Positions = append(chunk.Positions,
			float32(p.X-cx), float32(p.Y-cy), float32(p.Z-cz))
		chunk.Colors = append(chunk.Colors, p.R, p.G, p.B)
		chunk.Intensities = append(chunk.Intensities, p.Intensity)
		chunk.Classifications = append(chunk.Classifications, p.Classification)
	}

	return chunk, true
}

// nodeSpacing models the point cloud as a surface process: the expected gap
// between neighboring points is the square root of area-per-point over the
// node's two largest dimensions.
func nodeSpacing(b BoundingBox3D, count int) float32 {
	if count == 0 {
		return 0
	}
	dx, dy, dz := b.Size()
	dims := []float64{dx, dy, dz}
	sort.Sort(sort.Reverse(sort.Float64Slice(dims)))
	dMax, dMid := dims[0], dims[1]
	return float32(math.Sqrt((dMax * dMid) / float64(count)))
}
