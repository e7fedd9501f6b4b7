// Package pointcloud implements the process-scoped registry, LOD query
// surface, and wire-level command translation for open LAS/LAZ datasets.
package pointcloud

import "github.com/pcstudio/lodcore/pkg/octree"

// PointcloudMetadata is the client-facing summary of an opened dataset.
type PointcloudMetadata struct {
	ID                string               `json:"id"`
	Path              string               `json:"path"`
	Name              string               `json:"name"`
	Format            string               `json:"format"` // "LAS" or "LAZ"
	TotalPoints       uint64               `json:"total_points"`
	Bounds            octree.BoundingBox3D `json:"bounds"`
	HasColor          bool                 `json:"has_color"`
	HasIntensity      bool                 `json:"has_intensity"` // always true in this system
	HasClassification bool                 `json:"has_classification"` // always true in this system
	PointDataFormat   uint8                `json:"point_data_format"`
	Version           string               `json:"version"` // e.g. "1.4"
}

// IndexProgress reports background-build state for one dataset. Progress is
// monotonic non-decreasing except on transition into an "Error: ..."
// terminal phase, where it freezes at its last value.
type IndexProgress struct {
	Progress        float64 `json:"progress"`
	Phase           string  `json:"phase"`
	PointsProcessed uint64  `json:"points_processed"`
	TotalPoints     uint64  `json:"total_points"`
}

// CameraState is the wire-level camera shape. Only Position, FovDegrees,
// and ScreenHeight feed the screen-space-error LOD criterion; Target and
// Aspect are carried for API completeness but unused by GetVisibleNodes,
// since this core does no frustum culling.
type CameraState struct {
	Position     [3]float64 `json:"position"`
	Target       [3]float64 `json:"target"`
	FovDegrees   float64    `json:"fov"`
	Aspect       float64    `json:"aspect"`
	ScreenHeight float64    `json:"screen_height"`
}

func (c CameraState) toOctreeCamera() octree.Camera {
	return octree.Camera{
		PosX:         c.Position[0],
		PosY:         c.Position[1],
		PosZ:         c.Position[2],
		FovDegrees:   c.FovDegrees,
		ScreenHeight: c.ScreenHeight,
	}
}
