// Package octree builds an in-memory spatial/LOD index over decoded LiDAR
// points and selects a rendering frontier from it under a point budget.
package octree

import "math"

// BoundingBox3D is an axis-aligned box. The zero value is not a valid empty
// box; use EmptyBounds for the expanding-builder sentinel.
type BoundingBox3D struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MinZ float64 `json:"min_z"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
	MaxZ float64 `json:"max_z"`
}

// EmptyBounds returns the sentinel box used by callers that expand a bounds
// value incrementally via Expand: every real point will widen it.
func EmptyBounds() BoundingBox3D {
	return BoundingBox3D{
		MinX: math.Inf(1), MinY: math.Inf(1), MinZ: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1), MaxZ: math.Inf(-1),
	}
}

// Expand widens b so it contains (x, y, z).
func (b BoundingBox3D) Expand(x, y, z float64) BoundingBox3D {
	if x < b.MinX {
		b.MinX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if z < b.MinZ {
		b.MinZ = z
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y > b.MaxY {
		b.MaxY = y
	}
	if z > b.MaxZ {
		b.MaxZ = z
	}
	return b
}

// Center returns the box's midpoint.
func (b BoundingBox3D) Center() (x, y, z float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2, (b.MinZ + b.MaxZ) / 2
}

// Size returns the box's per-axis extent.
func (b BoundingBox3D) Size() (dx, dy, dz float64) {
	return b.MaxX - b.MinX, b.MaxY - b.MinY, b.MaxZ - b.MinZ
}

// MaxExtent returns the largest of the box's three axis extents.
func (b BoundingBox3D) MaxExtent() float64 {
	dx, dy, dz := b.Size()
	m := dx
	if dy > m {
		m = dy
	}
	if dz > m {
		m = dz
	}
	return m
}

// Contains reports whether (x, y, z) lies within b, inclusive of the
// boundary.
func (b BoundingBox3D) Contains(x, y, z float64) bool {
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY &&
		z >= b.MinZ && z <= b.MaxZ
}

// Octant returns the sub-box for octant mask m (0..7): bit 0 selects the
// x-half, bit 1 the y-half, bit 2 the z-half, with the set bit choosing the
// half at-or-above center.
func (b BoundingBox3D) Octant(m int) BoundingBox3D {
	cx, cy, cz := b.Center()
	out := b
	if m&1 == 0 {
		out.MaxX = cx
	} else {
		out.MinX = cx
	}
	if m&2 == 0 {
		out.MaxY = cy
	} else {
		out.MinY = cy
	}
	if m&4 == 0 {
		out.MaxZ = cz
	} else {
		out.MinZ = cz
	}
	return out
}

// OctantOf returns the octant mask that (x, y, z) belongs to relative to
// b's center, using the x>=c / y>=c / z>=c tie-break rule.
func (b BoundingBox3D) OctantOf(x, y, z float64) int {
	cx, cy, cz := b.Center()
	m := 0
	if x >= cx {
		m |= 1
	}
	if y >= cy {
		m |= 2
	}
	if z >= cz {
		m |= 4
	}
	return m
}
