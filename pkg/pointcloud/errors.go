package pointcloud

import "errors"

// ErrNotFound indicates no registry entry exists for the given id.
var ErrNotFound = errors.New("pointcloud: no such dataset")

// ErrNotReady indicates the entry exists but its octree is still under
// background construction (or failed to build).
var ErrNotReady = errors.New("pointcloud: octree not ready")
