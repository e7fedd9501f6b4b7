// Command lodcore exercises the pointcloud core end to end: open a LAS/LAZ
// file, wait for the octree to build, then print the LOD frontier for a
// camera positioned above the dataset's center.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pcstudio/lodcore/pkg/pointcloud"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <path-to-las-or-laz>\n", os.Args[0])
		os.Exit(2)
	}

	mgr := pointcloud.NewManager(pointcloud.DefaultManagerOptions())
	cmds := pointcloud.NewCommands(mgr)

	meta, err := cmds.Open(pointcloud.OpenRequest{FilePath: os.Args[1]})
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	fmt.Printf("opened %s: %s, %d points, format %d, version %s\n",
		meta.ID, meta.Format, meta.TotalPoints, meta.PointDataFormat, meta.Version)

	for {
		progress, err := cmds.GetProgress(pointcloud.GetProgressRequest{ID: meta.ID})
		if err != nil {
			log.Fatalf("get_progress: %v", err)
		}
		fmt.Printf("\r%s: %.0f%%", progress.Phase, progress.Progress*100)
		if progress.Progress >= 1.0 || len(progress.Phase) >= 5 && progress.Phase[:5] == "Error" {
			fmt.Println()
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	cx := (meta.Bounds.MinX + meta.Bounds.MaxX) / 2
	cy := (meta.Bounds.MinY + meta.Bounds.MaxY) / 2
	topZ := meta.Bounds.MaxZ + meta.Bounds.MaxExtent()

	camera := pointcloud.CameraState{
		Position:     [3]float64{cx, cy, topZ},
		Target:       [3]float64{cx, cy, meta.Bounds.MinZ},
		FovDegrees:   60,
		Aspect:       16.0 / 9.0,
		ScreenHeight: 1080,
	}

	nodes, err := cmds.GetVisibleNodes(pointcloud.GetVisibleNodesRequest{
		ID:     meta.ID,
		Camera: camera,
		Budget: 2_000_000,
	})
	if err != nil {
		log.Fatalf("get_visible_nodes: %v", err)
	}

	fmt.Printf("visible frontier: %d nodes\n", len(nodes))
	for _, n := range nodes {
		fmt.Printf("  %-8s level=%-3d points=%d\n", n.NodeID, n.Level, n.PointCount)
	}

	cmds.Close(pointcloud.CloseRequest{ID: meta.ID})
}
