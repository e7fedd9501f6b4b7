package pointcloud

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pcstudio/lodcore/pkg/octree"
)

// Commands is a pure translation layer from manager operations to the
// request/response shapes an RPC transport would serialize. Wiring these
// behind an actual transport (IPC, gRPC, HTTP) is left to the host process.
type Commands struct {
	manager *Manager
}

// NewCommands wraps manager in a Commands surface.
func NewCommands(manager *Manager) *Commands {
	return &Commands{manager: manager}
}

type OpenRequest struct {
	FilePath string `json:"file_path"`
}

type GetProgressRequest struct {
	ID string `json:"id"`
}

type GetNodesRequest struct {
	ID      string   `json:"id"`
	NodeIDs []string `json:"node_ids"`
}

type GetVisibleNodesRequest struct {
	ID     string      `json:"id"`
	Camera CameraState `json:"camera"`
	Budget uint64      `json:"budget"`
}

type CloseRequest struct {
	ID string `json:"id"`
}

func (c *Commands) Open(req OpenRequest) (PointcloudMetadata, error) {
	return c.manager.Open(req.FilePath)
}

func (c *Commands) GetProgress(req GetProgressRequest) (IndexProgress, error) {
	return c.manager.GetProgress(req.ID)
}

func (c *Commands) GetNodes(req GetNodesRequest) ([]octree.PointChunk, error) {
	return c.manager.GetNodes(req.ID, req.NodeIDs)
}

func (c *Commands) GetVisibleNodes(req GetVisibleNodesRequest) ([]octree.OctreeNodeInfo, error) {
	return c.manager.GetVisibleNodes(req.ID, req.Camera, req.Budget)
}

func (c *Commands) Close(req CloseRequest) bool {
	return c.manager.Close(req.ID)
}

func (c *Commands) List() []PointcloudMetadata {
	return c.manager.List()
}

// GetNodesBinary packs the PointChunks for req into the bit-exact wire
// format:
//
//	[u32] chunk_count
//	per chunk (zero-padded to 4-byte alignment at the end):
//	  [u32]        node_id_len
//	  [bytes]      node_id (UTF-8)
//	  [0..3 bytes] pad to 4-byte alignment
//	  [3xf64]      center
//	  [u32]        level
//	  [f32]        spacing
//	  [u32]        point_count
//	  [3n x f32]   positions
//	  [3n x u8]    colors
//	  [n x u16]    intensities
//	  [n x u8]     classifications
func (c *Commands) GetNodesBinary(req GetNodesRequest) ([]byte, error) {
	chunks, err := c.manager.GetNodes(req.ID, req.NodeIDs)
	if err != nil {
		return nil, err
	}

	out := new(bytes.Buffer)
	if err := binary.Write(out, binary.LittleEndian, uint32(len(chunks))); err != nil {
		return nil, err
	}

	for _, chunk := range chunks {
		if err := packChunk(out, chunk); err != nil {
			return nil, fmt.Errorf("pack chunk %s: %w", chunk.NodeID, err)
		}
	}

	return out.Bytes(), nil
}

func packChunk(out *bytes.Buffer, chunk octree.PointChunk) error {
	buf := new(bytes.Buffer)

	idBytes := []byte(chunk.NodeID)
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(idBytes))); err != nil {
		return err
	}
	buf.Write(idBytes)
	if pad := alignPad(len(idBytes)); pad > 0 {
		buf.Write(make([]byte, pad))
	}

	fields := []any{
		chunk.Center,
		uint32(chunk.Level),
		chunk.Spacing,
		uint32(chunk.PointCount),
		chunk.Positions,
		chunk.Colors,
		chunk.Intensities,
		chunk.Classifications,
	}
	for _, f := range fields {
		if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
			return err
		}
	}

	if pad := alignPad(buf.Len()); pad > 0 {
		buf.Write(make([]byte, pad))
	}

	_, err := out.Write(buf.Bytes())
	return err
}

// alignPad returns the number of zero bytes needed to round n up to the
// next multiple of 4.
func alignPad(n int) int {
	return (4 - n%4) % 4
}
