package las

import (
	"encoding/binary"
	"math"
)

// minHeaderSize is the smallest legal LAS header (public header block for
// versions up to 1.2; 1.3 and 1.4 add trailing fields, of which this parser
// reads only the 1.4 64-bit point count when present).
const minHeaderSize = 227

// Header is the subset of the LAS public header block this core needs:
// enough to locate and decode point records and to report dataset-level
// metadata.
type Header struct {
	VersionMajor, VersionMinor uint8
	PointDataFormat            uint8
	PointDataRecordLength      uint16
	OffsetToPoints             uint32
	NumberOfPoints             uint64
	NumberOfVLRs               uint32

	Scale  [3]float64
	Offset [3]float64
	Min    [3]float64
	Max    [3]float64

	HasColor   bool
	HasGPSTime bool
}

// parseHeader validates and decodes the fixed LAS header from the start of
// a memory-mapped file. Byte offsets follow the LAS 1.2-1.4 public header
// block layout.
func parseHeader(data []byte) (*Header, error) {
	if len(data) < minHeaderSize {
		return nil, &HeaderError{Reason: "file shorter than minimum header size"}
	}
	if string(data[0:4]) != "LASF" {
		return nil, &HeaderError{Reason: "missing LASF signature"}
	}

	major := data[24]
	minor := data[25]
	if major != 1 || minor > 4 {
		return nil, &UnsupportedVersionError{Major: major, Minor: minor}
	}

	numVLRs := binary.LittleEndian.Uint32(data[100:104])
	offsetToPoints := binary.LittleEndian.Uint32(data[96:100])
	format := data[104]
	if format > 10 {
		return nil, &UnsupportedFormatError{Format: format}
	}
	recordLength := binary.LittleEndian.Uint16(data[105:107])

	var numPoints uint64
	if minor >= 4 && len(data) >= 255 {
		numPoints = binary.LittleEndian.Uint64(data[247:255])
	} else {
		numPoints = uint64(binary.LittleEndian.Uint32(data[107:111]))
	}

	readF64 := func(off int) float64 {
		return math.Float64frombits(binary.LittleEndian.Uint64(data[off : off+8]))
	}

	h := &Header{
		VersionMajor:          major,
		VersionMinor:          minor,
		PointDataFormat:       format,
		PointDataRecordLength: recordLength,
		OffsetToPoints:        offsetToPoints,
		NumberOfPoints:        numPoints,
		NumberOfVLRs:          numVLRs,
		Scale:                 [3]float64{readF64(131), readF64(139), readF64(147)},
		Offset:                [3]float64{readF64(155), readF64(163), readF64(171)},
		Max:                   [3]float64{readF64(179), readF64(195), readF64(211)},
		Min:                   [3]float64{readF64(187), readF64(203), readF64(219)},
	}
	h.HasColor = hasColor(format)
	h.HasGPSTime = hasGPSTime(format)

	return h, nil
}

func hasColor(format uint8) bool {
	switch format {
	case 2, 3, 5, 7, 8, 10:
		return true
	default:
		return false
	}
}

func hasGPSTime(format uint8) bool {
	switch format {
	case 1, 3, 4, 5, 6, 7, 8, 9, 10:
		return true
	default:
		return false
	}
}
