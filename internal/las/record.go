package las

import "encoding/binary"

// PointRecord is the canonical in-memory point this parser produces.
type PointRecord struct {
	X, Y, Z        float64
	R, G, B        uint8
	Intensity      uint16
	Classification uint8
}

// colorByteOffset returns the byte offset of the RGB triplet within a point
// record for formats that carry color, or 0 for formats that don't.
func colorByteOffset(format uint8) int {
	switch format {
	case 2:
		return 20
	case 3, 5:
		return 28
	case 7, 8, 10:
		return 30
	default:
		return 0
	}
}

func classificationOffset(format uint8) int {
	if format >= 6 {
		return 16
	}
	return 15
}

// decodeRecord decodes one fixed-layout point record using the header's
// scale/offset and format-dependent field positions.
func decodeRecord(rec []byte, h *Header) PointRecord {
	xi := int32(binary.LittleEndian.Uint32(rec[0:4]))
	yi := int32(binary.LittleEndian.Uint32(rec[4:8]))
	zi := int32(binary.LittleEndian.Uint32(rec[8:12]))

	p := PointRecord{
		X:         float64(xi)*h.Scale[0] + h.Offset[0],
		Y:         float64(yi)*h.Scale[1] + h.Offset[1],
		Z:         float64(zi)*h.Scale[2] + h.Offset[2],
		Intensity: binary.LittleEndian.Uint16(rec[12:14]),
	}

	classOff := classificationOffset(h.PointDataFormat)
	if classOff < len(rec) {
		p.Classification = rec[classOff]
	}

	p.R, p.G, p.B = 128, 128, 128
	if h.HasColor {
		co := colorByteOffset(h.PointDataFormat)
		if co > 0 && co+6 <= len(rec) {
			r16 := binary.LittleEndian.Uint16(rec[co : co+2])
			g16 := binary.LittleEndian.Uint16(rec[co+2 : co+4])
			b16 := binary.LittleEndian.Uint16(rec[co+4 : co+6])
			p.R = uint8(r16 >> 8)
			p.G = uint8(g16 >> 8)
			p.B = uint8(b16 >> 8)
		}
	}

	return p
}
