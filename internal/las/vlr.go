package las

import (
	"encoding/binary"
	"strings"
)

const vlrHeaderSize = 54

// lasZipRecordID is the LASzip variable-length-record identifier
// (user_id "laszip encoded...", record_id 22204).
const lasZipRecordID = 22204

// vlr is one decoded variable-length record header plus its data block.
type vlr struct {
	UserID       string
	RecordID     uint16
	RecordLength uint16
	Data         []byte
}

// vlrStart returns the byte offset of the first VLR, which differs for
// LAS 1.3+ headers that carry the extra waveform-data-packet-offset field.
func vlrStart(minor uint8) int {
	if minor >= 3 {
		return 235
	}
	return 227
}

// scanVLRs walks the variable-length-record block starting at the header's
// VLR offset, decoding up to h.NumberOfVLRs headers and their data blocks.
func scanVLRs(data []byte, h *Header) []vlr {
	offset := vlrStart(h.VersionMinor)
	vlrs := make([]vlr, 0, h.NumberOfVLRs)

	for i := uint32(0); i < h.NumberOfVLRs; i++ {
		if offset+vlrHeaderSize > len(data) {
			break
		}
		userID := strings.TrimRight(string(data[offset+2:offset+18]), "\x00")
		recordID := binary.LittleEndian.Uint16(data[offset+18 : offset+20])
		recordLength := binary.LittleEndian.Uint16(data[offset+20 : offset+22])

		dataStart := offset + vlrHeaderSize
		dataEnd := dataStart + int(recordLength)
		if dataEnd > len(data) {
			break
		}

		vlrs = append(vlrs, vlr{
			UserID:       userID,
			RecordID:     recordID,
			RecordLength: recordLength,
			Data:         data[dataStart:dataEnd],
		})

		offset = dataEnd
	}

	return vlrs
}

// findLasZipVLR locates the LASzip parameter VLR among the decoded VLRs.
func findLasZipVLR(vlrs []vlr) (*vlr, bool) {
	for i := range vlrs {
		if vlrs[i].RecordID == lasZipRecordID && strings.HasPrefix(vlrs[i].UserID, "laszip encoded") {
			return &vlrs[i], true
		}
	}
	return nil, false
}
