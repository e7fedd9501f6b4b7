package las

// decompressor streams decoded point records out of a LASzip-compressed
// point block. Implementations wrap the reference LASzip codec; there is
// no pure-Go reimplementation of its arithmetic coder in this core.
type decompressor interface {
	// ReadPoint decodes the next point record into rec, which must be at
	// least h.PointDataRecordLength bytes. Returns false at end of stream.
	ReadPoint(rec []byte) (bool, error)
	Close() error
}

// openLazBlock locates the LASzip VLR and opens a decompressor positioned
// at the start of the compressed point block.
func openLazBlock(path string, data []byte, h *Header) (decompressor, error) {
	vlrs := scanVLRs(data, h)
	lz, ok := findLasZipVLR(vlrs)
	if !ok {
		return nil, &LazVLRMissingError{}
	}
	return newLasZipDecompressor(path, lz.Data, h)
}
