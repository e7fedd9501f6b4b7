//go:build !cgo

package las

// newLasZipDecompressor reports that LAZ support requires a cgo build
// linked against liblaszip; this core has no pure-Go LASzip arithmetic
// decoder.
func newLasZipDecompressor(path string, _ []byte, _ *Header) (decompressor, error) {
	return nil, &LazDecompressError{Reason: "LAZ support requires building with cgo and liblaszip"}
}
