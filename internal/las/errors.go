// Package las parses LAS/LAZ LiDAR point-cloud files.
package las

import "fmt"

// HeaderError indicates the file's fixed header failed a structural check.
type HeaderError struct {
	Reason string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("invalid LAS header: %s", e.Reason)
}

// UnsupportedVersionError indicates a LAS major/minor version outside 1.0-1.4.
type UnsupportedVersionError struct {
	Major, Minor uint8
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported LAS version %d.%d", e.Major, e.Minor)
}

// UnsupportedFormatError indicates a point data record format this reader
// does not know how to decode.
type UnsupportedFormatError struct {
	Format uint8
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported point data format %d", e.Format)
}

// TruncatedRecordError indicates a point record extends past the end of
// the mapped file.
type TruncatedRecordError struct {
	Index int64
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("truncated point record at index %d", e.Index)
}

// LazVLRMissingError indicates a .laz file had no LASzip parameter VLR.
type LazVLRMissingError struct{}

func (e *LazVLRMissingError) Error() string {
	return "LAZ file is missing the LASzip variable-length record"
}

// LazDecompressError wraps a failure from the LASzip decompressor.
type LazDecompressError struct {
	Reason string
}

func (e *LazDecompressError) Error() string {
	return fmt.Sprintf("LAZ decompression failed: %s", e.Reason)
}
