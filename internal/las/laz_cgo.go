//go:build cgo

package las

/*
#cgo pkg-config: laszip
#include <laszip/laszip_api.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"
)

// lasZipDecompressor wraps the reference LASzip C API to decode a
// compressed point block one record at a time, matching the wrapper shape
// in ordishs-lidario/laszip_wrapper.go but speaking this package's record
// layout instead of lidario's LasPointer hierarchy.
type lasZipDecompressor struct {
	pointer C.laszip_POINTER
	point   *C.laszip_point_struct
	header  *Header
	isOpen  bool
}

func newLasZipDecompressor(path string, _ []byte, h *Header) (decompressor, error) {
	d := &lasZipDecompressor{header: h}

	if rc := C.laszip_create(&d.pointer); rc != 0 {
		return nil, &LazDecompressError{Reason: d.lastError()}
	}

	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	var isCompressed C.laszip_BOOL
	if rc := C.laszip_open_reader(d.pointer, cPath, &isCompressed); rc != 0 {
		err := d.lastError()
		C.laszip_destroy(d.pointer)
		return nil, &LazDecompressError{Reason: err}
	}

	var pointPtr *C.laszip_point_struct
	if rc := C.laszip_get_point_pointer(d.pointer, &pointPtr); rc != 0 {
		err := d.lastError()
		C.laszip_close_reader(d.pointer)
		C.laszip_destroy(d.pointer)
		return nil, &LazDecompressError{Reason: err}
	}
	d.point = pointPtr
	d.isOpen = true

	return d, nil
}

// ReadPoint decodes the next point into rec using the same byte layout as
// the uncompressed path (decodeRecord), after materializing coordinates and
// attributes from the LASzip point struct.
func (d *lasZipDecompressor) ReadPoint(rec []byte) (bool, error) {
	if !d.isOpen {
		return false, &LazDecompressError{Reason: "reader closed"}
	}

	rc := C.laszip_read_point(d.pointer)
	if rc != 0 {
		return false, nil
	}

	var coords [3]C.laszip_F64
	C.laszip_get_coordinates(d.pointer, &coords[0])

	h := d.header
	xi := int32((float64(coords[0]) - h.Offset[0]) / h.Scale[0])
	yi := int32((float64(coords[1]) - h.Offset[1]) / h.Scale[1])
	zi := int32((float64(coords[2]) - h.Offset[2]) / h.Scale[2])

	putInt32LE(rec[0:4], xi)
	putInt32LE(rec[4:8], yi)
	putInt32LE(rec[8:12], zi)
	putUint16LE(rec[12:14], uint16(d.point.intensity))

	classOff := classificationOffset(h.PointDataFormat)
	if classOff < len(rec) {
		rec[classOff] = byte(d.point.classification)
	}

	if h.HasColor {
		co := colorByteOffset(h.PointDataFormat)
		if co > 0 && co+6 <= len(rec) {
			putUint16LE(rec[co:co+2], uint16(d.point.rgb[0]))
			putUint16LE(rec[co+2:co+4], uint16(d.point.rgb[1]))
			putUint16LE(rec[co+4:co+6], uint16(d.point.rgb[2]))
		}
	}

	return true, nil
}

func (d *lasZipDecompressor) Close() error {
	if !d.isOpen {
		return nil
	}
	d.isOpen = false
	if rc := C.laszip_close_reader(d.pointer); rc != 0 {
		err := d.lastError()
		C.laszip_destroy(d.pointer)
		return &LazDecompressError{Reason: err}
	}
	if rc := C.laszip_destroy(d.pointer); rc != 0 {
		return &LazDecompressError{Reason: d.lastError()}
	}
	return nil
}

func (d *lasZipDecompressor) lastError() string {
	var cErr *C.char
	C.laszip_get_error(d.pointer, &cErr)
	if cErr == nil {
		return "unknown LASzip error"
	}
	return C.GoString(cErr)
}

func putInt32LE(b []byte, v int32) {
	putUint32LE(b, uint32(v))
}

func putUint32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func putUint16LE(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}
