package las

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Reader memory-maps a LAS or LAZ file and decodes its header and point
// records on demand.
type Reader struct {
	file   *os.File
	data   mmap.MMap
	header *Header
	isLaz  bool

	// laz holds the streaming point buffer once StreamPoints has been
	// called on a compressed file; §4.1/§9 permit materializing the whole
	// decompressed cloud rather than truly streaming it.
	laz struct {
		points []PointRecord
		done   bool
	}
}

// Open memory-maps path read-only and parses its LAS header. The ".laz"
// extension (case-insensitive) selects the compressed path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	h, err := parseHeader(data)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}

	return &Reader{
		file:   f,
		data:   data,
		header: h,
		isLaz:  IsCompressed(path),
	}, nil
}

// Close releases the memory map and underlying file handle.
func (r *Reader) Close() error {
	if r.data != nil {
		if err := r.data.Unmap(); err != nil {
			return err
		}
		r.data = nil
	}
	return r.file.Close()
}

// Header returns the parsed LAS header.
func (r *Reader) Header() *Header { return r.header }

// IsCompressed reports whether this reader is decoding a LAZ file.
func (r *Reader) IsCompressed() bool { return r.isLaz }

// TotalPoints returns the dataset's point count from the header.
func (r *Reader) TotalPoints() uint64 { return r.header.NumberOfPoints }

// ReadPoints decodes count records starting at start. For LAZ files it
// decompresses the full point stream on first use (see StreamPoints) and
// serves slices out of that buffer; for LAS it decodes lazily from the
// memory map.
func (r *Reader) ReadPoints(start, count uint64) ([]PointRecord, error) {
	if r.isLaz {
		if err := r.ensureLazDecoded(); err != nil {
			return nil, err
		}
		total := uint64(len(r.laz.points))
		if start >= total {
			return nil, nil
		}
		end := start + count
		if end > total {
			end = total
		}
		return r.laz.points[start:end], nil
	}

	h := r.header
	recordLen := uint64(h.PointDataRecordLength)
	dataStart := uint64(h.OffsetToPoints)
	total := h.NumberOfPoints

	if start >= total {
		return nil, nil
	}
	actual := count
	if start+actual > total {
		actual = total - start
	}

	points := make([]PointRecord, 0, actual)
	for i := uint64(0); i < actual; i++ {
		byteOffset := dataStart + (start+i)*recordLen
		end := byteOffset + recordLen
		if end > uint64(len(r.data)) {
			return nil, &TruncatedRecordError{Index: int64(start + i)}
		}
		points = append(points, decodeRecord(r.data[byteOffset:end], h))
	}
	return points, nil
}

// StreamPoints delivers contiguous batches of decoded points to cb, in
// batch_size-sized slices, until the dataset is exhausted or cb returns
// false. For LAS, each batch is decoded lazily from the memory map; for
// LAZ, the full stream is decompressed once (see ensureLazDecoded) and
// then delivered in the same batch shape so callers observe identical
// semantics regardless of compression.
func (r *Reader) StreamPoints(batchSize uint64, cb func(batch []PointRecord, start uint64) bool) error {
	if batchSize == 0 {
		batchSize = 1
	}
	total := r.header.NumberOfPoints
	var offset uint64

	for offset < total {
		count := batchSize
		if offset+count > total {
			count = total - offset
		}
		batch, err := r.ReadPoints(offset, count)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}
		if !cb(batch, offset) {
			return nil
		}
		offset += uint64(len(batch))
	}
	return nil
}

// ensureLazDecoded decompresses the entire point block once via the cgo
// LASzip wrapper and caches it for ReadPoints/StreamPoints.
func (r *Reader) ensureLazDecoded() error {
	if r.laz.done {
		return nil
	}

	dec, err := openLazBlock(r.file.Name(), r.data, r.header)
	if err != nil {
		return err
	}
	defer dec.Close()

	h := r.header
	recLen := int(h.PointDataRecordLength)
	scratch := make([]byte, recLen)
	points := make([]PointRecord, 0, h.NumberOfPoints)

	for {
		ok, err := dec.ReadPoint(scratch)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		points = append(points, decodeRecord(scratch, h))
	}

	r.laz.points = points
	r.laz.done = true
	return nil
}
