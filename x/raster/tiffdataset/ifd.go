package tiffdataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"
)

// ifdEntry is one 12-byte TIFF directory entry plus its out-of-line
// payload, if the value does not fit in the 4-byte inline slot.
type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []byte // raw value bytes, in the file's byte order
}

func newShortEntry(order binary.ByteOrder, tag uint16, values ...uint16) ifdEntry {
	buf := make([]byte, len(values)*2)
	for i, v := range values {
		order.PutUint16(buf[i*2:], v)
	}
	return ifdEntry{tag: tag, typ: typeShort, count: uint32(len(values)), data: buf}
}

func newLongEntry(order binary.ByteOrder, tag uint16, values ...uint32) ifdEntry {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		order.PutUint32(buf[i*4:], v)
	}
	return ifdEntry{tag: tag, typ: typeLong, count: uint32(len(values)), data: buf}
}

func newDoubleEntry(order binary.ByteOrder, tag uint16, values ...float64) ifdEntry {
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		order.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return ifdEntry{tag: tag, typ: typeDouble, count: uint32(len(values)), data: buf}
}

func newASCIIEntry(tag uint16, s string) ifdEntry {
	// TIFF ASCII fields are NUL-terminated.
	data := append([]byte(s), 0)
	return ifdEntry{tag: tag, typ: typeASCII, count: uint32(len(data)), data: data}
}

// writeIFD serializes entries (sorted by tag, as TIFF requires) at
// offset into w, closes the directory with a zero "next IFD" pointer,
// and follows it with the out-of-line payloads any entry larger than
// 4 bytes needs.
// It returns the total number of bytes written.
func writeIFD(w io.WriterAt, offset int64, order binary.ByteOrder, entries []ifdEntry) (int64, error) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].tag < entries[j].tag })

	dirSize := int64(2 + len(entries)*12 + 4)
	outOffset := offset + dirSize

	dir := make([]byte, dirSize)
	order.PutUint16(dir[0:], uint16(len(entries)))

	var payload []byte
	cursor := outOffset
	for i, e := range entries {
		pos := 2 + i*12
		order.PutUint16(dir[pos:], e.tag)
		order.PutUint16(dir[pos+2:], e.typ)
		order.PutUint32(dir[pos+4:], e.count)

		if len(e.data) <= 4 {
			copy(dir[pos+8:pos+8+len(e.data)], e.data)
			continue
		}
		order.PutUint32(dir[pos+8:], uint32(cursor))
		payload = append(payload, e.data...)
		if len(e.data)%2 != 0 {
			payload = append(payload, 0) // word-align the next payload
		}
		cursor += int64(len(e.data))
		if len(e.data)%2 != 0 {
			cursor++
		}
	}
	// next IFD offset: 0, no more directories.
	order.PutUint32(dir[dirSize-4:], 0)

	if _, err := w.WriteAt(dir, offset); err != nil {
		return 0, fmt.Errorf("tiffdataset: write IFD directory: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.WriteAt(payload, outOffset); err != nil {
			return 0, fmt.Errorf("tiffdataset: write IFD payload: %w", err)
		}
	}
	return (outOffset - offset) + int64(len(payload)), nil
}

// readIFD reads the directory at offset and returns the raw entries,
// with out-of-line payloads resolved and inlined into each entry's
// data slice.
func readIFD(r io.ReaderAt, offset int64, order binary.ByteOrder) ([]ifdEntry, error) {
	var countBuf [2]byte
	if _, err := r.ReadAt(countBuf[:], offset); err != nil {
		return nil, fmt.Errorf("tiffdataset: read IFD count: %w", err)
	}
	count := order.Uint16(countBuf[:])

	entries := make([]ifdEntry, 0, count)
	for i := 0; i < int(count); i++ {
		var raw [12]byte
		if _, err := r.ReadAt(raw[:], offset+2+int64(i)*12); err != nil {
			return nil, fmt.Errorf("tiffdataset: read IFD entry %d: %w", i, err)
		}
		tag := order.Uint16(raw[0:])
		typ := order.Uint16(raw[2:])
		cnt := order.Uint32(raw[4:])

		size, ok := typeSize[typ]
		if !ok {
			// Unknown/unsupported field type: keep the 4 raw inline
			// bytes so callers that don't need this tag are unaffected.
			entries = append(entries, ifdEntry{tag: tag, typ: typ, count: cnt, data: append([]byte(nil), raw[8:12]...)})
			continue
		}
		total := size * int(cnt)
		var data []byte
		if total <= 4 {
			data = append([]byte(nil), raw[8:8+total]...)
		} else {
			data = make([]byte, total)
			valueOffset := order.Uint32(raw[8:])
			if _, err := r.ReadAt(data, int64(valueOffset)); err != nil {
				return nil, fmt.Errorf("tiffdataset: read out-of-line value for tag %d: %w", tag, err)
			}
		}
		entries = append(entries, ifdEntry{tag: tag, typ: typ, count: cnt, data: data})
	}
	return entries, nil
}

func findEntry(entries []ifdEntry, tag uint16) (ifdEntry, bool) {
	for _, e := range entries {
		if e.tag == tag {
			return e, true
		}
	}
	return ifdEntry{}, false
}

func (e ifdEntry) shorts(order binary.ByteOrder) []uint16 {
	out := make([]uint16, e.count)
	for i := range out {
		out[i] = order.Uint16(e.data[i*2:])
	}
	return out
}

func (e ifdEntry) longs(order binary.ByteOrder) []uint64 {
	out := make([]uint64, e.count)
	switch e.typ {
	case typeShort:
		for i := range out {
			out[i] = uint64(order.Uint16(e.data[i*2:]))
		}
	default:
		for i := range out {
			out[i] = uint64(order.Uint32(e.data[i*4:]))
		}
	}
	return out
}

func (e ifdEntry) doubles(order binary.ByteOrder) []float64 {
	out := make([]float64, e.count)
	for i := range out {
		out[i] = math.Float64frombits(order.Uint64(e.data[i*8:]))
	}
	return out
}

func (e ifdEntry) ascii() string {
	s := string(e.data)
	for len(s) > 0 && s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	}
	return s
}
