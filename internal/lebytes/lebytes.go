// Package lebytes isolates the little-endian byte-order conversions that
// intset's packed wire format depends on.
//
// intset treats byte order as an external collaborator rather than a
// concern of its own: every integer it stores is canonically little-endian
// on the wire, and this package is the single place that knows how to get
// an integer in or out of that representation.
package lebytes

import "encoding/binary"

// PutInt16 writes v into buf[0:2] in little-endian order.
func PutInt16(buf []byte, v int16) {
	binary.LittleEndian.PutUint16(buf, uint16(v))
}

// Int16 reads a little-endian int16 from buf[0:2].
func Int16(buf []byte) int16 {
	return int16(binary.LittleEndian.Uint16(buf))
}

// PutInt32 writes v into buf[0:4] in little-endian order.
func PutInt32(buf []byte, v int32) {
	binary.LittleEndian.PutUint32(buf, uint32(v))
}

// Int32 reads a little-endian int32 from buf[0:4].
func Int32(buf []byte) int32 {
	return int32(binary.LittleEndian.Uint32(buf))
}

// PutInt64 writes v into buf[0:8] in little-endian order.
func PutInt64(buf []byte, v int64) {
	binary.LittleEndian.PutUint64(buf, uint64(v))
}

// Int64 reads a little-endian int64 from buf[0:8].
func Int64(buf []byte) int64 {
	return int64(binary.LittleEndian.Uint64(buf))
}

// PutUint32 writes v into buf[0:4] in little-endian order.
func PutUint32(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf, v)
}

// Uint32 reads a little-endian uint32 from buf[0:4].
func Uint32(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf)
}
