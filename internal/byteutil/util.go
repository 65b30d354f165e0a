package byteutil

import (
	"encoding/binary"
	"unsafe"
)

func EncodeUint64ToBytes(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)
	return b
}

func DecodeUint64FromBytes(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func BytesToString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}
