package util

import (
	"fmt"
	"unsafe"
)

// RotL rotates x left by k bits. k must be in [1, bitwidth-1].
func RotL[T uint8 | uint16 | uint32 | uint64](x T, k uint) T {
	BitWidth := unsafe.Sizeof(x) * 8
	return (x << k) | (x >> (uint(BitWidth) - k))
}

// ArrayToString renders every word as zero padded hex, most significant word first.
func ArrayToString[T uint8 | uint16 | uint32 | uint64](arr []T) string {
	ret := ""

	for _, v := range arr {
		bitWidth := int(unsafe.Sizeof(v) * 8)
		ret += fmt.Sprintf("%0[1]*[2]x", bitWidth/4, v)
	}

	return ret
}

// StringToArray is the inverse of ArrayToString.
func StringToArray[T uint8 | uint16 | uint32 | uint64](s string, arr []T) error {
	var zero T
	digits := int(unsafe.Sizeof(zero) * 2)

	if len(s) != digits*len(arr) {
		return fmt.Errorf("bad hex length (expected %d, got %d)", digits*len(arr), len(s))
	}

	for i := range arr {
		var v uint64
		if _, err := fmt.Sscanf(s[i*digits:(i+1)*digits], "%x", &v); err != nil {
			return err
		}
		arr[i] = T(v)
	}

	return nil
}
