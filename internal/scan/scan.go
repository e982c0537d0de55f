// Package scan provides the byte-scanning primitives the message walkers are
// built on: first-match delimiter search, fixed-length literal comparison and
// ASCII digit classification.
//
// All routines operate on 64-bit words (SWAR) with a byte-at-a-time tail. On
// CPUs with wide vector units an unrolled 32-byte kernel is selected once at
// package init; the selection only changes throughput, never results.
package scan

import (
	"encoding/binary"
	"math/bits"
)

const (
	lanes    uint64 = 0x0101010101010101
	highBits uint64 = 0x8080808080808080
)

// useWide is fixed at init. See cpu_amd64.go and friends.
var useWide = wideKernelSupported()

// zeroByteMask returns a word whose high bit is set in every lane where the
// corresponding byte of w is zero. The lowest set lane is always the first
// zero byte, so callers may locate it with bits.TrailingZeros64.
func zeroByteMask(w uint64) uint64 {
	return (w - lanes) &^ w & highBits
}

// FindChar returns the offset of the first occurrence of target in buf, or -1
// if target is not present. Matches are reported in strictly increasing
// offset order: the returned offset is always the nearest occurrence.
func FindChar(buf []byte, target byte) int {
	pattern := lanes * uint64(target)
	i := 0

	if useWide {
		for ; i+32 <= len(buf); i += 32 {
			w0 := binary.LittleEndian.Uint64(buf[i:])
			w1 := binary.LittleEndian.Uint64(buf[i+8:])
			w2 := binary.LittleEndian.Uint64(buf[i+16:])
			w3 := binary.LittleEndian.Uint64(buf[i+24:])
			if m := zeroByteMask(w0 ^ pattern); m != 0 {
				return i + bits.TrailingZeros64(m)>>3
			}
			if m := zeroByteMask(w1 ^ pattern); m != 0 {
				return i + 8 + bits.TrailingZeros64(m)>>3
			}
			if m := zeroByteMask(w2 ^ pattern); m != 0 {
				return i + 16 + bits.TrailingZeros64(m)>>3
			}
			if m := zeroByteMask(w3 ^ pattern); m != 0 {
				return i + 24 + bits.TrailingZeros64(m)>>3
			}
		}
	}

	for ; i+8 <= len(buf); i += 8 {
		w := binary.LittleEndian.Uint64(buf[i:])
		if m := zeroByteMask(w ^ pattern); m != 0 {
			return i + bits.TrailingZeros64(m)>>3
		}
	}

	for ; i < len(buf); i++ {
		if buf[i] == target {
			return i
		}
	}
	return -1
}

// MatchLiteral reports whether buf begins with pattern, byte for byte. The
// caller guarantees len(buf) >= len(pattern); the dispatcher validates the
// message length before classifying.
func MatchLiteral(buf, pattern []byte) bool {
	i := 0
	for ; i+8 <= len(pattern); i += 8 {
		if binary.LittleEndian.Uint64(buf[i:]) != binary.LittleEndian.Uint64(pattern[i:]) {
			return false
		}
	}
	for ; i < len(pattern); i++ {
		if buf[i] != pattern[i] {
			return false
		}
	}
	return true
}

// AllDigitsWord reports whether every byte of w is in '0'..'9'.
func AllDigitsWord(w uint64) bool {
	const (
		highNibbles uint64 = 0xF0F0F0F0F0F0F0F0
		carrySix    uint64 = 0x0606060606060606
		allThrees   uint64 = 0x3333333333333333
	)
	masked := (w & highNibbles) | (((w + carrySix) & highNibbles) >> 4)
	return masked == allThrees
}

// AllDigits reports whether every byte of buf is an ASCII decimal digit.
// The empty slice is all digits.
func AllDigits(buf []byte) bool {
	i := 0
	for ; i+8 <= len(buf); i += 8 {
		if !AllDigitsWord(binary.LittleEndian.Uint64(buf[i:])) {
			return false
		}
	}
	for ; i < len(buf); i++ {
		if buf[i] < '0' || buf[i] > '9' {
			return false
		}
	}
	return true
}
