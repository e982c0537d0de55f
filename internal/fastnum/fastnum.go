// Package fastnum decodes the unsigned-integer and decimal text values the
// exchange feed carries. Digits are consumed in 8-byte batches when the whole
// batch classifies as digits, with a byte-at-a-time loop for the remainder.
//
// Both parsers are total over arbitrary input: decoding stops at the first
// byte that does not fit the expected shape and the value accumulated so far
// is returned. Callers locate value spans with the wire format's delimiters,
// so a partial result only ever happens on malformed input the walkers have
// already chosen to tolerate.
package fastnum

import (
	"encoding/binary"
	"strconv"
	"unsafe"

	"github.com/Kakikou/faster-parser/internal/scan"
)

// pow10 scales fractional parts of up to 18 digits.
var pow10 = [19]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18,
}

var upow10 = [19]uint64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18,
}

// parseEightDigits converts a word of eight ASCII digits (as loaded
// little-endian, so b[0] is the most significant digit) into its value.
func parseEightDigits(w uint64) uint64 {
	const (
		mask uint64 = 0x000000FF000000FF
		mul1 uint64 = 0x000F424000000064 // 100 + (1000000 << 32)
		mul2 uint64 = 0x0000271000000001 // 1 + (10000 << 32)
	)
	w -= 0x3030303030303030
	w = w*10 + w>>8
	return ((w&mask)*mul1 + ((w>>16)&mask)*mul2) >> 32
}

// ParseUint64 decodes a run of ASCII decimal digits. No sign, no overflow
// guard: the wire bounds ids, sequences and millisecond timestamps far below
// 2^63, so digit counts that would overflow simply wrap.
func ParseUint64(b []byte) uint64 {
	var v uint64
	i := 0
	for i+8 <= len(b) {
		w := binary.LittleEndian.Uint64(b[i:])
		if !scan.AllDigitsWord(w) {
			break
		}
		v = v*100000000 + parseEightDigits(w)
		i += 8
	}
	for ; i < len(b); i++ {
		c := b[i]
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + uint64(c-'0')
	}
	return v
}

// ParseFloat decodes a signed decimal of the shape the feed emits: optional
// sign, integer part, optional '.' plus up to 18 fractional digits. Exchange
// prices and quantities are fixed-scale strings with at most 8 fractional
// digits, which the batched path reproduces exactly; anomalously long integer
// parts fall back to strconv to avoid precision loss in the accumulator.
func ParseFloat(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}

	i := 0
	negative := false
	switch b[0] {
	case '-':
		negative = true
		i++
	case '+':
		i++
	}

	var integerPart uint64
	integerDigits := 0
	for i+8 <= len(b) {
		w := binary.LittleEndian.Uint64(b[i:])
		if !scan.AllDigitsWord(w) {
			break
		}
		if integerDigits >= 10 {
			return standardParse(b)
		}
		integerPart = integerPart*100000000 + parseEightDigits(w)
		i += 8
		integerDigits += 8
	}
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		integerPart = integerPart*10 + uint64(b[i]-'0')
		i++
		integerDigits++
	}

	if i >= len(b) || b[i] != '.' {
		result := float64(integerPart)
		if negative {
			return -result
		}
		return result
	}
	i++

	var fractionalPart uint64
	fractionalDigits := 0
	if i+8 <= len(b) {
		if w := binary.LittleEndian.Uint64(b[i:]); scan.AllDigitsWord(w) {
			fractionalPart = parseEightDigits(w)
			fractionalDigits = 8
			i += 8
		}
	}
	for i < len(b) && b[i] >= '0' && b[i] <= '9' && fractionalDigits < 18 {
		fractionalPart = fractionalPart*10 + uint64(b[i]-'0')
		i++
		fractionalDigits++
	}
	// Trailing zeros carry no value; trimming them keeps the power-of-ten
	// scale small for the common fixed-scale price strings.
	for fractionalDigits > 0 && fractionalPart%10 == 0 {
		fractionalPart /= 10
		fractionalDigits--
	}

	result := float64(integerPart)
	if fractionalDigits > 0 {
		// When the whole value fits 53 bits as a scaled integer, one
		// correctly-rounded division reproduces the standard conversion bit
		// for bit. Prices and quantities always take this path.
		scale := upow10[fractionalDigits]
		if integerPart < (1<<53)/scale {
			if m := integerPart*scale + fractionalPart; m < 1<<53 {
				result = float64(m) / pow10[fractionalDigits]
				if negative {
					return -result
				}
				return result
			}
		}
		result += float64(fractionalPart) / pow10[fractionalDigits]
	}
	if negative {
		return -result
	}
	return result
}

// standardParse hands extreme-magnitude inputs to the locale-independent
// standard conversion.
func standardParse(b []byte) float64 {
	v, err := strconv.ParseFloat(unsafeString(b), 64)
	if err != nil {
		return 0
	}
	return v
}

// unsafeString views b as a string without copying. The view never escapes
// standardParse.
func unsafeString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}
