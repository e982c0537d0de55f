//go:build amd64

package scan

import (
	"golang.org/x/sys/cpu"
)

// wideKernelSupported selects the unrolled 32-byte kernel on cores with
// 256-bit vector units, where the compiler keeps four lanes in flight.
func wideKernelSupported() bool {
	return cpu.X86.HasAVX2
}
