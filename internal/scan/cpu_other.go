//go:build !amd64 && !arm64

package scan

func wideKernelSupported() bool {
	return false
}
