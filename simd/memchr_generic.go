//go:build !amd64

package simd

func memchrDispatch(haystack []byte, needle byte) int {
	return genericScan(haystack, needle)
}
