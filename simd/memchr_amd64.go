//go:build amd64

package simd

import "golang.org/x/sys/cpu"

// hasAVX2 gates which pure-Go scan loop memchrDispatch uses. There is no
// hand-written vector assembly behind this module's Memchr/MemchrAny/Index:
// the distinction below is between an 8-bytes-at-a-time SWAR loop (used when
// the CPU reports wide-vector support, since such CPUs also tend to have
// faster unaligned 64-bit loads) and the byte-at-a-time generic loop. A real
// native-code backend would replace wideScan's body with actual AVX2
// instructions; this is the seam for that, not the instructions themselves.
var hasAVX2 = cpu.X86.HasAVX2

func memchrDispatch(haystack []byte, needle byte) int {
	if hasAVX2 {
		return wideScan(haystack, needle)
	}
	return genericScan(haystack, needle)
}
