// Package simd provides the byte/character-class scanning primitives the
// fast-forward scanner (spec.md §4.5, §9 "SIMD") is built on: a portable
// Scan16 operation ("scan16(needles, haystack) -> first_index_or_16") plus
// memchr-style single/multi-byte search, each with a scalar fallback for
// non-SIMD targets, adapted from the teacher's simd package.
//
// The scanner selects its implementation at pattern-compile time (the
// compiler package's buildScanner builds one scanner per compiled Program),
// never per-call, per spec.md §9.
package simd

// Scan16 reports the index of the first byte in haystack equal to any byte
// in needles, scanning at most 16 bytes, or 16 if none match (mirroring the
// x86_64 PCMPESTRI-style "packed compare, implicit length" primitive spec.md
// §9 describes: "scan16(needles, haystack) -> first_index_or_16").
//
// Portable callers should prefer Memchr/MemchrAny below, which scan the
// whole haystack and do not use Scan16; Scan16 is the narrow 16-byte
// primitive on its own.
func Scan16(needles []byte, haystack []byte) int {
	n := len(haystack)
	if n > 16 {
		n = 16
	}
	for i := 0; i < n; i++ {
		for _, want := range needles {
			if haystack[i] == want {
				return i
			}
		}
	}
	return 16
}

// Memchr returns the index of the first instance of needle in haystack, or
// -1 if absent.
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) == 0 {
		return -1
	}
	return memchrDispatch(haystack, needle)
}

// MemchrAny returns the index of the first byte in haystack matching any of
// needles, or -1. A single needle goes through Memchr; several needles are
// checked with a plain byte loop.
func MemchrAny(haystack []byte, needles ...byte) int {
	switch len(needles) {
	case 0:
		return -1
	case 1:
		return Memchr(haystack, needles[0])
	default:
		for i, b := range haystack {
			for _, want := range needles {
				if b == want {
					return i
				}
			}
		}
		return -1
	}
}

// Index returns the index of the first instance of needle (a multi-byte
// literal) in haystack, or -1. This is the "literal string with SIMD
// byte-compare" scanner shape of spec.md §4.5.
func Index(haystack, needle []byte) int {
	if len(needle) == 0 {
		return 0
	}
	if len(needle) == 1 {
		return Memchr(haystack, needle[0])
	}
	first := needle[0]
	i := Memchr(haystack, first)
	for i != -1 && i <= len(haystack)-len(needle) {
		if bytesEqual(haystack[i:i+len(needle)], needle) {
			return i
		}
		next := Memchr(haystack[i+1:], first)
		if next == -1 {
			return -1
		}
		i += 1 + next
	}
	return -1
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
