package nametab

// hashFold is a case-insensitive djb2 hash (seed 5381) over raw ASCII bytes.
// The value is stored inside entries and used as the fast reject path on
// chain walks, so it must be identical across calls and across process runs.
func hashFold(s string) uint32 {
	h := uint32(5381)
	for i := 0; i < len(s); i++ {
		h = h*33 ^ uint32(lowerASCII(s[i]))
	}
	return h
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// validASCII reports whether s contains only 7-bit bytes.
func validASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}

// foldEqual compares s against stored content, ignoring ASCII case.
func foldEqual(s string, b []byte) bool {
	if len(s) != len(b) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if lowerASCII(s[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}
