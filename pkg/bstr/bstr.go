// Package bstr holds the byte-string primitives the PE engine leans on:
// exact comparison, XOR-masked comparison and NUL-terminated length scans.
package bstr

// CLen returns the length of the NUL-terminated string at the start of b.
// If no NUL is present the whole slice is the string.
func CLen(b []byte) int {
	for i := 0; i < len(b); i++ {
		if b[i] == 0 {
			return i
		}
	}
	return len(b)
}

// CString slices the NUL-terminated string at the start of b, without the NUL.
func CString(b []byte) []byte {
	return b[:CLen(b)]
}

// Equal reports whether a and b hold the same bytes.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for x := 0; x < len(a); x++ {
		if a[x] != b[x] {
			return false
		}
	}
	return true
}

// EqualXor reports whether obfuscated is plain masked with key. The key
// repeats when shorter than the name. The plaintext never has to exist on
// the caller's side.
func EqualXor(obfuscated, plain, key []byte) bool {
	if len(key) == 0 || len(obfuscated) != len(plain) {
		return false
	}
	for x := 0; x < len(plain); x++ {
		if obfuscated[x] != plain[x]^key[x%len(key)] {
			return false
		}
	}
	return true
}

// Xor masks name with key, the inverse of what EqualXor checks.
func Xor(name, key []byte) []byte {
	if len(key) == 0 {
		return nil
	}
	out := make([]byte, len(name))
	for x := 0; x < len(name); x++ {
		out[x] = name[x] ^ key[x%len(key)]
	}
	return out
}

// IsASCII reports whether every byte in b is 7-bit text.
func IsASCII(b []byte) bool {
	for x := 0; x < len(b); x++ {
		if b[x] > 0x7F {
			return false
		}
	}
	return true
}
