package bstr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLen(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int
	}{
		{"terminated", []byte("abc\x00def"), 3},
		{"unterminated", []byte("abc"), 3},
		{"leading nul", []byte("\x00abc"), 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CLen(tt.in))
		})
	}
}

func TestCString(t *testing.T) {
	require.Equal(t, []byte("LoadLibraryA"), CString([]byte("LoadLibraryA\x00junk")))
	require.Empty(t, CString([]byte{0}))
}

func TestEqual(t *testing.T) {
	require.True(t, Equal([]byte("abc"), []byte("abc")))
	require.True(t, Equal(nil, []byte{}))
	require.False(t, Equal([]byte("abc"), []byte("abd")))
	require.False(t, Equal([]byte("abc"), []byte("ab")))
}

func TestXorRoundTrip(t *testing.T) {
	name := []byte("GetProcAddress")
	key := []byte{0x41, 0x99}
	masked := Xor(name, key)
	require.NotEqual(t, name, masked)
	require.Equal(t, name, Xor(masked, key))
	require.True(t, EqualXor(masked, name, key))
}

func TestEqualXor(t *testing.T) {
	name := []byte("Sleep")
	key := []byte{0x7F}
	masked := Xor(name, key)
	tests := []struct {
		name       string
		obfuscated []byte
		plain      []byte
		key        []byte
		want       bool
	}{
		{"match", masked, name, key, true},
		{"wrong key", masked, name, []byte{0x01}, false},
		{"wrong plain", masked, []byte("Slees"), key, false},
		{"length mismatch", masked, []byte("Slee"), key, false},
		{"empty key", masked, name, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EqualXor(tt.obfuscated, tt.plain, tt.key))
		})
	}
}

func TestXorEmptyKey(t *testing.T) {
	require.Nil(t, Xor([]byte("abc"), nil))
}

func TestIsASCII(t *testing.T) {
	require.True(t, IsASCII([]byte("KERNEL32.dll")))
	require.True(t, IsASCII(nil))
	require.False(t, IsASCII([]byte{'M', 'Z', 0x90}))
}
