package pefile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRVAToOffset(t *testing.T) {
	img := mustOpen(t, true, false)
	tests := []struct {
		name string
		rva  uint32
		want uint32
	}{
		{"header region is identity", 0x100, 0x100},
		{"section start", tiSectionVA, tiSectionRaw},
		{"inside section", 0x1234, 0x634},
		{"section end is inclusive", tiSectionVA + tiRawSize, tiSectionRaw + tiRawSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := img.RVAToOffset(tt.rva)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRVAToOffsetNoSectionCovers(t *testing.T) {
	img := mustOpen(t, true, false)
	_, err := img.RVAToOffset(0x9000)
	require.ErrorIs(t, err, ErrNoTranslation)
}

func TestRVAToOffsetMappedIdentity(t *testing.T) {
	// A mapped image needs no translation; internal reads use the virtual
	// offset directly. RVAToOffset itself still answers from the section
	// table so callers can reason about the on-disk layout.
	img := mustOpen(t, true, true)
	off, err := img.regionOffset(0x1234)
	require.NoError(t, err)
	require.Equal(t, uint32(0x1234), off)
}
