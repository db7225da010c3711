package pefile

// RVAToOffset converts a virtual offset to a file offset using the section
// table. Offsets below the first section's raw data pointer live in the
// header region, which sits at the same position in both addressing
// schemes, so they come back unchanged. Otherwise the first section whose
// raw range covers the offset wins, in declaration order.
func (img *Image) RVAToOffset(rva uint32) (uint32, error) {
	if len(img.sections) == 0 {
		return 0, ErrNoTranslation
	}
	if rva < img.sections[0].PointerToRawData {
		return rva, nil
	}
	for i := range img.sections {
		s := &img.sections[i]
		if rva >= s.VirtualAddress && rva <= s.VirtualAddress+s.SizeOfRawData {
			return s.PointerToRawData + (rva - s.VirtualAddress), nil
		}
	}
	return 0, ErrNoTranslation
}

// regionOffset resolves a virtual offset to a position in the backing
// bytes. Mapped images already use virtual addressing, so translation only
// applies to the on-disk representation.
func (img *Image) regionOffset(rva uint32) (uint32, error) {
	if img.mapped {
		return rva, nil
	}
	return img.RVAToOffset(rva)
}
