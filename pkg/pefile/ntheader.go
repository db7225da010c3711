package pefile

// NTHeaders is the second navigation stage. It can only be reached through
// a validated Image, so every accessor may assume the header chain checked
// out at Open time.
type NTHeaders struct {
	img *Image
}

// Offset returns the NT headers' position inside the backing region.
func (nt NTHeaders) Offset() uint32 {
	return nt.img.ntOffset
}

// Signature returns the validated NT signature ("PE\0\0").
func (nt NTHeaders) Signature() uint32 {
	return nt.img.ntSig
}

// FileHeader returns the decoded COFF file header.
func (nt NTHeaders) FileHeader() FileHeader {
	return nt.img.file
}

// Size is the full NT headers size for the image's bit-width: signature,
// file header and optional header. The section table starts right after.
func (nt NTHeaders) Size() uint32 {
	if nt.img.is64 {
		return 4 + fileHeaderSize + optionalHeader64Size
	}
	return 4 + fileHeaderSize + optionalHeader32Size
}

// OptionalHeader steps to the third navigation stage.
func (nt NTHeaders) OptionalHeader() OptionalHeader {
	return OptionalHeader{img: nt.img}
}

// OptionalHeader is the bit-width-aware accessor stage. The 32-vs-64-bit
// variant was decided once at Open from the machine type; every accessor
// dispatches on that fixed tag instead of re-deriving it.
type OptionalHeader struct {
	img *Image
}

// Offset returns the optional header's position inside the backing region.
func (oh OptionalHeader) Offset() uint32 {
	return oh.img.ntOffset + 4 + fileHeaderSize
}

// Size is the optional header size for the image's bit-width.
func (oh OptionalHeader) Size() uint32 {
	if oh.img.is64 {
		return optionalHeader64Size
	}
	return optionalHeader32Size
}

func (oh OptionalHeader) Magic() uint16 {
	if oh.img.is64 {
		return oh.img.oh64.Magic
	}
	return oh.img.oh32.Magic
}

func (oh OptionalHeader) MajorLinkerVersion() uint8 {
	if oh.img.is64 {
		return oh.img.oh64.MajorLinkerVersion
	}
	return oh.img.oh32.MajorLinkerVersion
}

func (oh OptionalHeader) MinorLinkerVersion() uint8 {
	if oh.img.is64 {
		return oh.img.oh64.MinorLinkerVersion
	}
	return oh.img.oh32.MinorLinkerVersion
}

func (oh OptionalHeader) SizeOfCode() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.SizeOfCode
	}
	return oh.img.oh32.SizeOfCode
}

func (oh OptionalHeader) SizeOfInitializedData() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.SizeOfInitializedData
	}
	return oh.img.oh32.SizeOfInitializedData
}

func (oh OptionalHeader) SizeOfUninitializedData() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.SizeOfUninitializedData
	}
	return oh.img.oh32.SizeOfUninitializedData
}

func (oh OptionalHeader) AddressOfEntryPoint() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.AddressOfEntryPoint
	}
	return oh.img.oh32.AddressOfEntryPoint
}

func (oh OptionalHeader) BaseOfCode() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.BaseOfCode
	}
	return oh.img.oh32.BaseOfCode
}

// ImageBase widens the 32-bit field so both layouts present one type.
func (oh OptionalHeader) ImageBase() uint64 {
	if oh.img.is64 {
		return oh.img.oh64.ImageBase
	}
	return uint64(oh.img.oh32.ImageBase)
}

func (oh OptionalHeader) SectionAlignment() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.SectionAlignment
	}
	return oh.img.oh32.SectionAlignment
}

func (oh OptionalHeader) FileAlignment() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.FileAlignment
	}
	return oh.img.oh32.FileAlignment
}

func (oh OptionalHeader) MajorOperatingSystemVersion() uint16 {
	if oh.img.is64 {
		return oh.img.oh64.MajorOperatingSystemVersion
	}
	return oh.img.oh32.MajorOperatingSystemVersion
}

func (oh OptionalHeader) MinorOperatingSystemVersion() uint16 {
	if oh.img.is64 {
		return oh.img.oh64.MinorOperatingSystemVersion
	}
	return oh.img.oh32.MinorOperatingSystemVersion
}

func (oh OptionalHeader) MajorImageVersion() uint16 {
	if oh.img.is64 {
		return oh.img.oh64.MajorImageVersion
	}
	return oh.img.oh32.MajorImageVersion
}

func (oh OptionalHeader) MinorImageVersion() uint16 {
	if oh.img.is64 {
		return oh.img.oh64.MinorImageVersion
	}
	return oh.img.oh32.MinorImageVersion
}

func (oh OptionalHeader) MajorSubsystemVersion() uint16 {
	if oh.img.is64 {
		return oh.img.oh64.MajorSubsystemVersion
	}
	return oh.img.oh32.MajorSubsystemVersion
}

func (oh OptionalHeader) MinorSubsystemVersion() uint16 {
	if oh.img.is64 {
		return oh.img.oh64.MinorSubsystemVersion
	}
	return oh.img.oh32.MinorSubsystemVersion
}

func (oh OptionalHeader) Win32VersionValue() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.Win32VersionValue
	}
	return oh.img.oh32.Win32VersionValue
}

func (oh OptionalHeader) SizeOfImage() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.SizeOfImage
	}
	return oh.img.oh32.SizeOfImage
}

func (oh OptionalHeader) SizeOfHeaders() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.SizeOfHeaders
	}
	return oh.img.oh32.SizeOfHeaders
}

func (oh OptionalHeader) CheckSum() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.CheckSum
	}
	return oh.img.oh32.CheckSum
}

func (oh OptionalHeader) Subsystem() uint16 {
	if oh.img.is64 {
		return oh.img.oh64.Subsystem
	}
	return oh.img.oh32.Subsystem
}

func (oh OptionalHeader) DllCharacteristics() uint16 {
	if oh.img.is64 {
		return oh.img.oh64.DllCharacteristics
	}
	return oh.img.oh32.DllCharacteristics
}

func (oh OptionalHeader) SizeOfStackReserve() uint64 {
	if oh.img.is64 {
		return oh.img.oh64.SizeOfStackReserve
	}
	return uint64(oh.img.oh32.SizeOfStackReserve)
}

func (oh OptionalHeader) SizeOfStackCommit() uint64 {
	if oh.img.is64 {
		return oh.img.oh64.SizeOfStackCommit
	}
	return uint64(oh.img.oh32.SizeOfStackCommit)
}

func (oh OptionalHeader) SizeOfHeapReserve() uint64 {
	if oh.img.is64 {
		return oh.img.oh64.SizeOfHeapReserve
	}
	return uint64(oh.img.oh32.SizeOfHeapReserve)
}

func (oh OptionalHeader) SizeOfHeapCommit() uint64 {
	if oh.img.is64 {
		return oh.img.oh64.SizeOfHeapCommit
	}
	return uint64(oh.img.oh32.SizeOfHeapCommit)
}

func (oh OptionalHeader) LoaderFlags() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.LoaderFlags
	}
	return oh.img.oh32.LoaderFlags
}

func (oh OptionalHeader) NumberOfRvaAndSizes() uint32 {
	if oh.img.is64 {
		return oh.img.oh64.NumberOfRvaAndSizes
	}
	return oh.img.oh32.NumberOfRvaAndSizes
}

// DataDirectory returns the 16-entry directory array.
func (oh OptionalHeader) DataDirectory() [numDataDirectories]DataDirectory {
	if oh.img.is64 {
		return oh.img.oh64.DataDirectory
	}
	return oh.img.oh32.DataDirectory
}
