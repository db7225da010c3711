package pefile

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// Fixed layout shared by the synthetic test images. One section, with the
// export, import and resource directories all living inside it.
const (
	tiNTOffset   = 0x80
	tiSectionVA  = 0x1000
	tiSectionRaw = 0x400
	tiRawSize    = 0x1000
	tiFileSize   = tiSectionRaw + tiRawSize
	tiImageSize  = 0x3000

	tiExportVA   = 0x1000
	tiImportVA   = 0x1200
	tiResourceVA = 0x1400
	tiPayloadVA  = 0x1500

	tiResourceID = 0x66

	tiOrdinalBase = 5
)

var tiPayload = []byte("RESOURCE-PAYLOAD")

func writeAt(t *testing.T, img []byte, off uint32, v interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
		t.Fatalf("encode at 0x%x: %v", off, err)
	}
	copy(img[off:], buf.Bytes())
}

func patchU32(img []byte, off, v uint32) {
	binary.LittleEndian.PutUint32(img[off:], v)
}

// dataDirOffset returns the position of a data-directory slot in the
// synthetic image, for corruption tests.
func dataDirOffset(is64 bool, index uint32) uint32 {
	base := uint32(tiNTOffset) + 4 + fileHeaderSize
	if is64 {
		return base + 112 + index*8
	}
	return base + 96 + index*8
}

// buildImage assembles a well-formed image. The unmapped form uses the
// on-disk layout, with section content at file offsets; the mapped form
// places section content at its virtual addresses inside a
// SizeOfImage-sized region, leaving loader-style zero slack between the
// headers and the first section.
func buildImage(t *testing.T, is64, mapped bool) []byte {
	t.Helper()
	size := tiFileSize
	if mapped {
		size = tiImageSize
	}
	img := make([]byte, size)

	// loc maps a section RVA to its buffer position under the chosen layout.
	loc := func(rva uint32) uint32 {
		if mapped {
			return rva
		}
		return rva - tiSectionVA + tiSectionRaw
	}

	// The 0x90 stub byte after "MZ" matters: the mapped-state probe
	// reads it when a translated name offset degenerates to zero.
	dos := DOSHeader{
		Magic:                 dosSignature,
		BytesOnLastPageOfFile: 0x90,
		PagesInFile:           3,
		AddressOfNewEXEHeader: tiNTOffset,
	}
	writeAt(t, img, 0, &dos)
	writeAt(t, img, tiNTOffset, uint32(ntSignature))

	var dirs [numDataDirectories]DataDirectory
	dirs[DirectoryEntryExport] = DataDirectory{VirtualAddress: tiExportVA, Size: 0x100}
	dirs[DirectoryEntryImport] = DataDirectory{VirtualAddress: tiImportVA, Size: 2 * importDescriptorSize}
	dirs[DirectoryEntryResource] = DataDirectory{VirtualAddress: tiResourceVA, Size: 0x200}

	var sectionTableOff uint32
	if is64 {
		writeAt(t, img, tiNTOffset+4, &FileHeader{
			Machine:              machineAMD64,
			NumberOfSections:     1,
			SizeOfOptionalHeader: optionalHeader64Size,
		})
		writeAt(t, img, tiNTOffset+4+fileHeaderSize, &OptionalHeader64{
			Magic:                       0x20B,
			AddressOfEntryPoint:         0x1010,
			ImageBase:                   0x140000000,
			SectionAlignment:            0x1000,
			FileAlignment:               0x200,
			MajorOperatingSystemVersion: 10,
			SizeOfImage:                 tiImageSize,
			SizeOfHeaders:               tiSectionRaw,
			Subsystem:                   2,
			SizeOfStackReserve:          0x100000,
			SizeOfHeapReserve:           0x100000,
			NumberOfRvaAndSizes:         numDataDirectories,
			DataDirectory:               dirs,
		})
		sectionTableOff = tiNTOffset + 4 + fileHeaderSize + optionalHeader64Size
	} else {
		writeAt(t, img, tiNTOffset+4, &FileHeader{
			Machine:              0x14C,
			NumberOfSections:     1,
			SizeOfOptionalHeader: optionalHeader32Size,
		})
		writeAt(t, img, tiNTOffset+4+fileHeaderSize, &OptionalHeader32{
			Magic:                       0x10B,
			AddressOfEntryPoint:         0x1010,
			ImageBase:                   0x400000,
			SectionAlignment:            0x1000,
			FileAlignment:               0x200,
			MajorOperatingSystemVersion: 6,
			SizeOfImage:                 tiImageSize,
			SizeOfHeaders:               tiSectionRaw,
			Subsystem:                   2,
			SizeOfStackReserve:          0x100000,
			SizeOfHeapReserve:           0x100000,
			NumberOfRvaAndSizes:         numDataDirectories,
			DataDirectory:               dirs,
		})
		sectionTableOff = tiNTOffset + 4 + fileHeaderSize + optionalHeader32Size
	}

	var name [8]byte
	copy(name[:], ".rdata")
	writeAt(t, img, sectionTableOff, &SectionHeader{
		Name:             name,
		VirtualSize:      tiRawSize,
		VirtualAddress:   tiSectionVA,
		SizeOfRawData:    tiRawSize,
		PointerToRawData: tiSectionRaw,
	})

	// Export directory: three functions, two of them named.
	writeAt(t, img, loc(tiExportVA), &ExportDirectory{
		Base:                  tiOrdinalBase,
		NumberOfFunctions:     3,
		NumberOfNames:         2,
		AddressOfFunctions:    0x1040,
		AddressOfNames:        0x1050,
		AddressOfNameOrdinals: 0x1060,
	})
	writeAt(t, img, loc(0x1040), []uint32{0x2010, 0x2020, 0x2030})
	writeAt(t, img, loc(0x1050), []uint32{0x1080, 0x1090})
	writeAt(t, img, loc(0x1060), []uint16{0, 2})
	copy(img[loc(0x1080):], "Alpha\x00")
	copy(img[loc(0x1090):], "Beta\x00")

	// One import descriptor plus the zero terminator.
	writeAt(t, img, loc(tiImportVA), &ImportDescriptor{Name: 0x1300, FirstThunk: 0x1310})
	copy(img[loc(0x1300):], "KERNEL32.dll\x00")

	// Resource tree; all inner offsets are relative to the root table.
	res := loc(tiResourceVA)
	writeAt(t, img, res, &resourceDirectory{NumberOfIDEntries: 1})
	writeAt(t, img, res+0x10, &resourceDirectoryEntry{Name: resourceTypeRCData, OffsetToData: resourceSubdirFlag | 0x30})
	writeAt(t, img, res+0x30, &resourceDirectory{NumberOfNamedEntries: 1, NumberOfIDEntries: 1})
	writeAt(t, img, res+0x40, &resourceDirectoryEntry{Name: resourceSubdirFlag | 0xA0, OffsetToData: resourceSubdirFlag | 0x60})
	writeAt(t, img, res+0x48, &resourceDirectoryEntry{Name: tiResourceID, OffsetToData: resourceSubdirFlag | 0x60})
	writeAt(t, img, res+0x60, &resourceDirectory{NumberOfIDEntries: 1})
	writeAt(t, img, res+0x70, &resourceDirectoryEntry{Name: 0x409, OffsetToData: 0x90})
	writeAt(t, img, res+0x90, &resourceDataEntry{DataRVA: tiPayloadVA, DataSize: uint32(len(tiPayload))})
	writeAt(t, img, res+0xA0, uint16(4))
	writeAt(t, img, res+0xA2, []uint16{'D', 'A', 'T', 'A'})

	copy(img[loc(tiPayloadVA):], tiPayload)
	return img
}

func mustOpen(t *testing.T, is64, mapped bool) *Image {
	t.Helper()
	img, err := Open(buildImage(t, is64, mapped))
	if err != nil {
		t.Fatalf("Open(is64=%v mapped=%v) failed: %v", is64, mapped, err)
	}
	return img
}
