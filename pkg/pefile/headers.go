package pefile

const (
	// IMAGE_DOS_SIGNATURE ("MZ") and IMAGE_NT_SIGNATURE ("PE\0\0").
	dosSignature = 0x5A4D
	ntSignature  = 0x00004550

	machineAMD64 = 0x8664

	// MaxSections caps section table scans. The Windows loader itself
	// refuses images with more than 96 sections, so a larger declared
	// count is hostile by definition.
	MaxSections = 96

	// A hostile import directory size must not turn the mapped-state
	// probe into an unbounded walk.
	maxImportDescriptors = 4096

	// Longest name the engine will scan for a terminating NUL.
	maxNameScan = 4096

	numDataDirectories = 16

	// Data directory slots used by the engine.
	DirectoryEntryExport   = 0
	DirectoryEntryImport   = 1
	DirectoryEntryResource = 2

	dosHeaderSize          = 64
	fileHeaderSize         = 20
	optionalHeader32Size   = 224
	optionalHeader64Size   = 240
	sectionHeaderSize      = 40
	importDescriptorSize   = 20
	exportDirectorySize    = 40
	resourceDirectorySize  = 16
	resourceEntrySize      = 8
	resourceDataEntrySize  = 16

	// RT_RCDATA, the raw-data resource type walked by Resource.
	resourceTypeRCData = 10

	// High bit of a resource entry offset marks a subdirectory.
	resourceSubdirFlag = 0x80000000
)

// DOSHeader is the legacy stub header. Only Magic and AddressOfNewEXEHeader
// matter to the engine; the rest ride along for callers that want them.
type DOSHeader struct {
	Magic                    uint16
	BytesOnLastPageOfFile    uint16
	PagesInFile              uint16
	Relocations              uint16
	SizeOfHeader             uint16
	MinExtraParagraphsNeeded uint16
	MaxExtraParagraphsNeeded uint16
	InitialSS                uint16
	InitialSP                uint16
	Checksum                 uint16
	InitialIP                uint16
	InitialCS                uint16
	AddressOfRelocationTable uint16
	OverlayNumber            uint16
	ReservedWords1           [4]uint16
	OEMIdentifier            uint16
	OEMInformation           uint16
	ReservedWords2           [10]uint16
	AddressOfNewEXEHeader    uint32
}

// FileHeader is the COFF header following the NT signature.
type FileHeader struct {
	Machine              uint16
	NumberOfSections     uint16
	TimeDateStamp        uint32
	PointerToSymbolTable uint32
	NumberOfSymbols      uint32
	SizeOfOptionalHeader uint16
	Characteristics      uint16
}

// DataDirectory is one (RVA, size) slot of the 16-entry directory array.
type DataDirectory struct {
	VirtualAddress uint32
	Size           uint32
}

// OptionalHeader32 is the PE32 optional header layout.
type OptionalHeader32 struct {
	Magic                       uint16
	MajorLinkerVersion          uint8
	MinorLinkerVersion          uint8
	SizeOfCode                  uint32
	SizeOfInitializedData       uint32
	SizeOfUninitializedData     uint32
	AddressOfEntryPoint         uint32
	BaseOfCode                  uint32
	BaseOfData                  uint32
	ImageBase                   uint32
	SectionAlignment            uint32
	FileAlignment               uint32
	MajorOperatingSystemVersion uint16
	MinorOperatingSystemVersion uint16
	MajorImageVersion           uint16
	MinorImageVersion           uint16
	MajorSubsystemVersion       uint16
	MinorSubsystemVersion       uint16
	Win32VersionValue           uint32
	SizeOfImage                 uint32
	SizeOfHeaders               uint32
	CheckSum                    uint32
	Subsystem                   uint16
	DllCharacteristics          uint16
	SizeOfStackReserve          uint32
	SizeOfStackCommit           uint32
	SizeOfHeapReserve           uint32
	SizeOfHeapCommit            uint32
	LoaderFlags                 uint32
	NumberOfRvaAndSizes         uint32
	DataDirectory               [numDataDirectories]DataDirectory
}

// OptionalHeader64 is the PE32+ optional header layout. BaseOfData is gone
// and ImageBase plus the stack/heap fields widen to 8 bytes.
type OptionalHeader64 struct {
	Magic                       uint16
	MajorLinkerVersion          uint8
	MinorLinkerVersion          uint8
	SizeOfCode                  uint32
	SizeOfInitializedData       uint32
	SizeOfUninitializedData     uint32
	AddressOfEntryPoint         uint32
	BaseOfCode                  uint32
	ImageBase                   uint64
	SectionAlignment            uint32
	FileAlignment               uint32
	MajorOperatingSystemVersion uint16
	MinorOperatingSystemVersion uint16
	MajorImageVersion           uint16
	MinorImageVersion           uint16
	MajorSubsystemVersion       uint16
	MinorSubsystemVersion       uint16
	Win32VersionValue           uint32
	SizeOfImage                 uint32
	SizeOfHeaders               uint32
	CheckSum                    uint32
	Subsystem                   uint16
	DllCharacteristics          uint16
	SizeOfStackReserve          uint64
	SizeOfStackCommit           uint64
	SizeOfHeapReserve           uint64
	SizeOfHeapCommit            uint64
	LoaderFlags                 uint32
	NumberOfRvaAndSizes         uint32
	DataDirectory               [numDataDirectories]DataDirectory
}

// SectionHeader is one entry of the section table.
type SectionHeader struct {
	Name                 [8]byte
	VirtualSize          uint32
	VirtualAddress       uint32
	SizeOfRawData        uint32
	PointerToRawData     uint32
	PointerToRelocations uint32
	PointerToLinenumbers uint32
	NumberOfRelocations  uint16
	NumberOfLinenumbers  uint16
	Characteristics      uint32
}

// NameString returns the section name without trailing NULs.
func (s *SectionHeader) NameString() string {
	n := 0
	for n < len(s.Name) && s.Name[n] != 0 {
		n++
	}
	return string(s.Name[:n])
}

// ImportDescriptor is one entry of the import descriptor table. The engine
// only walks it for the mapped-state probe.
type ImportDescriptor struct {
	OriginalFirstThunk uint32
	TimeDateStamp      uint32
	ForwarderChain     uint32
	Name               uint32
	FirstThunk         uint32
}

// ExportDirectory describes every symbol an image exposes, by name or ordinal.
type ExportDirectory struct {
	Characteristics       uint32
	TimeDateStamp         uint32
	MajorVersion          uint16
	MinorVersion          uint16
	Name                  uint32
	Base                  uint32
	NumberOfFunctions     uint32
	NumberOfNames         uint32
	AddressOfFunctions    uint32
	AddressOfNames        uint32
	AddressOfNameOrdinals uint32
}

// resourceDirectory heads each of the three resource tree levels. Named
// entries precede id-keyed entries in the flat array that follows it.
type resourceDirectory struct {
	Characteristics      uint32
	TimeDateStamp        uint32
	MajorVersion         uint16
	MinorVersion         uint16
	NumberOfNamedEntries uint16
	NumberOfIDEntries    uint16
}

// resourceDirectoryEntry keys a subdirectory or leaf. Name doubles as a
// numeric id or, for named entries, an offset to a counted UTF-16 string
// relative to the root table.
type resourceDirectoryEntry struct {
	Name         uint32
	OffsetToData uint32
}

// resourceDataEntry is the leaf a language-level entry points at.
type resourceDataEntry struct {
	DataRVA  uint32
	DataSize uint32
	CodePage uint32
	Reserved uint32
}
