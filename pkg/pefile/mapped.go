package pefile

import "github.com/latortuga71/GoPE/pkg/bstr"

// detectMapped classifies the backing bytes as an already-loaded image or
// a raw on-disk layout. The probe file-translates the import descriptor
// table and checks every module-name string for pure 7-bit text: in an
// on-disk layout the translated offsets land on real ASCII names, while in
// a mapped image they land on loader slack or header bytes that are not.
//
// This is a heuristic. It depends on how the platform loader happens to
// reuse the memory between the header region and the first section, and a
// stripped or import-free image always classifies as unmapped. Callers
// that know better should hand in bytes laid out the way they claim.
func (img *Image) detectMapped() bool {
	dd := img.NTHeaders().OptionalHeader().DataDirectory()[DirectoryEntryImport]
	if dd.VirtualAddress == 0 || dd.Size < 2*importDescriptorSize {
		return false
	}
	tableOff, err := img.RVAToOffset(dd.VirtualAddress)
	if err != nil {
		return false
	}
	// The directory size counts the all-zero terminator descriptor;
	// leave it out of the walk.
	count := dd.Size/importDescriptorSize - 1
	if count > maxImportDescriptors {
		count = maxImportDescriptors
	}
	for i := uint32(0); i < count; i++ {
		var desc ImportDescriptor
		if err := img.readStruct(tableOff+i*importDescriptorSize, importDescriptorSize, &desc); err != nil {
			return false
		}
		// A zero name translates to offset zero and probes the DOS
		// header bytes, which include non-ASCII stub content in any
		// real image. That is exactly the signal: a mapped image has
		// nothing useful at the file-translated positions.
		nameOff, err := img.RVAToOffset(desc.Name)
		if err != nil {
			nameOff = 0
		}
		name, err := img.cstringAt(nameOff)
		if err != nil {
			continue
		}
		if !bstr.IsASCII(name) {
			return true
		}
	}
	return false
}
