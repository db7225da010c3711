package pefile

import (
	"fmt"

	"github.com/latortuga71/GoPE/pkg/bstr"
)

// Symbol selects an export either by name or by ordinal. Making the two
// cases distinct types removes the classic "upper 16 bits of the pointer
// are zero, so treat it as an ordinal" guesswork; callers state intent and
// the compiler holds them to it.
type Symbol interface {
	symbol()
}

// SymbolName selects an export by byte-exact name comparison.
type SymbolName string

// SymbolOrdinal selects an export by its 16-bit ordinal.
type SymbolOrdinal uint16

func (SymbolName) symbol()    {}
func (SymbolOrdinal) symbol() {}

// exportTables is the shared directory-location step: the decoded export
// directory plus its function, name and hint tables, all offsets already
// resolved for the image's addressing scheme.
type exportTables struct {
	dir       ExportDirectory
	functions []uint32
	names     []uint32
	hints     []uint16
}

func (img *Image) exportTables() (*exportTables, error) {
	dd := img.NTHeaders().OptionalHeader().DataDirectory()[DirectoryEntryExport]
	if dd.VirtualAddress == 0 || dd.Size == 0 {
		return nil, fmt.Errorf("%w: no export directory", ErrNotFound)
	}
	dirOff, err := img.regionOffset(dd.VirtualAddress)
	if err != nil {
		return nil, err
	}
	t := &exportTables{}
	if err := img.readStruct(dirOff, exportDirectorySize, &t.dir); err != nil {
		return nil, err
	}
	eatOff, err := img.regionOffset(t.dir.AddressOfFunctions)
	if err != nil {
		return nil, err
	}
	if t.functions, err = img.readU32Table(eatOff, t.dir.NumberOfFunctions); err != nil {
		return nil, err
	}
	namesOff, err := img.regionOffset(t.dir.AddressOfNames)
	if err != nil {
		return nil, err
	}
	if t.names, err = img.readU32Table(namesOff, t.dir.NumberOfNames); err != nil {
		return nil, err
	}
	hintsOff, err := img.regionOffset(t.dir.AddressOfNameOrdinals)
	if err != nil {
		return nil, err
	}
	if t.hints, err = img.readU16Table(hintsOff, t.dir.NumberOfNames); err != nil {
		return nil, err
	}
	return t, nil
}

// ResolveExport returns the virtual offset of the selected export, relative
// to the image base. Lookup by name scans the name table linearly and maps
// the match through the hint table into the function table. Lookup by
// ordinal bound-checks against [Base, Base+NumberOfFunctions) and indexes
// directly.
func (img *Image) ResolveExport(sym Symbol) (uint32, error) {
	t, err := img.exportTables()
	if err != nil {
		return 0, err
	}
	switch s := sym.(type) {
	case SymbolOrdinal:
		ordinal := uint32(s)
		if ordinal < t.dir.Base || ordinal >= t.dir.Base+t.dir.NumberOfFunctions {
			return 0, fmt.Errorf("%w: ordinal %d, table [%d,%d)", ErrOrdinalRange,
				ordinal, t.dir.Base, t.dir.Base+t.dir.NumberOfFunctions)
		}
		return t.functions[ordinal-t.dir.Base], nil
	case SymbolName:
		return img.scanExportNames(t, func(name []byte) bool {
			return bstr.Equal([]byte(s), name)
		})
	default:
		return 0, fmt.Errorf("%w: unknown symbol kind %T", ErrNotFound, sym)
	}
}

// ResolveExportXor behaves like a by-name lookup but compares each
// candidate against an XOR-masked pattern, so the plaintext symbol name
// never appears in the caller's own memory or binary.
func (img *Image) ResolveExportXor(obfuscated, key []byte) (uint32, error) {
	t, err := img.exportTables()
	if err != nil {
		return 0, err
	}
	return img.scanExportNames(t, func(name []byte) bool {
		return bstr.EqualXor(obfuscated, name, key)
	})
}

// scanExportNames walks the name table in order and returns the function
// table entry selected by the first name the match function accepts.
func (img *Image) scanExportNames(t *exportTables, match func([]byte) bool) (uint32, error) {
	for i, nameRVA := range t.names {
		strOff, err := img.regionOffset(nameRVA)
		if err != nil {
			return 0, err
		}
		name, err := img.cstringAt(strOff)
		if err != nil {
			return 0, err
		}
		if !match(name) {
			continue
		}
		hint := uint32(t.hints[i])
		if hint >= t.dir.NumberOfFunctions {
			return 0, fmt.Errorf("%w: hint %d outside function table", ErrNotFound, hint)
		}
		return t.functions[hint], nil
	}
	return 0, fmt.Errorf("%w: export name", ErrNotFound)
}
