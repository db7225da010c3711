package pefile

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// Resource walks the three-level resource tree (type, id, language) and
// returns the raw-data blob stored under the given numeric id. Level one
// is searched for the RT_RCDATA type, level two for the caller's id, and
// the first language variant is taken unconditionally. The returned slice
// aliases the backing bytes.
func (img *Image) Resource(id uint32) ([]byte, error) {
	dd := img.NTHeaders().OptionalHeader().DataDirectory()[DirectoryEntryResource]
	if dd.VirtualAddress == 0 || dd.Size == 0 {
		return nil, fmt.Errorf("%w: no resource directory", ErrNotFound)
	}
	rootOff, err := img.regionOffset(dd.VirtualAddress)
	if err != nil {
		return nil, err
	}

	// Level 1: resource type directory. Offsets are relative to the root
	// table and carry a subdirectory flag in the top bit.
	typeOff, err := img.resourceEntryByID(rootOff, 0, resourceTypeRCData)
	if err != nil {
		return nil, err
	}
	typeOff &^= resourceSubdirFlag

	// Level 2: name/id subdirectory.
	langOff, err := img.resourceEntryByID(rootOff, typeOff, id)
	if err != nil {
		return nil, err
	}
	langOff &^= resourceSubdirFlag

	// Level 3: language subdirectory. Variants are not disambiguated;
	// the first entry wins.
	var first resourceDirectoryEntry
	if err := img.readStruct(rootOff+langOff+resourceDirectorySize, resourceEntrySize, &first); err != nil {
		return nil, err
	}

	var data resourceDataEntry
	if err := img.readStruct(rootOff+first.OffsetToData, resourceDataEntrySize, &data); err != nil {
		return nil, err
	}
	dataOff, err := img.regionOffset(data.DataRVA)
	if err != nil {
		return nil, err
	}
	return img.bytesAt(dataOff, data.DataSize)
}

// resourceEntryByID searches the id-keyed entries of the directory at
// tableOff (relative to the resource root at rootOff) and returns the
// matching entry's offset field. Id-keyed entries follow the name-keyed
// block in the flat entry array.
func (img *Image) resourceEntryByID(rootOff, tableOff, id uint32) (uint32, error) {
	var dir resourceDirectory
	if err := img.readStruct(rootOff+tableOff, resourceDirectorySize, &dir); err != nil {
		return 0, err
	}
	entriesOff := rootOff + tableOff + resourceDirectorySize +
		resourceEntrySize*uint32(dir.NumberOfNamedEntries)
	for i := uint32(0); i < uint32(dir.NumberOfIDEntries); i++ {
		var entry resourceDirectoryEntry
		if err := img.readStruct(entriesOff+i*resourceEntrySize, resourceEntrySize, &entry); err != nil {
			return 0, err
		}
		if entry.Name == id {
			return entry.OffsetToData, nil
		}
	}
	return 0, fmt.Errorf("%w: resource id %d", ErrNotFound, id)
}

// resourceEntryByName is the string-keyed counterpart: it searches the
// name-keyed entries of the directory at tableOff. Resource names are
// counted UTF-16 strings relative to the root table.
func (img *Image) resourceEntryByName(rootOff, tableOff uint32, name string) (uint32, error) {
	var dir resourceDirectory
	if err := img.readStruct(rootOff+tableOff, resourceDirectorySize, &dir); err != nil {
		return 0, err
	}
	entriesOff := rootOff + tableOff + resourceDirectorySize
	for i := uint32(0); i < uint32(dir.NumberOfNamedEntries); i++ {
		var entry resourceDirectoryEntry
		if err := img.readStruct(entriesOff+i*resourceEntrySize, resourceEntrySize, &entry); err != nil {
			return 0, err
		}
		entryName, err := img.resourceNameAt(rootOff + (entry.Name &^ resourceSubdirFlag))
		if err != nil {
			return 0, err
		}
		if entryName == name {
			return entry.OffsetToData, nil
		}
	}
	return 0, fmt.Errorf("%w: resource name %q", ErrNotFound, name)
}

// resourceNameAt decodes the counted UTF-16 resource name stored at off.
func (img *Image) resourceNameAt(off uint32) (string, error) {
	raw, err := img.bytesAt(off, 2)
	if err != nil {
		return "", err
	}
	chars := uint32(binary.LittleEndian.Uint16(raw))
	raw, err = img.bytesAt(off+2, chars*2)
	if err != nil {
		return "", err
	}
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
