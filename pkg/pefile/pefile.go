// Package pefile is a read-only introspection engine for PE images. It
// navigates the header chain, translates virtual offsets to file offsets,
// resolves exports by name, ordinal or XOR-masked name and extracts
// embedded resources, over either raw on-disk bytes or an image already
// mapped into memory. It borrows the caller's bytes and never mutates them.
package pefile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/latortuga71/GoPE/pkg/bstr"
)

// Image is a validated view over one PE image. Bit-width and mapped-state
// are fixed at construction. All derived views borrow the same backing
// bytes and must not outlive them.
type Image struct {
	data     []byte
	is64     bool
	mapped   bool
	dos      DOSHeader
	ntOffset uint32
	ntSig    uint32
	file     FileHeader
	oh32     *OptionalHeader32
	oh64     *OptionalHeader64
	sections []SectionHeader
}

// Open parses and validates a borrowed byte region holding a PE image.
// Both the DOS and the NT signature must be valid or ErrBadFormat is
// returned. The region is only borrowed; the caller keeps ownership and
// must keep it alive for as long as the Image is used.
func Open(data []byte) (*Image, error) {
	img := &Image{data: data}
	if err := img.parse(); err != nil {
		return nil, err
	}
	img.mapped = img.detectMapped()
	return img, nil
}

// OpenAddress builds an Image over a raw base address. This is a trust
// boundary: the caller attests the address points at valid, mapped,
// readable image data. No memory-safety validation happens here; handing
// in a bad address is undefined behavior by contract, not a reported
// error. The region extent is taken from the optional header's
// SizeOfImage.
func OpenAddress(base uintptr) (*Image, error) {
	// Probe window large enough for the DOS header, the NT headers and
	// the section table of any sane image.
	probe := unsafe.Slice((*byte)(unsafe.Pointer(base)), 0x1000)
	img := &Image{data: probe}
	if err := img.parse(); err != nil {
		return nil, err
	}
	img.data = unsafe.Slice((*byte)(unsafe.Pointer(base)), int(img.NTHeaders().OptionalHeader().SizeOfImage()))
	img.mapped = img.detectMapped()
	return img, nil
}

func (img *Image) parse() error {
	if err := img.readStruct(0, dosHeaderSize, &img.dos); err != nil {
		return fmt.Errorf("%w: short dos header", ErrBadFormat)
	}
	ntOff := img.dos.AddressOfNewEXEHeader
	sig, err := img.readU32(ntOff)
	if err != nil {
		return fmt.Errorf("%w: e_lfanew outside image", ErrBadFormat)
	}
	// Both signatures must be independently valid.
	if img.dos.Magic != dosSignature || sig != ntSignature {
		return fmt.Errorf("%w: signature mismatch (dos=0x%x nt=0x%x)", ErrBadFormat, img.dos.Magic, sig)
	}
	img.ntOffset = ntOff
	img.ntSig = sig
	if err := img.readStruct(ntOff+4, fileHeaderSize, &img.file); err != nil {
		return fmt.Errorf("%w: short file header", ErrBadFormat)
	}

	// Bit-width is derived once from the machine type and never re-read.
	img.is64 = img.file.Machine == machineAMD64
	optOff := ntOff + 4 + fileHeaderSize
	if img.is64 {
		oh := new(OptionalHeader64)
		if err := img.readStruct(optOff, optionalHeader64Size, oh); err != nil {
			return fmt.Errorf("%w: short optional header", ErrBadFormat)
		}
		img.oh64 = oh
	} else {
		oh := new(OptionalHeader32)
		if err := img.readStruct(optOff, optionalHeader32Size, oh); err != nil {
			return fmt.Errorf("%w: short optional header", ErrBadFormat)
		}
		img.oh32 = oh
	}
	return img.parseSections()
}

func (img *Image) parseSections() error {
	count := uint32(img.file.NumberOfSections)
	if count > MaxSections {
		count = MaxSections
	}
	off := img.ntOffset + img.NTHeaders().Size()
	img.sections = make([]SectionHeader, 0, count)
	for i := uint32(0); i < count; i++ {
		var s SectionHeader
		if err := img.readStruct(off+i*sectionHeaderSize, sectionHeaderSize, &s); err != nil {
			return fmt.Errorf("%w: section table truncated", ErrBadFormat)
		}
		img.sections = append(img.sections, s)
	}
	return nil
}

// Is64 reports the bit-width derived from the file header's machine type.
func (img *Image) Is64() bool {
	return img.is64
}

// IsMapped reports the mapped-state classification decided at construction.
func (img *Image) IsMapped() bool {
	return img.mapped
}

// Size returns the extent of the backing byte region.
func (img *Image) Size() int {
	return len(img.data)
}

// DOSHeader returns the decoded DOS header.
func (img *Image) DOSHeader() DOSHeader {
	return img.dos
}

// SectionHeaders returns the section table, capped at MaxSections entries.
func (img *Image) SectionHeaders() []SectionHeader {
	return img.sections
}

// NTHeaders steps to the NT-header view. The view only exists behind a
// successfully constructed Image, so navigating before validation is not
// expressible.
func (img *Image) NTHeaders() NTHeaders {
	return NTHeaders{img: img}
}

// bytesAt returns the n bytes at off, or ErrBounds when the range leaves
// the backing region.
func (img *Image) bytesAt(off, n uint32) ([]byte, error) {
	end := uint64(off) + uint64(n)
	if end > uint64(len(img.data)) {
		return nil, fmt.Errorf("%w: [0x%x,0x%x)", ErrBounds, off, end)
	}
	return img.data[off:end], nil
}

func (img *Image) readStruct(off, size uint32, v interface{}) error {
	raw, err := img.bytesAt(off, size)
	if err != nil {
		return err
	}
	return binary.Read(bytes.NewReader(raw), binary.LittleEndian, v)
}

func (img *Image) readU32(off uint32) (uint32, error) {
	raw, err := img.bytesAt(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(raw), nil
}

// readU32Table decodes count little-endian uint32 values at off. The count
// is multiplied in 64 bits so a hostile declared count cannot wrap the
// bounds check.
func (img *Image) readU32Table(off, count uint32) ([]uint32, error) {
	end := uint64(off) + uint64(count)*4
	if end > uint64(len(img.data)) {
		return nil, fmt.Errorf("%w: u32 table [0x%x,0x%x)", ErrBounds, off, end)
	}
	raw := img.data[off:end]
	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return out, nil
}

// readU16Table decodes count little-endian uint16 values at off.
func (img *Image) readU16Table(off, count uint32) ([]uint16, error) {
	end := uint64(off) + uint64(count)*2
	if end > uint64(len(img.data)) {
		return nil, fmt.Errorf("%w: u16 table [0x%x,0x%x)", ErrBounds, off, end)
	}
	raw := img.data[off:end]
	out := make([]uint16, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return out, nil
}

// cstringAt returns the NUL-terminated byte string at off. The scan is
// bounded by maxNameScan and by the region extent.
func (img *Image) cstringAt(off uint32) ([]byte, error) {
	if uint64(off) >= uint64(len(img.data)) {
		return nil, fmt.Errorf("%w: string at 0x%x", ErrBounds, off)
	}
	window := img.data[off:]
	if len(window) > maxNameScan {
		window = window[:maxNameScan]
	}
	return bstr.CString(window), nil
}
