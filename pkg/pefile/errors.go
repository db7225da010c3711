package pefile

import "errors"

var (
	// ErrBadFormat means the DOS or NT signature failed validation.
	ErrBadFormat = errors.New("pefile: invalid image format")
	// ErrNoTranslation means a virtual offset is not covered by any section.
	ErrNoTranslation = errors.New("pefile: no section maps virtual offset")
	// ErrNotFound means a name, ordinal or resource id is absent from its directory.
	ErrNotFound = errors.New("pefile: not found")
	// ErrOrdinalRange means an ordinal fell outside the declared function table.
	ErrOrdinalRange = errors.New("pefile: ordinal outside export range")
	// ErrBounds means a header field pointed past the end of the backing bytes.
	ErrBounds = errors.New("pefile: offset outside image bounds")
)
