//go:build windows

// Package winmod resolves modules already loaded in the current process.
// It is the module-resolution collaborator for pefile's raw-address mode:
// pefile never walks loader structures itself, it only consumes a base
// address someone else vouches for.
package winmod

import (
	"golang.org/x/sys/windows"

	"github.com/latortuga71/GoPE/pkg/pefile"
)

// BaseAddress returns the load address of a module in this process.
func BaseAddress(name string) (uintptr, error) {
	ptr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	var handle windows.Handle
	if err := windows.GetModuleHandleEx(windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT, ptr, &handle); err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

// ProcAddress asks the platform loader for an export address. It exists so
// callers can cross-check pefile's own resolution against the system's.
func ProcAddress(module, export string) (uintptr, error) {
	ptr, err := windows.UTF16PtrFromString(module)
	if err != nil {
		return 0, err
	}
	var handle windows.Handle
	if err := windows.GetModuleHandleEx(windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT, ptr, &handle); err != nil {
		return 0, err
	}
	return windows.GetProcAddress(handle, export)
}

// OpenModule opens the already-mapped image of a loaded module. The loader
// guarantees the mapping stays valid while the module stays referenced,
// which satisfies pefile.OpenAddress's trust contract.
func OpenModule(name string) (*pefile.Image, error) {
	base, err := BaseAddress(name)
	if err != nil {
		return nil, err
	}
	return pefile.OpenAddress(base)
}
