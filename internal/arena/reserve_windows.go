//go:build windows

package arena

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mapAnon commits n zeroed read-write bytes with VirtualAlloc.
func mapAnon(n int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(
		0,
		uintptr(n),
		windows.MEM_COMMIT|windows.MEM_RESERVE,
		windows.PAGE_READWRITE,
	)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n), nil
}

func unmapAnon(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	// MEM_RELEASE requires a zero size and the base address of the reservation.
	return windows.VirtualFree(uintptr(unsafe.Pointer(&data[0])), 0, windows.MEM_RELEASE)
}
