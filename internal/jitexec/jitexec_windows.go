//go:build windows

package jitexec

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// executableMapping owns one VirtualAlloc region.
type executableMapping struct {
	addr uintptr
	size uintptr
}

// mapExecutable allocates an RW region, copies code into it, then
// VirtualProtects it to RX — it is never writable and executable at once.
func mapExecutable(code []byte) (executableMapping, uintptr, error) {
	size := uintptr(len(code))
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return executableMapping{}, 0, err
	}

	dst := unsafe.Slice((*byte)(unsafe.Pointer(addr)), len(code))
	copy(dst, code)

	var oldProtect uint32
	if err := windows.VirtualProtect(addr, size, windows.PAGE_EXECUTE_READ, &oldProtect); err != nil {
		windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		return executableMapping{}, 0, err
	}

	return executableMapping{addr: addr, size: size}, addr, nil
}

func (m executableMapping) close() error {
	return windows.VirtualFree(m.addr, 0, windows.MEM_RELEASE)
}
