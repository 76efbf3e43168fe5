//go:build unix

package jitexec

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// executableMapping owns one anonymous mmap'd region.
type executableMapping struct {
	buf []byte
}

// mapExecutable allocates an anonymous RW mapping, copies code into it,
// then mprotects it to RX — it is never writable and executable at once.
func mapExecutable(code []byte) (executableMapping, uintptr, error) {
	buf, err := unix.Mmap(-1, 0, len(code), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return executableMapping{}, 0, err
	}

	copy(buf, code)

	if err := unix.Mprotect(buf, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		unix.Munmap(buf)
		return executableMapping{}, 0, err
	}

	return executableMapping{buf: buf}, uintptr(unsafe.Pointer(&buf[0])), nil
}

func (m executableMapping) close() error {
	return unix.Munmap(m.buf)
}
