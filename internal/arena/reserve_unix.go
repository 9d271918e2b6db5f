//go:build linux || darwin || freebsd

package arena

import "golang.org/x/sys/unix"

// mapAnon maps n zeroed, private, read-write bytes that are not backed by a file.
func mapAnon(n int) ([]byte, error) {
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmapAnon(data []byte) error {
	return unix.Munmap(data)
}
