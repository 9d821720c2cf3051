//go:build unix

package memory

import "golang.org/x/sys/unix"

// mapAnon maps size bytes of private anonymous memory (Unix implementation).
func mapAnon(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

// unmapAnon releases a mapping created by mapAnon (Unix implementation).
func unmapAnon(data []byte) error {
	return unix.Munmap(data)
}
