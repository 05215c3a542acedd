//go:build unix

package mapfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// Open maps the file at path read-only.
// If mmap fails it falls back to reading the file into memory.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	size, err := sizeOf(f)
	if err != nil {
		return nil, err
	}
	// Zero-length mappings are rejected by the kernel.
	if size == 0 {
		return &File{Data: []byte{}}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return &File{Data: data, unmap: unix.Munmap}, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return &File{Data: data}, nil
}
