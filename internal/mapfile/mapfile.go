// Package mapfile loads input files as read-only byte slices, using mmap
// where the platform supports it.
package mapfile

import (
	"errors"
	"io"
	"os"
)

// ErrTooLarge is returned for files that cannot be indexed as a []byte.
var ErrTooLarge = errors.New("file too large to map")

// File is a read-only view of a file's contents.
type File struct {
	// Data holds the file contents. It must not be modified and must not be
	// used after Close.
	Data []byte

	unmap func([]byte) error
}

// Mapped reports whether Data is backed by a memory mapping.
func (f *File) Mapped() bool {
	return f != nil && f.unmap != nil
}

// Close releases the mapping, if any.
func (f *File) Close() error {
	if f == nil || f.unmap == nil {
		return nil
	}
	data := f.Data
	f.Data = nil
	unmap := f.unmap
	f.unmap = nil
	return unmap(data)
}

// sizeOf returns the file size as an int, rejecting sizes that do not fit.
func sizeOf(f *os.File) (int, error) {
	stat, err := f.Stat()
	if err != nil {
		return 0, err
	}
	size64 := stat.Size()
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		return 0, ErrTooLarge
	}
	return int(size64), nil
}

// readAllAt reads size bytes from r starting at offset 0.
func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}
