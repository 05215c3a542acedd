//go:build !unix

package mapfile

import "os"

// Open reads the file at path into memory.
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
	data, err := readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return &File{Data: data}, nil
}
