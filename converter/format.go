package converter

import (
	"fmt"
	"io"

	"github.com/marcinbor85/gohex"
)

// Format is an output image format.
type Format string

// Supported output formats.
const (
	// FormatBinary writes the raw image bytes
	FormatBinary Format = "bin"

	// FormatIntelHex writes Intel HEX records starting at the image base address
	FormatIntelHex Format = "hex"
)

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatBinary, "binary", "":
		return FormatBinary, nil
	case FormatIntelHex, "ihex", "intelhex":
		return FormatIntelHex, nil
	default:
		return "", &UnsupportedFormatError{Format: s}
	}
}

// Extension returns the conventional file extension, including the dot.
func (f Format) Extension() string {
	if f == FormatIntelHex {
		return ".hex"
	}
	return ".bin"
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatIntelHex {
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}

// writeIntelHex writes each extent as Intel HEX records placed at its address.
func writeIntelHex(w io.Writer, exts []extent, lineLength int) error {
	mem := gohex.NewMemory()
	for _, e := range exts {
		if e.end() > 1<<32 {
			return fmt.Errorf("image of %d bytes at 0x%08X exceeds the 32-bit address space", len(e.data), e.addr)
		}
		if err := mem.AddBinary(e.addr, e.data); err != nil {
			return fmt.Errorf("add segment at 0x%08X: %w", e.addr, err)
		}
	}
	return mem.DumpIntelHex(w, byte(lineLength))
}
