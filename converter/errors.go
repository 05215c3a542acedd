package converter

import (
	"fmt"
	"strings"
)

// OutputTooLargeError indicates that the output image exceeds the configured limit.
// Decoding stops at the first block past the limit, so Size may be smaller
// than the full image the input describes.
type OutputTooLargeError struct {
	Size  int
	Limit int
}

func (e *OutputTooLargeError) Error() string {
	return fmt.Sprintf("output image needs %d bytes, limit is %d", e.Size, e.Limit)
}

// FamilyNotFoundError indicates that the required family ID is not in the input.
type FamilyNotFoundError struct {
	Family uint32
	Found  []uint32
}

func (e *FamilyNotFoundError) Error() string {
	if len(e.Found) == 0 {
		return fmt.Sprintf("family 0x%08X not found: input has no family IDs", e.Family)
	}
	found := make([]string, len(e.Found))
	for i, id := range e.Found {
		found[i] = fmt.Sprintf("0x%08X", id)
	}
	return fmt.Sprintf("family 0x%08X not found: input has %s", e.Family, strings.Join(found, ", "))
}

// UnsupportedFormatError indicates an unknown output format name.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format %q (want bin or hex)", e.Format)
}

// EmptyImageError indicates that the input holds no flashable data.
type EmptyImageError struct {
	Blocks int
}

func (e *EmptyImageError) Error() string {
	return fmt.Sprintf("no flashable data in %d blocks", e.Blocks)
}

// SegmentOverlapError indicates that two segments of the required family
// cover the same address.
type SegmentOverlapError struct {
	Family uint32
	Addr   uint32
}

func (e *SegmentOverlapError) Error() string {
	return fmt.Sprintf("family 0x%08X: segments overlap at 0x%08X", e.Family, e.Addr)
}
