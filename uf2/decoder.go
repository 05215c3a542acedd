package uf2

import (
	"fmt"
	"io"

	"github.com/moffa90/go-uf2/internal/mapfile"
)

// Image is a decoded UF2 file.
type Image struct {
	// Data is the reconstructed binary image
	Data []byte

	// Base is the target address of the first accepted block, which is offset 0 of Data.
	// Zero when no block was accepted.
	Base uint32

	// Families maps each family ID seen with FlagFamilyIDPresent to the lowest
	// target address of its blocks
	Families map[uint32]uint32

	// Segments lists the runs of Data in stream order. A segment starts at
	// the first accepted block and at every family change.
	Segments []Segment
}

// Segment is a run of Image.Data written by consecutive blocks of one family.
type Segment struct {
	// Family is the family ID field of the block that opened the segment
	Family uint32

	// HasFamily is true when at least one block of the segment had
	// FlagFamilyIDPresent set
	HasFamily bool

	// Addr is the target address of the first block
	Addr uint32

	// Offset and Length locate the segment in Image.Data
	Offset int
	Length int
}

// SegmentData returns the bytes of s. The slice aliases Data.
func (img *Image) SegmentData(s Segment) []byte {
	return img.Data[s.Offset : s.Offset+s.Length]
}

// Decode converts a UF2 buffer into a raw binary image and a map of family IDs
// to their lowest target address.
//
// Only whole 512-byte blocks are read; trailing bytes are ignored. The buffer
// is not modified or retained.
//
// Example:
//
//	data, families, err := uf2.Decode(buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d bytes, %d families\n", len(data), len(families))
func Decode(buf []byte) ([]byte, map[uint32]uint32, error) {
	img, err := DecodeImage(buf)
	if err != nil {
		return nil, nil, err
	}
	return img.Data, img.Families, nil
}

// DecodeImage is like Decode but also reports the image base address and segments.
func DecodeImage(buf []byte) (*Image, error) {
	return DecodeImageLimit(buf, 0)
}

// DecodeImageLimit is like DecodeImage but stops with an *ImageTooLargeError
// before Data would grow beyond limit bytes. A limit of zero or less disables
// the check.
//
// Every block may add up to MaxPadding bytes of zero fill, so a small input
// can describe a very large image. Use a limit for untrusted input.
func DecodeImageLimit(buf []byte, limit int) (*Image, error) {
	d := decoder{
		families: make(map[uint32]uint32),
		limit:    limit,
		out:      []byte{},
	}

	for index := 0; (index+1)*BlockSize <= len(buf); index++ {
		chunk := buf[index*BlockSize : (index+1)*BlockSize]
		if err := d.block(index, chunk); err != nil {
			return nil, err
		}
	}

	return &Image{
		Data:     d.out,
		Base:     d.base,
		Families: d.families,
		Segments: d.segments,
	}, nil
}

// DecodeReader reads all of r and decodes it.
//
// Example:
//
//	img, err := uf2.DecodeReader(os.Stdin)
func DecodeReader(r io.Reader) (*Image, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return DecodeImage(buf)
}

// DecodeFile decodes the UF2 file at path.
// The file is memory-mapped where supported.
//
// Example:
//
//	img, err := uf2.DecodeFile("firmware.uf2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Base: 0x%08X\n", img.Base)
func DecodeFile(path string) (*Image, error) {
	f, err := mapfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Data is copied into the image, so the mapping can be released afterwards.
	return DecodeImage(f.Data)
}

// decoder holds the state of a single decode pass.
type decoder struct {
	addr      uint64
	hasAddr   bool
	family    uint32
	hasFamily bool
	base      uint32
	limit     int
	out       []byte
	families  map[uint32]uint32
	segments  []Segment
}

// block processes one 512-byte chunk.
func (d *decoder) block(index int, chunk []byte) error {
	b, err := ParseBlock(chunk)
	if err != nil {
		return err
	}

	if !b.Valid() || !b.IsMainFlash() {
		return nil
	}

	payload, err := b.Payload(chunk)
	if err != nil {
		return &InvalidDataSizeError{Block: index, Size: b.PayloadSize}
	}

	if b.HasFamily() && !d.hasFamily {
		d.family = b.FamilyID
		d.hasFamily = true
	}

	// A new segment starts on the first block and on every family change.
	// Unflagged blocks take their raw FamilyID field here as well.
	if !d.hasAddr || (b.HasFamily() && b.FamilyID != d.family) {
		if !d.hasAddr {
			d.base = b.TargetAddr
		}
		d.family = b.FamilyID
		d.hasFamily = true
		d.addr = uint64(b.TargetAddr)
		d.hasAddr = true
		d.segments = append(d.segments, Segment{
			Family: b.FamilyID,
			Addr:   b.TargetAddr,
			Offset: len(d.out),
		})
	}

	target := uint64(b.TargetAddr)
	if target < d.addr {
		return &TooMuchPaddingError{Block: index, Padding: d.addr - target, Backwards: true}
	}

	padding := target - d.addr
	if padding > MaxPadding {
		return &TooMuchPaddingError{Block: index, Padding: padding}
	}
	if padding%wordSize != 0 {
		return &NonWordPaddingError{Block: index, Padding: padding}
	}

	grow := padding
	if b.HasFamily() {
		grow += uint64(len(payload))
	}
	if size := uint64(len(d.out)) + grow; d.limit > 0 && size > uint64(d.limit) {
		return &ImageTooLargeError{Block: index, Size: size, Limit: d.limit}
	}

	if padding > 0 {
		d.out = append(d.out, make([]byte, padding)...)
	}
	if b.HasFamily() {
		d.out = append(d.out, payload...)
	}
	d.addr = target + uint64(b.PayloadSize)

	seg := &d.segments[len(d.segments)-1]
	seg.Length = len(d.out) - seg.Offset
	if b.HasFamily() {
		seg.HasFamily = true
	}

	if b.HasFamily() {
		if addr, ok := d.families[b.FamilyID]; !ok || b.TargetAddr < addr {
			d.families[b.FamilyID] = b.TargetAddr
		}
	}

	return nil
}
