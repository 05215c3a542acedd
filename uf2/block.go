package uf2

import (
	"encoding/binary"
	"fmt"
)

// Constants for UF2 block parsing.
const (
	// BlockSize is the fixed size of a UF2 block in bytes
	BlockSize = 512

	// HeaderSize is the size of the eight-word block header
	HeaderSize = 32

	// MaxPayloadSize is the largest payload a block may carry
	MaxPayloadSize = 476

	// Magic0 is the first magic word of every block
	Magic0 = 0x0A324655

	// Magic1 is the second magic word of every block
	Magic1 = 0x9E5D5157

	// MagicEnd is the last word of every block. It is not checked during decoding.
	MagicEnd = 0x0AB16F30

	// MaxPadding is the largest address gap that will be zero-filled
	MaxPadding = 10 * 1024 * 1024

	// wordSize is the alignment required for padding
	wordSize = 4
)

// Block flags.
const (
	// FlagNotMainFlash marks a block that must not be written to main flash
	FlagNotMainFlash = 0x00000001

	// FlagFileContainer marks a block that is part of a file container
	FlagFileContainer = 0x00001000

	// FlagFamilyIDPresent marks the FamilyID field as a family identifier
	FlagFamilyIDPresent = 0x00002000

	// FlagMD5ChecksumPresent marks a block carrying an MD5 checksum
	FlagMD5ChecksumPresent = 0x00004000

	// FlagExtensionTagsPresent marks a block carrying extension tags
	FlagExtensionTagsPresent = 0x00008000
)

// Header field offsets within a block.
const (
	offMagic0      = 0
	offMagic1      = 4
	offFlags       = 8
	offTargetAddr  = 12
	offPayloadSize = 16
	offBlockNo     = 20
	offNumBlocks   = 24
	offFamilyID    = 28
	offMagicEnd    = BlockSize - 4
)

// Block is a decoded view of one UF2 block header.
type Block struct {
	Magic0      uint32
	Magic1      uint32
	Flags       uint32
	TargetAddr  uint32
	PayloadSize uint32
	BlockNo     uint32
	NumBlocks   uint32

	// FamilyID holds the family identifier when FlagFamilyIDPresent is set,
	// otherwise the total file size (or nothing meaningful).
	FamilyID uint32

	MagicEnd uint32
}

// ParseBlock reads the header of a single 512-byte block.
// The chunk must be at least BlockSize bytes long. ParseBlock does not
// validate magic numbers or the payload size; use Valid and Payload for that.
func ParseBlock(chunk []byte) (*Block, error) {
	if len(chunk) < BlockSize {
		return nil, fmt.Errorf("block too short: got %d bytes, expected %d", len(chunk), BlockSize)
	}

	le := binary.LittleEndian
	return &Block{
		Magic0:      le.Uint32(chunk[offMagic0:]),
		Magic1:      le.Uint32(chunk[offMagic1:]),
		Flags:       le.Uint32(chunk[offFlags:]),
		TargetAddr:  le.Uint32(chunk[offTargetAddr:]),
		PayloadSize: le.Uint32(chunk[offPayloadSize:]),
		BlockNo:     le.Uint32(chunk[offBlockNo:]),
		NumBlocks:   le.Uint32(chunk[offNumBlocks:]),
		FamilyID:    le.Uint32(chunk[offFamilyID:]),
		MagicEnd:    le.Uint32(chunk[offMagicEnd:]),
	}, nil
}

// Valid reports whether both leading magic words match.
func (b *Block) Valid() bool {
	return b.Magic0 == Magic0 && b.Magic1 == Magic1
}

// IsMainFlash reports whether the block is meant for main flash.
func (b *Block) IsMainFlash() bool {
	return b.Flags&FlagNotMainFlash == 0
}

// HasFamily reports whether FamilyID holds a family identifier.
func (b *Block) HasFamily() bool {
	return b.Flags&FlagFamilyIDPresent != 0
}

// Payload returns the payload bytes of chunk as described by the header.
// The chunk is not copied.
func (b *Block) Payload(chunk []byte) ([]byte, error) {
	if b.PayloadSize > MaxPayloadSize {
		return nil, fmt.Errorf("payload size %d exceeds maximum %d", b.PayloadSize, MaxPayloadSize)
	}
	if len(chunk) < BlockSize {
		return nil, fmt.Errorf("block too short: got %d bytes, expected %d", len(chunk), BlockSize)
	}
	return chunk[HeaderSize : HeaderSize+b.PayloadSize], nil
}

// String formats the header in a single line.
func (b *Block) String() string {
	return fmt.Sprintf("block %d/%d flags=0x%08X addr=0x%08X size=%d family=0x%08X",
		b.BlockNo, b.NumBlocks, b.Flags, b.TargetAddr, b.PayloadSize, b.FamilyID)
}
