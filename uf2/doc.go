// Package uf2 decodes UF2 firmware containers into raw binary images.
//
// # UF2 File Format
//
// UF2 is the block format used by mass-storage bootloaders (RP2040, SAMD,
// nRF52, ESP32-S2 and many others). A file is a sequence of 512-byte blocks,
// each describing where its payload lands in flash.
//
// Block layout (all header words are little-endian uint32):
//
//	Offset  Field
//	0       Magic0 (0x0A324655)
//	4       Magic1 (0x9E5D5157)
//	8       Flags
//	12      TargetAddr
//	16      PayloadSize (0-476)
//	20      BlockNo
//	24      NumBlocks
//	28      FamilyID (or file size, see flags)
//	32      Data (PayloadSize bytes, up to 476)
//	508     MagicEnd (0x0AB16F30)
//
// Flags of interest:
//
//	0x00000001  not main flash, block is skipped
//	0x00002000  FamilyID field holds a family identifier
//
// # Decoding
//
// Decode walks the blocks in order and rebuilds a contiguous image. Offset 0
// of the image is the target address of the first accepted block. Gaps
// between consecutive blocks are filled with zero bytes. A block carrying a
// different family ID starts a new segment.
//
//	data, families, err := uf2.Decode(buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for id, addr := range families {
//	    fmt.Printf("family 0x%08X at 0x%08X\n", id, addr)
//	}
//
// DecodeImage returns the same data together with the image base address:
//
//	img, err := uf2.DecodeImage(buf)
//	fmt.Printf("%d bytes at 0x%08X\n", len(img.Data), img.Base)
//
// Image.Segments records where each family's run of blocks sits in Data, so
// a single family can be extracted from a multi-family file.
//
// Each block may add up to 10 MiB of zero fill. For untrusted input, cap the
// image size while decoding:
//
//	img, err := uf2.DecodeImageLimit(buf, 64<<20)
//
// Decode from disk or from any io.Reader:
//
//	img, err := uf2.DecodeFile("firmware.uf2")
//	img, err := uf2.DecodeReader(os.Stdin)
//
// # Error Handling
//
// Blocks with a bad magic or the not-main-flash flag are skipped silently.
// The following conditions abort decoding and no partial image is returned:
//   - Payload size larger than 476 bytes (*InvalidDataSizeError)
//   - Address gap larger than 10 MiB or going backwards (*TooMuchPaddingError)
//   - Address gap that is not a multiple of 4 (*NonWordPaddingError)
//
// Every error carries the zero-based index of the offending 512-byte block.
// Use BlockIndex to recover it from a wrapped error. DecodeImageLimit also
// stops with *ImageTooLargeError, which is not counted as a decode error.
package uf2
