package uf2

import "encoding/binary"

// testBlock describes a block for the test encoder.
type testBlock struct {
	magic0   uint32
	magic1   uint32
	flags    uint32
	addr     uint32
	size     uint32
	blockNo  uint32
	numBlock uint32
	family   uint32
	payload  []byte
}

// familyBlock returns a valid main-flash block tagged with family.
func familyBlock(family, addr uint32, payload []byte) testBlock {
	return testBlock{
		magic0:  Magic0,
		magic1:  Magic1,
		flags:   FlagFamilyIDPresent,
		addr:    addr,
		size:    uint32(len(payload)),
		family:  family,
		payload: payload,
	}
}

// encode renders the block into 512 bytes.
func (b testBlock) encode() []byte {
	chunk := make([]byte, BlockSize)
	le := binary.LittleEndian
	le.PutUint32(chunk[0:], b.magic0)
	le.PutUint32(chunk[4:], b.magic1)
	le.PutUint32(chunk[8:], b.flags)
	le.PutUint32(chunk[12:], b.addr)
	le.PutUint32(chunk[16:], b.size)
	le.PutUint32(chunk[20:], b.blockNo)
	le.PutUint32(chunk[24:], b.numBlock)
	le.PutUint32(chunk[28:], b.family)
	copy(chunk[HeaderSize:BlockSize-4], b.payload)
	le.PutUint32(chunk[BlockSize-4:], MagicEnd)
	return chunk
}

// stream concatenates encoded blocks.
func stream(blocks ...testBlock) []byte {
	out := make([]byte, 0, len(blocks)*BlockSize)
	for _, b := range blocks {
		out = append(out, b.encode()...)
	}
	return out
}

// encodeImage splits data into blocks of payloadSize bytes starting at base,
// the way uf2conv.py lays out a flat binary.
func encodeImage(data []byte, base, family uint32, payloadSize int) []byte {
	var blocks []testBlock
	for off := 0; off < len(data); off += payloadSize {
		end := off + payloadSize
		if end > len(data) {
			end = len(data)
		}
		blocks = append(blocks, familyBlock(family, base+uint32(off), data[off:end]))
	}
	for i := range blocks {
		blocks[i].blockNo = uint32(i)
		blocks[i].numBlock = uint32(len(blocks))
	}
	return stream(blocks...)
}

// pattern returns n deterministic non-zero bytes.
func pattern(n int, seed byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i*7) + seed | 1
	}
	return out
}
