package uf2

import "sort"

// Summary describes the blocks of a UF2 buffer without decoding it.
type Summary struct {
	// TotalBlocks is the number of whole 512-byte blocks in the buffer
	TotalBlocks int

	// AcceptedBlocks is the number of blocks with valid magics meant for main flash
	AcceptedBlocks int

	// BadMagicBlocks is the number of blocks skipped for a magic mismatch
	BadMagicBlocks int

	// NotMainFlashBlocks is the number of valid blocks with FlagNotMainFlash set
	NotMainFlashBlocks int

	// TrailingBytes is the size of the incomplete block at the end of the buffer
	TrailingBytes int

	// FirstTarget is the target address of the first accepted block
	FirstTarget uint32

	// Flags is the flag value shared by all accepted blocks.
	// Only meaningful when FlagsConsistent is true.
	Flags uint32

	// FlagsConsistent is true when every accepted block has the same flags
	FlagsConsistent bool

	// PayloadBytes is the sum of payload sizes of accepted family blocks
	PayloadBytes int

	// Families lists the family IDs of accepted blocks in order of first appearance
	Families []uint32
}

// Inspect scans buf and summarizes its blocks. It never fails: blocks that
// Decode would reject are counted but otherwise ignored.
func Inspect(buf []byte) *Summary {
	s := &Summary{
		TotalBlocks:   len(buf) / BlockSize,
		TrailingBytes: len(buf) % BlockSize,
	}

	seen := make(map[uint32]bool)
	for index := 0; index < s.TotalBlocks; index++ {
		chunk := buf[index*BlockSize : (index+1)*BlockSize]
		b, err := ParseBlock(chunk)
		if err != nil {
			continue
		}

		if !b.Valid() {
			s.BadMagicBlocks++
			continue
		}
		if !b.IsMainFlash() {
			s.NotMainFlashBlocks++
			continue
		}

		if s.AcceptedBlocks == 0 {
			s.FirstTarget = b.TargetAddr
			s.Flags = b.Flags
			s.FlagsConsistent = true
		} else if b.Flags != s.Flags {
			s.FlagsConsistent = false
		}
		s.AcceptedBlocks++

		if b.HasFamily() {
			if b.PayloadSize <= MaxPayloadSize {
				s.PayloadBytes += int(b.PayloadSize)
			}
			if !seen[b.FamilyID] {
				seen[b.FamilyID] = true
				s.Families = append(s.Families, b.FamilyID)
			}
		}
	}

	return s
}

// SortedFamilies returns the keys of a family map in ascending order.
func SortedFamilies(families map[uint32]uint32) []uint32 {
	ids := make([]uint32, 0, len(families))
	for id := range families {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
