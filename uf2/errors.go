package uf2

import (
	"errors"
	"fmt"
)

// InvalidDataSizeError indicates a block whose payload size exceeds MaxPayloadSize.
type InvalidDataSizeError struct {
	Block int
	Size  uint32
}

func (e *InvalidDataSizeError) Error() string {
	return fmt.Sprintf("block %d: invalid data size %d (maximum is %d)",
		e.Block, e.Size, MaxPayloadSize)
}

// BlockIndex returns the index of the offending block.
func (e *InvalidDataSizeError) BlockIndex() int { return e.Block }

// TooMuchPaddingError indicates an address gap larger than MaxPadding.
// A target address below the end of the image so far is reported the same way,
// with Backwards set.
type TooMuchPaddingError struct {
	Block     int
	Padding   uint64
	Backwards bool
}

func (e *TooMuchPaddingError) Error() string {
	if e.Backwards {
		return fmt.Sprintf("block %d: too much padding required: target address is %d bytes behind the image end",
			e.Block, e.Padding)
	}
	return fmt.Sprintf("block %d: too much padding required: %d bytes (maximum is %d)",
		e.Block, e.Padding, MaxPadding)
}

// BlockIndex returns the index of the offending block.
func (e *TooMuchPaddingError) BlockIndex() int { return e.Block }

// NonWordPaddingError indicates an address gap that is not a multiple of 4 bytes.
type NonWordPaddingError struct {
	Block   int
	Padding uint64
}

func (e *NonWordPaddingError) Error() string {
	return fmt.Sprintf("block %d: non-word padding size %d", e.Block, e.Padding)
}

// BlockIndex returns the index of the offending block.
func (e *NonWordPaddingError) BlockIndex() int { return e.Block }

// ImageTooLargeError indicates that a block would grow the image beyond the
// limit given to DecodeImageLimit. Size is the image size that block would
// have produced. It reports a resource limit rather than malformed input, so
// IsDecodeError is false for it.
type ImageTooLargeError struct {
	Block int
	Size  uint64
	Limit int
}

func (e *ImageTooLargeError) Error() string {
	return fmt.Sprintf("block %d: image would grow to %d bytes (limit is %d)", e.Block, e.Size, e.Limit)
}

type blockIndexer interface {
	BlockIndex() int
}

// BlockIndex extracts the block index from a decode error, following wrapped errors.
func BlockIndex(err error) (int, bool) {
	var bi blockIndexer
	if errors.As(err, &bi) {
		return bi.BlockIndex(), true
	}
	return 0, false
}

// IsDecodeError returns true if err is, or wraps, one of the decoder errors.
func IsDecodeError(err error) bool {
	_, ok := BlockIndex(err)
	return ok
}
