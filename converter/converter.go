package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/moffa90/go-uf2/uf2"
)

// Converter turns UF2 containers into flashable images.
//
// Converter is safe for concurrent use after initialization.
type Converter struct {
	config Config
}

// Result describes a completed conversion.
type Result struct {
	// Image is the decoded UF2 content
	Image *uf2.Image

	// Base is the address of the first byte of the output image: the
	// required family's lowest address when WithFamily is used, otherwise
	// Image.Base
	Base uint32

	// ImageBytes is the size of the output image before encoding. With
	// WithFamily it covers only that family's segments.
	ImageBytes int

	// Format is the format that was written
	Format Format

	// BytesWritten is the number of bytes written to the output
	BytesWritten int64

	// ElapsedTime is the total conversion time
	ElapsedTime time.Duration
}

// New creates a new Converter with the given options.
//
// Example:
//
//	conv := converter.New(
//	    converter.WithFormat(converter.FormatIntelHex),
//	    converter.WithFamily(uf2.FamilyRP2040),
//	)
func New(opts ...Option) *Converter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Converter{
		config: cfg,
	}
}

// Config returns a copy of the converter configuration.
func (c *Converter) Config() Config {
	return c.config
}

// Convert performs the complete conversion sequence:
//  1. Decode the UF2 input, stopping once the image passes MaxOutputSize
//  2. Select the required family's segments, if any
//  3. Write the image in the configured format
//
// The operation can be cancelled via context between phases.
//
// Example:
//
//	buf, _ := os.ReadFile("blink.uf2")
//	out, _ := os.Create("blink.bin")
//	defer out.Close()
//	res, err := conv.Convert(context.Background(), buf, out)
func (c *Converter) Convert(ctx context.Context, input []byte, w io.Writer) (*Result, error) {
	if w == nil {
		return nil, fmt.Errorf("output writer cannot be nil")
	}
	if _, err := ParseFormat(string(c.config.Format)); err != nil {
		return nil, err
	}

	startTime := time.Now()

	// Phase 1: Decode
	c.reportProgress(Progress{
		Phase:      PhaseDecoding,
		Percentage: 0,
		InputBytes: len(input),
	})

	img, err := c.Decode(ctx, input)
	if err != nil {
		return nil, err
	}

	// Phase 2: Validate
	c.reportProgress(Progress{
		Phase:       PhaseValidating,
		Percentage:  40,
		InputBytes:  len(input),
		ImageBytes:  len(img.Data),
		ElapsedTime: time.Since(startTime),
	})

	exts, err := c.validate(input, img)
	if err != nil {
		return nil, err
	}
	base := exts[0].addr

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cancelled: %w", err)
	}

	// Phase 3: Write
	c.reportProgress(Progress{
		Phase:       PhaseWriting,
		Percentage:  50,
		InputBytes:  len(input),
		ImageBytes:  len(img.Data),
		ElapsedTime: time.Since(startTime),
	})

	cw := &countingWriter{w: w}
	imageBytes, err := c.write(cw, exts)
	if err != nil {
		c.logError("write failed", "format", string(c.config.Format), "error", err)
		return nil, fmt.Errorf("write %s image: %w", c.config.Format, err)
	}

	// Complete
	elapsed := time.Since(startTime)
	c.reportProgress(Progress{
		Phase:        PhaseComplete,
		Percentage:   100,
		InputBytes:   len(input),
		ImageBytes:   imageBytes,
		BytesWritten: cw.n,
		ElapsedTime:  elapsed,
	})

	c.logInfo("conversion complete",
		"format", string(c.config.Format),
		"base", fmt.Sprintf("0x%08X", base),
		"image_bytes", imageBytes,
		"written", cw.n,
		"elapsed", elapsed.String(),
	)

	return &Result{
		Image:        img,
		Base:         base,
		ImageBytes:   imageBytes,
		Format:       c.config.Format,
		BytesWritten: cw.n,
		ElapsedTime:  elapsed,
	}, nil
}

// Decode decodes input under the configured size limit and logs a summary
// of the families found. It does not apply the family requirement.
func (c *Converter) Decode(ctx context.Context, input []byte) (*uf2.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cancelled: %w", err)
	}

	img, err := uf2.DecodeImageLimit(input, c.config.MaxOutputSize)
	if err != nil {
		var tooLarge *uf2.ImageTooLargeError
		if errors.As(err, &tooLarge) {
			c.logError("image too large", "block", tooLarge.Block, "limit", tooLarge.Limit)
			return nil, &OutputTooLargeError{Size: int(tooLarge.Size), Limit: tooLarge.Limit}
		}
		if idx, ok := uf2.BlockIndex(err); ok {
			c.logError("decode failed", "block", idx, "error", err)
		}
		return nil, fmt.Errorf("decode: %w", err)
	}

	c.logDebug("decoded",
		"input_bytes", len(input),
		"blocks", len(input)/uf2.BlockSize,
		"image_bytes", len(img.Data),
		"segments", len(img.Segments),
		"base", fmt.Sprintf("0x%08X", img.Base),
	)
	for _, id := range uf2.SortedFamilies(img.Families) {
		name, _ := uf2.FamilyName(id)
		c.logDebug("family",
			"id", fmt.Sprintf("0x%08X", id),
			"name", name,
			"address", fmt.Sprintf("0x%08X", img.Families[id]),
		)
	}

	return img, nil
}

// extent is a run of image bytes placed at addr.
type extent struct {
	addr uint32
	data []byte
}

func (e extent) end() uint64 {
	return uint64(e.addr) + uint64(len(e.data))
}

// validate applies the family requirement and returns the extents to write,
// sorted by address.
func (c *Converter) validate(input []byte, img *uf2.Image) ([]extent, error) {
	if len(img.Data) == 0 {
		return nil, &EmptyImageError{Blocks: len(input) / uf2.BlockSize}
	}

	if !c.config.HasFamily {
		return []extent{{addr: img.Base, data: img.Data}}, nil
	}

	family := c.config.Family
	if _, ok := img.Families[family]; !ok {
		return nil, &FamilyNotFoundError{
			Family: family,
			Found:  uf2.SortedFamilies(img.Families),
		}
	}

	var exts []extent
	for _, s := range img.Segments {
		if s.HasFamily && s.Family == family && s.Length > 0 {
			exts = append(exts, extent{addr: s.Addr, data: img.SegmentData(s)})
		}
	}
	if len(exts) == 0 {
		return nil, &EmptyImageError{Blocks: len(input) / uf2.BlockSize}
	}
	sort.Slice(exts, func(i, j int) bool { return exts[i].addr < exts[j].addr })

	end := exts[0].end()
	for _, e := range exts[1:] {
		if uint64(e.addr) < end {
			return nil, &SegmentOverlapError{Family: family, Addr: e.addr}
		}
		end = max(end, e.end())
	}

	span := end - uint64(exts[0].addr)
	if limit := c.config.MaxOutputSize; limit > 0 && span > uint64(limit) {
		return nil, &OutputTooLargeError{Size: int(span), Limit: limit}
	}

	return exts, nil
}

// write emits the extents in the configured format.
func (c *Converter) write(w io.Writer, exts []extent) (int, error) {
	if c.config.Format == FormatIntelHex {
		return imageSize(exts), writeIntelHex(w, exts, c.config.HexLineLength)
	}

	data := flatten(exts)
	_, err := w.Write(data)
	return len(data), err
}

// imageSize returns the number of bytes from the first extent's address to
// the end of the last one.
func imageSize(exts []extent) int {
	end := uint64(0)
	for _, e := range exts {
		end = max(end, e.end())
	}
	return int(end - uint64(exts[0].addr))
}

// flatten lays sorted, non-overlapping extents out from the first address,
// zero-filling the gaps.
func flatten(exts []extent) []byte {
	if len(exts) == 1 {
		return exts[0].data
	}
	out := make([]byte, imageSize(exts))
	for _, e := range exts {
		copy(out[e.addr-exts[0].addr:], e.data)
	}
	return out
}

// countingWriter counts bytes passed to the underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// reportProgress calls the progress callback if configured.
func (c *Converter) reportProgress(progress Progress) {
	if c.config.ProgressCallback != nil {
		c.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (c *Converter) logDebug(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (c *Converter) logInfo(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (c *Converter) logError(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Error(msg, keysAndValues...)
	}
}
