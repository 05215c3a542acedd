// Package converter turns UF2 containers into flashable images.
//
// # Overview
//
// This package wraps the uf2 decoder with the checks a flashing tool needs:
//   - Decoding the UF2 blocks into a contiguous image
//   - Capping the decoded size for untrusted input
//   - Requiring a specific family ID and extracting only its image
//   - Writing the image as raw binary or Intel HEX
//
// # Basic Usage
//
//	buf, err := os.ReadFile("blink.uf2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := os.Create("blink.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer out.Close()
//
//	conv := converter.New()
//	res, err := conv.Convert(context.Background(), buf, out)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d bytes at 0x%08X\n", res.ImageBytes, res.Base)
//
// # Configuration Options
//
//	conv := converter.New(
//	    converter.WithFormat(converter.FormatIntelHex),
//	    converter.WithFamily(uf2.FamilyRP2040),
//	    converter.WithMaxOutputSize(16*1024*1024),
//	    converter.WithHexLineLength(32),
//	    converter.WithLogger(myLogger),
//	    converter.WithProgressCallback(progressFunc),
//	)
//
// # Error Handling
//
// Decode errors are wrapped; use uf2.BlockIndex to find the offending block.
// Converter-level failures use typed errors:
//
//	var tooLarge *converter.OutputTooLargeError
//	if errors.As(err, &tooLarge) {
//	    fmt.Printf("image needs %d bytes\n", tooLarge.Size)
//	}
package converter
