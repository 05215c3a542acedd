package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-uf2/converter"
	"github.com/moffa90/go-uf2/internal/logger"
	"github.com/moffa90/go-uf2/internal/mapfile"
	"github.com/moffa90/go-uf2/uf2"
)

func convertCmd() *cli.Command {
	var (
		input         string
		output        string
		format        string
		family        string
		maxSize       int64
		hexLineLength int64
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a .uf2 file to a raw binary or Intel HEX image",
		ArgsUsage: "[file.uf2]",
		Flags: []cli.Flag{
			inputFlag(&input),
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output path (default: input path with the format extension, - for stdout)",
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (bin, hex)",
				Value:       string(converter.FormatBinary),
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "family",
				Usage:       "require this family (name or number) and write only its image",
				Destination: &family,
			},
			&cli.Int64Flag{
				Name:        "max-size",
				Usage:       "largest image to write in bytes (0 = unlimited)",
				Value:       converter.DefaultMaxOutputSize,
				Destination: &maxSize,
			},
			&cli.Int64Flag{
				Name:        "hex-line-length",
				Usage:       "data bytes per Intel HEX record",
				Value:       converter.DefaultHexLineLength,
				Destination: &hexLineLength,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logger.FromContext(ctx)
			applyConvertConfig(c, LoadConfig(), &format, &maxSize, &family, &hexLineLength)

			path, err := inputPath(c, input)
			if err != nil {
				return err
			}
			f, err := converter.ParseFormat(format)
			if err != nil {
				return err
			}

			opts := []converter.Option{
				converter.WithFormat(f),
				converter.WithMaxOutputSize(int(maxSize)),
				converter.WithHexLineLength(int(hexLineLength)),
				converter.WithLogger(log),
				converter.WithProgressCallback(func(p converter.Progress) {
					log.Debug("progress", "phase", p.Phase, "percent", p.Percentage)
				}),
			}
			if family != "" {
				id, err := uf2.ParseFamily(family)
				if err != nil {
					return err
				}
				opts = append(opts, converter.WithFamily(id))
			}

			in, err := mapfile.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer func() { _ = in.Close() }()

			var buf bytes.Buffer
			res, err := converter.New(opts...).Convert(ctx, in.Data, &buf)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			w := c.Root().Writer
			if output == "-" {
				_, err := w.Write(buf.Bytes())
				return err
			}

			out := resolveOutput(path, output, res.Format)
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			_, _ = fmt.Fprintf(w, "Converted to %s, output size: %d, start address: 0x%x\n",
				res.Format, res.ImageBytes, res.Base)
			_, _ = fmt.Fprintf(w, "Wrote %d bytes to %s\n", res.BytesWritten, out)
			return nil
		},
	}
}
