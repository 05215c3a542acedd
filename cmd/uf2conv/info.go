package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-uf2/converter"
	"github.com/moffa90/go-uf2/internal/logger"
	"github.com/moffa90/go-uf2/internal/mapfile"
	"github.com/moffa90/go-uf2/internal/report"
	"github.com/moffa90/go-uf2/uf2"
)

func infoCmd() *cli.Command {
	var (
		input   string
		jsonOut bool
		blocks  bool
		maxSize int64
	)

	return &cli.Command{
		Name:      "info",
		Usage:     "Show the header info and families of a .uf2 file",
		ArgsUsage: "[file.uf2]",
		Flags: []cli.Flag{
			inputFlag(&input),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the report as JSON",
				Destination: &jsonOut,
			},
			&cli.BoolFlag{
				Name:        "blocks",
				Usage:       "print every block header before the summary",
				Destination: &blocks,
			},
			&cli.Int64Flag{
				Name:        "max-size",
				Usage:       "largest image to decode in bytes (0 = unlimited)",
				Value:       converter.DefaultMaxOutputSize,
				Destination: &maxSize,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path, err := inputPath(c, input)
			if err != nil {
				return err
			}
			if cfg := LoadConfig(); cfg.MaxOutputSize != nil && !c.IsSet("max-size") {
				maxSize = *cfg.MaxOutputSize
			}

			in, err := mapfile.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer func() { _ = in.Close() }()

			w := c.Root().Writer
			if blocks && !jsonOut {
				if err := dumpBlocks(w, in.Data); err != nil {
					return err
				}
			}

			conv := converter.New(
				converter.WithMaxOutputSize(int(maxSize)),
				converter.WithLogger(logger.FromContext(ctx)),
			)
			img, err := conv.Decode(ctx, in.Data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			r := report.New(path, in.Data, img)
			if jsonOut {
				return r.Write(w)
			}
			return r.Text(w)
		},
	}
}

// dumpBlocks prints one line per whole block, marking the ones the decoder skips.
func dumpBlocks(w io.Writer, buf []byte) error {
	for index := 0; (index+1)*uf2.BlockSize <= len(buf); index++ {
		b, err := uf2.ParseBlock(buf[index*uf2.BlockSize:])
		if err != nil {
			return err
		}

		note := ""
		switch {
		case !b.Valid():
			note = " (bad magic, skipped)"
		case !b.IsMainFlash():
			note = " (not main flash, skipped)"
		}
		if _, err := fmt.Fprintf(w, "%6d  %s%s\n", index, b, note); err != nil {
			return err
		}
	}
	return nil
}
