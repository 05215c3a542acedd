package main

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-uf2/internal/report"
)

func familiesCmd() *cli.Command {
	var jsonOut bool

	return &cli.Command{
		Name:  "families",
		Usage: "List the well-known UF2 family IDs",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the table as JSON",
				Destination: &jsonOut,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			table := report.FamilyTable()

			if jsonOut {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(table)
			}

			for _, f := range table {
				if _, err := fmt.Fprintf(w, "%-16s 0x%08X\n", f.Name, uint32(f.ID)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
