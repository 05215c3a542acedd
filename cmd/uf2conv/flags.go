package main

import (
	"fmt"

	"github.com/urfave/cli/v3"
)

var (
	logLevel  string
	logFormat string
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
	}
}

func inputFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "input",
		Aliases:     []string{"i"},
		Usage:       "path to .uf2 file (or first argument)",
		Destination: dest,
	}
}

// inputPath returns the --input value or the first positional argument.
func inputPath(c *cli.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if arg := c.Args().First(); arg != "" {
		return arg, nil
	}
	return "", fmt.Errorf("no input file: pass --input or a path argument")
}
