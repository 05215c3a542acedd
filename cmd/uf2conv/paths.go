package main

import (
	"path/filepath"
	"strings"

	"github.com/moffa90/go-uf2/converter"
)

// resolveOutput picks the output path: the explicit value, or the input path
// with its extension replaced by the format's.
func resolveOutput(input, output string, format converter.Format) string {
	if output != "" {
		return output
	}
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + format.Extension()
}
