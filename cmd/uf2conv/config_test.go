package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigPath(t *testing.T) {
	t.Setenv(envConfigPath, "/tmp/custom.yaml")
	if got := configPath(); got != "/tmp/custom.yaml" {
		t.Errorf("configPath() = %q, want env override", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv(envConfigPath, filepath.Join(t.TempDir(), "none.yaml"))
		if cfg := LoadConfig(); cfg != (Config{}) {
			t.Errorf("LoadConfig() = %+v, want zero config", cfg)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Setenv(envConfigPath, writeConfig(t, "output_format: [bin\n"))
		if cfg := LoadConfig(); cfg != (Config{}) {
			t.Errorf("LoadConfig() = %+v, want zero config", cfg)
		}
	})

	t.Run("all keys", func(t *testing.T) {
		t.Setenv(envConfigPath, writeConfig(t, `output_format: hex
max_output_size: 1024
family: RP2040
hex_line_length: 32
log_level: debug
log_format: json
server_address: 0.0.0.0:9000
max_upload_size: 2048
`))
		cfg := LoadConfig()
		if cfg.OutputFormat != "hex" || cfg.Family != "RP2040" {
			t.Errorf("strings = %q %q", cfg.OutputFormat, cfg.Family)
		}
		if cfg.MaxOutputSize == nil || *cfg.MaxOutputSize != 1024 {
			t.Errorf("MaxOutputSize = %v, want 1024", cfg.MaxOutputSize)
		}
		if cfg.HexLineLength == nil || *cfg.HexLineLength != 32 {
			t.Errorf("HexLineLength = %v, want 32", cfg.HexLineLength)
		}
		if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
			t.Errorf("logging = %q %q", cfg.LogLevel, cfg.LogFormat)
		}
		if cfg.ServerAddress != "0.0.0.0:9000" {
			t.Errorf("ServerAddress = %q", cfg.ServerAddress)
		}
		if cfg.MaxUploadSize == nil || *cfg.MaxUploadSize != 2048 {
			t.Errorf("MaxUploadSize = %v, want 2048", cfg.MaxUploadSize)
		}
	})
}

func TestApplyConvertConfig(t *testing.T) {
	maxOut := int64(4096)
	lineLen := int64(32)
	cfg := Config{
		OutputFormat:  "hex",
		MaxOutputSize: &maxOut,
		Family:        "SAMD51",
		HexLineLength: &lineLen,
	}

	run := func(t *testing.T, args ...string) (string, int64, string, int64) {
		t.Helper()
		var (
			format  string
			maxSize int64
			family  string
			hexLen  int64
		)
		cmd := &cli.Command{
			Name: "convert",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "format", Value: "bin", Destination: &format},
				&cli.Int64Flag{Name: "max-size", Value: 1, Destination: &maxSize},
				&cli.StringFlag{Name: "family", Destination: &family},
				&cli.Int64Flag{Name: "hex-line-length", Value: 16, Destination: &hexLen},
			},
			Action: func(ctx context.Context, c *cli.Command) error {
				applyConvertConfig(c, cfg, &format, &maxSize, &family, &hexLen)
				return nil
			},
		}
		if err := cmd.Run(context.Background(), append([]string{"convert"}, args...)); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return format, maxSize, family, hexLen
	}

	t.Run("config fills unset flags", func(t *testing.T) {
		format, maxSize, family, hexLen := run(t)
		if format != "hex" || maxSize != 4096 || family != "SAMD51" || hexLen != 32 {
			t.Errorf("got %q %d %q %d", format, maxSize, family, hexLen)
		}
	})

	t.Run("flags win over config", func(t *testing.T) {
		format, maxSize, family, hexLen := run(t,
			"--format", "bin", "--max-size", "10", "--family", "RP2040", "--hex-line-length", "8")
		if format != "bin" || maxSize != 10 || family != "RP2040" || hexLen != 8 {
			t.Errorf("got %q %d %q %d", format, maxSize, family, hexLen)
		}
	})
}
