package converter

// DefaultMaxOutputSize is the default limit on the decoded image size.
const DefaultMaxOutputSize = 64 * 1024 * 1024

// DefaultHexLineLength is the default number of data bytes per Intel HEX record.
const DefaultHexLineLength = 16

// Config holds the converter configuration.
type Config struct {
	// ProgressCallback is called during conversion to report progress (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// Format is the output image format
	Format Format

	// MaxOutputSize caps the decoded image size in bytes. Zero disables the cap.
	MaxOutputSize int

	// Family, when HasFamily is set, must be present in the decoded image
	Family    uint32
	HasFamily bool

	// HexLineLength is the number of data bytes per Intel HEX record
	HexLineLength int
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Format:        FormatBinary,
		MaxOutputSize: DefaultMaxOutputSize,
		HexLineLength: DefaultHexLineLength,
	}
}

// Option is a functional option for configuring the Converter.
type Option func(*Config)

// WithProgressCallback sets a callback function to track conversion progress.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the converter operations.
//
// Example:
//
//	conv := converter.New(converter.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithFormat sets the output format.
//
// Example:
//
//	conv := converter.New(converter.WithFormat(converter.FormatIntelHex))
func WithFormat(format Format) Option {
	return func(c *Config) {
		c.Format = format
	}
}

// WithMaxOutputSize caps the decoded image size. Zero disables the cap;
// negative values are ignored.
//
// The cap is checked block by block while decoding, so oversized input is
// rejected before the image is allocated.
func WithMaxOutputSize(size int) Option {
	return func(c *Config) {
		if size >= 0 {
			c.MaxOutputSize = size
		}
	}
}

// WithFamily requires the given family ID to be present in the input.
// Only that family's segments are written, laid out from its lowest target
// address, which becomes the result base address.
//
// Example:
//
//	conv := converter.New(converter.WithFamily(uf2.FamilyRP2040))
func WithFamily(family uint32) Option {
	return func(c *Config) {
		c.Family = family
		c.HasFamily = true
	}
}

// WithHexLineLength sets the number of data bytes per Intel HEX record (1-255).
// Out-of-range values are ignored.
func WithHexLineLength(n int) Option {
	return func(c *Config) {
		if n > 0 && n <= 255 {
			c.HexLineLength = n
		}
	}
}
