package converter

import "time"

// Conversion phases reported through Progress.Phase.
const (
	PhaseDecoding   = "decoding"
	PhaseValidating = "validating"
	PhaseWriting    = "writing"
	PhaseComplete   = "complete"
)

// Progress contains information about the conversion progress.
// Passed to ProgressCallback during Convert.
type Progress struct {
	// Phase describes the current operation phase:
	//   "decoding"   - Decoding UF2 blocks
	//   "validating" - Checking size limits and required family
	//   "writing"    - Writing the output image
	//   "complete"   - Operation completed successfully
	Phase string

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// InputBytes is the size of the UF2 input
	InputBytes int

	// ImageBytes is the size of the decoded image, once known
	ImageBytes int

	// BytesWritten is the number of bytes written to the output so far
	BytesWritten int64

	// ElapsedTime is the time elapsed since the conversion started
	ElapsedTime time.Duration
}

// ProgressCallback is called at each phase boundary of a conversion.
// Implementations should return quickly.
//
// Example:
//
//	conv := converter.New(
//	    converter.WithProgressCallback(func(p converter.Progress) {
//	        fmt.Printf("[%s] %.0f%%\n", p.Phase, p.Percentage)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the converter.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	conv := converter.New(converter.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
