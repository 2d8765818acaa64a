package iostreams

import (
	"fmt"
	"io"
)

// Interface provides formatted access to output and error streams so that
// commands never write to os.Stdout/os.Stderr directly.
type Interface interface {
	Fprintf(format string, args ...any)
	Errorf(format string, args ...any)
	Output() io.Writer
	Error() io.Writer
}

// IOStreams bundles the standard input/output/error streams.
type IOStreams struct {
	// In is the input stream (stdin)
	In io.Reader
	// Out is the output stream (stdout)
	Out io.Writer
	// ErrOut is the error output stream (stderr)
	ErrOut io.Writer
}

// NewIOStreams creates an IOStreams over the given readers and writers.
func NewIOStreams(in io.Reader, out io.Writer, errOut io.Writer) *IOStreams {
	return &IOStreams{
		In:     in,
		Out:    out,
		ErrOut: errOut,
	}
}

// Fprintf writes formatted output to Out with an automatic newline.
// If no args are provided the format string is written as-is.
func (s *IOStreams) Fprintf(format string, args ...any) {
	writeLine(s.Out, format, args...)
}

// Errorf writes formatted output to ErrOut with an automatic newline.
// If no args are provided the format string is written as-is.
func (s *IOStreams) Errorf(format string, args ...any) {
	writeLine(s.ErrOut, format, args...)
}

// Output returns the output stream, never nil.
func (s *IOStreams) Output() io.Writer {
	if s.Out == nil {
		return io.Discard
	}

	return s.Out
}

// Error returns the error stream, never nil.
func (s *IOStreams) Error() io.Writer {
	if s.ErrOut == nil {
		return io.Discard
	}

	return s.ErrOut
}

func writeLine(w io.Writer, format string, args ...any) {
	if w == nil {
		// Gracefully handle nil writer - silently ignore
		return
	}

	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}

	_, _ = fmt.Fprintln(w, message)
}
