package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans a write out to all its writers. A failing writer does
// not stop the others, its error is combined into the returned one.
type CombinedWriter struct {
	Writers []io.Writer
	Err     error
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer(nil), writers...),
	}
}

// Write returns the sum of bytes written by the healthy writers.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var total int
	var errs error
	for _, w := range cw.Writers {
		n, err := w.Write(p)
		total += n
		errs = multierr.Append(errs, err)
	}
	return total, errs
}
