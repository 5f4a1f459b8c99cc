// internal/writers/report.go
package writers

import (
	"io"

	"pzdehmm/internal/output"
)

// StartReportWriter spins up a writer goroutine for report rows. The caller
// sends rows on the returned channel, closes it, then receives the single
// write result from the error channel.
func StartReportWriter(out io.Writer, header bool, bufSize int) (chan<- output.Row, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan output.Row, bufSize)
	errCh := make(chan error, 1)

	go func() {
		errCh <- output.StreamCSV(out, in, header)
	}()

	return in, errCh
}
