package testhelpers

import (
	"io"
	"strings"
	"testing"
)

// Writer is an io.Writer that forwards to t.Log so that log output is shown
// only for failing tests.
type Writer struct {
	t        *testing.T
	testDone chan struct{}
}

// NewWriter creates a Writer bound to the lifetime of the test.
func NewWriter(t *testing.T) io.Writer {
	w := &Writer{
		t:        t,
		testDone: make(chan struct{}),
	}
	// Closing the channel on cleanup lets Write detect use after the test
	// has finished, which would otherwise be a data race on t.
	t.Cleanup(func() {
		close(w.testDone)
	})
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	select {
	case <-w.testDone:
		panic("testhelpers: write after test completion, did you forget to shut down the server in t.Cleanup?")
	default:
		output := strings.TrimSuffix(string(p), "\n")
		if output != "" {
			w.t.Log(output)
		}
		return len(p), nil
	}
}
