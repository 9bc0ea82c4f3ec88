package keepalive

import (
	"bytes"
	"sync"
)

var mu sync.Mutex

// syncWriter serializes log writes from the Run goroutine with test reads.
type syncWriter struct{ buf *bytes.Buffer }

func (w *syncWriter) Write(p []byte) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	return w.buf.Write(p)
}
