package transcribe

import (
	"io"
	"time"
)

// throttledReader paces reads so the wrapped reader is consumed at no more
// than bytesPerSec, the upload-rate ceiling the recognizer request honors.
type throttledReader struct {
	r           io.Reader
	bytesPerSec int
	sent        int64
	start       time.Time
}

func newThrottledReader(r io.Reader, bytesPerSec int) *throttledReader {
	return &throttledReader{r: r, bytesPerSec: bytesPerSec}
}

func (t *throttledReader) Read(p []byte) (int, error) {
	if t.start.IsZero() {
		t.start = time.Now()
	}

	// Serve ~100ms slices so pauses stay short and even.
	if slice := t.bytesPerSec / 10; slice > 0 && len(p) > slice {
		p = p[:slice]
	}

	n, err := t.r.Read(p)
	t.sent += int64(n)

	due := time.Duration(float64(t.sent) / float64(t.bytesPerSec) * float64(time.Second))
	if elapsed := time.Since(t.start); due > elapsed {
		time.Sleep(due - elapsed)
	}

	return n, err
}
