package sink

import (
	"context"
	"fmt"
	"io"

	"github.com/dhcgn/voicemail-to-mp3/model"
)

// Writer dumps the message to an io.Writer. Backs --dry-run, where stdout
// stands in for the MTA.
type Writer struct {
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (s *Writer) Deliver(_ context.Context, message []byte) error {
	if _, err := s.out.Write(message); err != nil {
		return fmt.Errorf("%w: %v", model.ErrSink, err)
	}
	return nil
}
