package sink

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dhcgn/voicemail-to-mp3/model"
)

// DefaultSendmailPath is where MTAs conventionally install the sendmail
// compatibility binary.
const DefaultSendmailPath = "/usr/sbin/sendmail"

// Sendmail pipes the message into the local MTA's sendmail binary, which
// takes the recipients from the message headers (-t).
type Sendmail struct {
	path string
}

func NewSendmail(path string) *Sendmail {
	if path == "" {
		path = DefaultSendmailPath
	}
	return &Sendmail{path: path}
}

func (s *Sendmail) Deliver(ctx context.Context, message []byte) error {
	cmd := exec.CommandContext(ctx, s.path, "-t")
	cmd.Stdin = bytes.NewReader(message)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("%w: sendmail: %v: %s", model.ErrSink, err, detail)
		}
		return fmt.Errorf("%w: sendmail: %v", model.ErrSink, err)
	}

	return nil
}
