package mimepart

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/dhcgn/voicemail-to-mp3/model"
)

// headLines is the fixed size of an attachment part's own header block: the
// boundary delimiter line, four part headers and the blank separator line.
const headLines = 6

// IsPlainNotification reports whether the message carries no audio
// attachment. Notifications without audio declare a plain text content type
// in the header remainder segment.
func IsPlainNotification(segments model.Segments) bool {
	if len(segments) < 2 {
		// No boundary was found, or the message never split: nothing
		// to convert, forward as-is.
		return true
	}
	return bytes.Contains(segments.HeaderRemainder(), []byte("plain"))
}

// ExtractAttachment separates the attachment segment into its six-line head
// and its base64 body.
func ExtractAttachment(segments model.Segments) (model.AttachmentParts, error) {
	if !segments.HasAttachmentLayout() {
		return model.AttachmentParts{}, fmt.Errorf("%w: got %d segments, need 5", model.ErrStructural, len(segments))
	}

	rest := segments.Attachment()
	var head []byte
	for i := 0; i < headLines; i++ {
		if len(rest) == 0 {
			return model.AttachmentParts{}, fmt.Errorf("%w: attachment head has %d lines, need %d", model.ErrStructural, i, headLines)
		}
		line, tail := nextLine(rest)
		head = append(head, line...)
		rest = tail
	}

	if len(bytes.TrimSpace(rest)) == 0 {
		return model.AttachmentParts{}, fmt.Errorf("%w: attachment body is empty", model.ErrStructural)
	}

	return model.AttachmentParts{Head: head, Body: rest}, nil
}

// DecodeBody decodes the base64 attachment body into raw bytes. Line
// endings are normalized to line feeds before decoding.
func DecodeBody(body []byte) ([]byte, error) {
	cleaned := normalizeLF(body)
	cleaned = bytes.ReplaceAll(cleaned, []byte("\n"), nil)

	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(cleaned)))
	n, err := base64.StdEncoding.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDecode, err)
	}
	return decoded[:n], nil
}
