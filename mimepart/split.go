// Package mimepart implements the byte-exact MIME surgery for voicemail
// notification emails: boundary splitting, attachment extraction, header
// rewriting and reassembly.
//
// The message is treated as a byte sequence throughout. Line scanning is
// explicit and terminator-preserving; no text-mode translation ever happens
// on undecoded bytes, so concatenating the split segments always reproduces
// the input exactly.
package mimepart

import (
	"bytes"

	"github.com/dhcgn/voicemail-to-mp3/model"
)

// Boundary extracts the multipart boundary token from the top-level header
// block. It returns "" when no boundary parameter is declared.
func Boundary(raw model.RawMessage) string {
	rest := []byte(raw)
	for len(rest) > 0 {
		line, tail := nextLine(rest)
		rest = tail

		trimmed := bytes.TrimRight(line, "\r\n")
		if len(trimmed) == 0 {
			// End of the header block.
			return ""
		}

		idx := indexFold(trimmed, []byte("boundary="))
		if idx < 0 {
			continue
		}

		value := trimmed[idx+len("boundary="):]
		if len(value) > 0 && value[0] == '"' {
			if end := bytes.IndexByte(value[1:], '"'); end >= 0 {
				return string(value[1 : 1+end])
			}
			return string(value[1:])
		}
		if end := bytes.IndexAny(value, "; \t"); end >= 0 {
			value = value[:end]
		}
		return string(value)
	}
	return ""
}

// Split divides a raw message into ordered segments. Every line containing
// the boundary token opens a new segment and belongs to it. When the
// boundary is empty or never occurs, the whole message is one segment.
func Split(raw model.RawMessage, boundary string) model.Segments {
	if boundary == "" || !bytes.Contains(raw, []byte(boundary)) {
		return model.Segments{[]byte(raw)}
	}

	marker := []byte(boundary)
	segments := model.Segments{}
	var current []byte

	rest := []byte(raw)
	for len(rest) > 0 {
		line, tail := nextLine(rest)
		rest = tail

		if bytes.Contains(line, marker) {
			segments = append(segments, current)
			current = nil
		}
		current = append(current, line...)
	}
	segments = append(segments, current)

	return segments
}

// nextLine returns the first line of b including its terminator, and the
// remainder. A final line without a newline is returned as-is.
func nextLine(b []byte) (line, rest []byte) {
	if idx := bytes.IndexByte(b, '\n'); idx >= 0 {
		return b[:idx+1], b[idx+1:]
	}
	return b, nil
}

// indexFold is a case-insensitive bytes.Index for ASCII needles.
func indexFold(haystack, needle []byte) int {
	return bytes.Index(bytes.ToLower(haystack), bytes.ToLower(needle))
}
