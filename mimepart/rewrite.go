package mimepart

import "regexp"

var (
	contentTypeWAV = regexp.MustCompile(`(?i)x-wav`)
	filenameWAV    = regexp.MustCompile(`(?i)\.wav`)
)

// RewriteHead rewrites the attachment header block for the transcoded
// attachment: the x-wav content type token becomes mpeg and .wav filename
// suffixes become .mp3, both case-insensitively. Everything else in the six
// lines (transfer encoding, boundary delimiter, blank separator) passes
// through untouched, and a head already declaring mpeg/.mp3 is a no-op.
func RewriteHead(head []byte) []byte {
	rewritten := contentTypeWAV.ReplaceAll(head, []byte("mpeg"))
	rewritten = filenameWAV.ReplaceAll(rewritten, []byte(".mp3"))
	return rewritten
}
