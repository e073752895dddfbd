package mimepart

import (
	"bytes"
	"encoding/base64"

	"github.com/dhcgn/voicemail-to-mp3/model"
)

// TranscriptSeparator is the literal line printed before the transcript text
// inside the rebuilt message.
const TranscriptSeparator = "---- Voicemail transcription ----"

// base64LineWidth is the RFC 2045 maximum encoded line length.
const base64LineWidth = 76

// AssembleInput collects everything the assembler splices together.
type AssembleInput struct {
	Segments   model.Segments
	Head       []byte // rewritten attachment header block
	Transcript model.Transcript
	Audio      []byte // MP3 bytes, not yet encoded
}

// Assemble rebuilds the output message in fixed order: the original
// pre-boundary headers, the header remainder, the notification body text,
// the rewritten attachment head, the optional transcript banner, the
// re-encoded audio and the original trailer.
//
// Line-ending policy: every textual section up to and including the
// attachment head is LF-only, the base64 body is CRLF (MIME transport
// convention for base64 bodies), and the trailer is LF-only again. An empty
// transcript omits the banner entirely.
func Assemble(in AssembleInput) []byte {
	var buf bytes.Buffer

	buf.Write(normalizeLF(in.Segments.PreBoundary()))
	buf.Write(normalizeLF(in.Segments.HeaderRemainder()))
	buf.Write(normalizeLF(in.Segments.BodyText()))
	buf.Write(normalizeLF(in.Head))

	if in.Transcript != "" {
		buf.WriteString(TranscriptSeparator)
		buf.WriteByte('\n')
		buf.WriteString(string(in.Transcript))
		buf.WriteByte('\n')
	}

	buf.Write(encodeBase64CRLF(in.Audio))
	buf.WriteString("\n\n")
	buf.Write(normalizeLF(in.Segments.Trailer()))

	return buf.Bytes()
}

// normalizeLF converts CRLF line endings to bare LF.
func normalizeLF(b []byte) []byte {
	return bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
}

// encodeBase64CRLF encodes data as base64 wrapped at the MIME line width,
// every line CRLF-terminated.
func encodeBase64CRLF(data []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(data)

	var buf bytes.Buffer
	for len(encoded) > 0 {
		width := base64LineWidth
		if len(encoded) < width {
			width = len(encoded)
		}
		buf.WriteString(encoded[:width])
		buf.WriteString("\r\n")
		encoded = encoded[width:]
	}
	return buf.Bytes()
}
