package model

// RawMessage is the complete input email as read from standard input. It is
// never mutated; every transform produces a new byte sequence.
type RawMessage []byte

// Segments is the ordered result of splitting a RawMessage on its MIME
// boundary. Concatenating all segments in order reproduces the raw message
// byte for byte.
//
// The voicemail notification layout pins fixed positions after the split:
//
//	0: headers before the Content-Type line carrying the boundary parameter
//	1: remainder of the top-level header block (starts at the boundary line)
//	2: the text/plain body part
//	3: the audio attachment part
//	4: the closing boundary delimiter and trailer
//
// The accessors below are the only place this positional assumption lives.
type Segments [][]byte

// PreBoundary returns the header lines preceding the boundary declaration.
func (s Segments) PreBoundary() []byte { return s[0] }

// HeaderRemainder returns the rest of the top-level header block, beginning
// with the line that declares the boundary parameter.
func (s Segments) HeaderRemainder() []byte { return s[1] }

// BodyText returns the text/plain notification body part.
func (s Segments) BodyText() []byte { return s[2] }

// Attachment returns the audio attachment part (head lines plus base64 body).
func (s Segments) Attachment() []byte { return s[3] }

// Trailer returns the closing boundary delimiter and anything after it.
func (s Segments) Trailer() []byte { return s[4] }

// HasAttachmentLayout reports whether enough segments exist for the fixed
// voicemail layout above.
func (s Segments) HasAttachmentLayout() bool { return len(s) >= 5 }

// AttachmentParts is an attachment segment separated into its own MIME
// header block and its base64 payload.
type AttachmentParts struct {
	// Head holds exactly the first six lines of the attachment segment:
	// the boundary delimiter, the part headers (content type, filename,
	// transfer encoding, disposition) and the blank separator line.
	Head []byte

	// Body is the remaining base64 text, line terminators as found.
	Body []byte
}

// Transcript is the recognized speech text for a voicemail, empty when
// transcription is disabled or failed.
type Transcript string
