package mimepart

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhcgn/voicemail-to-mp3/model"
)

func TestIsPlainNotification(t *testing.T) {
	tests := []struct {
		name     string
		segments model.Segments
		want     bool
	}{
		{
			name:     "single segment means no boundary",
			segments: model.Segments{[]byte("the whole message\n")},
			want:     true,
		},
		{
			name: "plain marker in header remainder",
			segments: model.Segments{
				[]byte("From: pbx\n"),
				[]byte("Content-Type: text/plain; boundary=\"XYZ\"\n\n"),
			},
			want: true,
		},
		{
			name: "multipart with audio attachment",
			segments: model.Segments{
				[]byte("From: pbx\n"),
				[]byte("Content-Type: multipart/mixed; boundary=\"XYZ\"\n\n"),
				[]byte("--XYZ\nbody\n"),
				[]byte("--XYZ\nattachment\n"),
				[]byte("--XYZ--\n"),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPlainNotification(tt.segments))
		})
	}
}

func attachmentSegments(attachment string) model.Segments {
	return model.Segments{
		[]byte("From: pbx\n"),
		[]byte("Content-Type: multipart/mixed; boundary=\"XYZ\"\n\n"),
		[]byte("--XYZ\nContent-Type: text/plain\n\nYou have mail.\n"),
		[]byte(attachment),
		[]byte("--XYZ--\n"),
	}
}

func TestExtractAttachment(t *testing.T) {
	attachment := "--XYZ\n" +
		"Content-Type: audio/x-wav; name=\"msg1234.WAV\"\n" +
		"Content-Transfer-Encoding: base64\n" +
		"Content-Description: Voicemail sound attachment.\n" +
		"Content-Disposition: attachment; filename=\"msg1234.WAV\"\n" +
		"\n" +
		"UklGRgAAAABXQVZF\n" +
		"UklGRgAAAABXQVZF\n"

	parts, err := ExtractAttachment(attachmentSegments(attachment))
	require.NoError(t, err)

	wantHead := "--XYZ\n" +
		"Content-Type: audio/x-wav; name=\"msg1234.WAV\"\n" +
		"Content-Transfer-Encoding: base64\n" +
		"Content-Description: Voicemail sound attachment.\n" +
		"Content-Disposition: attachment; filename=\"msg1234.WAV\"\n" +
		"\n"
	assert.Equal(t, wantHead, string(parts.Head))
	assert.Equal(t, "UklGRgAAAABXQVZF\nUklGRgAAAABXQVZF\n", string(parts.Body))
}

func TestExtractAttachmentStructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		segments model.Segments
	}{
		{
			name: "too few segments",
			segments: model.Segments{
				[]byte("From: pbx\n"),
				[]byte("Content-Type: multipart/mixed\n"),
			},
		},
		{
			name:     "head shorter than six lines",
			segments: attachmentSegments("--XYZ\nContent-Type: audio/x-wav\n\n"),
		},
		{
			name:     "empty body",
			segments: attachmentSegments("--XYZ\nh2\nh3\nh4\nh5\n\n"),
		},
		{
			name:     "whitespace only body",
			segments: attachmentSegments("--XYZ\nh2\nh3\nh4\nh5\n\n   \n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractAttachment(tt.segments)
			assert.ErrorIs(t, err, model.ErrStructural)
		})
	}
}

func TestDecodeBody(t *testing.T) {
	payload := []byte("RIFF....WAVEfmt voicemail payload bytes")
	encoded := base64.StdEncoding.EncodeToString(payload)

	// Wrap at an arbitrary width with CRLF endings, the way the attachment
	// arrives on the wire.
	var wrapped []byte
	for len(encoded) > 0 {
		width := 16
		if len(encoded) < width {
			width = len(encoded)
		}
		wrapped = append(wrapped, encoded[:width]...)
		wrapped = append(wrapped, '\r', '\n')
		encoded = encoded[width:]
	}

	decoded, err := DecodeBody(wrapped)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDecodeBodyRejectsGarbage(t *testing.T) {
	_, err := DecodeBody([]byte("this is not base64 at all!!\n"))
	assert.ErrorIs(t, err, model.ErrDecode)
}
