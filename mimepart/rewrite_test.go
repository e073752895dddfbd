package mimepart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteHead(t *testing.T) {
	head := "--XYZ\n" +
		"Content-Type: audio/x-wav; name=\"msg1234.WAV\"\n" +
		"Content-Transfer-Encoding: base64\n" +
		"Content-Description: Voicemail sound attachment.\n" +
		"Content-Disposition: attachment; filename=\"msg1234.WAV\"\n" +
		"\n"

	want := "--XYZ\n" +
		"Content-Type: audio/mpeg; name=\"msg1234.mp3\"\n" +
		"Content-Transfer-Encoding: base64\n" +
		"Content-Description: Voicemail sound attachment.\n" +
		"Content-Disposition: attachment; filename=\"msg1234.mp3\"\n" +
		"\n"

	got := RewriteHead([]byte(head))
	assert.Equal(t, want, string(got))
}

func TestRewriteHeadCaseInsensitive(t *testing.T) {
	head := []byte("Content-Type: audio/X-WAV; name=\"greeting.wav\"\n")

	got := RewriteHead(head)
	assert.Equal(t, "Content-Type: audio/mpeg; name=\"greeting.mp3\"\n", string(got))
}

func TestRewriteHeadIdempotent(t *testing.T) {
	head := []byte("Content-Type: audio/x-wav; name=\"msg0007.WAV\"\n")

	once := RewriteHead(head)
	twice := RewriteHead(once)
	assert.Equal(t, once, twice)
}

func TestRewriteHeadLeavesOtherLinesAlone(t *testing.T) {
	head := []byte("Content-Transfer-Encoding: base64\nX-Mailer: Asterisk PBX\n")

	got := RewriteHead(head)
	assert.Equal(t, head, got)
}
