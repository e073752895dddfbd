package sink

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhcgn/voicemail-to-mp3/model"
)

func TestWriterDeliversVerbatim(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriter(&buf)

	message := []byte("From: pbx\n\nconverted voicemail\n")
	require.NoError(t, s.Deliver(context.Background(), message))
	assert.Equal(t, message, buf.Bytes())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestWriterWrapsWriteErrors(t *testing.T) {
	s := NewWriter(failWriter{})

	err := s.Deliver(context.Background(), []byte("message"))
	assert.ErrorIs(t, err, model.ErrSink)
}

func TestSendmailDefaultsPath(t *testing.T) {
	s := NewSendmail("")
	assert.Equal(t, DefaultSendmailPath, s.path)
}

func TestSendmailMissingBinary(t *testing.T) {
	s := NewSendmail("/nonexistent/sendmail")

	err := s.Deliver(context.Background(), []byte("From: pbx\n\nbody\n"))
	assert.ErrorIs(t, err, model.ErrSink)
}

func TestNewIMAPValidation(t *testing.T) {
	_, err := NewIMAP(IMAPOptions{Port: 993}, nil)
	assert.Error(t, err)

	_, err = NewIMAP(IMAPOptions{Host: "mail.example.com", Port: 0}, nil)
	assert.Error(t, err)

	_, err = NewIMAP(IMAPOptions{Host: "mail.example.com", Port: 70000}, nil)
	assert.Error(t, err)

	s, err := NewIMAP(IMAPOptions{Host: "mail.example.com", Port: 993}, nil)
	require.NoError(t, err)
	assert.Equal(t, "INBOX", s.folder())
}

func TestIMAPFolderDefault(t *testing.T) {
	s, err := NewIMAP(IMAPOptions{Host: "mail.example.com", Port: 993, Folder: "Voicemail"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Voicemail", s.folder())
}

func TestIMAPDeliverUnreachableHost(t *testing.T) {
	s, err := NewIMAP(IMAPOptions{Host: "127.0.0.1", Port: 1, UseTLS: false}, nil)
	require.NoError(t, err)

	err = s.Deliver(context.Background(), []byte("message"))
	assert.ErrorIs(t, err, model.ErrSink)
}
