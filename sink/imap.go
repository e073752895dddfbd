package sink

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	imapv2 "github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/dhcgn/voicemail-to-mp3/model"
)

// IMAPOptions configure the IMAP append sink.
type IMAPOptions struct {
	Host               string
	Port               int
	Username           string
	Password           string
	UseTLS             bool
	InsecureSkipVerify bool
	Folder             string
}

// IMAP appends the converted message to a mailbox instead of handing it to
// a local MTA. Useful when the tool runs off-box from the mail store.
type IMAP struct {
	opts   IMAPOptions
	logger *slog.Logger
}

func NewIMAP(opts IMAPOptions, logger *slog.Logger) (*IMAP, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("imap host is empty")
	}
	if opts.Port <= 0 || opts.Port > 65535 {
		return nil, fmt.Errorf("imap port must be between 1 and 65535")
	}
	return &IMAP{opts: opts, logger: logger}, nil
}

func (s *IMAP) Deliver(ctx context.Context, message []byte) error {
	client, cleanup, err := s.dial(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrSink, err)
	}
	defer cleanup()

	if err := s.appendMessage(client, message); err != nil {
		return fmt.Errorf("%w: %v", model.ErrSink, err)
	}

	if s.logger != nil {
		s.logger.Debug("message appended", "folder", s.folder(), "size", len(message))
	}
	return nil
}

func (s *IMAP) dial(ctx context.Context) (*imapclient.Client, func(), error) {
	address := net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
	options := &imapclient.Options{}

	if s.opts.UseTLS {
		options.TLSConfig = &tls.Config{
			ServerName:         s.opts.Host,
			InsecureSkipVerify: s.opts.InsecureSkipVerify,
		}
	}

	var (
		client *imapclient.Client
		err    error
	)
	if s.opts.UseTLS {
		client, err = imapclient.DialTLS(address, options)
	} else {
		client, err = imapclient.DialInsecure(address, options)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("dial imap %s: %w", address, err)
	}

	if err := client.Login(s.opts.Username, s.opts.Password).Wait(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("imap login failed: %w", err)
	}

	if err := s.ensureMailbox(client); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	stopClose := context.AfterFunc(ctx, func() {
		_ = client.Close()
	})

	cleanup := func() {
		stopClose()
		if ctx.Err() == nil {
			if err := client.Logout().Wait(); err != nil && s.logger != nil {
				s.logger.Warn("imap logout failed", "err", err)
			}
		}
		_ = client.Close()
	}

	return client, cleanup, nil
}

func (s *IMAP) appendMessage(client *imapclient.Client, message []byte) error {
	cmd := client.Append(s.folder(), int64(len(message)), nil)

	remaining := message
	for len(remaining) > 0 {
		n, err := cmd.Write(remaining)
		if err != nil {
			_ = cmd.Close()
			return fmt.Errorf("append write: %w", err)
		}
		if n == 0 {
			_ = cmd.Close()
			return fmt.Errorf("append write: wrote 0 bytes")
		}
		remaining = remaining[n:]
	}

	if err := cmd.Close(); err != nil {
		return fmt.Errorf("append close: %w", err)
	}
	if _, err := cmd.Wait(); err != nil {
		return fmt.Errorf("append wait: %w", err)
	}

	return nil
}

func (s *IMAP) ensureMailbox(client *imapclient.Client) error {
	folder := s.folder()
	if err := client.Create(folder, nil).Wait(); err != nil {
		var respErr *imapv2.Error
		if errors.As(err, &respErr) && respErr.Code == imapv2.ResponseCodeAlreadyExists {
			return nil
		}
		return fmt.Errorf("ensure mailbox %s: %w", folder, err)
	}

	if s.logger != nil {
		s.logger.Info("imap mailbox created", "mailbox", folder)
	}
	return nil
}

func (s *IMAP) folder() string {
	if s.opts.Folder == "" {
		return "INBOX"
	}
	return s.opts.Folder
}
