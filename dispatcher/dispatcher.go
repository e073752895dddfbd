// Package dispatcher wires the conversion pipeline together: split the
// message, branch on attachment presence, transcode, optionally transcribe,
// rewrite and reassemble, then hand the result to the mail sink.
//
// Each stage consumes the full output of the previous one, so the pipeline
// is deliberately single-threaded; there is nothing to parallelize.
package dispatcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dhcgn/voicemail-to-mp3/audio"
	"github.com/dhcgn/voicemail-to-mp3/config"
	"github.com/dhcgn/voicemail-to-mp3/mimepart"
	"github.com/dhcgn/voicemail-to-mp3/model"
	"github.com/dhcgn/voicemail-to-mp3/sink"
	"github.com/dhcgn/voicemail-to-mp3/workspace"
)

// Transcriber converts audio bytes to text. Nil disables transcription.
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte) (model.Transcript, error)
}

// Dispatcher runs the pipeline for one message at a time.
type Dispatcher struct {
	cfg         config.Config
	logger      *slog.Logger
	normalizer  audio.Normalizer
	encoder     audio.Encoder
	transcriber Transcriber
	sink        sink.MailSink
}

func New(cfg config.Config, logger *slog.Logger, normalizer audio.Normalizer, encoder audio.Encoder, transcriber Transcriber, mailSink sink.MailSink) *Dispatcher {
	return &Dispatcher{
		cfg:         cfg,
		logger:      logger,
		normalizer:  normalizer,
		encoder:     encoder,
		transcriber: transcriber,
		sink:        mailSink,
	}
}

// Run reads one complete message from in, converts it and delivers the
// result.
func (d *Dispatcher) Run(ctx context.Context, in io.Reader) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read message: %w", err)
	}
	_, err = d.RunMessage(ctx, raw)
	return err
}

// RunMessage converts one raw message and delivers the result, reporting
// whether the audio was actually transcoded (false means passthrough). The
// temporary workspace is released on every exit path; a failed pipeline
// never delivers a partial message.
func (d *Dispatcher) RunMessage(ctx context.Context, raw []byte) (bool, error) {
	ws, err := workspace.New(d.logger)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = ws.Close()
	}()

	out, converted, err := d.Process(ctx, ws, model.RawMessage(raw))
	if err != nil {
		return false, err
	}

	if err := d.sink.Deliver(ctx, out); err != nil {
		return converted, err
	}

	d.logger.Info("message delivered", "run", ws.ID(), "converted", converted, "inBytes", len(raw), "outBytes", len(out))
	return converted, nil
}

// Process transforms one raw message into its output form. The passthrough
// branch returns the input bytes unchanged and converted=false.
func (d *Dispatcher) Process(ctx context.Context, ws *workspace.Workspace, raw model.RawMessage) ([]byte, bool, error) {
	logger := d.logger.With("run", ws.ID())

	boundary := mimepart.Boundary(raw)
	segments := mimepart.Split(raw, boundary)
	logger.Debug("message split", "boundary", boundary, "segments", len(segments))

	if mimepart.IsPlainNotification(segments) {
		logger.Info("no audio attachment, forwarding unchanged")
		return raw, false, nil
	}

	parts, err := mimepart.ExtractAttachment(segments)
	if err != nil {
		return nil, false, err
	}

	decoded, err := mimepart.DecodeBody(parts.Body)
	if err != nil {
		return nil, false, err
	}
	d.stage(ws, "original.wav", decoded)

	pcm, err := d.normalizer.Normalize(ctx, decoded)
	if err != nil {
		return nil, false, err
	}
	d.stage(ws, "normalized.wav", pcm)

	var transcript model.Transcript
	if d.transcriber != nil {
		transcript, err = d.transcriber.Transcribe(ctx, pcm)
		if err != nil {
			// Best-effort: the voicemail still gets delivered.
			logger.Warn("transcription failed, continuing without transcript", "err", err)
			transcript = ""
		}
	}

	mp3, err := d.encoder.Encode(ctx, pcm)
	if err != nil {
		return nil, false, err
	}
	d.stage(ws, "voicemail.mp3", mp3)

	logger.Debug("audio transcoded", "wavBytes", len(decoded), "pcmBytes", len(pcm), "mp3Bytes", len(mp3), "transcribed", transcript != "")

	out := mimepart.Assemble(mimepart.AssembleInput{
		Segments:   segments,
		Head:       mimepart.RewriteHead(parts.Head),
		Transcript: transcript,
		Audio:      mp3,
	})

	return out, true, nil
}

// stage keeps intermediate artifacts in the workspace for inspection when
// debug diagnostics are on. Failures only log; staging never affects the
// pipeline outcome.
func (d *Dispatcher) stage(ws *workspace.Workspace, name string, data []byte) {
	if !d.cfg.Debug {
		return
	}
	if err := ws.Stage(name, data); err != nil {
		d.logger.Warn("debug staging failed", "run", ws.ID(), "artifact", name, "err", err)
	}
}
