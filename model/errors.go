package model

import "errors"

// Error taxonomy for the conversion pipeline. Everything except
// ErrTranscription aborts the current message; transcription is best-effort
// and is downgraded to an empty transcript by the dispatcher.
var (
	// ErrStructural marks a message that split on its boundary but does not
	// have the expected voicemail segment layout, or an attachment part
	// whose header block is not exactly six lines.
	ErrStructural = errors.New("unexpected message structure")

	// ErrDecode marks an attachment body that is not valid base64.
	ErrDecode = errors.New("invalid base64 attachment body")

	// ErrAudioFormat marks a decoded attachment that is not a recognizable
	// WAV container.
	ErrAudioFormat = errors.New("unrecognized WAV container")

	// ErrCodec marks an external codec step that exited abnormally or
	// produced empty output.
	ErrCodec = errors.New("audio codec failure")

	// ErrTranscription marks a failed speech-to-text request. Soft: never
	// propagated past the dispatcher.
	ErrTranscription = errors.New("transcription failure")

	// ErrSink marks a mail sink that rejected or failed to accept the
	// assembled message.
	ErrSink = errors.New("mail sink failure")
)
