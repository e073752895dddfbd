// Package audio adapts external codec tools into narrow byte-in/byte-out
// contracts so the conversion pipeline can treat them as black boxes and
// tests can swap in deterministic fakes.
package audio

import "context"

// Normalizer converts a WAV container of any supported internal encoding
// (GSM included) into linear-PCM WAV bytes.
type Normalizer interface {
	Normalize(ctx context.Context, wav []byte) ([]byte, error)
}

// Encoder transcodes linear-PCM WAV bytes into MP3 bytes.
type Encoder interface {
	Encode(ctx context.Context, pcmWAV []byte) ([]byte, error)
}
