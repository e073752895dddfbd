package audio

import (
	"bytes"
	"context"
	"fmt"

	sox "github.com/thadeu/go-sox"

	"github.com/dhcgn/voicemail-to-mp3/model"
)

// NormalizeSampleRate is the target rate for the linear-PCM intermediate.
// Voicemail audio is telephony narrowband.
const NormalizeSampleRate = 8000

// SoxNormalizer drives SoX through pipes to re-encode any readable WAV into
// mono 16-bit linear-PCM WAV.
type SoxNormalizer struct {
	sampleRate int
}

// NewSoxNormalizer verifies that sox is available in PATH.
func NewSoxNormalizer() (*SoxNormalizer, error) {
	if err := sox.CheckSoxInstalled(""); err != nil {
		return nil, fmt.Errorf("sox not available: %w", err)
	}
	return &SoxNormalizer{sampleRate: NormalizeSampleRate}, nil
}

func (n *SoxNormalizer) Normalize(ctx context.Context, wav []byte) ([]byte, error) {
	if err := ValidateContainer(wav); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// SoX reads the input parameters from the WAV header itself; only the
	// container type is pinned on the input side.
	input := sox.AudioFormat{Type: "wav"}
	output := sox.AudioFormat{
		Type:       "wav",
		Encoding:   "signed-integer",
		SampleRate: n.sampleRate,
		Channels:   1,
		BitDepth:   16,
	}

	var buf bytes.Buffer
	converter := sox.NewConverter(input, output)
	if err := converter.Convert(bytes.NewReader(wav), &buf); err != nil {
		return nil, fmt.Errorf("%w: sox: %v", model.ErrCodec, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: sox produced no output", model.ErrCodec)
	}

	return buf.Bytes(), nil
}
