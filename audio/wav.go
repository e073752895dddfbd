package audio

import (
	"fmt"

	"github.com/dhcgn/voicemail-to-mp3/model"
)

// riffHeaderSize covers the RIFF chunk id, size and WAVE form type.
const riffHeaderSize = 12

// ValidateContainer checks that data starts with a RIFF/WAVE container.
// Only the outer container is inspected: the internal encoding may be GSM
// or anything else SoX can read, so the fmt chunk is deliberately not
// validated here.
func ValidateContainer(data []byte) error {
	if len(data) < riffHeaderSize {
		return fmt.Errorf("%w: %d bytes is too short for a RIFF header", model.ErrAudioFormat, len(data))
	}
	if string(data[0:4]) != "RIFF" {
		return fmt.Errorf("%w: missing RIFF chunk id", model.ErrAudioFormat)
	}
	if string(data[8:12]) != "WAVE" {
		return fmt.Errorf("%w: missing WAVE form type", model.ErrAudioFormat)
	}
	return nil
}
