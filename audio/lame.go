package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/dhcgn/voicemail-to-mp3/model"
)

// DefaultBitrateKbps is the fixed MP3 target bitrate. Constant bitrate at a
// low rate keeps the files playable on the widest range of mail clients and
// phones; VBR would compress better but trips up enough players that the
// trade-off goes to compatibility.
const DefaultBitrateKbps = 24

// LameEncoder transcodes PCM WAV to MP3 via the lame binary, pipe in, pipe
// out, no intermediate files.
type LameEncoder struct {
	// Path of the lame binary; "lame" (resolved via PATH) when empty.
	Path string

	// BitrateKbps overrides DefaultBitrateKbps when positive.
	BitrateKbps int
}

func (e *LameEncoder) Encode(ctx context.Context, pcmWAV []byte) ([]byte, error) {
	path := e.Path
	if path == "" {
		path = "lame"
	}
	bitrate := e.BitrateKbps
	if bitrate <= 0 {
		bitrate = DefaultBitrateKbps
	}

	args := []string{"--cbr", "-b", strconv.Itoa(bitrate), "-m", "m", "--quiet", "-", "-"}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(pcmWAV)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("%w: lame: %v: %s", model.ErrCodec, err, detail)
		}
		return nil, fmt.Errorf("%w: lame: %v", model.ErrCodec, err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%w: lame produced no output", model.ErrCodec)
	}

	return stdout.Bytes(), nil
}
