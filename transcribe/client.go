// Package transcribe sends voicemail audio to a remote speech-to-text
// service. Transcription is strictly best-effort: callers downgrade any
// error here to an empty transcript.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dhcgn/voicemail-to-mp3/model"
)

// basicAuthUser is the fixed username the recognizer expects; the secret
// travels as the password.
const basicAuthUser = "apikey"

const (
	// DefaultEndpoint is the recognizer URL used when none is configured.
	DefaultEndpoint = "https://api.us-south.speech-to-text.watson.cloud.ibm.com/v1/recognize"

	// DefaultModel is the acoustic model for narrowband voicemail audio.
	DefaultModel = "en-US_NarrowbandModel"
)

// Config contains transcription client configuration.
type Config struct {
	Endpoint string
	APIKey   string
	Model    string

	// RateLimitBytesPerSec caps the upload rate; 0 disables throttling.
	RateLimitBytesPerSec int

	// Timeout bounds a single request; 0 leaves the transport defaults in
	// place, matching the behavior this tool inherited.
	Timeout time.Duration
}

// Client posts WAV audio to the recognizer and extracts the transcript.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient validates the configuration and applies defaults.
func NewClient(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("transcription API key is empty")
	}
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

// recognitionResponse is the subset of the recognizer's JSON reply this
// client cares about.
type recognitionResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Transcribe posts the linear-PCM WAV bytes for continuous recognition and
// returns the recognized text verbatim. Every failure mode (network,
// non-2xx status, missing transcript) yields an ErrTranscription-wrapped
// error; the audio pipeline itself is never aborted by it.
func (c *Client) Transcribe(ctx context.Context, wav []byte) (model.Transcript, error) {
	endpoint, err := url.Parse(c.config.Endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: endpoint: %v", model.ErrTranscription, err)
	}
	query := endpoint.Query()
	query.Set("model", c.config.Model)
	query.Set("continuous", "true")
	endpoint.RawQuery = query.Encode()

	var body io.Reader = bytes.NewReader(wav)
	if c.config.RateLimitBytesPerSec > 0 {
		body = newThrottledReader(body, c.config.RateLimitBytesPerSec)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranscription, err)
	}
	req.ContentLength = int64(len(wav))
	req.SetBasicAuth(basicAuthUser, c.config.APIKey)
	req.Header.Set("Content-Type", "audio/wav")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranscription, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", model.ErrTranscription, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: HTTP %d: %s", model.ErrTranscription, resp.StatusCode, bytes.TrimSpace(respBody))
	}

	var recognition recognitionResponse
	if err := json.Unmarshal(respBody, &recognition); err != nil {
		return "", fmt.Errorf("%w: parse response: %v", model.ErrTranscription, err)
	}

	var transcript string
	for _, result := range recognition.Results {
		if len(result.Alternatives) > 0 {
			transcript += result.Alternatives[0].Transcript
		}
	}
	if transcript == "" {
		return "", fmt.Errorf("%w: response contains no transcript", model.ErrTranscription)
	}

	return model.Transcript(transcript), nil
}
