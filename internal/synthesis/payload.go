package synthesis

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	audioPreviewChars = 50
	wordsPerSecond    = 2

	demoFormat     = "wav"
	demoSampleRate = 22050
	demoChannels   = 1

	audioTypeDemo        = "demo"
	audioMessage         = "This is a demo response. Actual Nigerian voice will be delivered via email."
	downloadInstructions = "Contact info@naijavoice.com with your order ID for audio download"

	dataURIPrefix = "data:application/json;base64,"
)

// DemoAudioPayload describes the audio a real engine would produce.
type DemoAudioPayload struct {
	Text       string `json:"text"`
	Voice      string `json:"voice"`
	Duration   int    `json:"duration"`
	Format     string `json:"format"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
}

// Audio is the "audio" object of a successful response.
type Audio struct {
	URL                  string `json:"url"`
	Type                 string `json:"type"`
	Message              string `json:"message"`
	DownloadInstructions string `json:"downloadInstructions"`
}

// Provider produces the audio part of a response.
type Provider interface {
	Synthesize(ctx context.Context, p Params) (*Audio, error)
	Name() string
}

// DemoProvider returns a data URI carrying a DemoAudioPayload instead of audio bytes.
type DemoProvider struct{}

func (DemoProvider) Name() string { return "demo" }

func (DemoProvider) Synthesize(_ context.Context, p Params) (*Audio, error) {
	payload := NewDemoPayload(p)
	url, err := payload.DataURI()
	if err != nil {
		return nil, err
	}
	return &Audio{
		URL:                  url,
		Type:                 audioTypeDemo,
		Message:              audioMessage,
		DownloadInstructions: downloadInstructions,
	}, nil
}

func NewDemoPayload(p Params) DemoAudioPayload {
	return DemoAudioPayload{
		Text:       prefix(p.Text, audioPreviewChars) + "...",
		Voice:      p.Voice,
		Duration:   ceilDiv(WordCount(p.Text), wordsPerSecond),
		Format:     demoFormat,
		SampleRate: demoSampleRate,
		Channels:   demoChannels,
	}
}

// DataURI encodes the payload as data:application/json;base64,<json>.
func (d DemoAudioPayload) DataURI() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal demo payload: %w", err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURI reverses DataURI.
func DecodeDataURI(uri string) (DemoAudioPayload, error) {
	if len(uri) < len(dataURIPrefix) || uri[:len(dataURIPrefix)] != dataURIPrefix {
		return DemoAudioPayload{}, errors.New("not a base64 json data uri")
	}
	raw, err := base64.StdEncoding.DecodeString(uri[len(dataURIPrefix):])
	if err != nil {
		return DemoAudioPayload{}, fmt.Errorf("decode base64: %w", err)
	}
	var d DemoAudioPayload
	if err := json.Unmarshal(raw, &d); err != nil {
		return DemoAudioPayload{}, fmt.Errorf("unmarshal demo payload: %w", err)
	}
	return d, nil
}
