// Package speech wraps the Google text-to-speech and speech-to-text REST
// endpoints as black-box capability providers.
package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultTtsEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

type ttsInput struct {
	Text string `json:"text"`
}

type ttsVoice struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name,omitempty"`
}

type ttsAudioConfig struct {
	AudioEncoding string  `json:"audioEncoding"`
	SpeakingRate  float64 `json:"speakingRate,omitempty"`
}

type ttsRequest struct {
	Input       ttsInput       `json:"input"`
	Voice       ttsVoice       `json:"voice"`
	AudioConfig ttsAudioConfig `json:"audioConfig"`
}

type ttsResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesizer converts text into spoken audio.
type Synthesizer struct {
	apiKey       string
	endpoint     string
	languageCode string
	httpClient   *http.Client
}

func NewSynthesizer(apiKey, languageCode string) *Synthesizer {
	if languageCode == "" {
		languageCode = "en-US"
	}
	return &Synthesizer{
		apiKey:       apiKey,
		endpoint:     defaultTtsEndpoint,
		languageCode: languageCode,
		httpClient:   &http.Client{},
	}
}

// WithEndpoint overrides the API endpoint. Used by tests.
func (s *Synthesizer) WithEndpoint(endpoint string) *Synthesizer {
	s.endpoint = endpoint
	return s
}

// Synthesize returns MP3 audio bytes for the given text.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload := ttsRequest{
		Input: ttsInput{Text: text},
		Voice: ttsVoice{LanguageCode: s.languageCode},
		AudioConfig: ttsAudioConfig{
			AudioEncoding: "MP3",
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-goog-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var ttsRes ttsResponse
	if err := json.Unmarshal(resBody, &ttsRes); err != nil {
		return nil, err
	}
	if ttsRes.AudioContent == "" {
		return nil, fmt.Errorf("synthesis response has no audio content")
	}

	return base64.StdEncoding.DecodeString(ttsRes.AudioContent)
}
