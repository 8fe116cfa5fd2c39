package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultSttEndpoint = "https://speech.googleapis.com/v1/speech:recognize"

type sttConfig struct {
	Encoding        string `json:"encoding,omitempty"`
	SampleRateHertz int    `json:"sampleRateHertz,omitempty"`
	LanguageCode    string `json:"languageCode"`
}

type sttAudio struct {
	Content string `json:"content"`
}

type sttRequest struct {
	Config sttConfig `json:"config"`
	Audio  sttAudio  `json:"audio"`
}

type sttAlternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

type sttResult struct {
	Alternatives []sttAlternative `json:"alternatives"`
}

type sttResponse struct {
	Results []sttResult `json:"results"`
}

// Transcriber converts spoken audio into text.
type Transcriber struct {
	apiKey       string
	endpoint     string
	languageCode string
	httpClient   *http.Client
}

func NewTranscriber(apiKey, languageCode string) *Transcriber {
	if languageCode == "" {
		languageCode = "en-US"
	}
	return &Transcriber{
		apiKey:       apiKey,
		endpoint:     defaultSttEndpoint,
		languageCode: languageCode,
		httpClient:   &http.Client{},
	}
}

// WithEndpoint overrides the API endpoint. Used by tests.
func (t *Transcriber) WithEndpoint(endpoint string) *Transcriber {
	t.endpoint = endpoint
	return t
}

// Transcribe returns the concatenated transcript for the given audio bytes.
// An empty result set means nothing recognizable was said; that is returned
// as an empty string, not an error.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	payload := sttRequest{
		Config: sttConfig{LanguageCode: t.languageCode},
		Audio:  sttAudio{Content: base64.StdEncoding.EncodeToString(audio)},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := t.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var sttRes sttResponse
	if err := json.Unmarshal(resBody, &sttRes); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(sttRes.Results))
	for _, result := range sttRes.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, result.Alternatives[0].Transcript)
		}
	}
	return strings.Join(parts, " "), nil
}
