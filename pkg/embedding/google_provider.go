package embedding

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	embedEndpointFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:predict"

	// DefaultEmbeddingModel is used when no model is configured.
	DefaultEmbeddingModel = "multimodalembedding@001"
)

type embedInstanceImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded,omitempty"`
	MimeType           string `json:"mimeType,omitempty"`
}

type embedInstance struct {
	Image *embedInstanceImage `json:"image,omitempty"`
	Text  string              `json:"text,omitempty"`
}

type embedRequest struct {
	Instances []embedInstance `json:"instances"`
}

type embedPrediction struct {
	ImageEmbedding []float32 `json:"imageEmbedding,omitempty"`
	TextEmbedding  []float32 `json:"textEmbedding,omitempty"`
}

type embedResponse struct {
	Predictions []embedPrediction `json:"predictions"`
}

// GoogleProvider calls the multimodal embedding endpoint with a bounded
// retry and exponential backoff between attempts.
type GoogleProvider struct {
	apiKey     string
	endpoint   string
	targetDims int
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
}

func NewGoogleProvider(apiKey, model string, targetDims, maxRetries int) *GoogleProvider {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	if targetDims <= 0 {
		targetDims = TargetDimensions
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &GoogleProvider{
		apiKey:     apiKey,
		endpoint:   fmt.Sprintf(embedEndpointFormat, model),
		targetDims: targetDims,
		maxRetries: maxRetries,
		retryDelay: 500 * time.Millisecond,
		httpClient: &http.Client{},
	}
}

// WithEndpoint overrides the API endpoint. Used by tests.
func (p *GoogleProvider) WithEndpoint(endpoint string) *GoogleProvider {
	p.endpoint = endpoint
	return p
}

// WithRetryDelay overrides the base backoff delay. Used by tests.
func (p *GoogleProvider) WithRetryDelay(d time.Duration) *GoogleProvider {
	p.retryDelay = d
	return p
}

func (p *GoogleProvider) EmbedImage(ctx context.Context, data []byte, mimeType string) ([]float32, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	instance := embedInstance{
		Image: &embedInstanceImage{
			BytesBase64Encoded: base64.StdEncoding.EncodeToString(data),
			MimeType:           mimeType,
		},
	}
	return p.embedWithRetry(ctx, instance, true)
}

func (p *GoogleProvider) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text is empty")
	}
	return p.embedWithRetry(ctx, embedInstance{Text: text}, false)
}

// embedWithRetry makes up to maxRetries attempts, doubling the delay after
// each transient failure, then surfaces ErrEmbeddingFailed.
func (p *GoogleProvider) embedWithRetry(ctx context.Context, instance embedInstance, wantImage bool) ([]float32, error) {
	delay := p.retryDelay
	var lastErr error

	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
		}

		vector, err := p.embedOnce(ctx, instance, wantImage)
		if err == nil {
			return Normalize(vector, p.targetDims)
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrEmbeddingFailed, p.maxRetries, lastErr)
}

func (p *GoogleProvider) embedOnce(ctx context.Context, instance embedInstance, wantImage bool) ([]float32, error) {
	payload := embedRequest{Instances: []embedInstance{instance}}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from embedding response, code %d, body %s", res.StatusCode, string(resBody))
	}

	var embRes embedResponse
	if err := json.Unmarshal(resBody, &embRes); err != nil {
		return nil, err
	}
	if len(embRes.Predictions) == 0 {
		return nil, fmt.Errorf("embedding response has no predictions")
	}

	prediction := embRes.Predictions[0]
	if wantImage {
		if len(prediction.ImageEmbedding) == 0 {
			return nil, fmt.Errorf("embedding response has no image embedding")
		}
		return prediction.ImageEmbedding, nil
	}
	if len(prediction.TextEmbedding) == 0 {
		return nil, fmt.Errorf("embedding response has no text embedding")
	}
	return prediction.TextEmbedding, nil
}
