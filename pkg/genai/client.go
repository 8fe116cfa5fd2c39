package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client is a thin wrapper over the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// GenerateContent issues one generation call with the default safety
// settings. A safety block or an empty candidate list is NOT an error; it is
// reported through the Result flags so callers can answer with a dedicated
// message.
func (c *Client) GenerateContent(ctx context.Context, contents []*Content) (*Result, error) {
	payload := GenerateRequest{
		Contents:       contents,
		SafetySettings: DefaultSafetySettings(),
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
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

	var geminiRes GenerateResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return nil, err
	}

	if len(geminiRes.Candidates) == 0 {
		return &Result{Empty: true}, nil
	}

	candidate := geminiRes.Candidates[0]
	if candidate.FinishReason == FinishReasonSafety {
		return &Result{FinishReason: FinishReasonSafety, Blocked: true}, nil
	}

	text := ""
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			text += part.Text
		}
	}
	if text == "" {
		return &Result{FinishReason: candidate.FinishReason, Empty: true}, nil
	}

	return &Result{Text: text, FinishReason: candidate.FinishReason}, nil
}

// TextContent builds a single-part content turn.
func TextContent(role, text string) *Content {
	return &Content{
		Role:  role,
		Parts: []*Part{{Text: text}},
	}
}

// ImageContent builds a user turn carrying an instruction plus inline image
// bytes.
func ImageContent(instruction string, imageData []byte, mimeType string) *Content {
	return &Content{
		Role: RoleUser,
		Parts: []*Part{
			{Text: instruction},
			{InlineData: &InlineData{
				MimeType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(imageData),
			}},
		},
	}
}
