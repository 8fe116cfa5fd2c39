package genai

// Wire types for the generativelanguage.googleapis.com REST API.

type InlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64-encoded bytes
}

type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

type Content struct {
	Parts []*Part `json:"parts"`
	Role  string  `json:"role,omitempty"`
}

type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type GenerateRequest struct {
	Contents       []*Content       `json:"contents"`
	SafetySettings []*SafetySetting `json:"safetySettings,omitempty"`
}

type Candidate struct {
	Content      *Content `json:"content"`
	FinishReason string   `json:"finishReason"`
}

type GenerateResponse struct {
	Candidates []*Candidate `json:"candidates"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"

	FinishReasonStop   = "STOP"
	FinishReasonSafety = "SAFETY"
)

// DefaultSafetySettings blocks medium-and-above content in the four policy
// categories for every generation request.
func DefaultSafetySettings() []*SafetySetting {
	categories := []string{
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
	}
	settings := make([]*SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &SafetySetting{
			Category:  c,
			Threshold: "BLOCK_MEDIUM_AND_ABOVE",
		})
	}
	return settings
}

// Result is the normalized outcome of one generation call. Blocked and
// Empty are distinguished so callers can surface dedicated messages instead
// of an empty string.
type Result struct {
	Text         string
	FinishReason string
	Blocked      bool
	Empty        bool
}
