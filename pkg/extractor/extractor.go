package extractor

import (
	"context"

	"device-support-be/internal/constant"
	"device-support-be/pkg/genai"
)

// Generator is the slice of the genai client the extractor needs.
type Generator interface {
	GenerateContent(ctx context.Context, contents []*genai.Content) (*genai.Result, error)
}

type Extractor struct {
	generator Generator
}

func NewExtractor(generator Generator) *Extractor {
	return &Extractor{generator: generator}
}

// Extract sends the image to the model with the strict-JSON instruction and
// parses the reply. The caller's free-text hint rides along as extra signal.
// A model failure or an unparseable reply degrades to the fallback context,
// it never fails the request.
func (e *Extractor) Extract(ctx context.Context, imageData []byte, mimeType, userText string) ParseResult {
	prompt := constant.ContextExtractionPromptV1
	if userText != "" {
		prompt += "\n\nThe user described the problem as: " + userText
	}
	contents := []*genai.Content{
		genai.ImageContent(prompt, imageData, mimeType),
	}

	result, err := e.generator.GenerateContent(ctx, contents)
	if err != nil || result.Blocked || result.Empty {
		return ParseResult{Context: FallbackContext(userText), Outcome: OutcomeFallback}
	}

	return ParseContextResponse(result.Text, userText)
}
