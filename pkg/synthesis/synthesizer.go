package synthesis

import (
	"context"

	"device-support-be/internal/constant"
	"device-support-be/internal/entity"
	"device-support-be/pkg/extractor"
	"device-support-be/pkg/genai"
	"device-support-be/pkg/retrieval"
)

// Dedicated replies for the two non-answer outcomes. Both are returned inside
// a success envelope; a synthesizer reply is never the empty string.
const (
	SafetyBlockedMessage = "I can't answer that request because the response was blocked by the safety filter. Please rephrase your question or try a different photo."
	NoResponseMessage    = "I couldn't produce a useful answer for this image. Please try again with a clearer photo of the device and the visible problem."
)

// Generator is the slice of the genai client the synthesizer needs.
type Generator interface {
	GenerateContent(ctx context.Context, contents []*genai.Content) (*genai.Result, error)
}

type Synthesizer struct {
	generator Generator
}

func NewSynthesizer(generator Generator) *Synthesizer {
	return &Synthesizer{generator: generator}
}

// Synthesize issues one grounded generation call seeded with the prior
// session turns as chat history. Safety blocks and empty candidates map to
// their dedicated messages; only transport failures surface as errors.
func (s *Synthesizer) Synthesize(ctx context.Context, extracted extractor.ExtractedContext, userText string, matches []*retrieval.Match, history []*entity.SessionTurn) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.RoleUser
		if turn.Role == constant.ChatMessageRoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.TextContent(role, turn.Text))
	}

	prompt := BuildGroundedPrompt(extracted, userText, matches)
	contents = append(contents, genai.TextContent(genai.RoleUser, prompt))

	result, err := s.generator.GenerateContent(ctx, contents)
	if err != nil {
		return "", err
	}
	if result.Blocked {
		return SafetyBlockedMessage, nil
	}
	if result.Empty || result.Text == "" {
		return NoResponseMessage, nil
	}
	return result.Text, nil
}
