package synthesis

import (
	"fmt"
	"strings"
	"testing"

	"device-support-be/internal/entity"
	"device-support-be/pkg/extractor"
	"device-support-be/pkg/retrieval"

	"github.com/google/uuid"
)

func matchWithTitle(title string) *retrieval.Match {
	return &retrieval.Match{
		Document: &entity.RagDocument{
			Id:       uuid.New(),
			Title:    title,
			Category: "printer",
			Content:  "Steps to resolve the issue.",
			Tags:     []string{"printer"},
		},
		Score: 0.8,
	}
}

func TestBuildGroundedPromptCapsDocuments(t *testing.T) {
	matches := make([]*retrieval.Match, 0, 8)
	for i := 0; i < 8; i++ {
		matches = append(matches, matchWithTitle(fmt.Sprintf("Doc %d", i)))
	}

	prompt := BuildGroundedPrompt(extractor.ExtractedContext{PrimaryCategory: "printer"}, "", matches)

	for i := 0; i < 5; i++ {
		if !strings.Contains(prompt, fmt.Sprintf("Doc %d", i)) {
			t.Errorf("document %d missing from prompt", i)
		}
	}
	for i := 5; i < 8; i++ {
		if strings.Contains(prompt, fmt.Sprintf("Doc %d", i)) {
			t.Errorf("document %d should have been dropped", i)
		}
	}
}

func TestBuildGroundedPromptWithoutDocuments(t *testing.T) {
	prompt := BuildGroundedPrompt(extractor.ExtractedContext{PrimaryCategory: "general", UrgencyLevel: "medium"}, "screen flickers", nil)

	if !strings.Contains(prompt, "No matching documents") {
		t.Error("prompt should state that no documents matched")
	}
	if !strings.Contains(prompt, "screen flickers") {
		t.Error("user message missing from prompt")
	}
	if !strings.Contains(prompt, "<task_instructions>") {
		t.Error("task instructions missing from prompt")
	}
}

func TestBuildGroundedPromptSerializesContext(t *testing.T) {
	extracted := extractor.ExtractedContext{
		PrimaryCategory:  "router",
		DetectedIssues:   []string{"amber LED blinking"},
		VisualIndicators: []string{"WAN light off"},
		UrgencyLevel:     "high",
		DeviceType:       "cable modem",
		ProblemType:      "connectivity",
	}

	prompt := BuildGroundedPrompt(extracted, "", nil)

	for _, want := range []string{"router", "amber LED blinking", "WAN light off", "high", "cable modem", "connectivity"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestExcerptTruncatesLongContent(t *testing.T) {
	long := strings.Repeat("x", 2000)
	got := excerpt(long)
	if len([]rune(got)) > maxExcerptRunes+3 {
		t.Fatalf("excerpt too long: %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatal("truncated excerpt should end with ellipsis")
	}
}
