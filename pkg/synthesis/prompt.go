package synthesis

import (
	"fmt"
	"strings"

	"device-support-be/internal/constant"
	"device-support-be/pkg/extractor"
	"device-support-be/pkg/retrieval"
)

const (
	maxReferenceDocuments = 5
	maxExcerptRunes       = 600
)

// BuildGroundedPrompt serializes the extracted context and the top reference
// documents into a single grounding prompt for the answer model.
func BuildGroundedPrompt(extracted extractor.ExtractedContext, userText string, matches []*retrieval.Match) string {
	var b strings.Builder

	b.WriteString("<image_analysis>\n")
	fmt.Fprintf(&b, "primary_category: %s\n", extracted.PrimaryCategory)
	if len(extracted.SecondaryCategories) > 0 {
		fmt.Fprintf(&b, "secondary_categories: %s\n", strings.Join(extracted.SecondaryCategories, ", "))
	}
	if len(extracted.DetectedIssues) > 0 {
		fmt.Fprintf(&b, "detected_issues: %s\n", strings.Join(extracted.DetectedIssues, "; "))
	}
	if len(extracted.VisualIndicators) > 0 {
		fmt.Fprintf(&b, "visual_indicators: %s\n", strings.Join(extracted.VisualIndicators, "; "))
	}
	fmt.Fprintf(&b, "urgency_level: %s\n", extracted.UrgencyLevel)
	if extracted.DeviceType != "" {
		fmt.Fprintf(&b, "device_type: %s\n", extracted.DeviceType)
	}
	fmt.Fprintf(&b, "problem_type: %s\n", extracted.ProblemType)
	b.WriteString("</image_analysis>\n\n")

	if userText != "" {
		fmt.Fprintf(&b, "<user_message>\n%s\n</user_message>\n\n", userText)
	}

	if len(matches) > 0 {
		if len(matches) > maxReferenceDocuments {
			matches = matches[:maxReferenceDocuments]
		}
		b.WriteString("<reference_documents>\n")
		for i, match := range matches {
			doc := match.Document
			fmt.Fprintf(&b, "[%d] %s (category: %s)\n", i+1, doc.Title, doc.Category)
			fmt.Fprintf(&b, "%s\n", excerpt(doc.Content))
			if len(doc.VisualIndicators) > 0 {
				fmt.Fprintf(&b, "indicators: %s\n", strings.Join(doc.VisualIndicators, "; "))
			}
			if len(doc.SafetyWarnings) > 0 {
				fmt.Fprintf(&b, "safety: %s\n", strings.Join(doc.SafetyWarnings, "; "))
			}
			if len(doc.Tags) > 0 {
				fmt.Fprintf(&b, "tags: %s\n", strings.Join(doc.Tags, ", "))
			}
			b.WriteString("\n")
		}
		b.WriteString("</reference_documents>\n\n")
	} else {
		b.WriteString("<reference_documents>\nNo matching documents were found for this issue.\n</reference_documents>\n\n")
	}

	b.WriteString(constant.GroundedAnswerTaskV1)
	return b.String()
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= maxExcerptRunes {
		return content
	}
	return string(runes[:maxExcerptRunes]) + "..."
}
