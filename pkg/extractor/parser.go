package extractor

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"device-support-be/internal/constant"
)

// ParseContextResponse pulls the first balanced JSON object out of a model
// response and unmarshal it into ExtractedContext. Model output often wraps
// the object in prose or markdown fences, so the raw body is never trusted.
// When no usable object is found the fallback context is returned instead.
func ParseContextResponse(raw, userText string) ParseResult {
	candidate := FirstJsonObject(raw)
	if candidate != "" {
		var parsed ExtractedContext
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			return ParseResult{Context: applyDefaults(parsed), Outcome: OutcomeParsed}
		}
	}
	return ParseResult{Context: FallbackContext(userText), Outcome: OutcomeFallback}
}

// FallbackContext builds a degraded but usable context from the user's text
// alone. Calling it twice with the same input yields the same result.
func FallbackContext(userText string) ExtractedContext {
	keywords := []string{}
	for _, token := range strings.Fields(strings.ToLower(userText)) {
		token = strings.Trim(token, ".,;:!?\"'()")
		if utf8.RuneCountInString(token) > 2 {
			keywords = append(keywords, token)
		}
	}
	return ExtractedContext{
		PrimaryCategory:     constant.DefaultCategory,
		SecondaryCategories: []string{},
		DetectedIssues:      []string{},
		VisualIndicators:    []string{},
		UrgencyLevel:        constant.DefaultUrgency,
		Keywords:            keywords,
		ProblemType:         "unknown",
	}
}

// FirstJsonObject returns the first brace-balanced substring, skipping
// braces inside JSON string literals. Empty when no balanced object exists.
func FirstJsonObject(raw string) string {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1]
				}
			}
		}
	}
	return ""
}

func applyDefaults(parsed ExtractedContext) ExtractedContext {
	if parsed.PrimaryCategory == "" {
		parsed.PrimaryCategory = constant.DefaultCategory
	}
	if !validUrgency(parsed.UrgencyLevel) {
		parsed.UrgencyLevel = constant.DefaultUrgency
	}
	if parsed.SecondaryCategories == nil {
		parsed.SecondaryCategories = []string{}
	}
	if parsed.DetectedIssues == nil {
		parsed.DetectedIssues = []string{}
	}
	if parsed.VisualIndicators == nil {
		parsed.VisualIndicators = []string{}
	}
	if parsed.Keywords == nil {
		parsed.Keywords = []string{}
	}
	if parsed.ProblemType == "" {
		parsed.ProblemType = "unknown"
	}
	return parsed
}

func validUrgency(urgency string) bool {
	switch urgency {
	case constant.UrgencyLow, constant.UrgencyMedium, constant.UrgencyHigh, constant.UrgencyCritical:
		return true
	}
	return false
}
