package extractor

// ExtractedContext is the structured description of a device photo used to
// drive retrieval and synthesis.
type ExtractedContext struct {
	PrimaryCategory     string   `json:"primary_category"`
	SecondaryCategories []string `json:"secondary_categories"`
	DetectedIssues      []string `json:"detected_issues"`
	VisualIndicators    []string `json:"visual_indicators"`
	UrgencyLevel        string   `json:"urgency_level"`
	Keywords            []string `json:"keywords"`
	DeviceType          string   `json:"device_type"`
	ProblemType         string   `json:"problem_type"`
}

// ParseOutcome records whether the context came from the model's JSON or from
// the fallback heuristics.
type ParseOutcome string

const (
	OutcomeParsed   ParseOutcome = "parsed"
	OutcomeFallback ParseOutcome = "fallback"
)

type ParseResult struct {
	Context ExtractedContext
	Outcome ParseOutcome
}
