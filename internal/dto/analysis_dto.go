package dto

import "github.com/google/uuid"

type AnalyzeRequest struct {
	ImageBase64  string `json:"image_base64" validate:"required"`
	MimeType     string `json:"mime_type" validate:"required"`
	UserText     string `json:"user_text"`
	Category     string `json:"category"`
	PromptKey    string `json:"prompt_key"`
	SessionToken string `json:"session_token"`
}

type ExtractedContextResponse struct {
	PrimaryCategory     string   `json:"primary_category"`
	SecondaryCategories []string `json:"secondary_categories"`
	DetectedIssues      []string `json:"detected_issues"`
	VisualIndicators    []string `json:"visual_indicators"`
	UrgencyLevel        string   `json:"urgency_level"`
	Keywords            []string `json:"keywords"`
	DeviceType          string   `json:"device_type"`
	ProblemType         string   `json:"problem_type"`
	Source              string   `json:"source"`
}

type RetrievedDocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Score     float64   `json:"score"`
	MatchedBy []string  `json:"matched_by"`
}

type AnalyzeResponse struct {
	Response           string                      `json:"response"`
	ExtractedContext   ExtractedContextResponse    `json:"extracted_context"`
	RetrievedDocuments []RetrievedDocumentResponse `json:"retrieved_documents"`
	MatchCount         int                         `json:"match_count"`
	ProcessingTimeMs   int64                       `json:"processing_time_ms"`
	SessionToken       string                      `json:"session_token"`
}
