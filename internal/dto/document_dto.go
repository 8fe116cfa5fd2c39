package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterDocumentRequest struct {
	Title            string                 `json:"title" validate:"required"`
	Content          string                 `json:"content" validate:"required"`
	Category         string                 `json:"category"`
	Subcategory      string                 `json:"subcategory"`
	IssueType        string                 `json:"issue_type"`
	SeverityLevel    string                 `json:"severity_level"`
	UrgencyLevel     string                 `json:"urgency_level"`
	Difficulty       string                 `json:"difficulty"`
	EstimatedTime    string                 `json:"estimated_time"`
	ToolsRequired    []string               `json:"tools_required"`
	SafetyWarnings   []string               `json:"safety_warnings"`
	VisualIndicators []string               `json:"visual_indicators"`
	Tags             []string               `json:"tags"`
	Metadata         map[string]interface{} `json:"metadata"`
	// Optional reference image, used for AI-assisted enrichment.
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

type RegisterDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateDocumentRequest struct {
	Id               uuid.UUID
	Title            string                 `json:"title" validate:"required"`
	Content          string                 `json:"content" validate:"required"`
	Category         string                 `json:"category"`
	Subcategory      string                 `json:"subcategory"`
	IssueType        string                 `json:"issue_type"`
	SeverityLevel    string                 `json:"severity_level"`
	UrgencyLevel     string                 `json:"urgency_level"`
	Difficulty       string                 `json:"difficulty"`
	EstimatedTime    string                 `json:"estimated_time"`
	ToolsRequired    []string               `json:"tools_required"`
	SafetyWarnings   []string               `json:"safety_warnings"`
	VisualIndicators []string               `json:"visual_indicators"`
	Tags             []string               `json:"tags"`
	Metadata         map[string]interface{} `json:"metadata"`
	IsActive         *bool                  `json:"is_active"`
}

type UpdateDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowDocumentResponse struct {
	Id               uuid.UUID              `json:"id"`
	Title            string                 `json:"title"`
	Content          string                 `json:"content"`
	Category         string                 `json:"category"`
	Subcategory      string                 `json:"subcategory"`
	IssueType        string                 `json:"issue_type"`
	SeverityLevel    string                 `json:"severity_level"`
	UrgencyLevel     string                 `json:"urgency_level"`
	Difficulty       string                 `json:"difficulty"`
	EstimatedTime    string                 `json:"estimated_time"`
	ToolsRequired    []string               `json:"tools_required"`
	SafetyWarnings   []string               `json:"safety_warnings"`
	VisualIndicators []string               `json:"visual_indicators"`
	Tags             []string               `json:"tags"`
	HasEmbedding     bool                   `json:"has_embedding"`
	IsActive         bool                   `json:"is_active"`
	Metadata         map[string]interface{} `json:"metadata"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        *time.Time             `json:"updated_at"`
}

type ListDocumentsRequest struct {
	Category string `query:"category"`
	Tag      string `query:"tag"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}
