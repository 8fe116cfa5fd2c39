package entity

import (
	"time"

	"github.com/google/uuid"
)

type RagDocument struct {
	Id               uuid.UUID
	Title            string
	Content          string
	Category         string
	Subcategory      string
	IssueType        string
	SeverityLevel    string
	UrgencyLevel     string
	Difficulty       string
	EstimatedTime    string
	ToolsRequired    []string
	SafetyWarnings   []string
	VisualIndicators []string
	Tags             []string
	Embedding        []float32
	IsActive         bool
	Metadata         map[string]interface{}
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
}
