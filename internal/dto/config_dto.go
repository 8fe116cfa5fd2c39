package dto

import "github.com/google/uuid"

type CategoryResponse struct {
	Id          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type AnalysisPromptResponse struct {
	Id                  uuid.UUID `json:"id"`
	Key                 string    `json:"key"`
	Name                string    `json:"name"`
	SimilarityThreshold float64   `json:"similarity_threshold"`
	TopK                int       `json:"top_k"`
}

type SystemStatsResponse struct {
	TotalDocuments      int64            `json:"total_documents"`
	ActiveDocuments     int64            `json:"active_documents"`
	EmbeddedDocuments   int64            `json:"embedded_documents"`
	DocumentsByCategory map[string]int64 `json:"documents_by_category"`
	TotalSessions       int64            `json:"total_sessions"`
	BufferedStageEvents int              `json:"buffered_stage_events"`
}
