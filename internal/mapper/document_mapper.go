package mapper

import (
	"encoding/json"
	"time"

	"device-support-be/internal/entity"
	"device-support-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.RagDocument) *entity.RagDocument {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.RagDocument{
		Id:               d.Id,
		Title:            d.Title,
		Content:          d.Content,
		Category:         d.Category,
		Subcategory:      d.Subcategory,
		IssueType:        d.IssueType,
		SeverityLevel:    d.SeverityLevel,
		UrgencyLevel:     d.UrgencyLevel,
		Difficulty:       d.Difficulty,
		EstimatedTime:    d.EstimatedTime,
		ToolsRequired:    jsonToStrings(d.ToolsRequired),
		SafetyWarnings:   jsonToStrings(d.SafetyWarnings),
		VisualIndicators: jsonToStrings(d.VisualIndicators),
		Tags:             jsonToStrings(d.Tags),
		Embedding:        d.Embedding.Slice(),
		IsActive:         d.IsActive,
		Metadata:         jsonToMap(d.Metadata),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.RagDocument) *model.RagDocument {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.RagDocument{
		Id:               d.Id,
		Title:            d.Title,
		Content:          d.Content,
		Category:         d.Category,
		Subcategory:      d.Subcategory,
		IssueType:        d.IssueType,
		SeverityLevel:    d.SeverityLevel,
		UrgencyLevel:     d.UrgencyLevel,
		Difficulty:       d.Difficulty,
		EstimatedTime:    d.EstimatedTime,
		ToolsRequired:    stringsToJSON(d.ToolsRequired),
		SafetyWarnings:   stringsToJSON(d.SafetyWarnings),
		VisualIndicators: stringsToJSON(d.VisualIndicators),
		Tags:             stringsToJSON(d.Tags),
		Embedding:        pgvector.NewVector(d.Embedding),
		IsActive:         d.IsActive,
		Metadata:         mapToJSON(d.Metadata),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.RagDocument) []*entity.RagDocument {
	entities := make([]*entity.RagDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func jsonToStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}

func stringsToJSON(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func jsonToMap(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return map[string]interface{}{}
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}

func mapToJSON(values map[string]interface{}) datatypes.JSON {
	if values == nil {
		values = map[string]interface{}{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}
