package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RagDocument struct {
	Id               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title            string          `gorm:"type:text;not null"`
	Content          string          `gorm:"type:text;not null"`
	Category         string          `gorm:"type:varchar(100);index;default:'general'"`
	Subcategory      string          `gorm:"type:varchar(100)"`
	IssueType        string          `gorm:"type:varchar(50)"`
	SeverityLevel    string          `gorm:"type:varchar(20);default:'medium'"`
	UrgencyLevel     string          `gorm:"type:varchar(20);default:'medium'"`
	Difficulty       string          `gorm:"type:varchar(20)"`
	EstimatedTime    string          `gorm:"type:varchar(50)"`
	ToolsRequired    datatypes.JSON  `gorm:"type:jsonb"`
	SafetyWarnings   datatypes.JSON  `gorm:"type:jsonb"`
	VisualIndicators datatypes.JSON  `gorm:"type:jsonb"`
	Tags             datatypes.JSON  `gorm:"type:jsonb"`
	Embedding        pgvector.Vector `gorm:"type:vector(1408)"` // multimodalembedding@001 width
	IsActive         bool            `gorm:"default:true;index"`
	Metadata         datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt  `gorm:"index"`
}

func (RagDocument) TableName() string {
	return "rag_documents"
}
