package model

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Category) TableName() string {
	return "categories"
}

type AnalysisPrompt struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Key                 string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name                string    `gorm:"type:varchar(200);not null"`
	Instruction         string    `gorm:"type:text;not null"`
	SimilarityThreshold float64   `gorm:"default:0.5"`
	TopK                int       `gorm:"default:5"`
	IsActive            bool      `gorm:"default:true"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
}

func (AnalysisPrompt) TableName() string {
	return "analysis_prompts"
}
