package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PipelineEvent struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionToken string         `gorm:"type:varchar(128);index"`
	Stage        string         `gorm:"type:varchar(50);index"`
	Payload      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
}

func (PipelineEvent) TableName() string {
	return "pipeline_events"
}
