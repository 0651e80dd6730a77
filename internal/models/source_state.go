package models

import (
	"time"

	"gorm.io/datatypes"
)

// SourceState stores per-source configuration and health, refreshed after
// every sync run.
type SourceState struct {
	ID           uint64         `gorm:"primaryKey;autoIncrement"`
	Name         string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	SourceType   string         `gorm:"type:varchar(30);not null"`
	Endpoint     string         `gorm:"type:varchar(500)"`
	Enabled      bool           `gorm:"default:true"`
	LastSyncAt   *time.Time     `gorm:"type:timestamptz"`
	LastError    *string        `gorm:"type:text"`
	HealthStatus string         `gorm:"type:varchar(20);default:'unknown'"`
	Config       datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (SourceState) TableName() string {
	return "source_state"
}
