package models

import (
	"time"

	"gorm.io/datatypes"
)

// SyncState keeps per-source cursor and outcome bookkeeping between runs.
type SyncState struct {
	Scope         string         `gorm:"primaryKey;type:text"`
	Cursor        *string        `gorm:"type:text"`
	LastSuccessAt *time.Time     `gorm:"type:timestamptz"`
	LastAttemptAt *time.Time     `gorm:"type:timestamptz"`
	LastError     *string        `gorm:"type:text"`
	StatsJSON     datatypes.JSON `gorm:"type:jsonb"`
}

func (SyncState) TableName() string {
	return "sync_state"
}
