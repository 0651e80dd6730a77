package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Tool is the canonical catalog document. One row per tool per source;
// dedup is source_id for Product Hunt and (name, source) for scraped sites.
type Tool struct {
	ID          string          `gorm:"primaryKey;type:text" json:"id"`
	SourceID    *string         `gorm:"type:text;uniqueIndex" json:"source_id,omitempty"`
	Name        string          `gorm:"type:text;not null;uniqueIndex:idx_tools_name_source" json:"name"`
	Source      string          `gorm:"type:text;not null;index;uniqueIndex:idx_tools_name_source" json:"source"`
	Tagline     string          `gorm:"type:text" json:"tagline"`
	Description string          `gorm:"type:text" json:"description"`
	Votes       int             `gorm:"not null;default:0" json:"votes"`
	URL         *string         `gorm:"type:text" json:"url,omitempty"`
	Website     *string         `gorm:"type:text" json:"website,omitempty"`
	Category    string          `gorm:"type:text;not null;default:'General';index" json:"category"`
	Rating      decimal.Decimal `gorm:"type:numeric(3,2);not null" json:"rating"`
	Topics      datatypes.JSON  `gorm:"type:jsonb" json:"topics"`
	FeaturedAt  *time.Time      `gorm:"type:timestamptz;index" json:"featured_at,omitempty"`
	CreatedAt   time.Time       `gorm:"type:timestamptz;not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"type:timestamptz;not null" json:"updated_at"`
	RawJSON     datatypes.JSON  `gorm:"type:jsonb" json:"-"`
}

func (Tool) TableName() string {
	return "ai_tools"
}
