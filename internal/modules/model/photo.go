package model

import "time"

type Photo struct {
	ID      string `gorm:"type:text;primaryKey" json:"id"`
	AssetID string `gorm:"type:text;not null;index" json:"asset_id"`
	// Image payload as a base64 string (optionally a full data URL).
	Data        string `gorm:"type:text;not null" json:"data"`
	Filename    string `gorm:"type:text;not null;index" json:"filename"`
	ContentType string `gorm:"type:text" json:"content_type,omitempty"`

	CapturedAt time.Time `gorm:"not null;index" json:"captured_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
}

func (Photo) TableName() string { return "photos" }
