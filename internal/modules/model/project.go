package model

import "time"

type Project struct {
	ID          string `gorm:"type:text;primaryKey" json:"id"`
	Name        string `gorm:"type:text;not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	UserID      string `gorm:"type:text;not null;index" json:"user_id"`

	// Soft-delete flag. Inactive projects keep their layers and assets so a
	// restore brings everything back.
	IsActive bool `gorm:"not null;default:true;index" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`

	// Project <-> Layer
	Layers []Layer `gorm:"foreignKey:ProjectID" json:"-"`

	// Project <-> Asset
	Assets []Asset `gorm:"foreignKey:ProjectID" json:"-"`
}

func (Project) TableName() string { return "projects" }
