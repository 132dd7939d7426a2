package model

import (
	"time"

	"gorm.io/datatypes"
)

// CustomField describes one attribute surveyors fill in for every asset on
// the layer. Order matters: forms render fields in slice order.
type CustomField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label,omitempty"`
	Type     string   `json:"type"`
	Required bool     `json:"required,omitempty"`
	Options  []string `json:"options,omitempty"`
}

type Layer struct {
	ID          string `gorm:"type:text;primaryKey" json:"id"`
	Name        string `gorm:"type:text;not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	ProjectID   string `gorm:"type:text;not null;index" json:"project_id"`
	UserID      string `gorm:"type:text;not null;index" json:"user_id"`
	LayerType   string `gorm:"type:text" json:"layer_type"`

	// Rendering hints, opaque to the store.
	Style datatypes.JSONMap `gorm:"type:json" swaggertype:"object" json:"style,omitempty"`

	Visible      bool          `gorm:"not null;default:true" json:"visible"`
	CustomFields []CustomField `gorm:"serializer:json" json:"custom_fields"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`

	// Layer <-> Asset
	Assets []Asset `gorm:"foreignKey:LayerID" json:"-"`
}

func (Layer) TableName() string { return "layers" }
