package model

import (
	"time"

	"gorm.io/datatypes"
)

type Asset struct {
	// Callers may supply their own id (the drawing tool pre-assigns them);
	// otherwise one is generated.
	ID          string `gorm:"type:text;primaryKey" json:"id"`
	Name        string `gorm:"type:text;not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	AssetType   string `gorm:"type:text;not null" json:"asset_type"`

	// GeoJSON geometry, opaque to the store.
	Geometry datatypes.JSON `gorm:"type:json" swaggertype:"object" json:"geometry"`
	// Open key/value attributes, typically matching the layer's custom fields.
	Properties datatypes.JSONMap `gorm:"type:json" swaggertype:"object" json:"properties,omitempty"`

	ProjectID string `gorm:"type:text;not null;index" json:"project_id"`
	UserID    string `gorm:"type:text;not null;index" json:"user_id"`
	LayerID   string `gorm:"type:text;index" json:"layer_id,omitempty"`

	Style datatypes.JSONMap `gorm:"type:json" swaggertype:"object" json:"style,omitempty"`

	// Denormalized copy of the photo table rows for this asset, kept in sync
	// by every photo write path.
	Photos []Photo `gorm:"serializer:json" json:"photos"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`
}

func (Asset) TableName() string { return "assets" }
