package domain

import (
	"time"

	"github.com/google/uuid"
)

type Slide struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title        string    `gorm:"size:140"`
	Subtitle     string    `gorm:"type:text"`
	ButtonText   string    `gorm:"size:60"`
	ButtonLink   string    `gorm:"size:255"`
	ImageURL     string    `gorm:"size:255"`
	DisplayOrder int       `gorm:"type:int;default:0;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
