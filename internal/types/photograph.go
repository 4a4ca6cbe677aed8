package types

import (
  "time"
  "github.com/google/uuid"
)

type Photograph struct {
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  Title             string          `gorm:"size:255;not null;column:title" json:"title"`
  URL               string          `gorm:"size:2048;uniqueIndex;not null;column:url" json:"url"`
  AvgColor          *string         `gorm:"size:255;column:avg_color" json:"avg_color"`
  AltText           *string         `gorm:"size:255;column:alt_text" json:"alt_text"`
  PhotographerID    uuid.UUID       `gorm:"type:uuid;index;not null;column:photographer_id" json:"photographer_id"`
  Photographer      *Photographer   `gorm:"foreignKey:PhotographerID" json:"photographer,omitempty"`
  Source            *PhotoSource    `gorm:"foreignKey:PhotographID" json:"source,omitempty"`
  CreatedAt         time.Time       `gorm:"not null" json:"date_created"`
  UpdatedAt         time.Time       `gorm:"not null" json:"last_updated"`
}

func (Photograph) TableName() string {
  return "photograph"
}
