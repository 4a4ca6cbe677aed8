package types

import (
  "github.com/google/uuid"
)

type PhotoSource struct {
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  PhotographID      uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null;column:photograph_id" json:"photograph_id"`
  Original          *string         `gorm:"size:2048;column:original" json:"original"`
  Medium            *string         `gorm:"size:2048;column:medium" json:"medium"`
  Small             *string         `gorm:"size:2048;column:small" json:"small"`
  Tiny              *string         `gorm:"size:2048;column:tiny" json:"tiny"`
  Large             *string         `gorm:"size:2048;column:large" json:"large"`
  Large2x           *string         `gorm:"size:2048;column:large_2x" json:"large_2x"`
  Portrait          *string         `gorm:"size:2048;column:portrait" json:"portrait"`
  Landscape         *string         `gorm:"size:2048;column:landscape" json:"landscape"`
}

func (PhotoSource) TableName() string {
  return "photo_source"
}
