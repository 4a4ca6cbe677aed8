package types

import (
  "time"
  "github.com/google/uuid"
)

type Photographer struct {
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  UserID            uuid.UUID       `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`
  User              *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
  CreatedAt         time.Time       `gorm:"not null" json:"date_created"`
  UpdatedAt         time.Time       `gorm:"not null" json:"last_updated"`
}

func (Photographer) TableName() string {
  return "photographer"
}
