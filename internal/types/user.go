package types

import (
  "time"
  "github.com/google/uuid"
)

type User struct {
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  Username          string          `gorm:"size:255;uniqueIndex;not null;column:username" json:"username"`
  Email             string          `gorm:"size:255;column:email" json:"email"`
  Password          string          `gorm:"size:255;column:password" json:"-"`
  FirstName         string          `gorm:"size:255;column:first_name" json:"first_name"`
  LastName          string          `gorm:"size:255;column:last_name" json:"last_name"`
  Active            bool            `gorm:"not null;default:true;column:active" json:"active"`
  CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
