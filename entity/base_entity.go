package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// BaseEntity holds the uuid primary key and timestamps shared by every
// table. Deletes are hard deletes so the store's cascade rules apply.
type BaseEntity struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(255)"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (base *BaseEntity) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}
