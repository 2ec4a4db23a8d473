package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FitnessClass is a class offered by the gym and the trainers who run it.
type FitnessClass struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string                      `json:"name" gorm:"size:255;not null;uniqueIndex:idx_classes_name"`
	Description string                      `json:"description" gorm:"type:text"`
	Image       string                      `json:"image,omitempty" gorm:"size:1024"`
	Trainers    datatypes.JSONSlice[string] `json:"trainers"`
	CreatedAt   time.Time                   `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *FitnessClass) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
