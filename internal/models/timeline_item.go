package models

import (
	"time"

	"gorm.io/gorm"
)

type TimelineItem struct {
	gorm.Model

	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	TargetDate  time.Time `gorm:"not null"`
	Status      string    `gorm:"not null;default:pending"`
	Order       int       `gorm:"not null;default:0"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedByID uint      `gorm:"not null;index"`

	// Relationships
	CreatedBy User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
