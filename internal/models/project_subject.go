package models

import "gorm.io/gorm"

type ProjectSubject struct {
	gorm.Model

	Name     string `gorm:"uniqueIndex;not null"`
	IsActive bool   `gorm:"not null;default:true"`
}
