package models

import "gorm.io/gorm"

type SharedFile struct {
	gorm.Model

	FileName     string `gorm:"not null;uniqueIndex"` // generated blob object name
	OriginalName string `gorm:"not null"`
	FileType     string `gorm:"not null"`
	FileSize     int64  `gorm:"not null"`
	Description  string
	IsActive     bool `gorm:"not null;default:true"`
	UploadedByID uint `gorm:"not null;index"`

	// Relationships
	UploadedBy User `gorm:"foreignKey:UploadedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
