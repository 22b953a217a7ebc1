package models

import "gorm.io/gorm"

// Submission is a single TÜBİTAK 4006 alt-project entry. Exactly one of
// Subject (4006-B) and ThematicArea (4006-A) is set, the other stays NULL.
type Submission struct {
	gorm.Model

	Title          string `gorm:"not null"`
	MainArea       string `gorm:"not null"`
	ProjectType    string `gorm:"not null"`
	ProjectSubType string `gorm:"not null;index"`
	Subject        *string
	ThematicArea   *string
	Purpose        string `gorm:"type:text;not null"`
	Method         string `gorm:"type:text;not null"`
	ExpectedResult string `gorm:"type:text;not null"`
	SurveyApplied  bool   `gorm:"not null"`
	IsPublic       bool   `gorm:"not null;default:false"`
	OwnerID        uint   `gorm:"not null;index"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
