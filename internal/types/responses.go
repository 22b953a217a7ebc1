package types

import "time"

type UserResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	SchoolCode string    `json:"schoolCode,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OwnerResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	SchoolCode string `json:"schoolCode,omitempty"`
	Role       string `json:"role"`
}

type SubmissionResponse struct {
	ID             uint           `json:"id"`
	Title          string         `json:"title"`
	MainArea       string         `json:"mainArea"`
	ProjectType    string         `json:"projectType"`
	ProjectSubType string         `json:"projectSubType"`
	Subject        *string        `json:"subject"`
	ThematicArea   *string        `json:"thematicArea"`
	Purpose        string         `json:"purpose"`
	Method         string         `json:"method"`
	ExpectedResult string         `json:"expectedResult"`
	SurveyApplied  bool           `json:"surveyApplied"`
	IsPublic       bool           `json:"isPublic"`
	OwnerID        uint           `json:"ownerId"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	Owner          *OwnerResponse `json:"owner,omitempty"`
}

type TimelineItemResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TargetDate  time.Time `json:"targetDate"`
	Status      string    `json:"status"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"isActive"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SharedFileResponse struct {
	ID           uint      `json:"id"`
	OriginalName string    `json:"originalName"`
	FileType     string    `json:"fileType"`
	FileSize     int64     `json:"fileSize"`
	Description  string    `json:"description,omitempty"`
	UploadedBy   string    `json:"uploadedBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ProjectSubjectResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}
