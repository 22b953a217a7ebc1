package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/altproje-dev/altproje/db"
	"github.com/altproje-dev/altproje/internal/models"
	"github.com/altproje-dev/altproje/internal/services"
	"github.com/altproje-dev/altproje/internal/submissions"
	"github.com/altproje-dev/altproje/internal/types"
	"github.com/altproje-dev/altproje/internal/utils"
)

func CreateSubmission(ctx *gin.Context) {
	caller, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	// Reviewer roles do not own submissions.
	if caller.Role == types.RoleAdmin || caller.Role == types.RoleTubitakOkulYetkilisi {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Bu rol ile alt proje girişi yapılamaz"})
		return
	}

	var payload submissions.Payload

	if err := ctx.BindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz istek"})
		return
	}

	normalized, err := submissions.ValidateForCreate(caller.ID, payload)

	if err != nil {
		rejectSubmission(ctx, err)
		return
	}

	submission := submissionFromNormalized(normalized)

	if err := db.DB.Create(&submission).Error; err != nil {
		log.Printf("Failed to create submission: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	go services.NotifySubmissionCreated(submission, caller.Name, caller.SchoolCode)

	ctx.JSON(http.StatusCreated, submissionResponse(submission, false))
}

func ListMySubmissions(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var subs []models.Submission

	if err := db.DB.Where("owner_id = ?", userID).Order("created_at desc").Find(&subs).Error; err != nil {
		log.Printf("Failed to list submissions: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	response := make([]types.SubmissionResponse, 0, len(subs))

	for _, sub := range subs {
		response = append(response, submissionResponse(sub, false))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetSubmission(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz kayıt ID"})
		return
	}

	var sub models.Submission

	// Owner-only read: someone else's record looks exactly like a missing one.
	if err := db.DB.Where("id = ? AND owner_id = ?", id, userID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Kayıt bulunamadı"})
		} else {
			log.Printf("Failed to fetch submission: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		}
		return
	}

	ctx.JSON(http.StatusOK, submissionResponse(sub, false))
}

func UpdateSubmission(ctx *gin.Context) {
	caller, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz kayıt ID"})
		return
	}

	var payload submissions.Payload

	if err := ctx.BindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz istek"})
		return
	}

	var existing models.Submission

	if err := db.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Kayıt bulunamadı"})
		} else {
			log.Printf("Failed to fetch submission: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		}
		return
	}

	normalized, err := submissions.ValidateForUpdate(existing.OwnerID, caller.ID, payload)

	if err != nil {
		rejectSubmission(ctx, err)
		return
	}

	existing.Title = normalized.Title
	existing.MainArea = normalized.MainArea
	existing.ProjectType = normalized.ProjectType
	existing.ProjectSubType = normalized.ProjectSubType
	existing.Subject = normalized.Subject
	existing.ThematicArea = normalized.ThematicArea
	existing.Purpose = normalized.Purpose
	existing.Method = normalized.Method
	existing.ExpectedResult = normalized.ExpectedResult
	existing.SurveyApplied = normalized.SurveyApplied

	if err := db.DB.Save(&existing).Error; err != nil {
		log.Printf("Failed to update submission: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	ctx.JSON(http.StatusOK, submissionResponse(existing, false))
}

func DeleteSubmission(ctx *gin.Context) {
	caller, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz kayıt ID"})
		return
	}

	var existing models.Submission

	if err := db.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Kayıt bulunamadı"})
		} else {
			log.Printf("Failed to fetch submission: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		}
		return
	}

	if existing.OwnerID != caller.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Bu kayıt üzerinde işlem yapma yetkiniz yok"})
		return
	}

	if err := db.DB.Delete(&existing).Error; err != nil {
		log.Printf("Failed to delete submission: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Kayıt başarıyla silindi"})
}

// AdminListSubmissions serves the review board: ADMIN sees everything,
// TUBITAK_OKUL_YETKILISI only their own school's IDARECI/OGRETMEN/OGRENCI
// entries.
func AdminListSubmissions(ctx *gin.Context) {
	caller, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Preload("Owner").Order("submissions.created_at desc")

	if caller.Role == types.RoleTubitakOkulYetkilisi {
		if caller.SchoolCode == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Okul kodu bulunamadı"})
			return
		}

		query = query.
			Joins("JOIN users ON users.id = submissions.owner_id").
			Where("users.school_code = ? AND users.role IN ?", caller.SchoolCode,
				[]string{types.RoleIdareci, types.RoleOgretmen, types.RoleOgrenci})
	}

	var subs []models.Submission

	if err := query.Find(&subs).Error; err != nil {
		log.Printf("Failed to list submissions for review: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	// The query already scopes the result set; the policy filter runs again
	// on top so the listing rules live in one reviewable place.
	subs = submissions.FilterVisible(submissions.Caller{
		ID:         caller.ID,
		Role:       caller.Role,
		SchoolCode: caller.SchoolCode,
	}, subs)

	response := make([]types.SubmissionResponse, 0, len(subs))

	for _, sub := range subs {
		response = append(response, submissionResponse(sub, true))
	}

	ctx.JSON(http.StatusOK, response)
}

func rejectSubmission(ctx *gin.Context, err error) {
	var verr *submissions.ValidationError
	var aerr *submissions.AuthorizationError

	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   verr.Error(),
			"details": verr.Fields,
		})
	case errors.As(err, &aerr):
		ctx.JSON(http.StatusForbidden, gin.H{"error": aerr.Error()})
	default:
		log.Printf("Unexpected validation failure: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
	}
}

func submissionFromNormalized(n *submissions.NormalizedSubmission) models.Submission {
	return models.Submission{
		Title:          n.Title,
		MainArea:       n.MainArea,
		ProjectType:    n.ProjectType,
		ProjectSubType: n.ProjectSubType,
		Subject:        n.Subject,
		ThematicArea:   n.ThematicArea,
		Purpose:        n.Purpose,
		Method:         n.Method,
		ExpectedResult: n.ExpectedResult,
		SurveyApplied:  n.SurveyApplied,
		IsPublic:       n.IsPublic,
		OwnerID:        n.OwnerID,
	}
}

func submissionResponse(sub models.Submission, withOwner bool) types.SubmissionResponse {
	resp := types.SubmissionResponse{
		ID:             sub.ID,
		Title:          sub.Title,
		MainArea:       sub.MainArea,
		ProjectType:    sub.ProjectType,
		ProjectSubType: sub.ProjectSubType,
		Subject:        sub.Subject,
		ThematicArea:   sub.ThematicArea,
		Purpose:        sub.Purpose,
		Method:         sub.Method,
		ExpectedResult: sub.ExpectedResult,
		SurveyApplied:  sub.SurveyApplied,
		IsPublic:       sub.IsPublic,
		OwnerID:        sub.OwnerID,
		CreatedAt:      sub.CreatedAt,
		UpdatedAt:      sub.UpdatedAt,
	}

	if withOwner {
		resp.Owner = &types.OwnerResponse{
			Name:       sub.Owner.Name,
			Email:      sub.Owner.Email,
			SchoolCode: sub.Owner.SchoolCode,
			Role:       sub.Owner.Role,
		}
	}

	return resp
}
