package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/altproje-dev/altproje/db"
	"github.com/altproje-dev/altproje/internal/models"
	"github.com/altproje-dev/altproje/internal/types"
	"github.com/altproje-dev/altproje/internal/utils"
)

type UpdateUserRequest struct {
	Name string `json:"name" binding:"required,min=2"`
	Role string `json:"role" binding:"required"`
}

type adminUserRow struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	SchoolCode      string    `json:"schoolCode"`
	CreatedAt       time.Time `json:"createdAt"`
	SubmissionCount int64     `json:"submissionCount"`
}

func AdminListUsers(ctx *gin.Context) {
	var rows []adminUserRow

	err := db.DB.Table("users").
		Select("users.id, users.name, users.email, users.role, users.school_code, users.created_at, count(submissions.id) as submission_count").
		Joins("LEFT JOIN submissions ON submissions.owner_id = users.id AND submissions.deleted_at IS NULL").
		Where("users.deleted_at IS NULL").
		Group("users.id").
		Order("users.created_at desc").
		Scan(&rows).Error

	if err != nil {
		log.Printf("Failed to list users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

func AdminUpdateUser(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz kullanıcı ID"})
		return
	}

	var req UpdateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Ad en az 2 karakter olmalıdır"})
		return
	}

	if !types.ValidRole(req.Role) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz rol"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Kullanıcı bulunamadı"})
		} else {
			log.Printf("Failed to fetch user: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		}
		return
	}

	updates := map[string]interface{}{
		"name": strings.TrimSpace(req.Name),
		"role": req.Role,
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Failed to update user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

func AdminDeleteUser(ctx *gin.Context) {
	caller, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz kullanıcı ID"})
		return
	}

	if id == caller.ID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Kendi hesabınızı silemezsiniz"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Kullanıcı bulunamadı"})
		} else {
			log.Printf("Failed to fetch user: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		}
		return
	}

	// Deleting an account takes its submissions with it.
	if err := db.DB.Where("owner_id = ?", user.ID).Delete(&models.Submission{}).Error; err != nil {
		log.Printf("Failed to delete user submissions: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	if err := db.DB.Delete(&user).Error; err != nil {
		log.Printf("Failed to delete user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Kullanıcı başarıyla silindi"})
}
