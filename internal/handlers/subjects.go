package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/altproje-dev/altproje/db"
	"github.com/altproje-dev/altproje/internal/models"
	"github.com/altproje-dev/altproje/internal/types"
	"github.com/altproje-dev/altproje/internal/utils"
)

type CreateProjectSubjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateProjectSubjectRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

// ListProjectSubjects is public: registration and the entry form need the
// subject list before login.
func ListProjectSubjects(ctx *gin.Context) {
	var subjects []models.ProjectSubject

	if err := db.DB.Where("is_active = ?", true).Order("name asc").Find(&subjects).Error; err != nil {
		log.Printf("Failed to list project subjects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	response := make([]types.ProjectSubjectResponse, 0, len(subjects))

	for _, subject := range subjects {
		response = append(response, projectSubjectResponse(subject))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateProjectSubject(ctx *gin.Context) {
	var req CreateProjectSubjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçerli bir konu adı giriniz"})
		return
	}

	name := strings.TrimSpace(req.Name)

	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçerli bir konu adı giriniz"})
		return
	}

	var existing models.ProjectSubject

	err := db.DB.Where("name = ?", name).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Bu konu adı zaten mevcut"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing subject: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	subject := models.ProjectSubject{Name: name, IsActive: true}

	if err := db.DB.Create(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Bu konu adı zaten mevcut"})
			return
		}
		log.Printf("Failed to create project subject: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	ctx.JSON(http.StatusCreated, projectSubjectResponse(subject))
}

func UpdateProjectSubject(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz kayıt ID"})
		return
	}

	var req UpdateProjectSubjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz istek"})
		return
	}

	var subject models.ProjectSubject

	if err := db.DB.First(&subject, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Konu bulunamadı"})
		} else {
			log.Printf("Failed to fetch project subject: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		}
		return
	}

	updates := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçerli bir konu adı giriniz"})
			return
		}
		updates["name"] = name
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Güncellenecek alan yok"})
		return
	}

	if err := db.DB.Model(&subject).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Bu konu adı zaten mevcut"})
			return
		}
		log.Printf("Failed to update project subject: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	ctx.JSON(http.StatusOK, projectSubjectResponse(subject))
}

func DeleteProjectSubject(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz kayıt ID"})
		return
	}

	var subject models.ProjectSubject

	if err := db.DB.First(&subject, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Konu bulunamadı"})
		} else {
			log.Printf("Failed to fetch project subject: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		}
		return
	}

	if err := db.DB.Delete(&subject).Error; err != nil {
		log.Printf("Failed to delete project subject: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Konu başarıyla silindi"})
}

func projectSubjectResponse(subject models.ProjectSubject) types.ProjectSubjectResponse {
	return types.ProjectSubjectResponse{
		ID:       subject.ID,
		Name:     subject.Name,
		IsActive: subject.IsActive,
	}
}
