package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/altproje-dev/altproje/db"
	"github.com/altproje-dev/altproje/internal/models"
	"github.com/altproje-dev/altproje/internal/types"
	"github.com/altproje-dev/altproje/internal/utils"
)

type CreateTimelineItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	TargetDate  string `json:"targetDate" binding:"required"`
	Status      string `json:"status" binding:"required"`
	Order       *int   `json:"order" binding:"required"`
}

type UpdateTimelineItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	TargetDate  *string `json:"targetDate"`
	Status      *string `json:"status"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

// ListTimeline returns the active items in display order for any
// authenticated user.
func ListTimeline(ctx *gin.Context) {
	var items []models.TimelineItem

	if err := db.DB.Preload("CreatedBy").Where("is_active = ?", true).Order("\"order\" asc").Find(&items).Error; err != nil {
		log.Printf("Failed to list timeline items: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	response := make([]types.TimelineItemResponse, 0, len(items))

	for _, item := range items {
		response = append(response, timelineItemResponse(item))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateTimelineItem(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateTimelineItemRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Başlık, açıklama, tarih, durum ve sıra gereklidir"})
		return
	}

	targetDate, err := parseTargetDate(req.TargetDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçerli bir tarih formatı gereklidir"})
		return
	}

	if !types.ValidTimelineStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz durum değeri"})
		return
	}

	if *req.Order < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Sıra negatif olamaz"})
		return
	}

	item := models.TimelineItem{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  targetDate,
		Status:      req.Status,
		Order:       *req.Order,
		IsActive:    true,
		CreatedByID: userID,
	}

	if err := db.DB.Create(&item).Error; err != nil {
		log.Printf("Failed to create timeline item: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	if err := db.DB.Preload("CreatedBy").First(&item, item.ID).Error; err != nil {
		log.Printf("Failed to reload timeline item: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	ctx.JSON(http.StatusCreated, timelineItemResponse(item))
}

func UpdateTimelineItem(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz kayıt ID"})
		return
	}

	var req UpdateTimelineItemRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz istek"})
		return
	}

	var item models.TimelineItem

	if err := db.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Zaman çizelgesi öğesi bulunamadı"})
		} else {
			log.Printf("Failed to fetch timeline item: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		}
		return
	}

	updates := map[string]interface{}{}

	if req.Title != nil {
		if *req.Title == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Başlık gereklidir"})
			return
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		if *req.Description == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Açıklama gereklidir"})
			return
		}
		updates["description"] = *req.Description
	}
	if req.TargetDate != nil {
		targetDate, err := parseTargetDate(*req.TargetDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçerli bir tarih formatı gereklidir"})
			return
		}
		updates["target_date"] = targetDate
	}
	if req.Status != nil {
		if !types.ValidTimelineStatus(*req.Status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz durum değeri"})
			return
		}
		updates["status"] = *req.Status
	}
	if req.Order != nil {
		if *req.Order < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Sıra negatif olamaz"})
			return
		}
		updates["order"] = *req.Order
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Güncellenecek alan yok"})
		return
	}

	if err := db.DB.Model(&item).Updates(updates).Error; err != nil {
		log.Printf("Failed to update timeline item: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	if err := db.DB.Preload("CreatedBy").First(&item, item.ID).Error; err != nil {
		log.Printf("Failed to reload timeline item: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	ctx.JSON(http.StatusOK, timelineItemResponse(item))
}

func DeleteTimelineItem(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz kayıt ID"})
		return
	}

	var item models.TimelineItem

	if err := db.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Zaman çizelgesi öğesi bulunamadı"})
		} else {
			log.Printf("Failed to fetch timeline item: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		}
		return
	}

	if err := db.DB.Delete(&item).Error; err != nil {
		log.Printf("Failed to delete timeline item: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Zaman çizelgesi öğesi silindi"})
}

func parseTargetDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func timelineItemResponse(item models.TimelineItem) types.TimelineItemResponse {
	return types.TimelineItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		TargetDate:  item.TargetDate,
		Status:      item.Status,
		Order:       item.Order,
		IsActive:    item.IsActive,
		CreatedBy:   item.CreatedBy.Name,
		CreatedAt:   item.CreatedAt,
	}
}
