package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/altproje-dev/altproje/db"
	"github.com/altproje-dev/altproje/internal/models"
	"github.com/altproje-dev/altproje/internal/storage"
	"github.com/altproje-dev/altproje/internal/types"
	"github.com/altproje-dev/altproje/internal/utils"
)

// Blobs is the configured blob store; main (and tests) set it before the
// router starts serving.
var Blobs storage.BlobStore

func UploadSharedFile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	header, err := ctx.FormFile("file")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Dosya seçilmedi"})
		return
	}

	description := ctx.PostForm("description")

	// Both checks run before anything touches the blob store.
	if header.Size > types.MaxFileSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Dosya boyutu çok büyük. Maksimum 10MB olmalıdır."})
		return
	}

	fileType := header.Header.Get("Content-Type")
	if fileType == "image/jpg" {
		fileType = "image/jpeg"
	}

	if !types.ValidFileType(fileType) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Desteklenmeyen dosya türü. Sadece PDF, PNG ve JPG dosyaları yüklenebilir."})
		return
	}

	src, err := header.Open()

	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}
	defer src.Close()

	key := storage.NewObjectKey(header.Filename)

	if err := Blobs.Save(ctx.Request.Context(), key, src); err != nil {
		log.Printf("Failed to store blob %s: %v", key, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Dosya yükleme sırasında bir hata oluştu"})
		return
	}

	file := models.SharedFile{
		FileName:     key,
		OriginalName: header.Filename,
		FileType:     fileType,
		FileSize:     header.Size,
		Description:  description,
		IsActive:     true,
		UploadedByID: userID,
	}

	if err := db.DB.Create(&file).Error; err != nil {
		log.Printf("Failed to create shared file record: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"file": sharedFileResponse(file)})
}

func ListSharedFiles(ctx *gin.Context) {
	var files []models.SharedFile

	if err := db.DB.Preload("UploadedBy").Where("is_active = ?", true).Order("created_at desc").Find(&files).Error; err != nil {
		log.Printf("Failed to list shared files: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		return
	}

	response := make([]types.SharedFileResponse, 0, len(files))

	for _, file := range files {
		response = append(response, sharedFileResponse(file))
	}

	ctx.JSON(http.StatusOK, response)
}

func DownloadSharedFile(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz dosya ID"})
		return
	}

	var file models.SharedFile

	if err := db.DB.Where("id = ? AND is_active = ?", id, true).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Dosya bulunamadı"})
		} else {
			log.Printf("Failed to fetch shared file: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		}
		return
	}

	blob, err := Blobs.Open(ctx.Request.Context(), file.FileName)

	if err != nil {
		log.Printf("Failed to open blob %s: %v", file.FileName, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Dosya indirme sırasında hata oluştu"})
		return
	}
	defer blob.Close()

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", file.OriginalName),
	}

	ctx.DataFromReader(http.StatusOK, file.FileSize, file.FileType, blob, headers)
}

func DeleteSharedFile(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz dosya ID"})
		return
	}

	var file models.SharedFile

	if err := db.DB.First(&file, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Dosya bulunamadı"})
		} else {
			log.Printf("Failed to fetch shared file: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sunucu hatası"})
		}
		return
	}

	// A failed blob removal is logged and tolerated; the reaper sweeps the
	// leftover blob later.
	if err := Blobs.Delete(ctx.Request.Context(), file.FileName); err != nil {
		log.Printf("Failed to delete blob %s: %v", file.FileName, err)
	}

	if err := db.DB.Unscoped().Delete(&file).Error; err != nil {
		log.Printf("Failed to delete shared file record: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Dosya silinirken hata oluştu"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Dosya başarıyla silindi"})
}

func sharedFileResponse(file models.SharedFile) types.SharedFileResponse {
	return types.SharedFileResponse{
		ID:           file.ID,
		OriginalName: file.OriginalName,
		FileType:     file.FileType,
		FileSize:     file.FileSize,
		Description:  file.Description,
		UploadedBy:   file.UploadedBy.Name,
		CreatedAt:    file.CreatedAt,
	}
}
