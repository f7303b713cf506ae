package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"innkeep/services/storage"

	"github.com/gin-gonic/gin"
)

// StorageHandler handles room and decor package image storage endpoints.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// allowedBuckets defines permitted buckets for image uploads.
var allowedBuckets = map[string]bool{
	"rooms": true,
	"decor": true,
}

// UploadImage handles image uploads for rooms and decor packages.
func (h *StorageHandler) UploadImage(c *gin.Context) {
	bucket := c.Param("bucket")
	if !allowedBuckets[bucket] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid bucket; allowed values are 'rooms' and 'decor'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "file not provided: " + err.Error()})
		return
	}

	tempDir := os.TempDir()
	tempFilePath := filepath.Join(tempDir, fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to save file: " + err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadFile(c, tempFilePath, "images/"+bucket)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to upload file: " + err.Error()})
		return
	}

	downloadURL, err := h.StorageSvc.GetDownloadURL(c, publicID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to construct download URL: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"imageId":     publicID,
		"downloadURL": downloadURL,
	})
}

// GetImageURL generates a download URL for a stored image.
func (h *StorageHandler) GetImageURL(c *gin.Context) {
	bucket := c.Param("bucket")
	filename := c.Param("filename")
	if !allowedBuckets[bucket] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid bucket; allowed values are 'rooms' and 'decor'"})
		return
	}

	expiry := 15 * time.Minute
	if expStr := c.Query("expires"); expStr != "" {
		if exp, err := time.ParseDuration(expStr); err == nil {
			expiry = exp
		}
	}

	url, err := h.StorageSvc.GetDownloadURL(c, "images/"+bucket+"/"+filename, expiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to generate download URL: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "downloadURL": url})
}

// DeleteImage removes a stored image.
func (h *StorageHandler) DeleteImage(c *gin.Context) {
	if err := h.StorageSvc.DeleteFile(c, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete file: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "image deleted"})
}
