package storage

import (
	"context"
	"time"
)

// StorageService defines the interface for blob storage operations (room and
// decor package images).
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetDownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error)
}
