package storage

import (
	"context"
	"fmt"

	"github.com/kycflow/kycflow-backend/internal/verification/detect"
)

// ObjectStore abstracts the object store holding uploaded identity
// documents and extracted profile photos.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// DocumentKey returns the object key for a user's uploaded identity
// document.
func DocumentKey(userID string, kind detect.Kind) string {
	ext := "bin"
	switch kind {
	case detect.KindJPEG:
		ext = "jpg"
	case detect.KindPNG:
		ext = "png"
	case detect.KindPDF:
		ext = "pdf"
	}
	return fmt.Sprintf("documents/%s.%s", userID, ext)
}

// ProfilePhotoKey returns the object key for a user's extracted
// profile photo. Photos are always stored as JPEG.
func ProfilePhotoKey(userID string) string {
	return fmt.Sprintf("profile_photos/%s.jpg", userID)
}

// ContentType returns the MIME type for a classified document kind.
func ContentType(kind detect.Kind) string {
	switch kind {
	case detect.KindJPEG:
		return "image/jpeg"
	case detect.KindPNG:
		return "image/png"
	case detect.KindPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
