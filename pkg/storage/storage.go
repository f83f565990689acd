package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MaxImageSize is the largest logo the upload endpoint accepts (5MB)
const MaxImageSize = 5 * 1024 * 1024

// ErrObjectNotFound is returned by Get for unknown keys
var ErrObjectNotFound = errors.New("object not found")

// Object is a stored asset with its content type
type Object struct {
	Data        []byte
	ContentType string
}

// Storage persists uploaded assets under a storage key and reports the
// display URL the key can be fetched from.
type Storage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Get(ctx context.Context, key string) (*Object, error)
	URLFor(key string) string
}

var validImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/webp":    true,
	"image/gif":     true,
	"image/svg+xml": true,
}

// ValidateImageType validates the image content type
func ValidateImageType(contentType string) error {
	if !validImageTypes[strings.ToLower(contentType)] {
		return fmt.Errorf("invalid file type: %s. Allowed types: jpeg, jpg, png, webp, gif, svg", contentType)
	}
	return nil
}

// ValidateImageSize rejects empty and oversized images
func ValidateImageSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if size > MaxImageSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", size, MaxImageSize)
	}
	return nil
}

// ExtensionFor returns a file extension for a supported image content type
func ExtensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}
