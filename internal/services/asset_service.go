package services

import (
	"context"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/pkg/errors"
	"github.com/getmentor/companyforms/pkg/logger"
	"github.com/getmentor/companyforms/pkg/slug"
	"github.com/getmentor/companyforms/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssetService stores uploaded images
type AssetService struct {
	storage   storage.Storage
	keyPrefix string
	maxSize   int64
}

// NewAssetService creates an asset service writing keys under keyPrefix
func NewAssetService(store storage.Storage, keyPrefix string, maxSize int64) *AssetService {
	if maxSize <= 0 || maxSize > storage.MaxImageSize {
		maxSize = storage.MaxImageSize
	}
	return &AssetService{
		storage:   store,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		maxSize:   maxSize,
	}
}

// UploadImage validates and stores one image. The declared content type is
// only trusted when it agrees with the bytes.
func (s *AssetService) UploadImage(ctx context.Context, fileName, contentType string, data []byte) (*models.UploadResponse, error) {
	if len(data) == 0 {
		return nil, errors.InvalidInputError("companyLogo", "file is empty")
	}
	if int64(len(data)) > s.maxSize {
		return nil, errors.InvalidInputError("companyLogo", "file is too large")
	}

	detected := mimetype.Detect(data)
	if !detected.Is(contentType) {
		logger.Debug("Declared content type differs from content",
			zap.String("declared", contentType),
			zap.String("detected", detected.String()))
		contentType = detected.String()
	}
	// Detection may append parameters, e.g. "text/plain; charset=utf-8"
	contentType = strings.TrimSpace(strings.Split(contentType, ";")[0])

	if err := storage.ValidateImageType(contentType); err != nil {
		return nil, errors.InvalidInputError("companyLogo", err.Error())
	}

	key := path.Join(s.keyPrefix, slug.AssetKey(fileName, uuid.NewString(), storage.ExtensionFor(contentType)))
	url, err := s.storage.Put(ctx, key, contentType, data)
	if err != nil {
		return nil, errors.InternalError("failed to store image: " + err.Error())
	}

	logger.Info("Image stored",
		zap.String("file", fileName),
		zap.String("key", key),
		zap.Int("size", len(data)))

	return &models.UploadResponse{
		Status:  true,
		Message: "Image uploaded successfully",
		URL:     key,
		FullURL: url,
	}, nil
}

// GetAsset returns a stored asset
func (s *AssetService) GetAsset(ctx context.Context, key string) ([]byte, string, error) {
	obj, err := s.storage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, "", errors.NotFoundError("asset")
		}
		return nil, "", err
	}
	return obj.Data, obj.ContentType, nil
}
