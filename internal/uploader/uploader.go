// Package uploader sends a single user-selected image to the asset upload
// endpoint and hands back the storage key plus a preview URL.
package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/getmentor/companyforms/internal/cache"
	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/pkg/apiclient"
	"github.com/getmentor/companyforms/pkg/logger"
	"github.com/getmentor/companyforms/pkg/metrics"
	"github.com/getmentor/companyforms/pkg/retry"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// User-facing messages
const (
	MsgNoFileSelected   = "No file selected"
	MsgUnsupportedType  = "Only image files can be uploaded"
	MsgUploadFailed     = "Failed to upload image"
	defaultMaxRetries   = 2
	uploadOperationName = "uploadAsset"
)

var (
	// ErrNoFileSelected is returned when upload is asked for without a file
	ErrNoFileSelected = errors.New("no file selected")
	// ErrUnsupportedFileType is returned for files that are not image/*
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// UploadError is a rejected or failed upload. Message is safe to show.
type UploadError struct {
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upload failed: %s: %v", e.Message, e.Err)
	}
	return "upload failed: " + e.Message
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// UserMessage maps any error returned by Upload to the text shown to the user
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFileSelected):
		return MsgNoFileSelected
	case errors.Is(err, ErrUnsupportedFileType):
		return MsgUnsupportedType
	}
	var upErr *UploadError
	if errors.As(err, &upErr) && upErr.Message != "" {
		return upErr.Message
	}
	return MsgUploadFailed
}

// File is one selected file
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadFile loads a file from disk, sniffing its content type from the bytes
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mtype := mimetype.Detect(data)
	return &File{
		Name:        filepath.Base(path),
		ContentType: mtype.String(),
		Data:        data,
	}, nil
}

// AssetAPI is the remote upload call
type AssetAPI interface {
	UploadAsset(ctx context.Context, fileName, contentType string, content io.Reader) (*models.UploadResponse, error)
}

// Uploader uploads assets, coalescing concurrent uploads of the same bytes
// and remembering recent results
type Uploader struct {
	api        AssetAPI
	cache      *cache.AssetCache
	group      singleflight.Group
	maxRetries int
}

// Option configures an Uploader
type Option func(*Uploader)

// WithCache makes repeated uploads of identical content reuse the stored asset
func WithCache(c *cache.AssetCache) Option {
	return func(u *Uploader) {
		u.cache = c
	}
}

// WithMaxRetries sets how many times a transport failure is retried
func WithMaxRetries(n int) Option {
	return func(u *Uploader) {
		if n >= 0 {
			u.maxRetries = n
		}
	}
}

// New creates an Uploader on top of api
func New(api AssetAPI, opts ...Option) *Uploader {
	u := &Uploader{
		api:        api,
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload sends file to the upload endpoint. A nil or empty file fails with
// ErrNoFileSelected; a non-image fails with ErrUnsupportedFileType. Any
// remote failure is an *UploadError carrying the server message, or the
// generic one when the server gave none.
func (u *Uploader) Upload(ctx context.Context, file *File) (models.AssetRef, error) {
	if file == nil || len(file.Data) == 0 {
		metrics.AssetUploads.WithLabelValues("no_file").Inc()
		return models.AssetRef{}, ErrNoFileSelected
	}
	if !strings.HasPrefix(strings.ToLower(file.ContentType), "image/") {
		metrics.AssetUploads.WithLabelValues("rejected").Inc()
		logger.Warn("Rejected non-image upload",
			zap.String("file", file.Name),
			zap.String("content_type", file.ContentType))
		return models.AssetRef{}, ErrUnsupportedFileType
	}

	key := cache.ContentKey(file.ContentType, file.Data)
	if u.cache != nil {
		if ref, ok := u.cache.Get(key); ok {
			metrics.AssetUploads.WithLabelValues("cached").Inc()
			return ref, nil
		}
	}

	v, err, shared := u.group.Do(key, func() (any, error) {
		return u.upload(ctx, file)
	})
	if shared {
		logger.Debug("Upload coalesced with an in-flight upload", zap.String("file", file.Name))
	}
	if err != nil {
		metrics.AssetUploads.WithLabelValues("error").Inc()
		return models.AssetRef{}, err
	}

	ref := v.(models.AssetRef)
	if u.cache != nil {
		u.cache.Set(key, ref)
	}
	metrics.AssetUploads.WithLabelValues("success").Inc()
	return ref, nil
}

func (u *Uploader) upload(ctx context.Context, file *File) (models.AssetRef, error) {
	cfg := retry.UploadConfig(u.maxRetries, isTransportError)

	resp, err := retry.DoWithResult(ctx, cfg, uploadOperationName, func() (*models.UploadResponse, error) {
		return u.api.UploadAsset(ctx, file.Name, file.ContentType, bytes.NewReader(file.Data))
	})
	if err != nil {
		msg := apiclient.ServerMessage(err)
		if msg == "" {
			msg = MsgUploadFailed
		}
		return models.AssetRef{}, &UploadError{Message: msg, Err: err}
	}

	if !resp.Status {
		msg := resp.Message
		if msg == "" {
			msg = MsgUploadFailed
		}
		return models.AssetRef{}, &UploadError{Message: msg}
	}
	if resp.URL == "" {
		return models.AssetRef{}, &UploadError{Message: MsgUploadFailed, Err: errors.New("response carried no storage key")}
	}

	logger.Info("Asset uploaded",
		zap.String("file", file.Name),
		zap.String("storage_key", resp.URL))

	return models.AssetRef{StorageKey: resp.URL, DisplayURL: resp.FullURL}, nil
}

// isTransportError reports whether err happened before the server answered.
// Server answers, including error statuses, are final.
func isTransportError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *apiclient.APIError
	return !errors.As(err, &apiErr)
}
