package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/internal/services"
	"github.com/getmentor/companyforms/pkg/apiclient"
	"github.com/gin-gonic/gin"
)

// AssetHandler accepts image uploads and serves stored assets
type AssetHandler struct {
	service services.AssetServiceInterface
	maxSize int64
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(service services.AssetServiceInterface, maxSize int64) *AssetHandler {
	return &AssetHandler{service: service, maxSize: maxSize}
}

// UploadImage handles POST /upload/image (multipart, field companyLogo)
func (h *AssetHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile(apiclient.UploadFieldName)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(c, http.StatusRequestEntityTooLarge, "File is too large", err)
			return
		}
		respondError(c, http.StatusBadRequest, "No file selected", err)
		return
	}
	if fileHeader.Size > h.maxSize {
		respondError(c, http.StatusRequestEntityTooLarge, "File is too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxSize+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read file", err)
		return
	}

	resp, err := h.service.UploadImage(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		respondServiceError(c, err, "Asset not found")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetAsset handles GET /uploads/*key
func (h *AssetHandler) GetAsset(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusNotFound, models.APIResponse{Status: false, Message: "Asset not found"})
		return
	}

	data, contentType, err := h.service.GetAsset(c.Request.Context(), key)
	if err != nil {
		respondServiceError(c, err, "Asset not found")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, contentType, data)
}
