package handlers

import (
	"net/http"

	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/internal/services"
	"github.com/gin-gonic/gin"
)

// DirectoryHandler serves company and review records
type DirectoryHandler struct {
	service services.DirectoryServiceInterface
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(service services.DirectoryServiceInterface) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// CreateCompany handles POST /company/add
func (h *DirectoryHandler) CreateCompany(c *gin.Context) {
	var req models.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validationMessage(err), err)
		return
	}

	company, err := h.service.CreateCompany(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Company not found")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  true,
		Message: "Company added successfully",
		ID:      company.ID,
	})
}

// ListCompanies handles GET /companies
func (h *DirectoryHandler) ListCompanies(c *gin.Context) {
	companies, err := h.service.ListCompanies(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Companies not found")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse[*models.Company]{Status: true, Data: companies})
}

// CreateReview handles POST /review/add
func (h *DirectoryHandler) CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validationMessage(err), err)
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Company not found")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  true,
		Message: "Review added successfully",
		ID:      review.ID,
	})
}

// ListReviews handles GET /companies/:id/reviews
func (h *DirectoryHandler) ListReviews(c *gin.Context) {
	reviews, err := h.service.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Company not found")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse[*models.Review]{Status: true, Data: reviews})
}
