// Package apiclient talks to the company directory API: record creation for
// companies and reviews, and multipart asset upload.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/pkg/httpclient"
	"github.com/getmentor/companyforms/pkg/logger"
	"github.com/getmentor/companyforms/pkg/metrics"
	"github.com/getmentor/companyforms/pkg/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// UploadFieldName is the multipart field the upload endpoint reads the file from
const UploadFieldName = "companyLogo"

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 1 << 20

// APIError is returned for non-2xx responses. Message carries the server's
// own message when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api returned status %d", e.StatusCode)
}

// ServerMessage extracts the user-facing server message from err, if any
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// Endpoints are the paths of the remote calls, relative to the base URL
type Endpoints struct {
	CreateCompany string
	CreateReview  string
	UploadAsset   string
	ListCompanies string
}

// DefaultEndpoints returns the paths the company directory API serves
func DefaultEndpoints() Endpoints {
	return Endpoints{
		CreateCompany: "/company/add",
		CreateReview:  "/review/add",
		UploadAsset:   "/upload/image",
		ListCompanies: "/companies",
	}
}

// Client is the remote API client
type Client struct {
	baseURL    string
	endpoints  Endpoints
	httpClient httpclient.Client
}

// New creates a client for baseURL
func New(baseURL string, endpoints Endpoints, httpClient httpclient.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		endpoints:  endpoints,
		httpClient: httpClient,
	}
}

// CreateCompany posts a new company record
func (c *Client) CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*models.APIResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode company request: %w", err)
	}

	var resp models.APIResponse
	if err := c.do(ctx, http.MethodPost, "createCompany", c.endpoints.CreateCompany, "application/json", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateReview posts a new review for a company
func (c *Client) CreateReview(ctx context.Context, req *models.CreateReviewRequest) (*models.APIResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode review request: %w", err)
	}

	var resp models.APIResponse
	if err := c.do(ctx, http.MethodPost, "createReview", c.endpoints.CreateReview, "application/json", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadAsset sends a single file as multipart/form-data under UploadFieldName
func (c *Client) UploadAsset(ctx context.Context, fileName, contentType string, content io.Reader) (*models.UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, UploadFieldName, fileName))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to write multipart part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	var resp models.UploadResponse
	if err := c.do(ctx, http.MethodPost, "uploadAsset", c.endpoints.UploadAsset, mw.FormDataContentType(), &buf, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCompanies fetches the company list
func (c *Client) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var resp models.ListResponse[models.Company]
	if err := c.do(ctx, http.MethodGet, "listCompanies", c.endpoints.ListCompanies, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ListReviews fetches the reviews of one company
func (c *Client) ListReviews(ctx context.Context, companyID string) ([]models.Review, error) {
	path := c.endpoints.ListCompanies + "/" + url.PathEscape(companyID) + "/reviews"

	var resp models.ListResponse[models.Review]
	if err := c.do(ctx, http.MethodGet, "listReviews", path, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// do sends body to path and decodes the JSON response into out
func (c *Client) do(ctx context.Context, method, operation, path, contentType string, body io.Reader, out any) (err error) {
	start := time.Now()
	target := c.baseURL + path

	ctx, span := tracing.StartSpan(ctx, "apiclient."+operation,
		attribute.String("http.method", method),
		attribute.String("http.url", target),
	)
	defer func() { tracing.EndSpan(span, err) }()

	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		duration := metrics.MeasureDuration(start)
		metrics.APIClientRequestDuration.WithLabelValues(operation, status).Observe(duration)
		metrics.APIClientRequestTotal.WithLabelValues(operation, status).Inc()
		fields := []zap.Field{zap.String("url", target)}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logger.LogAPICall(ctx, "company_api", operation, status, duration, fields...)
	}()

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: decodeMessage(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}

// decodeMessage pulls a message out of an error body. The API uses
// "message"; the generic gin error handlers use "error".
func decodeMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
