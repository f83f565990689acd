package handlers

import (
	"time"

	"github.com/getmentor/companyforms/internal/middleware"
	"github.com/getmentor/companyforms/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// jsonBodyLimit caps create request bodies
const jsonBodyLimit = 100 * 1024

// RouterConfig wires the dev server routes
type RouterConfig struct {
	Directory      services.DirectoryServiceInterface
	Assets         services.AssetServiceInterface
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
	MaxUploadBytes int64
	// ServiceName enables request tracing when set
	ServiceName string
}

// NewRouter builds the dev server's gin engine
func NewRouter(cfg RouterConfig) *gin.Engine {
	directoryHandler := NewDirectoryHandler(cfg.Directory)
	assetHandler := NewAssetHandler(cfg.Assets, cfg.MaxUploadBytes)
	healthHandler := NewHealthHandler()

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader, "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	// Operational endpoints
	router.GET("/healthcheck", healthHandler.Healthcheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Uploaded assets stay cacheable
	router.GET("/uploads/*key", assetHandler.GetAsset)

	api := router.Group("/")
	api.Use(middleware.NoStoreMiddleware())
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Middleware())
	}

	api.POST("/company/add", middleware.BodySizeLimitMiddleware(jsonBodyLimit), directoryHandler.CreateCompany)
	api.POST("/review/add", middleware.BodySizeLimitMiddleware(jsonBodyLimit), directoryHandler.CreateReview)
	// Multipart framing adds a little on top of the file itself
	api.POST("/upload/image", middleware.BodySizeLimitMiddleware(cfg.MaxUploadBytes+64*1024), assetHandler.UploadImage)
	api.GET("/companies", directoryHandler.ListCompanies)
	api.GET("/companies/:id/reviews", directoryHandler.ListReviews)

	return router
}
