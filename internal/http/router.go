// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-issues-backend/docs"
	"github.com/tbourn/go-issues-backend/internal/blobstore"
	"github.com/tbourn/go-issues-backend/internal/config"
	"github.com/tbourn/go-issues-backend/internal/domain"
	"github.com/tbourn/go-issues-backend/internal/http/handlers"
	"github.com/tbourn/go-issues-backend/internal/http/middleware"
	"github.com/tbourn/go-issues-backend/internal/repo"
	"github.com/tbourn/go-issues-backend/internal/services"
)

// issueRepoShim adapts the repository free functions to the repo interfaces
// expected by the services (IssueRepo, LifecycleRepo, UploadRepo). This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type issueRepoShim struct{}

// CreateIssue proxies repo.CreateIssue.
func (issueRepoShim) CreateIssue(ctx context.Context, db *gorm.DB, address, issueType, notes string) (*domain.Issue, error) {
	return repo.CreateIssue(ctx, db, address, issueType, notes)
}

// GetIssue proxies repo.GetIssue.
func (issueRepoShim) GetIssue(ctx context.Context, db *gorm.DB, id string) (*domain.Issue, error) {
	return repo.GetIssue(ctx, db, id)
}

// ListIssues proxies repo.ListIssues.
func (issueRepoShim) ListIssues(ctx context.Context, db *gorm.DB) ([]domain.Issue, error) {
	return repo.ListIssues(ctx, db)
}

// DeleteIssue proxies repo.DeleteIssue.
func (issueRepoShim) DeleteIssue(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteIssue(ctx, db, id)
}

// UpdateIssueStatus proxies repo.UpdateIssueStatus.
func (issueRepoShim) UpdateIssueStatus(ctx context.Context, db *gorm.DB, id string, status domain.Status, solvedAt string) error {
	return repo.UpdateIssueStatus(ctx, db, id, status, solvedAt)
}

// AppendAttachmentURLs proxies repo.AppendAttachmentURLs.
func (issueRepoShim) AppendAttachmentURLs(ctx context.Context, db *gorm.DB, issueID string, category domain.Category, urls []string) error {
	return repo.AppendAttachmentURLs(ctx, db, issueID, category, urls)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, compression, health and metrics endpoints, and
// then mounts the public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter (larger cap on the upload routes)
//  6. Metrics
//  7. Rate limiter (per IP)
//  8. CORS and Security headers
//  9. Gzip compression
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store blobstore.Store, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	apiBase := cfg.APIBasePath // e.g. "/api"
	uploadPrefix := strings.TrimSuffix(apiBase, "/") + "/upload/"

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Body size limits: 1 MiB for JSON endpoints, the configured multipart
	// cap for attachment uploads.
	r.Use(func(c *gin.Context) {
		limit := int64(1 << 20)
		if strings.HasPrefix(c.Request.URL.Path, uploadPrefix) {
			limit = cfg.MaxUploadBytes
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	})

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Compress responses (metrics responses in particular shrink well)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Serve stored blobs when the public base URL points back at this process
	// (the local-disk deployment). A CDN/object-store deployment ignores this.
	r.Static("/blobs", cfg.Storage.Root)

	// Dependency injection: services ← repo/db/store
	shim := issueRepoShim{}
	lifecycle := services.NewLifecycleManager(db, shim)
	uploader := services.NewUploadCoordinator(db, shim, store, cfg.MaxAttachments)
	svc := services.NewIssueService(db, shim, lifecycle, uploader)
	h := handlers.New(svc)

	// Public API
	api := groupWithPrefix(r, apiBase)
	{
		// Issues
		api.POST("/issues", h.CreateIssue)
		api.GET("/issues", h.ListIssues)
		api.GET("/issues/:id", h.GetIssue)
		api.PATCH("/issues/:id", h.ResolveIssue)
		api.DELETE("/issues/:id", h.DeleteIssue)

		// Attachment uploads
		api.POST("/upload/:category/:id", h.UploadAttachments)
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
