package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fileupload/internal/config"
	"fileupload/internal/handler"
	"fileupload/internal/middleware"
	"fileupload/internal/service"

	_ "fileupload/docs"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	uploadH *handler.UploadHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if cfg.Server.Environment != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")

	// Protected routes - require a valid session
	files := api.Group("/files")
	files.Use(middleware.AuthMiddleware(authSvc, cfg.Auth.CookieName))
	files.POST("/upload", uploadH.Upload)

	return r
}
