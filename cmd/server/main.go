//	@title			File Upload API
//	@version		1.0
//	@description	Authenticated single-shot file upload to S3.
//	@BasePath		/api
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: **Bearer {token}**

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"fileupload/internal/config"
	"fileupload/internal/domain"
	"fileupload/internal/handler"
	"fileupload/internal/port"
	"fileupload/internal/router"
	"fileupload/internal/service"
	miniostorage "fileupload/internal/storage/minio"
	redisstore "fileupload/internal/storage/redis"
	s3storage "fileupload/internal/storage/s3"
	"fileupload/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	storage, err := newObjectStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	// Optional session revocation
	var revocation port.SessionRevocationStore
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		revocation = redisstore.NewRevocationStore(rdb)
		log.Printf("Session revocation enabled (redis %s)", cfg.Redis.Addr)
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth, revocation)
	uploadSvc := service.NewUploadService(storage, cfg.S3.Bucket)

	// Initialize handlers
	uploadValidator := validator.NewUploadValidator(
		validator.NewUploadRules(cfg.Upload.MaxFileSize, domain.AllowedContentTypes)...,
	)
	uploadH := handler.NewUploadHandler(uploadSvc, uploadValidator, cfg.Upload.MultipartMemory)
	healthH := handler.NewHealthHandler(uploadSvc)

	// Setup router
	r := router.Setup(cfg, authSvc, uploadH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (bucket %s, provider %s)", cfg.Server.Port, cfg.S3.Bucket, cfg.S3.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newObjectStorage(cfg *config.Config) (port.ObjectStorage, error) {
	switch cfg.S3.Provider {
	case config.ProviderMinio:
		return miniostorage.NewMinioClient(&cfg.S3)
	default:
		return s3storage.NewS3Client(&cfg.S3, cfg.Upload.MaxFileSize)
	}
}
