package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"user-registry/internal/config"
	apphttp "user-registry/internal/http"
	"user-registry/internal/repository"
	"user-registry/internal/repository/document"
	"user-registry/internal/repository/memory"
	"user-registry/internal/repository/sqlite"
	"user-registry/internal/service"
	"user-registry/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
	} else {
		logger.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo, closeRepo, err := buildRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}
	defer closeRepo()

	userService := service.NewUserService(userRepo, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, cfg.Session.Secret, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildRepository(ctx context.Context, cfg config.Config, logger *logrus.Logger) (repository.UserRepository, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.DriverFile:
		logger.Infof("storing users in %s", cfg.Storage.Path)
		return document.NewUserRepository(storage.NewFileBlob(cfg.Storage.Path), logger), noop, nil

	case config.DriverMemory:
		logger.Warn("storing users in memory, data is lost on exit")
		return memory.NewUserRepository(), noop, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		repo := sqlite.NewUserRepository(db)
		if err := repo.Init(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("init user repository: %w", err)
		}
		logger.Infof("storing users in sqlite database %s", cfg.Database.Path)
		return repo, closeDB(db, logger), nil

	case config.DriverS3:
		blob, err := buildS3Blob(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Infof("storing users in %s (region %s)", blob.Location(), cfg.S3.Region)
		return document.NewUserRepository(blob, logger), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func buildS3Blob(ctx context.Context, cfg config.Config) (*storage.S3Blob, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.S3.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			o.UsePathStyle = true
		}
	})
	return storage.NewS3Blob(client, cfg.S3.Bucket, cfg.S3.Key)
}

func closeDB(db *sql.DB, logger *logrus.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			logger.Warnf("close database: %v", err)
		}
	}
}
